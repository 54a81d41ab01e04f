package main

import (
	expcsv "github.com/angelalonso/gtr2/internal/adapters/exporter/csv"
	expreg "github.com/angelalonso/gtr2/internal/adapters/exporter/registry"
	parreg "github.com/angelalonso/gtr2/internal/adapters/parser/registry"
	"github.com/angelalonso/gtr2/internal/adapters/parser/talent"
	"github.com/angelalonso/gtr2/internal/adapters/parser/vehicle"
	"github.com/angelalonso/gtr2/internal/adapters/reader"
	"github.com/angelalonso/gtr2/internal/usecase/pipeline"
	"github.com/angelalonso/gtr2/internal/usecase/reconciler"
	"github.com/angelalonso/gtr2/internal/usecase/scanner"
	"go.uber.org/zap"
)

type pipelineSettings struct {
	Install string
	Teams   string
}

// buildPipeline wires the adapters and services. Registration is explicit so
// the full object graph is visible in one place.
func buildPipeline(cfg pipelineSettings, logger *zap.Logger) *pipeline.Service {
	fileReader := reader.New()

	parserRegistry := parreg.New()
	parserRegistry.Register(vehicle.New())
	parserRegistry.Register(talent.New())

	exporterRegistry := expreg.New()
	exporterRegistry.Register(expcsv.New())

	scanSvc := scanner.New(scanner.Deps{
		Reader:  fileReader,
		Parsers: parserRegistry,
		Log:     logger,
	})
	matchSvc := reconciler.New(logger)

	return pipeline.New(
		pipeline.Config{InstallDir: cfg.Install, TeamsDir: cfg.Teams},
		pipeline.Deps{
			Scanner:   scanSvc,
			Matcher:   matchSvc,
			Reader:    fileReader,
			Exporters: exporterRegistry,
			Log:       logger,
		},
	)
}
