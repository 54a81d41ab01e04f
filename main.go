package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	csvparser "github.com/angelalonso/gtr2/internal/adapters/parser/csv"
	"github.com/angelalonso/gtr2/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields the editor never writes back, on top of the table metadata columns.
var excludedFields = []string{"Abbreviation", "Nationality", "NatAbbrev", "Script"}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gtr2",
		Short:         "Extract and edit GTR2 driver talent data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().StringP("config", "c", "", "Path to configuration YAML file.")
	cmd.PersistentFlags().StringP("install", "i", "", "Path to GTR2 installation folder.")
	cmd.PersistentFlags().StringP("teams", "t", "", "Path to teams folder.")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging.")
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("gtr2_install", cmd.PersistentFlags().Lookup("install"))
	_ = viper.BindPFlag("teams_folder", cmd.PersistentFlags().Lookup("teams"))
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	cmd.AddCommand(newProcessCmd(), newUpdateCmd())
	return cmd
}

func initConfig() {
	if cfg := viper.GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.SetConfigName("cfg")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	// Missing config files are fine; flags alone are enough.
	_ = viper.ReadInConfig()
}

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Scan .car and .rcd files and write the merged driver table",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(viper.GetBool("debug"))
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := pipelineConfig()
			if err != nil {
				return err
			}
			svc := buildPipeline(cfg, logger)

			rows, columns, err := svc.Process(cmd.Context())
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			if err := svc.Export(cmd.Context(), "csv", output, columns, rows); err != nil {
				return err
			}
			fmt.Printf("Saved %d drivers to %s\n", len(rows), output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "result.csv", "Output CSV filename.")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <table.csv>",
		Short: "Write edited talent values from a table back into the .rcd files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(viper.GetBool("debug"))
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := pipelineConfig()
			if err != nil {
				return err
			}
			svc := buildPipeline(cfg, logger)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			columns, rows, err := csvparser.Load(data)
			if err != nil {
				return err
			}
			createBackup, _ := cmd.Flags().GetBool("backup")

			res, err := svc.Update(cmd.Context(), rows, editableFields(columns), createBackup)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %d drivers, %d failed\n", res.Success, res.Errors)
			if res.BackupPath != "" {
				fmt.Printf("Backups in %s\n", res.BackupPath)
			}
			return nil
		},
	}
	cmd.Flags().Bool("backup", true, "Back up each .rcd file before the first change.")
	return cmd
}

// pipelineConfig resolves folders from flags and cfg.yaml. The teams folder
// defaults to GameData/Teams under the installation.
func pipelineConfig() (pipelineSettings, error) {
	install := viper.GetString("gtr2_install")
	if install == "" {
		return pipelineSettings{}, errors.New("install folder not specified, use --install or --config")
	}
	teams := viper.GetString("teams_folder")
	if teams == "" {
		teams = filepath.Join(install, "GameData", "Teams")
	}
	return pipelineSettings{Install: install, Teams: teams}, nil
}

// editableFields filters table columns down to what may be written back.
func editableFields(columns []string) []string {
	skip := map[string]bool{}
	for _, c := range domain.MetadataColumns {
		skip[strings.ToLower(c)] = true
	}
	for _, c := range excludedFields {
		skip[strings.ToLower(c)] = true
	}
	var out []string
	for _, c := range columns {
		if !skip[strings.ToLower(c)] {
			out = append(out, c)
		}
	}
	return out
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
