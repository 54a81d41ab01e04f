package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	parreg "github.com/angelalonso/gtr2/internal/adapters/parser/registry"
	"github.com/angelalonso/gtr2/internal/domain"
	"github.com/angelalonso/gtr2/internal/ports"
	"go.uber.org/zap"
)

type Deps struct {
	Reader  ports.FileReader
	Parsers *parreg.Registry
	Log     *zap.Logger
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

// Result is everything one scan pass produces: the driver names scraped from
// .car files, where each name was last seen, the talent records keyed by
// driver, and the driver-to-file index the updater uses later.
type Result struct {
	Drivers    []string
	Sources    map[string]string
	Records    map[string]domain.Fields
	RecordFile map[string]string
}

// Scan reads the vehicle tree and the talent trees in one pass each. Files
// that cannot be read or decoded are skipped; an error is returned only when
// the vehicle root is missing or a whole stage comes up empty.
func (s *Service) Scan(ctx context.Context, vehicleRoot string, talentRoots []string) (Result, error) {
	res := Result{
		Sources:    map[string]string{},
		Records:    map[string]domain.Fields{},
		RecordFile: map[string]string{},
	}

	if _, err := os.Stat(vehicleRoot); err != nil {
		s.d.Log.Error("teams folder does not exist", zap.String("path", vehicleRoot))
		return Result{}, domain.ErrPathNotFound
	}

	carFiles := s.findFiles(vehicleRoot, "vehicle")
	s.d.Log.Info("vehicle files found", zap.String("root", vehicleRoot), zap.Int("count", len(carFiles)))
	for _, path := range carFiles {
		pr, ok := s.parseFile(path)
		if !ok {
			continue
		}
		for _, name := range pr.Names {
			res.Sources[name] = path
		}
	}
	for name := range res.Sources {
		res.Drivers = append(res.Drivers, name)
	}
	sort.Strings(res.Drivers)
	s.d.Log.Info("unique drivers extracted", zap.Int("count", len(res.Drivers)))
	if len(res.Drivers) == 0 {
		return Result{}, domain.ErrNoDrivers
	}

	for _, root := range talentRoots {
		if _, err := os.Stat(root); err != nil {
			s.d.Log.Warn("talent folder does not exist", zap.String("path", root))
			continue
		}
		files := s.findFiles(root, "talent")
		s.d.Log.Info("talent files found", zap.String("root", root), zap.Int("count", len(files)))
		for _, path := range files {
			pr, ok := s.parseFile(path)
			if !ok {
				continue
			}
			for _, rec := range pr.Records {
				// A later file replaces an earlier record wholesale.
				res.Records[rec.Driver] = rec.Fields
				res.RecordFile[rec.Driver] = path
			}
		}
	}
	s.d.Log.Info("drivers parsed from talent files", zap.Int("count", len(res.Records)))
	if len(res.Records) == 0 {
		return Result{}, domain.ErrNoRecords
	}
	return res, nil
}

// findFiles collects every file under root handled by the parser registered
// for the given format.
func (s *Service) findFiles(root, format string) []string {
	var found []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if p, ok := s.d.Parsers.ForPath(path); ok && p.Format() == format {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	return found
}

func (s *Service) parseFile(path string) (ports.ParseResult, bool) {
	parser, ok := s.d.Parsers.ForPath(path)
	if !ok {
		return ports.ParseResult{}, false
	}
	text, err := s.d.Reader.ReadText(path)
	if err != nil {
		s.d.Log.Warn("failed to read file", zap.String("path", path), zap.Error(err))
		return ports.ParseResult{}, false
	}
	pr, err := parser.Parse([]byte(text))
	if err != nil {
		s.d.Log.Warn("failed to parse file", zap.String("path", path), zap.Error(err))
		return ports.ParseResult{}, false
	}
	return pr, true
}
