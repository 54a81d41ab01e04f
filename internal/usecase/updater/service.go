package updater

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/angelalonso/gtr2/internal/adapters/parser/talent"
	"github.com/angelalonso/gtr2/internal/domain"
	"github.com/angelalonso/gtr2/internal/ports"
	"go.uber.org/zap"
)

type Deps struct {
	Reader ports.FileReader
	Backup ports.Backup // nil disables backups
	Log    *zap.Logger
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

type Args struct {
	Plans []domain.EditPlan
	// Index maps a driver name to the .rcd file that declares it.
	Index map[string]string
	// Roots are walked as a fallback when a driver is not in the index.
	Roots []string
}

type Stats struct {
	Success int
	Errors  int
}

// Apply writes each plan into its driver's .rcd block. Failures are counted
// per driver and never stop the batch. A failed backup is logged and the
// mutation still goes ahead.
func (s *Service) Apply(ctx context.Context, a Args) Stats {
	var st Stats
	for _, plan := range a.Plans {
		if plan.Driver == "" {
			continue
		}
		path := a.Index[plan.Driver]
		if path == "" {
			path = s.findFileForDriver(a.Roots, plan.Driver)
		}
		if path == "" {
			st.Errors++
			s.d.Log.Error("no .rcd file found for driver", zap.String("driver", plan.Driver))
			continue
		}
		if s.d.Backup != nil {
			if err := s.d.Backup.Copy(path); err != nil {
				s.d.Log.Error("backup failed", zap.String("file", path), zap.Error(err))
			}
		}
		if err := s.updateFile(path, plan); err != nil {
			st.Errors++
			s.d.Log.Error("failed to update driver",
				zap.String("driver", plan.Driver), zap.String("file", path), zap.Error(err))
			continue
		}
		st.Success++
		s.d.Log.Info("driver updated",
			zap.String("driver", plan.Driver), zap.String("file", filepath.Base(path)))
	}
	return st
}

// updateFile rewrites only the value segments of the targeted fields inside
// the driver's block; every other byte of the file is preserved. The new
// content goes to a temp file first and is renamed over the original.
func (s *Service) updateFile(path string, plan domain.EditPlan) error {
	text, err := s.d.Reader.ReadText(path)
	if err != nil {
		return err
	}
	lines := strings.Split(text, "\n")

	inBlock := false
	depth := 0
	for i, line := range lines {
		tok := talent.Tokenize(line)
		if !inBlock {
			if tok.Kind == talent.Header && tok.Name == plan.Driver {
				inBlock = true
				depth = 0
			}
			continue
		}
		depth += tok.Opens - tok.Closes
		if tok.Kind == talent.Field && depth > 0 {
			if key, ok := domain.CanonicalField(tok.Key); ok {
				if v, ok := plan.Fields[key]; ok && strings.TrimSpace(v) != "" {
					lines[i] = talent.ReplaceValue(line, strings.TrimSpace(v))
				}
			}
		}
		if depth == 0 && tok.Closes > 0 {
			inBlock = false
		}
	}

	return writeAtomic(path, strings.Join(lines, "\n"))
}

// findFileForDriver walks the fallback roots and opens each .rcd file looking
// for an exact header line.
func (s *Service) findFileForDriver(roots []string, driver string) string {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		var files []string
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".rcd") {
				files = append(files, path)
			}
			return nil
		})
		sort.Strings(files)
		for _, path := range files {
			text, err := s.d.Reader.ReadText(path)
			if err != nil {
				continue
			}
			for _, name := range talent.Headers([]byte(text)) {
				if name == driver {
					return path
				}
			}
		}
	}
	return ""
}

func writeAtomic(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rcd-update-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, info.Mode()); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
