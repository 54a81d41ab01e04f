package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/angelalonso/gtr2/internal/adapters/backup"
	expreg "github.com/angelalonso/gtr2/internal/adapters/exporter/registry"
	"github.com/angelalonso/gtr2/internal/adapters/parser/talent"
	"github.com/angelalonso/gtr2/internal/domain"
	"github.com/angelalonso/gtr2/internal/ports"
	"github.com/angelalonso/gtr2/internal/usecase/reconciler"
	"github.com/angelalonso/gtr2/internal/usecase/scanner"
	"github.com/angelalonso/gtr2/internal/usecase/updater"
	"go.uber.org/zap"
)

// Config points the pipeline at a GTR2 installation. Talent files live under
// GameData/Talent and next to the teams tree.
type Config struct {
	InstallDir string
	TeamsDir   string
}

type Deps struct {
	Scanner   *scanner.Service
	Matcher   *reconciler.Service
	Reader    ports.FileReader
	Exporters *expreg.Registry
	Log       *zap.Logger
}

type Service struct {
	d   Deps
	cfg Config
}

func New(cfg Config, d Deps) *Service { return &Service{d: d, cfg: cfg} }

// Process runs extraction, parsing and matching, returning the reconciled
// rows and the column order. Any stage that comes up empty aborts with no
// partial rows.
func (s *Service) Process(ctx context.Context) ([]domain.Row, []string, error) {
	res, err := s.d.Scanner.Scan(ctx, s.cfg.TeamsDir, s.talentRoots())
	if err != nil {
		return nil, nil, err
	}
	out := s.d.Matcher.Reconcile(reconciler.Input{
		Drivers: res.Drivers,
		Sources: res.Sources,
		Records: res.Records,
	})
	if out.Found == 0 {
		return nil, nil, domain.ErrNoMatches
	}
	return out.Rows, out.Columns, nil
}

type UpdateResult struct {
	Success    int
	Errors     int
	BackupPath string
}

// Update writes the editable fields of each row back into the owning .rcd
// files. Per-driver failures are counted; the batch always runs to the end.
func (s *Service) Update(ctx context.Context, rows []domain.Row, editable []string, createBackup bool) (UpdateResult, error) {
	index := s.buildIndex()

	var bkp ports.Backup
	var backupPath string
	if createBackup {
		root := "rcd_backup_" + time.Now().Format("20060102_150405")
		if err := os.MkdirAll(root, 0o755); err != nil {
			s.d.Log.Error("failed to create backup folder", zap.String("path", root), zap.Error(err))
		} else {
			if abs, err := filepath.Abs(root); err == nil {
				root = abs
			}
			backupPath = root
			bkp = backup.New(root, s.cfg.InstallDir, s.d.Log)
			s.d.Log.Info("backup folder created", zap.String("path", root))
		}
	}

	upd := updater.New(updater.Deps{Reader: s.d.Reader, Backup: bkp, Log: s.d.Log})
	st := upd.Apply(ctx, updater.Args{
		Plans: plansFromRows(rows, editable),
		Index: index,
		Roots: s.searchRoots(),
	})

	s.d.Log.Info("update summary", zap.Int("updated", st.Success), zap.Int("failed", st.Errors))
	return UpdateResult{Success: st.Success, Errors: st.Errors, BackupPath: backupPath}, nil
}

// Export renders rows with the named exporter and writes them to path.
func (s *Service) Export(ctx context.Context, format, path string, columns []string, rows []domain.Row) error {
	exp, ok := s.d.Exporters.Get(format)
	if !ok {
		return errors.New("no exporter for format: " + format)
	}
	data, err := exp.Export(columns, rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	s.d.Log.Info("table written", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

func (s *Service) talentRoots() []string {
	return []string{
		filepath.Join(s.cfg.InstallDir, "GameData", "Talent"),
		s.cfg.TeamsDir,
	}
}

// searchRoots adds the Talent folder next to the teams tree, which some mods
// use instead of the stock location.
func (s *Service) searchRoots() []string {
	return append(s.talentRoots(), filepath.Join(s.cfg.TeamsDir, "..", "Talent"))
}

// buildIndex scans the header lines of every talent file once so the updater
// can find the owning file without re-walking per driver.
func (s *Service) buildIndex() map[string]string {
	index := map[string]string{}
	for _, root := range s.talentRoots() {
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
				index[name] = path
			}
		}
	}
	return index
}

// plansFromRows keeps only editable canonical fields with a non-empty value;
// an empty cell means "leave the file as it is".
func plansFromRows(rows []domain.Row, editable []string) []domain.EditPlan {
	plans := make([]domain.EditPlan, 0, len(rows))
	for _, row := range rows {
		driver := row[domain.ColDriver]
		if driver == "" {
			continue
		}
		fields := domain.Fields{}
		for _, f := range editable {
			key, ok := domain.CanonicalField(f)
			if !ok {
				continue
			}
			if v := row[f]; strings.TrimSpace(v) != "" {
				fields[key] = v
			}
		}
		plans = append(plans, domain.EditPlan{Driver: driver, Fields: fields})
	}
	return plans
}
