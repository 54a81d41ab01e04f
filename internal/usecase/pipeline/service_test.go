package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	csvexp "github.com/angelalonso/gtr2/internal/adapters/exporter/csv"
	expreg "github.com/angelalonso/gtr2/internal/adapters/exporter/registry"
	parreg "github.com/angelalonso/gtr2/internal/adapters/parser/registry"
	"github.com/angelalonso/gtr2/internal/adapters/parser/talent"
	"github.com/angelalonso/gtr2/internal/adapters/parser/vehicle"
	"github.com/angelalonso/gtr2/internal/adapters/reader"
	"github.com/angelalonso/gtr2/internal/domain"
	"github.com/angelalonso/gtr2/internal/usecase/reconciler"
	"github.com/angelalonso/gtr2/internal/usecase/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newInstall lays out a minimal GTR2 tree: one car file under the teams
// folder and one talent file in the stock location.
func newInstall(t *testing.T) Config {
	t.Helper()
	install := t.TempDir()
	teams := filepath.Join(install, "GameData", "Teams")
	talentDir := filepath.Join(install, "GameData", "Talent")
	require.NoError(t, os.MkdirAll(filepath.Join(teams, "TeamA"), 0o755))
	require.NoError(t, os.MkdirAll(talentDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(teams, "TeamA", "car1.car"),
		[]byte("Driver1=\"Jane Doe\"\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(talentDir, "pack.rcd"),
		[]byte("Jane Doe\n{\n  Nationality=USA\n  Consistency=60\n}\n"), 0o644))
	return Config{InstallDir: install, TeamsDir: teams}
}

func newPipeline(cfg Config) *Service {
	log := zap.NewNop()
	rd := reader.New()
	parsers := parreg.New()
	parsers.Register(vehicle.New())
	parsers.Register(talent.New())
	exporters := expreg.New()
	exporters.Register(csvexp.New())
	return New(cfg, Deps{
		Scanner:   scanner.New(scanner.Deps{Reader: rd, Parsers: parsers, Log: log}),
		Matcher:   reconciler.New(log),
		Reader:    rd,
		Exporters: exporters,
		Log:       log,
	})
}

func TestProcess(t *testing.T) {
	cfg := newInstall(t)
	rows, columns, err := newPipeline(cfg).Process(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "Jane Doe", row[domain.ColDriver])
	assert.Equal(t, "car1.car", row[domain.ColSourceFile])
	assert.Equal(t, "USA", row["Nationality"])
	assert.Equal(t, "60", row["Consistency"])
	assert.Equal(t, []string{"Driver", "Source_CAR_File", "CAR_File_Path", "Nationality", "Consistency"}, columns)
}

func TestProcessNoMatches(t *testing.T) {
	cfg := newInstall(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.InstallDir, "GameData", "Talent", "pack.rcd"),
		[]byte("Qqq Xyzzy\n{\n  Consistency=60\n}\n"), 0o644))

	_, _, err := newPipeline(cfg).Process(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoMatches)
}

func TestProcessMissingTeamsFolder(t *testing.T) {
	cfg := newInstall(t)
	cfg.TeamsDir = filepath.Join(cfg.InstallDir, "nope")
	_, _, err := newPipeline(cfg).Process(context.Background())
	assert.ErrorIs(t, err, domain.ErrPathNotFound)
}

func TestUpdate(t *testing.T) {
	cfg := newInstall(t)
	rows := []domain.Row{{
		domain.ColDriver: "Jane Doe",
		"Consistency":    "75",
		"Nationality":    "GER", // not editable, must be ignored
	}}

	res, err := newPipeline(cfg).Update(context.Background(), rows, []string{"Consistency"}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 0, res.Errors)
	assert.Empty(t, res.BackupPath)

	got, err := os.ReadFile(filepath.Join(cfg.InstallDir, "GameData", "Talent", "pack.rcd"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n{\n  Nationality=USA\n  Consistency=75\n}\n", string(got))
}

func TestUpdateEmptyCellLeavesFileAlone(t *testing.T) {
	cfg := newInstall(t)
	rows := []domain.Row{{domain.ColDriver: "Jane Doe", "Consistency": " "}}

	res, err := newPipeline(cfg).Update(context.Background(), rows, []string{"Consistency"}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)

	got, err := os.ReadFile(filepath.Join(cfg.InstallDir, "GameData", "Talent", "pack.rcd"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n{\n  Nationality=USA\n  Consistency=60\n}\n", string(got))
}

func TestUpdateWithBackup(t *testing.T) {
	cfg := newInstall(t)

	// The backup folder is created relative to the working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	rows := []domain.Row{{domain.ColDriver: "Jane Doe", "Consistency": "75"}}
	res, err := newPipeline(cfg).Update(context.Background(), rows, []string{"Consistency"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)
	require.NotEmpty(t, res.BackupPath)
	assert.Contains(t, filepath.Base(res.BackupPath), "rcd_backup_")

	// The pristine file is mirrored under the backup root.
	got, err := os.ReadFile(filepath.Join(res.BackupPath, "GameData", "Talent", "pack.rcd"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n{\n  Nationality=USA\n  Consistency=60\n}\n", string(got))
}

func TestUpdateCountsUnknownDrivers(t *testing.T) {
	cfg := newInstall(t)
	rows := []domain.Row{
		{domain.ColDriver: "Jane Doe", "Consistency": "75"},
		{domain.ColDriver: "Nobody", "Consistency": "10"},
	}

	res, err := newPipeline(cfg).Update(context.Background(), rows, []string{"Consistency"}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 1, res.Errors)
}

func TestExport(t *testing.T) {
	cfg := newInstall(t)
	out := filepath.Join(t.TempDir(), "result.csv")
	rows := []domain.Row{{domain.ColDriver: "Jane Doe", "Consistency": "60"}}

	err := newPipeline(cfg).Export(context.Background(), "csv", out, []string{"Driver", "Consistency"}, rows)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Driver,Consistency\nJane Doe,60\n", string(got))
}

func TestExportUnknownFormat(t *testing.T) {
	cfg := newInstall(t)
	err := newPipeline(cfg).Export(context.Background(), "xlsx", "out", nil, nil)
	assert.Error(t, err)
}
