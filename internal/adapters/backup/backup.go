package backup

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Service copies files into a backup root before their first mutation,
// mirroring each file's location relative to a base folder. Each path is
// attempted once per run.
type Service struct {
	root string
	base string
	done map[string]struct{}
	log  *zap.Logger
}

func New(root, base string, log *zap.Logger) *Service {
	return &Service{root: root, base: base, done: map[string]struct{}{}, log: log}
}

func (s *Service) Root() string { return s.root }

func (s *Service) Copy(path string) error {
	if _, ok := s.done[path]; ok {
		return nil
	}
	s.done[path] = struct{}{}

	rel, err := filepath.Rel(s.base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	dst := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	s.log.Debug("backup created", zap.String("file", path), zap.String("dest", dst))
	return nil
}
