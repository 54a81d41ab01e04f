package registry

import (
	"path/filepath"
	"strings"

	"github.com/angelalonso/gtr2/internal/ports"
)

type Registry struct {
	byFormat map[string]ports.Parser
	byExt    map[string]ports.Parser
}

func New() *Registry {
	return &Registry{byFormat: map[string]ports.Parser{}, byExt: map[string]ports.Parser{}}
}

func (r *Registry) Register(p ports.Parser) {
	r.byFormat[p.Format()] = p
	for _, ext := range p.Extensions() {
		r.byExt[ext] = p
	}
}

func (r *Registry) Get(format string) (ports.Parser, bool) { p, ok := r.byFormat[format]; return p, ok }

// ForPath picks a parser by the file's extension, case-insensitively.
func (r *Registry) ForPath(path string) (ports.Parser, bool) {
	p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return p, ok
}
