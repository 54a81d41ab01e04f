package ports

import (
	"github.com/angelalonso/gtr2/internal/domain"
)

type Exporter interface {
	Format() string
	Export(columns []string, rows []domain.Row) ([]byte, error)
}
