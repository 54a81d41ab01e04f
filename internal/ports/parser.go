package ports

import (
	"github.com/angelalonso/gtr2/internal/domain"
)

// ParseResult carries whatever a parser was able to pull out of one file.
// Vehicle parsers fill Names, talent parsers fill Records; either side may be
// empty for malformed input, parsing itself never fails on bad lines.
type ParseResult struct {
	Names   []string
	Records []domain.Record
}

type Parser interface {
	Format() string
	// Extensions returns the file extensions this parser handles, lowercase
	// with a leading dot.
	Extensions() []string
	Parse(data []byte) (ParseResult, error)
}
