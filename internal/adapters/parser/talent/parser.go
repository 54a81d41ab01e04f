package talent

import (
	"strings"

	"github.com/angelalonso/gtr2/internal/domain"
	"github.com/angelalonso/gtr2/internal/ports"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "talent" }

func (p *Parser) Extensions() []string { return []string{".rcd"} }

// Parse walks the file line by line, attributing fields to the most recent
// header. Unknown keys are dropped, malformed lines are skipped; parsing never
// fails, the result is whatever blocks could be attributed.
func (p *Parser) Parse(data []byte) (ports.ParseResult, error) {
	var records []domain.Record
	var current *domain.Record
	for _, line := range strings.Split(string(data), "\n") {
		tok := Tokenize(line)
		switch tok.Kind {
		case Header:
			records = append(records, domain.Record{Driver: tok.Name, Fields: domain.Fields{}})
			current = &records[len(records)-1]
		case Field:
			if current == nil {
				continue
			}
			if key, ok := domain.CanonicalField(tok.Key); ok {
				current.Fields[key] = tok.Value
			}
		}
	}
	return ports.ParseResult{Records: records}, nil
}

// Headers returns just the driver names declared in the file, in order. The
// updater uses this to build its name-to-file index without keeping fields.
func Headers(data []byte) []string {
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if tok := Tokenize(line); tok.Kind == Header {
			names = append(names, tok.Name)
		}
	}
	return names
}
