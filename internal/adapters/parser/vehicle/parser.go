package vehicle

import (
	"regexp"
	"sort"
	"strings"

	"github.com/angelalonso/gtr2/internal/ports"
)

// driverPatterns are tried in order of decreasing specificity: quoted value,
// unterminated quoted value, bare single token, then the DriverName spelling.
// A trailing digit allows Driver2= style keys.
var driverPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Driver\d*\s*=\s*"([^"]*)"`),
	regexp.MustCompile(`(?i)Driver\d*\s*=\s*"([^"\n\r]+)`),
	regexp.MustCompile(`(?i)Driver\d*\s*=\s*([^\s"\n\r][^\s\n\r]*)`),
	regexp.MustCompile(`(?i)DriverName\d*\s*=\s*"([^"]*)"`),
}

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Format() string { return "vehicle" }

func (p *Parser) Extensions() []string { return []string{".car"} }

// Parse scans the whole file with each pattern and unions the cleaned
// matches. .car files are not parsed structurally; driver assignments can
// appear anywhere in them.
func (p *Parser) Parse(data []byte) (ports.ParseResult, error) {
	text := string(data)
	seen := map[string]struct{}{}
	for _, re := range driverPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := CleanName(m[1])
			if name == "" {
				continue
			}
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return ports.ParseResult{Names: names}, nil
}

// CleanName strips surrounding quotes and whitespace from a raw match and
// drops any stray quote characters the looser patterns let through.
func CleanName(raw string) string {
	s := strings.Trim(raw, `"'`)
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}
