package talent

import "strings"

// Kind classifies one line of a .rcd file.
type Kind int

const (
	Blank Kind = iota
	CommentOnly
	BraceOpen
	BraceClose
	Header
	Field
)

// Token is the classified form of a single line. Opens and Closes count the
// braces in the line's uncommented text so the consumer can track block depth
// without re-scanning.
type Token struct {
	Kind   Kind
	Name   string // Header: trimmed driver name
	Key    string // Field: trimmed key before the first '='
	Value  string // Field: trimmed, comment-stripped value
	Opens  int
	Closes int
}

// Tokenize classifies a raw line. The rules mirror how GTR2 reads the files:
// everything after // is comment, a non-blank line without '=' that does not
// start with a brace names a driver, and '=' lines are fields.
func Tokenize(line string) Token {
	clean := line
	if i := strings.Index(clean, "//"); i >= 0 {
		clean = clean[:i]
	}
	trimmed := strings.TrimSpace(clean)
	tok := Token{
		Opens:  strings.Count(clean, "{"),
		Closes: strings.Count(clean, "}"),
	}
	switch {
	case trimmed == "":
		if strings.Contains(line, "//") {
			tok.Kind = CommentOnly
		} else {
			tok.Kind = Blank
		}
	case strings.HasPrefix(trimmed, "{"):
		tok.Kind = BraceOpen
	case strings.HasPrefix(trimmed, "}"):
		tok.Kind = BraceClose
	case strings.Contains(trimmed, "="):
		tok.Kind = Field
		key, value, _ := strings.Cut(trimmed, "=")
		tok.Key = strings.TrimSpace(key)
		tok.Value = strings.TrimSpace(value)
	default:
		tok.Kind = Header
		tok.Name = trimmed
	}
	return tok
}

// ReplaceValue rewrites the value segment of a field line, leaving the
// indentation, the key as written, surrounding spacing and any trailing
// comment byte-for-byte intact. Lines without '=' come back unchanged.
func ReplaceValue(line, newValue string) string {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return line
	}
	head := line[:eq+1]
	seg := line[eq+1:]

	end := len(seg)
	if ci := strings.Index(seg, "//"); ci >= 0 {
		end = ci
	}
	body := seg[:end]
	lead := body[:len(body)-len(strings.TrimLeft(body, " \t"))]
	trimmed := strings.TrimRight(strings.TrimLeft(body, " \t"), " \t\r")
	trail := body[len(lead)+len(trimmed):]

	return head + lead + newValue + trail + seg[end:]
}
