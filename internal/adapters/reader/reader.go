package reader

import (
	"bytes"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// attempts is the encoding preference order. UTF-8 decodes with invalid
// sequences dropped, so in practice the first attempt wins; the single-byte
// fallbacks stay for files the UTF-8 pass cannot open at all.
var attempts = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", unicode.UTF8},
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

type Reader struct{}

func New() *Reader { return &Reader{} }

// ReadText decodes the file with the first encoding that succeeds.
// Undecodable byte sequences are dropped rather than treated as failures.
// An error is returned only when the file itself cannot be read.
func (r *Reader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	data = stripBOM(data)
	for _, a := range attempts {
		if a.enc == unicode.UTF8 {
			return strings.ToValidUTF8(string(data), ""), nil
		}
		out, derr := a.enc.NewDecoder().Bytes(data)
		if derr != nil {
			continue
		}
		return string(out), nil
	}
	// Single-byte decoders accept any input, so this is unreachable in
	// practice; keep the raw bytes as a last resort.
	return string(data), nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
