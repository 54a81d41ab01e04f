package reconciler

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/angelalonso/gtr2/internal/domain"
	"go.uber.org/zap"
)

type Service struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Service { return &Service{log: log} }

type Input struct {
	Drivers []string
	Sources map[string]string
	Records map[string]domain.Fields
}

type Output struct {
	Rows      []domain.Row
	Columns   []string
	Found     int
	Missing   int
	Unmatched []string
}

// Reconcile binds each extracted driver name to at most one talent record.
// Drivers are processed in lexicographic order and candidate records are
// iterated in lexicographic order, so the result is reproducible. A record
// claimed by one driver is never handed to another.
func (s *Service) Reconcile(in Input) Output {
	var out Output
	out.Columns = []string{domain.ColDriver, domain.ColSourceFile, domain.ColFilePath}

	keys := make([]string, 0, len(in.Records))
	for k := range in.Records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	drivers := append([]string(nil), in.Drivers...)
	sort.Strings(drivers)

	used := map[string]bool{}
	seenCol := map[string]bool{}
	hasOriginal := false

	for _, driver := range drivers {
		matched := findBestMatch(driver, keys, used)
		switch {
		case matched != "" && !used[matched]:
			source := in.Sources[driver]
			if source == "" {
				source = "Unknown"
			}
			row := domain.Row{
				domain.ColDriver:     matched,
				domain.ColSourceFile: filepath.Base(source),
				domain.ColFilePath:   source,
			}
			for k, v := range in.Records[matched] {
				row[k] = v
				seenCol[k] = true
			}
			if driver != matched {
				row[domain.ColOriginalName] = driver
				hasOriginal = true
				s.log.Info("driver matched", zap.String("driver", driver), zap.String("matched", matched))
			} else {
				s.log.Info("driver matched", zap.String("driver", driver))
			}
			out.Rows = append(out.Rows, row)
			used[matched] = true
			out.Found++
		case matched != "":
			// The record was claimed by an earlier driver. Counted as found
			// for the statistics but no row is emitted; see DESIGN.md.
			s.log.Debug("record already used, dropping duplicate",
				zap.String("driver", driver), zap.String("matched", matched))
			out.Found++
		default:
			out.Unmatched = append(out.Unmatched, driver)
			out.Missing++
			s.log.Warn("no talent data for driver", zap.String("driver", driver))
		}
	}

	if hasOriginal {
		out.Columns = append(out.Columns, domain.ColOriginalName)
	}
	for _, f := range domain.CanonicalFields {
		if seenCol[f] {
			out.Columns = append(out.Columns, f)
		}
	}

	s.log.Info("matching summary",
		zap.Int("drivers", len(drivers)),
		zap.Int("found", out.Found),
		zap.Int("missing", out.Missing))
	return out
}

// findBestMatch tries the tiers in order and stops at the first hit. Every
// tier skips records already claimed.
func findBestMatch(driver string, keys []string, used map[string]bool) string {
	lower := strings.ToLower(driver)

	// 1. Exact match, case-insensitive.
	for _, k := range keys {
		if !used[k] && strings.ToLower(k) == lower {
			return k
		}
	}

	parts := strings.Fields(driver)
	if len(parts) > 1 {
		// 2. Last token, then first token, as a substring of a record name.
		last := strings.ToLower(parts[len(parts)-1])
		for _, k := range keys {
			if !used[k] && strings.Contains(strings.ToLower(k), last) {
				return k
			}
		}
		first := strings.ToLower(parts[0])
		for _, k := range keys {
			if !used[k] && strings.Contains(strings.ToLower(k), first) {
				return k
			}
		}
	} else if len(parts) == 1 {
		// 3. Single token as a substring of a record name.
		token := strings.ToLower(parts[0])
		for _, k := range keys {
			if !used[k] && strings.Contains(strings.ToLower(k), token) {
				return k
			}
		}
	}

	// 4. Bidirectional substring match.
	for _, k := range keys {
		kl := strings.ToLower(k)
		if !used[k] && (strings.Contains(kl, lower) || strings.Contains(lower, kl)) {
			return k
		}
	}
	return ""
}
