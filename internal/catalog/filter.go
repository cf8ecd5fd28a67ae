// Package catalog implements the client-facing browsing logic over the space
// catalog: multi-select predicate filtering, price bucketing and pagination.
// Everything here is pure; the input slice is never mutated and output order
// is the catalog's order.
package catalog

import (
	"strconv"
	"strings"

	"retailmedia-backend/internal/model"
)

// Bucket names a price range. Exactly one bucket matches any given price.
type Bucket string

const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

// Label returns the pt-BR display label for the bucket under the given thresholds.
func (b Bucket) Label(t Thresholds) string {
	t = t.orDefault()
	switch b {
	case BucketLow:
		return "Até R$ " + formatThreshold(t.LowMax)
	case BucketMedium:
		return "R$ " + formatThreshold(t.LowMax) + " - R$ " + formatThreshold(t.HighMin)
	case BucketHigh:
		return "Acima de R$ " + formatThreshold(t.HighMin)
	}
	return string(b)
}

// formatThreshold renders a bucket boundary with pt-BR thousands separators
// ("1000" -> "1.000").
func formatThreshold(v float64) string {
	s := strconv.FormatInt(int64(v), 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}
	return s
}

// Thresholds defines the price bucket boundaries. The zero value means
// "use defaults" (low <= 1000 < medium <= 3000 < high).
type Thresholds struct {
	LowMax  float64
	HighMin float64
}

// DefaultThresholds are the reference bucket boundaries in monthly BRL.
var DefaultThresholds = Thresholds{LowMax: 1000, HighMin: 3000}

func (t Thresholds) orDefault() Thresholds {
	if t.LowMax <= 0 || t.HighMin <= 0 {
		return DefaultThresholds
	}
	return t
}

// BucketFor returns the single bucket the price falls into. Boundary values
// belong to the lower bucket: price == LowMax is low, price == HighMin is medium.
func (t Thresholds) BucketFor(price float64) Bucket {
	t = t.orDefault()
	switch {
	case price <= t.LowMax:
		return BucketLow
	case price <= t.HighMin:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// FilterState is the full set of browsing predicates. Every predicate is
// default-open: an empty list (or empty/"all" single value) imposes no
// constraint. Predicates combine with AND across categories and OR within a
// category's selected values.
type FilterState struct {
	// Search is matched case-insensitively as a substring of name or description.
	Search string

	// Type is the single-select mode used by the home page teaser ("all" or
	// empty means no constraint). Types is the multi-select mode used by the
	// full catalog page. When Types is non-empty it wins; callers populate
	// one or the other, never both.
	Type  string
	Types []string

	Cities  []string
	Sectors []string
	Stores  []string

	// Prices holds selected bucket names ("low", "medium", "high").
	Prices []string

	// Thresholds configures the price buckets; zero value uses defaults.
	Thresholds Thresholds
}

// Empty reports whether the state imposes no constraint at all.
func (f FilterState) Empty() bool {
	return f.Search == "" &&
		(f.Type == "" || f.Type == "all") &&
		len(f.Types) == 0 && len(f.Cities) == 0 &&
		len(f.Sectors) == 0 && len(f.Stores) == 0 && len(f.Prices) == 0
}

// Filter returns the spaces satisfying every active predicate, preserving
// catalog order. The input is never mutated.
func Filter(spaces []model.Space, f FilterState) []model.Space {
	if f.Empty() {
		out := make([]model.Space, len(spaces))
		copy(out, spaces)
		return out
	}

	out := make([]model.Space, 0, len(spaces))
	for _, s := range spaces {
		if f.matches(&s) {
			out = append(out, s)
		}
	}
	return out
}

func (f FilterState) matches(s *model.Space) bool {
	return f.matchesSearch(s) &&
		f.matchesType(s) &&
		matchesAnyFold(f.Cities, s.City) &&
		matchesAnyFold(f.Sectors, string(s.Sector)) &&
		matchesAnyFold(f.Stores, s.StoreName) &&
		f.matchesPrice(s)
}

func (f FilterState) matchesSearch(s *model.Space) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Description), term)
}

func (f FilterState) matchesType(s *model.Space) bool {
	if len(f.Types) > 0 {
		for _, t := range f.Types {
			if model.SpaceType(t) == s.Type {
				return true
			}
		}
		return false
	}
	if f.Type == "" || f.Type == "all" {
		return true
	}
	return model.SpaceType(f.Type) == s.Type
}

func (f FilterState) matchesPrice(s *model.Space) bool {
	if len(f.Prices) == 0 {
		return true
	}
	bucket := f.Thresholds.BucketFor(s.Price)
	for _, p := range f.Prices {
		if Bucket(p) == bucket {
			return true
		}
	}
	return false
}

// matchesAnyFold is the shared multi-select predicate: empty allow-list means
// no constraint, otherwise case-insensitive equality against any selected value.
func matchesAnyFold(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, v := range selected {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
