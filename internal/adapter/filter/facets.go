package filter

import "github.com/thushan/holocron/internal/core/domain"

// Facet names a categorical attribute the filter panel offers choices for
type Facet string

const (
	FacetGender    Facet = "gender"
	FacetEyeColor  Facet = "eye_color"
	FacetHairColor Facet = "hair_color"
)

func (f Facet) value(r domain.Record) string {
	switch f {
	case FacetGender:
		return r.Gender
	case FacetEyeColor:
		return r.EyeColor
	case FacetHairColor:
		return r.HairColor
	default:
		return ""
	}
}

// UniqueValues returns the distinct non-empty values of a facet in the order
// they first appear
func UniqueValues(records []domain.Record, facet Facet) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range records {
		v := facet.value(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// Cycle steps through the choices for a facet starting from current. The
// empty value sits before the first choice, meaning "any".
func Cycle(choices []string, current string, step int) string {
	if len(choices) == 0 {
		return ""
	}

	idx := -1
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}

	// positions: -1 (any), 0..len-1
	n := len(choices) + 1
	pos := ((idx+1)+step)%n + n
	pos = pos%n - 1
	if pos < 0 {
		return ""
	}
	return choices[pos]
}
