package filter

import (
	"strings"

	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/util"
)

// PredicateFilter implements ports.Filter for catalog records. It is
// stateless and safe to share.
type PredicateFilter struct{}

// NewPredicateFilter creates a new PredicateFilter instance
func NewPredicateFilter() ports.Filter {
	return PredicateFilter{}
}

// Apply returns the records that pass spec, preserving input order
func (f PredicateFilter) Apply(records []domain.Record, spec domain.FilterSpec) []domain.Record {
	return Apply(records, spec)
}

// Matches checks if a single record passes every active filter
func (f PredicateFilter) Matches(record domain.Record, spec domain.FilterSpec) bool {
	return Matches(record, spec)
}

// Apply returns the records that pass spec, preserving input order
func Apply(records []domain.Record, spec domain.FilterSpec) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	if spec.IsEmpty() {
		return append(out, records...)
	}

	// lower-case the search terms once, not per record
	c := compile(spec)
	for _, r := range records {
		if c.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Matches checks if a single record passes every active filter
func Matches(record domain.Record, spec domain.FilterSpec) bool {
	return compile(spec).matches(record)
}

// rangeBound is one side of a numeric range. A bound that is active but
// does not parse still switches the range on, it just never rejects.
type rangeBound struct {
	value  float64
	active bool
	valid  bool
}

type numericRange struct {
	min rangeBound
	max rangeBound
}

func (nr numericRange) active() bool {
	return nr.min.active || nr.max.active
}

// admits applies the range to a raw record value. Values that are not
// numbers (including "unknown") never pass an active range.
func (nr numericRange) admits(raw string) bool {
	if !nr.active() {
		return true
	}
	v, ok := util.ParseLeadingFloat(util.StripThousands(raw))
	if !ok || domain.IsUnknown(raw) {
		return false
	}
	if nr.min.valid && v < nr.min.value {
		return false
	}
	if nr.max.valid && v > nr.max.value {
		return false
	}
	return true
}

func parseBound(raw string) rangeBound {
	if !domain.IsActive(raw) {
		return rangeBound{}
	}
	v, ok := util.ParseLeadingFloat(util.StripThousands(raw))
	return rangeBound{value: v, active: true, valid: ok}
}

type compiled struct {
	search    string
	birthYear string
	gender    string
	eyeColor  string
	hairColor string
	height    numericRange
	mass      numericRange
}

func compile(spec domain.FilterSpec) compiled {
	c := compiled{
		height: numericRange{min: parseBound(spec.HeightMin), max: parseBound(spec.HeightMax)},
		mass:   numericRange{min: parseBound(spec.MassMin), max: parseBound(spec.MassMax)},
	}
	if domain.IsActive(spec.Search) {
		c.search = strings.ToLower(spec.Search)
	}
	if domain.IsActive(spec.BirthYear) {
		c.birthYear = strings.ToLower(spec.BirthYear)
	}
	if domain.IsActive(spec.Gender) {
		c.gender = spec.Gender
	}
	if domain.IsActive(spec.EyeColor) {
		c.eyeColor = spec.EyeColor
	}
	if domain.IsActive(spec.HairColor) {
		c.hairColor = spec.HairColor
	}
	return c
}

func (c compiled) matches(r domain.Record) bool {
	if c.search != "" && !matchesSearch(r, c.search) {
		return false
	}

	if c.gender != "" && r.Gender != c.gender {
		return false
	}

	if !c.height.admits(r.Height) || !c.mass.admits(r.Mass) {
		return false
	}

	if c.eyeColor != "" && r.EyeColor != c.eyeColor {
		return false
	}

	if c.hairColor != "" && r.HairColor != c.hairColor {
		return false
	}

	if c.birthYear != "" && !strings.Contains(strings.ToLower(r.BirthYear), c.birthYear) {
		return false
	}

	return true
}

func matchesSearch(r domain.Record, lowered string) bool {
	for _, field := range r.SearchableFields() {
		if field != "" && strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}
