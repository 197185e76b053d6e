package dataview

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/pkg/pool"
)

const DefaultLocale = "en"

// Comparator orders records by a SortSpec using locale-aware collation.
// Collators are not goroutine safe, so each goroutine borrows one from the
// pool for the duration of a sort.
type Comparator struct {
	collators *pool.Pool[*collate.Collator]
	tag       language.Tag
}

// NewComparator builds a comparator for a BCP 47 locale, falling back to
// DefaultLocale when the tag does not parse
func NewComparator(locale string) *Comparator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Comparator{
		tag: tag,
		collators: pool.MustNewLitePool(func() *collate.Collator {
			return collate.New(tag)
		}),
	}
}

// Locale returns the resolved language tag
func (c *Comparator) Locale() string {
	return c.tag.String()
}

// Compare returns -1, 0 or 1. Fields without a string value (films,
// species) always compare equal. Height and mass are compared as text, so
// "9" sorts after "80".
func (c *Comparator) Compare(a, b domain.Record, spec domain.SortSpec) int {
	col := c.collators.Get()
	defer c.collators.Put(col)
	return compareWith(col, a, b, spec)
}

// Sort stably orders records in place. A nil spec leaves them untouched.
func (c *Comparator) Sort(records []domain.Record, spec *domain.SortSpec) {
	if spec == nil || len(records) < 2 {
		return
	}
	col := c.collators.Get()
	defer c.collators.Put(col)

	s := *spec
	slices.SortStableFunc(records, func(a, b domain.Record) int {
		return compareWith(col, a, b, s)
	})
}

func compareWith(col *collate.Collator, a, b domain.Record, spec domain.SortSpec) int {
	av, aok := spec.Field.Value(a)
	bv, bok := spec.Field.Value(b)
	if !aok || !bok {
		return 0
	}

	result := col.CompareString(av, bv)
	switch {
	case result < 0:
		result = -1
	case result > 0:
		result = 1
	}
	if spec.Direction == domain.SortDescending {
		return -result
	}
	return result
}
