package domain

// AnyValue is the select-box sentinel for "no constraint". A filter set to
// AnyValue behaves exactly like an empty one.
const AnyValue = "any"

// FilterSpec is the closed set of filters the catalog understands. Every
// field is a raw string as typed by the user; an empty string (or AnyValue)
// means the filter is inactive. Active filters are combined with AND.
type FilterSpec struct {
	// Search is matched case-insensitively against every searchable field
	Search string `json:"search,omitempty" yaml:"search,omitempty"`

	// Categorical filters, exact and case-sensitive
	Gender    string `json:"gender,omitempty" yaml:"gender,omitempty"`
	EyeColor  string `json:"eye_color,omitempty" yaml:"eye_color,omitempty"`
	HairColor string `json:"hair_color,omitempty" yaml:"hair_color,omitempty"`

	// Numeric ranges, inclusive
	HeightMin string `json:"height_min,omitempty" yaml:"height_min,omitempty"`
	HeightMax string `json:"height_max,omitempty" yaml:"height_max,omitempty"`
	MassMin   string `json:"mass_min,omitempty" yaml:"mass_min,omitempty"`
	MassMax   string `json:"mass_max,omitempty" yaml:"mass_max,omitempty"`

	// BirthYear is a case-insensitive substring match, e.g. "bby"
	BirthYear string `json:"birth_year,omitempty" yaml:"birth_year,omitempty"`
}

// IsActive reports whether a raw filter value constrains anything
func IsActive(value string) bool {
	return value != "" && value != AnyValue
}

// IsEmpty returns true when no filter, including search, is active
func (f FilterSpec) IsEmpty() bool {
	return !IsActive(f.Search) && f.ActiveCount() == 0
}

// ActiveCount counts the active filters excluding the search box, which is
// what the filter badge in the UI shows.
func (f FilterSpec) ActiveCount() int {
	count := 0
	for _, v := range []string{
		f.Gender, f.EyeColor, f.HairColor,
		f.HeightMin, f.HeightMax, f.MassMin, f.MassMax,
		f.BirthYear,
	} {
		if IsActive(v) {
			count++
		}
	}
	return count
}

// Cleared returns a spec with every filter inactive
func (f FilterSpec) Cleared() FilterSpec {
	return FilterSpec{}
}

// Equal compares two specs by their effective constraints, so "any" and ""
// are considered the same.
func (f FilterSpec) Equal(other FilterSpec) bool {
	return f.normalised() == other.normalised()
}

func (f FilterSpec) normalised() FilterSpec {
	n := func(v string) string {
		if IsActive(v) {
			return v
		}
		return ""
	}
	return FilterSpec{
		Search:    n(f.Search),
		Gender:    n(f.Gender),
		EyeColor:  n(f.EyeColor),
		HairColor: n(f.HairColor),
		HeightMin: n(f.HeightMin),
		HeightMax: n(f.HeightMax),
		MassMin:   n(f.MassMin),
		MassMax:   n(f.MassMax),
		BirthYear: n(f.BirthYear),
	}
}
