package domain

import "strings"

const (
	// UnknownValue is what SWAPI returns when a value is not known
	UnknownValue = "unknown"

	// NotApplicableValue is used by SWAPI for droids without hair, etc
	NotApplicableValue = "n/a"
)

// Record is a single catalog entry as served by SWAPI's /people resource.
// Records are treated as immutable once loaded.
type Record struct {
	Name      string   `json:"name" yaml:"name"`
	Height    string   `json:"height" yaml:"height"`
	Mass      string   `json:"mass" yaml:"mass"`
	HairColor string   `json:"hair_color" yaml:"hair_color"`
	SkinColor string   `json:"skin_color" yaml:"skin_color"`
	EyeColor  string   `json:"eye_color" yaml:"eye_color"`
	BirthYear string   `json:"birth_year" yaml:"birth_year"`
	Gender    string   `json:"gender" yaml:"gender"`
	Homeworld string   `json:"homeworld" yaml:"homeworld"`
	Created   string   `json:"created" yaml:"created"`
	Edited    string   `json:"edited" yaml:"edited"`
	URL       string   `json:"url" yaml:"url"`
	Films     []string `json:"films" yaml:"films"`
	Species   []string `json:"species" yaml:"species"`
	Vehicles  []string `json:"vehicles" yaml:"vehicles"`
	Starships []string `json:"starships" yaml:"starships"`
}

// ID is the equality key for a record. SWAPI urls are unique per character,
// the name is only used for hand-written records that have no url.
func (r Record) ID() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Name
}

// SearchableFields returns the scalar values free-text search looks at
func (r Record) SearchableFields() []string {
	return []string{
		r.Name,
		r.Height,
		r.Mass,
		r.BirthYear,
		r.Gender,
		r.EyeColor,
		r.HairColor,
		r.SkinColor,
		r.Homeworld,
	}
}

// IsUnknown reports whether a raw attribute holds the unknown sentinel
func IsUnknown(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), UnknownValue)
}

// Clone returns a copy that shares no slices with the original
func (r Record) Clone() Record {
	c := r
	c.Films = cloneStrings(r.Films)
	c.Species = cloneStrings(r.Species)
	c.Vehicles = cloneStrings(r.Vehicles)
	c.Starships = cloneStrings(r.Starships)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
