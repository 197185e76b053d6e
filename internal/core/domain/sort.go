package domain

import (
	"fmt"
	"strings"
)

// SortDirection represents ordering direction for sortable fields.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortField enumerates the record attributes a view can be ordered by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByHeight    SortField = "height"
	SortByMass      SortField = "mass"
	SortByHairColor SortField = "hair_color"
	SortBySkinColor SortField = "skin_color"
	SortByEyeColor  SortField = "eye_color"
	SortByBirthYear SortField = "birth_year"
	SortByGender    SortField = "gender"
	SortByHomeworld SortField = "homeworld"
	SortByFilms     SortField = "films"
	SortBySpecies   SortField = "species"
	SortByCreated   SortField = "created"
	SortByEdited    SortField = "edited"
)

// SortFields lists every sortable field in column order
var SortFields = []SortField{
	SortByName,
	SortByHeight,
	SortByMass,
	SortByHairColor,
	SortBySkinColor,
	SortByEyeColor,
	SortByBirthYear,
	SortByGender,
	SortByHomeworld,
	SortByFilms,
	SortBySpecies,
	SortByCreated,
	SortByEdited,
}

// SortSpec captures ordering preferences for a view. A nil *SortSpec means
// records keep their source order.
type SortSpec struct {
	Field     SortField     `json:"field" yaml:"field"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// Value extracts the field from a record. The boolean is false for fields
// that are not plain strings (the list attributes), which never order.
func (f SortField) Value(r Record) (string, bool) {
	switch f {
	case SortByName:
		return r.Name, true
	case SortByHeight:
		return r.Height, true
	case SortByMass:
		return r.Mass, true
	case SortByHairColor:
		return r.HairColor, true
	case SortBySkinColor:
		return r.SkinColor, true
	case SortByEyeColor:
		return r.EyeColor, true
	case SortByBirthYear:
		return r.BirthYear, true
	case SortByGender:
		return r.Gender, true
	case SortByHomeworld:
		return r.Homeworld, true
	case SortByCreated:
		return r.Created, true
	case SortByEdited:
		return r.Edited, true
	default:
		return "", false
	}
}

// IsValid reports whether the field is one of SortFields
func (f SortField) IsValid() bool {
	for _, field := range SortFields {
		if field == f {
			return true
		}
	}
	return false
}

// Toggle mirrors a column header click: the same field flips direction,
// a different field starts ascending.
func (s *SortSpec) Toggle(field SortField) *SortSpec {
	if s != nil && s.Field == field && s.Direction == SortAscending {
		return &SortSpec{Field: field, Direction: SortDescending}
	}
	return &SortSpec{Field: field, Direction: SortAscending}
}

// Reversed returns the same field with the opposite direction
func (s *SortSpec) Reversed() *SortSpec {
	if s == nil {
		return nil
	}
	dir := SortAscending
	if s.Direction == SortAscending {
		dir = SortDescending
	}
	return &SortSpec{Field: s.Field, Direction: dir}
}

func (s *SortSpec) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", s.Field, s.Direction)
}

// ParseSortSpec parses "field" or "field:asc|desc". An empty string yields nil.
func ParseSortSpec(value string) (*SortSpec, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	field, dir, found := strings.Cut(value, ":")
	spec := &SortSpec{
		Field:     SortField(strings.ToLower(strings.TrimSpace(field))),
		Direction: SortAscending,
	}
	if !spec.Field.IsValid() {
		return nil, fmt.Errorf("unknown sort field %q", field)
	}

	if found {
		switch SortDirection(strings.ToLower(strings.TrimSpace(dir))) {
		case SortAscending:
		case SortDescending:
			spec.Direction = SortDescending
		default:
			return nil, fmt.Errorf("unknown sort direction %q", dir)
		}
	}
	return spec, nil
}
