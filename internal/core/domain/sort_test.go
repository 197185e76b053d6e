package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortSpec(t *testing.T) {
	spec, err := ParseSortSpec("")
	require.NoError(t, err)
	assert.Nil(t, spec)

	spec, err = ParseSortSpec("name")
	require.NoError(t, err)
	assert.Equal(t, &SortSpec{Field: SortByName, Direction: SortAscending}, spec)

	spec, err = ParseSortSpec(" Height:DESC ")
	require.NoError(t, err)
	assert.Equal(t, &SortSpec{Field: SortByHeight, Direction: SortDescending}, spec)
	assert.Equal(t, "height:desc", spec.String())

	_, err = ParseSortSpec("weight")
	assert.Error(t, err)

	_, err = ParseSortSpec("name:sideways")
	assert.Error(t, err)
}

func TestSortSpec_Toggle(t *testing.T) {
	var none *SortSpec

	asc := none.Toggle(SortByMass)
	assert.Equal(t, &SortSpec{Field: SortByMass, Direction: SortAscending}, asc)

	desc := asc.Toggle(SortByMass)
	assert.Equal(t, SortDescending, desc.Direction)

	assert.Equal(t, SortAscending, desc.Toggle(SortByMass).Direction)

	other := desc.Toggle(SortByName)
	assert.Equal(t, &SortSpec{Field: SortByName, Direction: SortAscending}, other)
}

func TestSortSpec_Reversed(t *testing.T) {
	var none *SortSpec
	assert.Nil(t, none.Reversed())
	assert.Empty(t, none.String())

	spec := &SortSpec{Field: SortByName, Direction: SortAscending}
	assert.Equal(t, SortDescending, spec.Reversed().Direction)
	assert.Equal(t, SortAscending, spec.Reversed().Reversed().Direction)
	assert.Equal(t, SortAscending, spec.Direction)
}

func TestSortField_Value(t *testing.T) {
	r := Record{Name: "Luke Skywalker", Height: "172", Films: []string{"a"}}

	v, ok := SortByName.Value(r)
	assert.True(t, ok)
	assert.Equal(t, "Luke Skywalker", v)

	v, ok = SortByHeight.Value(r)
	assert.True(t, ok)
	assert.Equal(t, "172", v)

	_, ok = SortByFilms.Value(r)
	assert.False(t, ok)

	assert.True(t, SortByFilms.IsValid())
	assert.False(t, SortField("weight").IsValid())
}
