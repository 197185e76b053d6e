// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"fmt"

	"github.com/thushan/holocron/internal/core/domain"
)

func person(id int, name, height, mass, hair, skin, eye, birth, gender string, films ...int) domain.Record {
	r := domain.Record{
		Name:      name,
		Height:    height,
		Mass:      mass,
		HairColor: hair,
		SkinColor: skin,
		EyeColor:  eye,
		BirthYear: birth,
		Gender:    gender,
		Homeworld: "https://swapi.dev/api/planets/1/",
		Created:   "2014-12-09T13:50:51.644000Z",
		Edited:    "2014-12-20T21:17:56.891000Z",
		URL:       fmt.Sprintf("https://swapi.dev/api/people/%d/", id),
		Species:   []string{},
		Vehicles:  []string{},
		Starships: []string{},
	}
	for _, f := range films {
		r.Films = append(r.Films, fmt.Sprintf("https://swapi.dev/api/films/%d/", f))
	}
	return r
}

// People returns a fresh copy of a small, representative slice of SWAPI
// characters, including unknown values and a thousands-separated mass.
func People() []domain.Record {
	return []domain.Record{
		person(1, "Luke Skywalker", "172", "77", "blond", "fair", "blue", "19BBY", "male", 1, 2, 3, 6),
		person(2, "C-3PO", "167", "75", "n/a", "gold", "yellow", "112BBY", "n/a", 1, 2, 3, 4, 5, 6),
		person(3, "R2-D2", "96", "32", "n/a", "white, blue", "red", "33BBY", "n/a", 1, 2, 3, 4, 5, 6),
		person(4, "Darth Vader", "202", "136", "none", "white", "yellow", "41.9BBY", "male", 1, 2, 3, 6),
		person(5, "Leia Organa", "150", "49", "brown", "light", "brown", "19BBY", "female", 1, 2, 3, 6),
		person(6, "Owen Lars", "178", "120", "brown, grey", "light", "blue", "52BBY", "male", 1, 5, 6),
		person(7, "Beru Whitesun lars", "165", "75", "brown", "light", "blue", "47BBY", "female", 1, 5, 6),
		person(8, "R5-D4", "97", "32", "n/a", "white, red", "red", "unknown", "n/a", 1),
		person(9, "Biggs Darklighter", "183", "84", "black", "light", "brown", "24BBY", "male", 1),
		person(10, "Obi-Wan Kenobi", "182", "77", "auburn, white", "fair", "blue-gray", "57BBY", "male", 1, 2, 3, 4, 5, 6),
		person(16, "Jabba Desilijic Tiure", "175", "1,358", "n/a", "green-tan, brown", "orange", "600BBY", "hermaphrodite", 1, 3, 4),
		person(20, "Yoda", "66", "17", "white", "green", "brown", "896BBY", "male", 2, 3, 4, 5, 6),
		person(28, "Mon Mothma", "150", "unknown", "auburn", "fair", "blue", "48BBY", "female", 3),
		person(29, "Arvel Crynyd", "unknown", "unknown", "brown", "fair", "brown", "unknown", "male", 3),
		person(25, "Bossk", "190", "113", "none", "green", "red", "53BBY", "male", 2),
	}
}

// Numbered returns n synthetic records named "Person 001".."Person n"
func Numbered(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{
			Name:   fmt.Sprintf("Person %03d", i+1),
			Height: fmt.Sprintf("%d", 100+i),
			Mass:   fmt.Sprintf("%d", 50+i%40),
			Gender: []string{"male", "female", "n/a"}[i%3],
			URL:    fmt.Sprintf("https://swapi.dev/api/people/%d/", i+1),
		}
	}
	return out
}

// IDs maps records to their ids, handy for order assertions
func IDs(records []domain.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID()
	}
	return ids
}

// Names maps records to their names
func Names(records []domain.Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}
