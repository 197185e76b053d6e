package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"blue", "blue"},
		{"unknown", "Unknown"},
		{"UNKNOWN", "Unknown"},
		{"", "Unknown"},
		{"n/a", "N/A"},
		{"  19BBY ", "19BBY"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Value(tt.in), "input %q", tt.in)
	}
}

func TestHeightAndMass(t *testing.T) {
	assert.Equal(t, "172 cm", Height("172"))
	assert.Equal(t, "Unknown", Height("unknown"))
	assert.Equal(t, "1,358 kg", Mass("1,358"))
	assert.Equal(t, "N/A", Mass("n/a"))
}

func TestList(t *testing.T) {
	assert.Equal(t, "None", List(nil))
	assert.Equal(t, "a, b", List([]string{"a", "b"}))
}

func TestResourceIDs(t *testing.T) {
	assert.Equal(t, []string{"1", "22"}, ResourceIDs([]string{
		"https://swapi.dev/api/films/1/",
		"https://swapi.dev/api/films/22",
	}))
	assert.Equal(t, "plain", ResourceID("plain"))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 film", Count(1, "film"))
	assert.Equal(t, "0 films", Count(0, "film"))
	assert.Equal(t, "6 films", Count(6, "film"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Luke", Truncate("Luke", 10))
	assert.Equal(t, "Luke Sky…", Truncate("Luke Skywalker", 9))
	assert.Equal(t, "…", Truncate("Luke", 1))
	assert.Equal(t, "", Truncate("Luke", 0))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Blue-gray", Title("blue-gray"))
	assert.Equal(t, "Brown, Grey", Title("brown, grey"))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "500ms", Duration(500*time.Millisecond))
	assert.Equal(t, "42s", Duration(42*time.Second))
	assert.Equal(t, "2m5s", Duration(125*time.Second))
	assert.Equal(t, "1h0m1s", Duration(time.Hour+time.Second))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "512B", Bytes(512))
	assert.Equal(t, "12.3kB", Bytes(12300))
}
