package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
)

const (
	unknownText = "Unknown"
	notAppText  = "N/A"
	noneText    = "None"
)

// Bytes renders a file size, e.g. "12.3kB"
func Bytes(bytes int64) string {
	return units.HumanSize(float64(bytes))
}

// Duration formats duration in a readable way
func Duration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// Value renders a raw attribute, "unknown" and blanks become "Unknown" and
// "n/a" becomes "N/A"
func Value(raw string) string {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "", "unknown":
		return unknownText
	case "n/a":
		return notAppText
	}
	return v
}

func withUnit(raw, unit string) string {
	v := Value(raw)
	if v == unknownText || v == notAppText {
		return v
	}
	return v + " " + unit
}

// Height renders centimetres, "172" -> "172 cm"
func Height(raw string) string {
	return withUnit(raw, "cm")
}

// Mass renders kilograms, "1,358" -> "1,358 kg"
func Mass(raw string) string {
	return withUnit(raw, "kg")
}

// List joins list attributes or returns "None"
func List(values []string) string {
	if len(values) == 0 {
		return noneText
	}
	return strings.Join(values, ", ")
}

// ResourceIDs reduces SWAPI resource urls to their trailing ids,
// "https://swapi.dev/api/films/1/" -> "1"
func ResourceIDs(urls []string) []string {
	ids := make([]string, 0, len(urls))
	for _, u := range urls {
		ids = append(ids, ResourceID(u))
	}
	return ids
}

// ResourceID returns the last non-empty path segment of a resource url
func ResourceID(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Count renders n with a singular or plural noun, "1 film", "3 films"
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Truncate shortens s to width runes, ending with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// Title capitalises the first letter of each word, "blue-gray" stays as is
func Title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
