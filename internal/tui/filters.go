package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thushan/holocron/internal/adapter/filter"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/theme"
)

type filterField int

const (
	fieldGender filterField = iota
	fieldEyeColor
	fieldHairColor
	fieldHeightMin
	fieldHeightMax
	fieldMassMin
	fieldMassMax
	fieldBirthYear
	fieldCount
)

var filterLabels = [fieldCount]string{
	"Gender",
	"Eye color",
	"Hair color",
	"Height min",
	"Height max",
	"Mass min",
	"Mass max",
	"Birth year",
}

func (f filterField) facet() (filter.Facet, bool) {
	switch f {
	case fieldGender:
		return filter.FacetGender, true
	case fieldEyeColor:
		return filter.FacetEyeColor, true
	case fieldHairColor:
		return filter.FacetHairColor, true
	}
	return "", false
}

func (f filterField) get(spec domain.FilterSpec) string {
	switch f {
	case fieldGender:
		return spec.Gender
	case fieldEyeColor:
		return spec.EyeColor
	case fieldHairColor:
		return spec.HairColor
	case fieldHeightMin:
		return spec.HeightMin
	case fieldHeightMax:
		return spec.HeightMax
	case fieldMassMin:
		return spec.MassMin
	case fieldMassMax:
		return spec.MassMax
	case fieldBirthYear:
		return spec.BirthYear
	}
	return ""
}

func (f filterField) set(spec *domain.FilterSpec, value string) {
	switch f {
	case fieldGender:
		spec.Gender = value
	case fieldEyeColor:
		spec.EyeColor = value
	case fieldHairColor:
		spec.HairColor = value
	case fieldHeightMin:
		spec.HeightMin = value
	case fieldHeightMax:
		spec.HeightMax = value
	case fieldMassMin:
		spec.MassMin = value
	case fieldMassMax:
		spec.MassMax = value
	case fieldBirthYear:
		spec.BirthYear = value
	}
}

// filterPanel edits every FilterSpec field except the search box.
// Categorical fields cycle through the values present in the records,
// the rest are free text.
type filterPanel struct {
	choices map[filter.Facet][]string
	spec    domain.FilterSpec
	inputs  [fieldCount]textinput.Model
	focus   filterField
}

func newFilterPanel() filterPanel {
	p := filterPanel{choices: make(map[filter.Facet][]string)}
	for f := fieldHeightMin; f < fieldCount; f++ {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 12
		in.Placeholder = "any"
		p.inputs[f] = in
	}
	return p
}

// SetChoices refreshes the categorical options from a record set
func (p *filterPanel) SetChoices(records []domain.Record) {
	for _, facet := range []filter.Facet{filter.FacetGender, filter.FacetEyeColor, filter.FacetHairColor} {
		p.choices[facet] = filter.UniqueValues(records, facet)
	}
}

// Load replaces the panel state with spec, used when switching screens
func (p *filterPanel) Load(spec domain.FilterSpec) {
	p.spec = spec
	for f := fieldHeightMin; f < fieldCount; f++ {
		p.inputs[f].SetValue(f.get(spec))
	}
}

func (p filterPanel) Spec() domain.FilterSpec {
	return p.spec
}

// Open focuses the panel on its current field
func (p *filterPanel) Open() tea.Cmd {
	return p.focusField(p.focus)
}

func (p *filterPanel) Close() {
	for f := fieldHeightMin; f < fieldCount; f++ {
		p.inputs[f].Blur()
	}
}

func (p *filterPanel) focusField(f filterField) tea.Cmd {
	p.Close()
	p.focus = f
	if _, ok := f.facet(); ok {
		return nil
	}
	return p.inputs[f].Focus()
}

// Update handles a key while the panel has focus. The bool reports whether
// the filter spec changed.
func (p filterPanel) Update(msg tea.KeyMsg) (filterPanel, tea.Cmd, bool) {
	switch msg.String() {
	case "up", "shift+tab":
		cmd := p.focusField((p.focus + fieldCount - 1) % fieldCount)
		return p, cmd, false
	case "down", "tab":
		cmd := p.focusField((p.focus + 1) % fieldCount)
		return p, cmd, false
	}

	if facet, ok := p.focus.facet(); ok {
		step := 0
		switch msg.String() {
		case "left", "h":
			step = -1
		case "right", "l", " ":
			step = 1
		case "c", "backspace":
			cleared := p.spec.Cleared()
			cleared.Search = p.spec.Search
			changed := !cleared.Equal(p.spec)
			p.Load(cleared)
			return p, nil, changed
		}
		if step == 0 {
			return p, nil, false
		}
		next := filter.Cycle(p.choices[facet], p.focus.get(p.spec), step)
		p.focus.set(&p.spec, next)
		return p, nil, true
	}

	var cmd tea.Cmd
	before := p.inputs[p.focus].Value()
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	after := p.inputs[p.focus].Value()
	if before == after {
		return p, cmd, false
	}
	p.focus.set(&p.spec, strings.TrimSpace(after))
	return p, cmd, true
}

func (p filterPanel) View(s theme.Styles) string {
	var b strings.Builder
	b.WriteString(s.Subtitle.Render("Filters"))
	b.WriteString(s.Muted.Render("  ↑/↓ field · ←/→ cycle · c clear · esc close"))
	b.WriteString("\n")

	for f := fieldGender; f < fieldCount; f++ {
		label := s.Label.Render(filterLabels[f])

		var value string
		if _, ok := f.facet(); ok {
			value = f.get(p.spec)
			if !domain.IsActive(value) {
				value = "any"
			}
			value = "‹ " + value + " ›"
		} else {
			value = p.inputs[f].View()
		}

		line := label + " " + value
		if f == p.focus {
			line = s.FocusedItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return s.Panel.Render(strings.TrimRight(b.String(), "\n"))
}
