package tui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/holocron/internal/adapter/dataview"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/testutil"
)

func TestRenderPlain(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	engine := dataview.NewEngine("en")
	view := engine.DeriveView(testutil.People(), domain.FilterSpec{}, nil, domain.NewPagingState(domain.PagingDiscrete, 5))

	luke := testutil.People()[0].ID()
	var buf bytes.Buffer
	require.NoError(t, RenderPlain(&buf, view, func(id string) bool { return id == luke }))

	out := buf.String()
	assert.Contains(t, out, "Luke Skywalker")
	assert.Contains(t, out, "★")
	assert.Contains(t, out, "172 cm")
	assert.NotContains(t, out, "Owen Lars", "second page is not printed")
	assert.Contains(t, out, "Showing 1-5 of 15 · pages: [1] 2 3")
}

func TestRenderPlain_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlain(&buf, domain.View{}, nil))
	assert.Equal(t, "No records match the current filters\n", buf.String())
}

func TestPagingLine(t *testing.T) {
	engine := dataview.NewEngine("en")
	records := testutil.Numbered(95)

	tests := []struct {
		name   string
		paging domain.PagingState
		want   string
	}{
		{
			name:   "collapsed middle",
			paging: domain.PagingState{Mode: domain.PagingDiscrete, PageSize: 5, CurrentPage: 10},
			want:   "Showing 46-50 of 95 · pages: 1 … 9 [10] 11 … 19",
		},
		{
			name:   "cumulative with more",
			paging: domain.PagingState{Mode: domain.PagingCumulative, PageSize: 20, CurrentPage: 2},
			want:   "Showing 1-40 of 95 · more available",
		},
		{
			name:   "cumulative fully loaded",
			paging: domain.PagingState{Mode: domain.PagingCumulative, PageSize: 50, CurrentPage: 2},
			want:   "Showing 1-95 of 95",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := engine.DeriveView(records, domain.FilterSpec{}, nil, tt.paging)
			assert.Equal(t, tt.want, pagingLine(view))
		})
	}
}

func TestPlainName(t *testing.T) {
	assert.Equal(t, "Obi-Wan Kenobi", plainName("Obi-Wan Kenobi", 0))
	assert.Equal(t, "Obi-Wan Kenobi", plainName("Obi-Wan Kenobi", 20))
	assert.Equal(t, "Obi-Wan…", plainName("Obi-Wan Kenobi", 8))

	var buf bytes.Buffer
	assert.Zero(t, plainNameWidth(&buf))
}
