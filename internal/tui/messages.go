package tui

import (
	"time"

	"github.com/thushan/holocron/internal/adapter/dataview"
	"github.com/thushan/holocron/internal/core/domain"
)

type recordsLoadedMsg struct {
	err     error
	source  string
	records []domain.Record
	elapsed time.Duration
}

type loadMoreMsg struct {
	screen screenKind
	ticket dataview.Ticket
}

type favoriteToggledMsg struct {
	err    error
	record domain.Record
	added  bool
}

type favoritesClearedMsg struct {
	err   error
	count int
}

type exportDoneMsg struct {
	err   error
	path  string
	size  int64
	count int
}

type clearToastMsg struct {
	id int
}

// ConfigChangedMsg carries hot-reloaded view defaults into a running program
type ConfigChangedMsg struct {
	Mode     domain.PagingMode
	PageSize int
}
