package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Mode      key.Binding
	Search    key.Binding
	Filters   key.Binding
	Clear     key.Binding
	Sort      key.Binding
	Reverse   key.Binding
	Details   key.Binding
	Favorite  key.Binding
	ClearFavs key.Binding
	Export    key.Binding
	Reload    key.Binding
	SwitchTab key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
		Grow:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "page size")),
		Shrink:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "page size")),
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "paging mode")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filters:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
		Reverse:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort direction")),
		Details:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Favorite:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "favorite")),
		ClearFavs: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear favorites")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export xlsx")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "browse/favorites")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filters, k.Sort, k.NextPage, k.Mode, k.Favorite, k.SwitchTab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Grow, k.Shrink, k.Mode},
		{k.Search, k.Filters, k.Clear, k.Sort, k.Reverse},
		{k.Details, k.Favorite, k.ClearFavs, k.SwitchTab},
		{k.Export, k.Reload, k.Back, k.Help, k.Quit},
	}
}
