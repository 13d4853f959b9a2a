package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Debug      key.Binding
	Escape     key.Binding
	Category   key.Binding
	Search     key.Binding
	Status     key.Binding
	From       key.Binding
	To         key.Binding
	ClearDates key.Binding
	Left       key.Binding
	Right      key.Binding
	Sort       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	PageSize   key.Binding
	Refresh    key.Binding
	Enter      key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Debug:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "debug")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Category:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	From:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "from")),
	To:         key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "to")),
	ClearDates: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear dates")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/l", "column")),
	Right:      key.NewBinding(key.WithKeys("right", "l")),
	Sort:       key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("o", "sort")),
	NextPage:   key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n/p", "page")),
	PrevPage:   key.NewBinding(key.WithKeys("p", "pgup")),
	PageSize:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "rows")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
	Enter:      key.NewBinding(key.WithKeys("enter")),
}

// hintKeys are shown in the status bar, in order.
var hintKeys = []key.Binding{
	keys.Category, keys.Search, keys.Status, keys.From, keys.To, keys.ClearDates,
	keys.Left, keys.Sort, keys.NextPage, keys.PageSize, keys.Refresh, keys.Debug, keys.Quit,
}
