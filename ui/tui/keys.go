package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyNone    KeyName = iota
	KeyBack            // previous card
	KeyForward         // next card
	KeyScrollLeft
	KeyScrollRight
	KeyNextCountry
	KeyPrevCountry
	KeySort // opens the sort menu
	KeySortAsc
	KeySortDesc
	KeyEnter
	KeyEsc
	KeyRefresh
	KeyQuit
)

// GlobalKeyStringsMap maps key strings to key names.
var GlobalKeyStringsMap = map[string]KeyName{
	"left":      KeyBack,
	"right":     KeyForward,
	"h":         KeyScrollLeft,
	"l":         KeyScrollRight,
	"tab":       KeyNextCountry,
	"shift+tab": KeyPrevCountry,
	"s":         KeySort,
	"a":         KeySortAsc,
	"z":         KeySortDesc,
	"enter":     KeyEnter,
	"b":         KeyEsc,
	"esc":       KeyEsc,
	"backspace": KeyEsc,
	"r":         KeyRefresh,
	"q":         KeyQuit,
	"ctrl+c":    KeyQuit,
}

// GlobalkeyBindings holds the help text of every binding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyBack: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous place"),
	),
	KeyForward: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next place"),
	),
	KeyScrollLeft: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "scroll left"),
	),
	KeyScrollRight: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "scroll right"),
	),
	KeyNextCountry: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next country"),
	),
	KeyPrevCountry: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous country"),
	),
	KeySort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	KeySortAsc: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "sort A-Z"),
	),
	KeySortDesc: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "sort Z-A"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "discover place"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("b", "esc", "backspace"),
		key.WithHelp("b", "back"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// countryDigit returns the chip index for the keys 1-9.
func countryDigit(msg string) (int, bool) {
	if len(msg) == 1 && msg[0] >= '1' && msg[0] <= '9' {
		return int(msg[0] - '1'), true
	}
	return 0, false
}
