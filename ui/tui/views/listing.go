package views

import (
	"fmt"
	"slices"
	"strings"

	"travelbrowser/internal/carousel"
	"travelbrowser/internal/catalog"
	"travelbrowser/ui/tui/state"
	"travelbrowser/ui/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
)

// CardHeight is the number of rows a place card occupies.
const CardHeight = 9

type ListingView struct{}

func (v ListingView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Width(props.Width).Render("TRAVEL // DESTINATIONS")

	if !s.Loaded {
		body := props.SpinnerView + " Loading destinations..."
		if s.Err != nil {
			body = lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Foreground(styles.ErrorColor).Render("Error: "+s.Err.Error()),
				"",
				"Press 'r' to retry",
			)
		}
		return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
			header,
			lipgloss.Place(props.Width, props.Height-4, lipgloss.Center, lipgloss.Center, body),
		))
	}

	sections := []string{
		header,
		renderTopBar(s, props),
	}
	if s.SortMenuOpen {
		sections = append(sections, renderSortMenu(s.Screen.SortOrder, props.Width))
	}
	sections = append(sections,
		renderChips(s.Screen),
		renderStrip(s, props),
	)
	if props.TrackView != "" {
		sections = append(sections, props.TrackView)
	}
	sections = append(sections,
		renderCounter(s.Screen, props.Width),
		lipgloss.NewStyle().PaddingLeft(2).Foreground(styles.BaseColor).Render(strings.Repeat("─", max(props.Width-4, 0))),
		renderVisiting(s.Screen, props.Width),
	)
	if s.Err != nil {
		sections = append(sections,
			lipgloss.NewStyle().PaddingLeft(2).Foreground(styles.ErrorColor).Render("Reload failed: "+s.Err.Error()))
	}
	sections = append(sections, styles.FooterStyle.Render("\n"+props.Help))

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderTopBar(s state.AppState, props ViewProps) string {
	var weather string
	switch s.WeatherStatus {
	case state.WeatherLoading:
		weather = props.SpinnerView + " Loading weather..."
	case state.WeatherFailed:
		msg := "Weather unavailable"
		if s.WeatherErr != nil {
			msg = s.WeatherErr.Error()
		}
		weather = lipgloss.NewStyle().Foreground(styles.ErrorColor).Render(msg)
	case state.WeatherReady:
		w := s.Weather
		temp := ""
		if len(w.Forecast) > 0 {
			temp = fmt.Sprintf(" · %.0f°C", w.Forecast[0])
		}
		weather = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(styles.DimColor).Render(w.Date),
			styles.StatusStyle.Render(w.Description+temp),
		)
	}

	label := "Sort ▾"
	if s.Screen.SortOrder != catalog.Natural {
		label = "Sort: " + sortLabel(s.Screen.SortOrder) + " ▾"
	}
	btnStyle := styles.ChipStyle
	if s.SortMenuOpen || hovered(ZoneSort, props) {
		btnStyle = styles.ActiveChipStyle
	}
	button := zone.Mark(ZoneSort, btnStyle.Render(label))

	left := lipgloss.NewStyle().PaddingLeft(2).Render(weather)
	gap := props.Width - lipgloss.Width(left) - lipgloss.Width(button) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), button)
}

func renderSortMenu(current catalog.SortOrder, width int) string {
	item := func(id string, order catalog.SortOrder, key string) string {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#AAA"))
		if order == current {
			style = style.Foreground(styles.BrandColor).Bold(true)
		}
		return zone.Mark(id, style.Render(fmt.Sprintf("%s  (%s)", sortLabel(order), key)))
	}
	menu := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrandColor).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			item(ZoneSortAsc, catalog.Ascending, "a"),
			item(ZoneSortDesc, catalog.Descending, "z"),
		))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, menu)
}

func sortLabel(order catalog.SortOrder) string {
	switch order {
	case catalog.Ascending:
		return "A → Z"
	case catalog.Descending:
		return "Z → A"
	}
	return "Natural"
}

func renderChips(st carousel.State) string {
	chips := make([]string, 0, len(st.Countries))
	for i, c := range st.Countries {
		style := styles.ChipStyle
		if i == st.CountryIndex {
			style = styles.ActiveChipStyle
		}
		chips = append(chips, zone.Mark(ChipZone(i), style.Render(c.Flag+" "+c.Name)))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
}

// renderStrip draws the cards of the layout snapshot, clipping the ones cut
// by the viewport edges.
func renderStrip(s state.AppState, props ViewProps) string {
	st := s.Screen
	layout := props.Layout
	if len(layout.Items) == 0 {
		msg := "No places to show"
		if st.Pending {
			msg = props.SpinnerView + " Loading places..."
		}
		return lipgloss.Place(props.Width, CardHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	var blocks []string
	cursor := layout.ViewportStart
	for _, it := range layout.Items {
		if it.Index >= len(st.Places) {
			continue
		}
		from := max(it.Offset, layout.ViewportStart)
		to := min(it.Offset+it.Size, layout.ViewportEnd)
		if to <= from {
			continue
		}
		if from > cursor {
			blocks = append(blocks, strings.Repeat(" ", from-cursor))
		}

		lines := cardLines(st.Places[it.Index], it.Size)
		for i := range lines {
			lines[i] = cut(lines[i], from-it.Offset, to-it.Offset)
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
		switch {
		case it.Index == st.SelectedIndex:
			style = lipgloss.NewStyle().Foreground(styles.BrandColor).Bold(true)
		case hovered(CardZone(it.Index), props):
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF"))
		case slices.Contains(s.Visible, it.Index):
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAA"))
		}
		blocks = append(blocks, zone.Mark(CardZone(it.Index), style.Render(strings.Join(lines, "\n"))))
		cursor = to
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// cardLines lays a card out as CardHeight plain rows of exactly width cells.
func cardLines(p catalog.Place, width int) []string {
	inner := width - 4
	row := func(s string) string { return "│ " + fit(s, inner) + " │" }

	lines := []string{"╭" + strings.Repeat("─", width-2) + "╮"}
	lines = append(lines, row(p.Name))
	lines = append(lines, row(fmt.Sprintf("◫ %d photos", len(p.Images))))
	lines = append(lines, row(""))
	desc := wrap(p.ShortDescription, inner, 3)
	for i := 0; i < 3; i++ {
		if i < len(desc) {
			lines = append(lines, row(desc[i]))
		} else {
			lines = append(lines, row(""))
		}
	}
	lines = append(lines, row("Discover Place →"))
	lines = append(lines, "╰"+strings.Repeat("─", width-2)+"╯")
	return lines
}

func renderCounter(st carousel.State, width int) string {
	n := 0
	if st.HasSelection() {
		n = st.SelectedIndex + 1
	}
	count := lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFF")).Render(fmt.Sprint(n)),
		lipgloss.NewStyle().Foreground(styles.DimColor).Render(fmt.Sprintf("/%d", st.ItemCount)),
	)

	arrow := func(id, glyph string, enabled bool) string {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(styles.BaseColor)
		if enabled {
			style = style.Foreground(lipgloss.Color("#FFF")).Bold(true)
		}
		return zone.Mark(id, style.Render(glyph))
	}
	arrows := lipgloss.JoinHorizontal(lipgloss.Top,
		arrow(ZoneBack, "←", st.CanGoBack()),
		arrow(ZoneForward, "→", st.CanGoForward()),
	)

	left := lipgloss.NewStyle().PaddingLeft(2).PaddingTop(1).Render(count)
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(arrows)-2, 1)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", gap), arrows)
}

// renderVisiting lists the place names, scrolled so the selected one is shown.
func renderVisiting(st carousel.State, width int) string {
	names := catalog.Names(st.Places, catalog.PlaceName)
	if len(names) == 0 {
		return ""
	}
	avail := width - 4
	first := 0
	if st.HasSelection() {
		used := 0
		for i := st.SelectedIndex; i >= 0; i-- {
			used += runewidth.StringWidth(names[i]) + 3
			if used > avail {
				break
			}
			first = i
		}
	}

	var parts []string
	used := 0
	for i := first; i < len(names); i++ {
		w := runewidth.StringWidth(names[i]) + 3
		if used+w > avail && len(parts) > 0 {
			break
		}
		used += w
		style := lipgloss.NewStyle().Foreground(styles.DimColor)
		if i == st.SelectedIndex {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).Bold(true)
		}
		parts = append(parts, style.Render(names[i]))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(parts, "   "))
}

func hovered(id string, props ViewProps) bool {
	return zone.Get(id).InBounds(tea.MouseMsg{X: props.MouseX, Y: props.MouseY})
}
