package views

import (
	"fmt"
	"strings"

	"travelbrowser/ui/tui/state"
	"travelbrowser/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

type DetailView struct{}

func (v DetailView) Render(s state.AppState, props ViewProps) string {
	p := s.Detail
	header := styles.HeaderStyle.Width(props.Width).Render(strings.ToUpper(p.Name))

	country := p.Country
	for _, c := range s.Screen.Countries {
		if c.Name == p.Country {
			country = c.Flag + " " + c.Name
			break
		}
	}

	textWidth := props.Width - 6
	if textWidth < 20 {
		textWidth = 20
	}
	info := lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.StatusStyle.Render(country),
			lipgloss.NewStyle().Foreground(styles.DimColor).Italic(true).Width(textWidth).Render(p.ShortDescription),
			"",
			lipgloss.NewStyle().Width(textWidth).Render(p.Description),
		))

	var images []string
	for i, url := range p.Images {
		images = append(images, fmt.Sprintf("%d. %s", i+1, url))
	}
	if len(images) == 0 {
		images = append(images, "No photos")
	}
	gallery := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Highlight).
		Padding(0, 2).
		MarginLeft(2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render("Photos"),
			strings.Join(images, "\n"),
		))

	sections := []string{header, info, gallery}
	if s.WeatherStatus == state.WeatherReady && props.ChartView != "" && s.Weather.Country == p.Country {
		sections = append(sections, props.ChartView)
	}

	back := zone.Mark(ZoneDetailUp, "Press 'b' to go back")
	sections = append(sections, lipgloss.NewStyle().Padding(1, 2).Foreground(styles.Subtle).Render(back))

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
