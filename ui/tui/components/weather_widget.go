package components

import (
	"fmt"
	"slices"

	"travelbrowser/internal/catalog"
	"travelbrowser/ui/tui/styles"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

// WeatherWidget charts the daily highs of a country's forecast.
type WeatherWidget struct {
	Chart    linechart.Model
	Forecast []float64
	Title    string
	Width    int
	Height   int
}

var _ Component = (*WeatherWidget)(nil)

func NewWeatherWidget(width, height int) *WeatherWidget {
	// width, height, minX, maxX, minY, maxY
	lc := linechart.New(width, height, 0, 6, 0, 40)
	return &WeatherWidget{
		Chart:  lc,
		Width:  width,
		Height: height,
	}
}

// SetWeather replaces the plotted forecast and rescales the Y axis to it.
func (w *WeatherWidget) SetWeather(wx catalog.Weather) {
	w.Forecast = slices.Clone(wx.Forecast)
	w.Title = fmt.Sprintf("%s · %d-day forecast", wx.Country, len(wx.Forecast))

	minY, maxY := 0.0, 40.0
	if len(w.Forecast) > 0 {
		minY, maxY = slices.Min(w.Forecast)-2, slices.Max(w.Forecast)+2
	}
	maxX := float64(len(w.Forecast) - 1)
	if maxX < 1 {
		maxX = 1
	}
	w.Chart = linechart.New(w.Width, w.Height, 0, maxX, minY, maxY)
}

func (w *WeatherWidget) Resize(width, height int) {
	w.Width = width
	w.Height = height
	w.Chart.Resize(width, height)
}

func (w *WeatherWidget) View() string {
	if len(w.Forecast) == 0 {
		return ""
	}
	w.Chart.Clear()
	for i := 0; i < len(w.Forecast)-1; i++ {
		w.Chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: w.Forecast[i]},
			canvas.Float64Point{X: float64(i + 1), Y: w.Forecast[i+1]},
		)
	}
	w.Chart.DrawXYAxisAndLabel()

	return styles.CardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(w.Title),
			w.Chart.View(),
		),
	)
}
