package views

import (
	"travelbrowser/ui/tui/state"
)

func RenderListing(s state.AppState, props ViewProps) string {
	v := ListingView{}
	return v.Render(s, props)
}

func RenderDetail(s state.AppState, chartView string, width, height int) string {
	v := DetailView{}
	return v.Render(s, ViewProps{
		Width:     width,
		Height:    height,
		ChartView: chartView,
	})
}
