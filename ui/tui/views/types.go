package views

import (
	"travelbrowser/internal/carousel"
	"travelbrowser/ui/tui/state"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height  int
	MouseX, MouseY int

	// Component States
	SpinnerView string
	ChartView   string
	TrackView   string
	Layout      carousel.ViewportSnapshot
	Help        string
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}
