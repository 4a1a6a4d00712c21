package state

import (
	"travelbrowser/internal/carousel"
	"travelbrowser/internal/catalog"
)

type Page int

const (
	PageListing Page = iota
	PageDetail       // "Discover Place"
)

// WeatherStatus mirrors the loading, success and error states of the header.
type WeatherStatus int

const (
	WeatherLoading WeatherStatus = iota
	WeatherReady
	WeatherFailed
)

// AppState holds what the views need to draw one frame.
type AppState struct {
	Screen  carousel.State
	Loaded  bool  // the first collection arrived
	Err     error // last reload error
	Visible []int // indices that passed the visibility threshold

	Weather       catalog.Weather
	WeatherStatus WeatherStatus
	WeatherErr    error

	SortMenuOpen bool
	Detail       catalog.Place
	CurrentPage  Page
}
