// Package catalog holds the travel domain types shared by the data layer,
// the carousel core and the renderers.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Country is a destination country shown as a chip above the carousel.
type Country struct {
	Name string `json:"name"`
	Flag string `json:"flag"` // emoji flag, rendered in place of the flag icon
	Code string `json:"code"` // ISO 3166-1 alpha-2
}

// Place is a tourist place card in the carousel.
type Place struct {
	Name             string   `json:"name"`
	Country          string   `json:"country"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Images           []string `json:"images"`
}

// Cover returns the first image URL, or "" when the place has none.
func (p Place) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Weather is the current conditions and a short temperature forecast for a country.
type Weather struct {
	Country     string    `json:"country"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	Forecast    []float64 `json:"forecast"` // daily highs in Celsius
}

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrPlaceNotFound   = errors.New("place not found")
	ErrNoWeather       = errors.New("no weather for country")
)

// Source is the data-fetch collaborator. Implementations may hit a database
// or the network; callers run them off the UI loop.
type Source interface {
	Countries(ctx context.Context, order SortOrder) ([]Country, error)
	Places(ctx context.Context, country string, order SortOrder) ([]Place, error)
	Weather(ctx context.Context, country string) (Weather, error)
}

// PlaceFinder is implemented by sources that can look up one place
// directly, e.g. relational.Repo.
type PlaceFinder interface {
	Place(ctx context.Context, country, name string) (Place, error)
}

// FindPlace returns the named place of country. Sources without a direct
// lookup are scanned in their natural order.
func FindPlace(ctx context.Context, src Source, country, name string) (Place, error) {
	if f, ok := src.(PlaceFinder); ok {
		return f.Place(ctx, country, name)
	}
	places, err := src.Places(ctx, country, Natural)
	if err != nil {
		return Place{}, err
	}
	for _, p := range places {
		if p.Name == name {
			return p, nil
		}
	}
	return Place{}, fmt.Errorf("%q in %s: %w", name, country, ErrPlaceNotFound)
}

// Names projects a slice of named values onto their display names.
func Names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func CountryName(c Country) string { return c.Name }
func PlaceName(p Place) string     { return p.Name }
