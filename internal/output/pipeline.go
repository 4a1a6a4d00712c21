package output

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travelbrowser/internal/catalog"
)

// Collect reads the catalog from src and builds the report: Countries ->
// Places -> Weather -> Build. An empty country reports every country.
// Missing weather is not an error.
func Collect(ctx context.Context, src catalog.Source, country string, order catalog.SortOrder) (ReportView, error) {
	// 1. Countries
	countries, err := src.Countries(ctx, order)
	if err != nil {
		return ReportView{}, fmt.Errorf("load countries: %w", err)
	}
	if country != "" {
		countries = filterCountry(countries, country)
		if len(countries) == 0 {
			return ReportView{}, fmt.Errorf("%s: %w", country, catalog.ErrCountryNotFound)
		}
	}

	// 2. Places per country
	places := make(map[string][]catalog.Place, len(countries))
	for _, c := range countries {
		ps, err := src.Places(ctx, c.Name, order)
		if err != nil {
			return ReportView{}, fmt.Errorf("load places for %s: %w", c.Name, err)
		}
		places[c.Name] = ps
	}

	// 3. Weather, best effort
	weather := make(map[string]catalog.Weather, len(countries))
	for _, c := range countries {
		w, err := src.Weather(ctx, c.Name)
		if errors.Is(err, catalog.ErrNoWeather) {
			continue
		}
		if err != nil {
			return ReportView{}, fmt.Errorf("load weather for %s: %w", c.Name, err)
		}
		weather[c.Name] = w
	}

	// 4. Bundle
	return BuildReport(countries, places, weather), nil
}

func filterCountry(countries []catalog.Country, name string) []catalog.Country {
	for _, c := range countries {
		if strings.EqualFold(c.Name, name) {
			return []catalog.Country{c}
		}
	}
	return nil
}
