package carousel

import (
	"context"
	"errors"
	"fmt"

	"travelbrowser/internal/catalog"
)

// Fetch fulfils a Reload against src. Countries are re-read unless the
// reload only switched country. An empty or vanished country falls back to
// the first country in order.
func Fetch(ctx context.Context, src catalog.Source, r Reload) (Collection, error) {
	col := Collection{Generation: r.Generation, Country: r.Country}

	if r.Reason != ReasonCountry || r.Country == "" {
		countries, err := src.Countries(ctx, r.Order)
		if err != nil {
			return col, fmt.Errorf("load countries: %w", err)
		}
		col.Countries = countries
		if !containsCountry(countries, col.Country) {
			col.Country = ""
			if len(countries) > 0 {
				col.Country = countries[0].Name
			}
		}
	}
	if col.Country == "" {
		col.Places = []catalog.Place{}
		return col, nil
	}

	places, err := src.Places(ctx, col.Country, r.Order)
	if errors.Is(err, catalog.ErrCountryNotFound) && col.Countries == nil {
		// The chip list is stale; reload it with the first country.
		return Fetch(ctx, src, Reload{Generation: r.Generation, Order: r.Order, Reason: ReasonRefresh})
	}
	if err != nil {
		return col, fmt.Errorf("load places for %s: %w", col.Country, err)
	}
	col.Places = places
	return col, nil
}

func containsCountry(countries []catalog.Country, name string) bool {
	for _, c := range countries {
		if c.Name == name {
			return true
		}
	}
	return false
}
