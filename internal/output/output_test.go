package output

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"travelbrowser/internal/catalog"
)

// MockSource serves a fixed catalog.
type MockSource struct {
	seed catalog.Seed
	err  error
}

func (m *MockSource) Countries(ctx context.Context, order catalog.SortOrder) ([]catalog.Country, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := append([]catalog.Country(nil), m.seed.Countries...)
	catalog.NewComparator("en").SortCountries(order, out)
	return out, nil
}

func (m *MockSource) Places(ctx context.Context, country string, order catalog.SortOrder) ([]catalog.Place, error) {
	var out []catalog.Place
	for _, p := range m.seed.Places {
		if p.Country == country {
			out = append(out, p)
		}
	}
	catalog.NewComparator("en").SortPlaces(order, out)
	return out, nil
}

func (m *MockSource) Weather(ctx context.Context, country string) (catalog.Weather, error) {
	for _, w := range m.seed.Weather {
		if w.Country == country {
			return w, nil
		}
	}
	return catalog.Weather{}, fmt.Errorf("%s: %w", country, catalog.ErrNoWeather)
}

func TestBuildReport(t *testing.T) {
	countries := []catalog.Country{{Name: "Italy", Flag: "🇮🇹"}, {Name: "Peru"}}
	places := map[string][]catalog.Place{
		"Italy": {
			{Name: "Colosseum", ShortDescription: "Arena", Images: []string{"a", "b"}},
			{Name: "Amalfi Coast"},
		},
	}
	weather := map[string]catalog.Weather{
		"Italy": {Date: "2024-06-01", Description: "Sunny", Forecast: []float64{24}},
	}

	view := BuildReport(countries, places, weather)
	if view.TotalCountries != 2 || view.TotalPlaces != 2 {
		t.Fatalf("Expected 2 countries and 2 places, got %d and %d", view.TotalCountries, view.TotalPlaces)
	}

	italy := view.SectionByID("Italy")
	if italy == nil {
		t.Fatal("Expected an Italy section")
	}
	if italy.Title != "🇮🇹 Italy" {
		t.Errorf("Expected flag in title, got %q", italy.Title)
	}
	if italy.Note != "2024-06-01 Sunny, 24°C" {
		t.Errorf("Unexpected weather note %q", italy.Note)
	}

	col := italy.ItemByKey("colosseum")
	if col == nil || col.Value != 2 || col.Status != StatusOK {
		t.Errorf("Unexpected Colosseum item %+v", col)
	}
	if amalfi := italy.ItemByKey("amalfi_coast"); amalfi == nil || amalfi.Status != StatusWarn {
		t.Errorf("Expected a warning for a place without photos, got %+v", amalfi)
	}

	peru := view.SectionByID("Peru")
	if peru == nil || peru.Title != "Peru" || len(peru.Items) != 0 || peru.Note != "" {
		t.Errorf("Unexpected Peru section %+v", peru)
	}
	if view.SectionByID("Chile") != nil {
		t.Error("Expected no section for an unknown country")
	}
}

func TestCollect(t *testing.T) {
	seed := catalog.SeedData()
	seed.Weather = seed.Weather[:1]
	src := &MockSource{seed: seed}

	view, err := Collect(context.Background(), src, "", catalog.Ascending)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if view.TotalCountries != len(seed.Countries) || view.TotalPlaces != len(seed.Places) {
		t.Errorf("Expected the full catalog, got %d countries %d places", view.TotalCountries, view.TotalPlaces)
	}
	if view.Sections[0].ID != "Egypt" {
		t.Errorf("Expected Egypt first in ascending order, got %s", view.Sections[0].ID)
	}
	if view.SectionByID("Italy").Note == "" {
		t.Error("Expected weather for Italy")
	}
	if view.SectionByID("Japan").Note != "" {
		t.Error("Expected missing weather to be skipped")
	}
}

func TestCollectSingleCountry(t *testing.T) {
	src := &MockSource{seed: catalog.SeedData()}

	view, err := Collect(context.Background(), src, "japan", catalog.Natural)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(view.Sections) != 1 || view.Sections[0].ID != "Japan" {
		t.Errorf("Expected only Japan, got %+v", view.Sections)
	}

	_, err = Collect(context.Background(), src, "Atlantis", catalog.Natural)
	if !errors.Is(err, catalog.ErrCountryNotFound) {
		t.Errorf("Expected ErrCountryNotFound, got %v", err)
	}
}

func TestCollectError(t *testing.T) {
	src := &MockSource{err: errors.New("boom")}
	if _, err := Collect(context.Background(), src, "", catalog.Natural); err == nil {
		t.Error("Expected an error")
	}
}
