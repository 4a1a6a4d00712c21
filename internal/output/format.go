package output

import (
	"fmt"
	"strings"

	"travelbrowser/internal/catalog"
)

// Item status markers
const (
	StatusOK   = "OK"
	StatusWarn = "WARN" // place without photos
)

// UI/view-model types (no printing here)
type Item struct {
	Key    string
	Label  string
	Value  float64
	Unit   string
	Status string
	Note   string
}

type Section struct {
	ID    string // country name
	Title string
	Note  string // weather summary
	Items []Item
}

type ReportView struct {
	Sections       []Section
	TotalCountries int
	TotalPlaces    int
}

// BuildReport converts catalog data into UI-ready sections, one per
// country, in the order countries are given.
func BuildReport(countries []catalog.Country, places map[string][]catalog.Place, weather map[string]catalog.Weather) ReportView {
	view := ReportView{TotalCountries: len(countries)}

	for _, c := range countries {
		sec := Section{
			ID:    c.Name,
			Title: strings.TrimSpace(c.Flag + " " + c.Name),
		}
		if w, ok := weather[c.Name]; ok {
			sec.Note = weatherNote(w)
		}

		for _, p := range places[c.Name] {
			status := StatusOK
			if len(p.Images) == 0 {
				status = StatusWarn
			}
			sec.Items = append(sec.Items, Item{
				Key:    strings.ToLower(strings.ReplaceAll(p.Name, " ", "_")),
				Label:  p.Name,
				Value:  float64(len(p.Images)),
				Unit:   " photos",
				Status: status,
				Note:   p.ShortDescription,
			})
		}
		view.TotalPlaces += len(sec.Items)
		view.Sections = append(view.Sections, sec)
	}
	return view
}

func weatherNote(w catalog.Weather) string {
	note := w.Description
	if len(w.Forecast) > 0 {
		note = fmt.Sprintf("%s, %.0f°C", note, w.Forecast[0])
	}
	if w.Date != "" {
		note = w.Date + " " + note
	}
	return note
}

func (v ReportView) SectionByID(id string) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

func (s Section) ItemByKey(key string) *Item {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}
