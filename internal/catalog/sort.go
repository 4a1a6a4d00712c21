package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder is the direction used to order countries and places by name.
// Natural is the curated order of the data source, before any sort command.
type SortOrder int

const (
	Natural SortOrder = iota
	Ascending
	Descending
)

func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "A-Z"
	case Descending:
		return "Z-A"
	}
	return "Natural"
}

// ParseSortOrder accepts "asc", "a-z", "desc" and "z-a" (any case).
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "natural", "none":
		return Natural, nil
	case "asc", "ascending", "a-z":
		return Ascending, nil
	case "desc", "descending", "z-a":
		return Descending, nil
	}
	return Natural, fmt.Errorf("unknown sort order %q", s)
}

// Comparator orders display names with a locale collator. It is not safe for
// concurrent use; each session owns its own.
type Comparator struct {
	col *collate.Collator
}

// NewComparator builds a comparator for a BCP 47 tag such as "en" or "de-CH".
// Unknown tags fall back to the root collation.
func NewComparator(tag string) *Comparator {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.Und
	}
	return &Comparator{col: collate.New(lang)}
}

// Compare returns -1, 0 or +1 for a and b under order. Natural compares
// everything equal, so a stable sort keeps the source order.
func (c *Comparator) Compare(order SortOrder, a, b string) int {
	switch order {
	case Ascending:
		return c.col.CompareString(a, b)
	case Descending:
		return -c.col.CompareString(a, b)
	}
	return 0
}

// SortCountries stable-sorts countries in place by name.
func (c *Comparator) SortCountries(order SortOrder, countries []Country) {
	slices.SortStableFunc(countries, func(a, b Country) int {
		return c.Compare(order, a.Name, b.Name)
	})
}

// SortPlaces stable-sorts places in place by name.
func (c *Comparator) SortPlaces(order SortOrder, places []Place) {
	slices.SortStableFunc(places, func(a, b Place) int {
		return c.Compare(order, a.Name, b.Name)
	})
}
