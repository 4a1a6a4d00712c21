package carousel

import (
	"slices"

	"travelbrowser/internal/catalog"
)

// NoSelection is the selected index of an empty collection.
const NoSelection = -1

// State is a consistent, read-only snapshot of one browsing screen.
type State struct {
	Countries     []catalog.Country
	CountryIndex  int
	Places        []catalog.Place
	SelectedIndex int
	ItemCount     int
	SortOrder     catalog.SortOrder
	Generation    uint64 // reload generation the places belong to
	Pending       bool   // a reload is in flight
}

func (s State) HasSelection() bool {
	return s.ItemCount > 0 && s.SelectedIndex >= 0 && s.SelectedIndex < s.ItemCount
}

func (s State) SelectedPlace() (catalog.Place, bool) {
	if !s.HasSelection() {
		return catalog.Place{}, false
	}
	return s.Places[s.SelectedIndex], true
}

func (s State) SelectedCountry() (catalog.Country, bool) {
	if s.CountryIndex < 0 || s.CountryIndex >= len(s.Countries) {
		return catalog.Country{}, false
	}
	return s.Countries[s.CountryIndex], true
}

// CanGoBack reports whether the back arrow is enabled.
func (s State) CanGoBack() bool {
	return s.HasSelection() && s.SelectedIndex > 0
}

// CanGoForward reports whether the forward arrow is enabled.
func (s State) CanGoForward() bool {
	return s.HasSelection() && s.SelectedIndex < s.ItemCount-1
}

// Session owns the state of one screen. Only the Synchronizer and the
// Coordinator write to it; everything else reads Snapshot.
type Session struct {
	state State
	cmp   *catalog.Comparator
	bus   *Bus
}

// Option configures a Session.
type Option func(*Session)

// WithLocale sets the collation used for sorting by name.
func WithLocale(tag string) Option {
	return func(s *Session) {
		s.cmp = catalog.NewComparator(tag)
	}
}

// WithSortOrder sets the initial sort order.
func WithSortOrder(order catalog.SortOrder) Option {
	return func(s *Session) {
		s.state.SortOrder = order
	}
}

// WithBus shares an existing event bus.
func WithBus(b *Bus) Option {
	return func(s *Session) {
		s.bus = b
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		state: State{
			CountryIndex:  NoSelection,
			SelectedIndex: NoSelection,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.cmp == nil {
		s.cmp = catalog.NewComparator("en")
	}
	if s.bus == nil {
		s.bus = NewBus()
	}
	return s
}

// Snapshot returns a copy of the current state. Place image slices are
// shared and must be treated as read-only.
func (s *Session) Snapshot() State {
	st := s.state
	st.Countries = slices.Clone(s.state.Countries)
	st.Places = slices.Clone(s.state.Places)
	return st
}

func (s *Session) Bus() *Bus { return s.bus }

func (s *Session) setSelected(i int) {
	s.state.SelectedIndex = i
}

func (s *Session) selectedPlaceName() string {
	if p, ok := s.state.SelectedPlace(); ok {
		return p.Name
	}
	return ""
}

func (s *Session) selectedCountryName() string {
	if c, ok := s.state.SelectedCountry(); ok {
		return c.Name
	}
	return ""
}

// setCountries sorts and installs countries, keeping the chip on keep when
// it is still present.
func (s *Session) setCountries(countries []catalog.Country, keep string) {
	countries = slices.Clone(countries)
	s.cmp.SortCountries(s.state.SortOrder, countries)
	s.state.Countries = countries
	s.state.CountryIndex = resolve(countries, catalog.CountryName, keep)
}

// setPlaces sorts and installs places and returns the index of keep, or the
// fallback (0, or NoSelection when empty).
func (s *Session) setPlaces(places []catalog.Place, keep string) int {
	places = slices.Clone(places)
	s.cmp.SortPlaces(s.state.SortOrder, places)
	s.state.Places = places
	s.state.ItemCount = len(places)
	idx := resolve(places, catalog.PlaceName, keep)
	s.state.SelectedIndex = idx
	return idx
}

func resolve[T any](items []T, name func(T) string, keep string) int {
	if len(items) == 0 {
		return NoSelection
	}
	if keep != "" {
		for i, it := range items {
			if name(it) == keep {
				return i
			}
		}
	}
	return 0
}
