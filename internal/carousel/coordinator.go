package carousel

import (
	"travelbrowser/internal/catalog"
)

// Reason says why a reload was requested.
type Reason int

const (
	ReasonInitial Reason = iota
	ReasonSort
	ReasonCountry
	ReasonRefresh
)

func (r Reason) String() string {
	switch r {
	case ReasonInitial:
		return "initial"
	case ReasonSort:
		return "sort"
	case ReasonCountry:
		return "country"
	case ReasonRefresh:
		return "refresh"
	}
	return "unknown"
}

// Reload asks the data layer for a fresh collection. Country is empty when
// the data layer should pick the first country.
type Reload struct {
	Generation uint64
	Country    string
	Order      catalog.SortOrder
	Reason     Reason
}

// Collection is what the data layer delivers for a Reload. A nil Countries
// keeps the current chips.
type Collection struct {
	Generation uint64
	Country    string
	Countries  []catalog.Country
	Places     []catalog.Place
}

// Coordinator applies sort and country commands and installs reloaded
// collections, keeping the selection on the same named place.
type Coordinator struct {
	session    *Session
	sync       *Synchronizer
	generation uint64
}

func NewCoordinator(s *Session, y *Synchronizer) *Coordinator {
	return &Coordinator{session: s, sync: y}
}

// Start requests the first load.
func (c *Coordinator) Start() Reload {
	return c.requestReload(ReasonInitial)
}

// Refresh reloads the current country without changing anything locally.
func (c *Coordinator) Refresh() Reload {
	r := c.requestReload(ReasonRefresh)
	c.sync.publishState(SourceReload)
	return r
}

// ApplySortOrder reorders countries and places by name, keeps the selected
// country and place by name, scrolls to the place's new position and
// requests a reload of dependent data.
func (c *Coordinator) ApplySortOrder(order catalog.SortOrder) Reload {
	s := c.session
	keepCountry := s.selectedCountryName()
	keepPlace := s.selectedPlaceName()

	s.state.SortOrder = order
	s.setCountries(s.state.Countries, keepCountry)
	idx := s.setPlaces(s.state.Places, keepPlace)

	r := c.requestReload(ReasonSort)
	c.installed(idx)
	return r
}

// OnCountrySelected switches the country filter to chip i. The place strip
// empties until the reload is delivered.
func (c *Coordinator) OnCountrySelected(i int) (Reload, bool) {
	s := c.session
	if i < 0 || i >= len(s.state.Countries) || i == s.state.CountryIndex {
		return Reload{}, false
	}
	s.state.CountryIndex = i
	s.setPlaces(nil, "")
	r := c.requestReload(ReasonCountry)
	c.installed(NoSelection)
	return r, true
}

// Deliver installs a reloaded collection. Collections from an older
// generation are dropped and false is returned.
func (c *Coordinator) Deliver(col Collection) bool {
	if col.Generation != c.generation {
		return false
	}
	s := c.session
	keepPlace := s.selectedPlaceName()
	keepCountry := col.Country
	if keepCountry == "" {
		keepCountry = s.selectedCountryName()
	}

	s.state.Pending = false
	if col.Countries != nil {
		s.setCountries(col.Countries, keepCountry)
	}
	idx := s.setPlaces(col.Places, keepPlace)
	c.installed(idx)
	return true
}

// Fail reports a fetch error for generation. The state is left as it was
// apart from clearing Pending.
func (c *Coordinator) Fail(generation uint64, err error) bool {
	if generation != c.generation {
		return false
	}
	c.session.state.Pending = false
	c.session.bus.Publish(ReloadFailed{Generation: generation, Err: err})
	c.sync.publishState(SourceReload)
	return true
}

// Generation is the generation of the latest requested reload.
func (c *Coordinator) Generation() uint64 {
	return c.generation
}

// installed announces a replaced or reordered collection and scrolls to
// the resolved card. Commands that also reload call it after requestReload
// so the published state already carries Pending and the new Generation.
func (c *Coordinator) installed(idx int) {
	c.sync.forgetLayout()
	c.sync.publishState(SourceReload)
	if idx == NoSelection {
		c.sync.cancelScroll()
		return
	}
	c.sync.requestScroll(idx)
}

func (c *Coordinator) requestReload(reason Reason) Reload {
	c.generation++
	s := c.session
	s.state.Generation = c.generation
	s.state.Pending = true

	r := Reload{
		Generation: c.generation,
		Country:    s.selectedCountryName(),
		Order:      s.state.SortOrder,
		Reason:     reason,
	}
	s.bus.Publish(ReloadRequested{Reload: r})
	return r
}
