package tui

import (
	"context"
	"strings"
	"time"

	"travelbrowser/internal/carousel"
	"travelbrowser/internal/catalog"
	"travelbrowser/internal/config"
	"travelbrowser/internal/log"
	"travelbrowser/ui/tui/components"
	"travelbrowser/ui/tui/state"
	"travelbrowser/ui/tui/views"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// wheelStep is how many cells one wheel notch or h/l press scrolls.
const wheelStep = 4

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	source catalog.Source
	config config.Config
	screen *carousel.Screen

	events      []carousel.Event
	unsubscribe func()
	lastReload  carousel.Reload
	weatherFor  string

	state    state.AppState
	spinner  spinner.Model
	carousel *components.Carousel
	weather  *components.WeatherWidget
	mouseX   int
	mouseY   int
	quitting bool
	width    int
	height   int
}

// Messages
type AnimateMsg time.Time
type PlacesLoadedMsg struct {
	Reload     carousel.Reload
	Collection carousel.Collection
	Err        error
}
type WeatherLoadedMsg struct {
	Country string
	Weather catalog.Weather
	Err     error
}

func InitialModel(src catalog.Source, cfg config.Config) *MainModel {
	zone.NewGlobal()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &MainModel{
		source:   src,
		config:   cfg,
		spinner:  s,
		carousel: components.NewCarousel(cfg.CardWidth, cfg.VisibleThreshold),
		weather:  components.NewWeatherWidget(50, 8),
		width:    80,
		height:   24,
	}
	m.screen = carousel.NewScreen(
		carousel.WithLocale(cfg.Locale),
		carousel.WithSortOrder(cfg.InitialSort),
	)
	m.unsubscribe = m.screen.Session.Bus().Subscribe(func(e carousel.Event) {
		m.events = append(m.events, e)
	})
	m.carousel.Resize(m.width, views.CardHeight)
	m.state.Screen = m.screen.State()
	return m
}

func (m *MainModel) Init() tea.Cmd {
	m.screen.Coordinator.Start()
	return tea.Batch(
		m.spinner.Tick,
		animateCmd(),
		m.drainEvents(),
	)
}

// Close detaches the model from the session bus.
func (m *MainModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Commands
func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func (m *MainModel) loadCmd(r carousel.Reload) tea.Cmd {
	src, timeout := m.source, m.config.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		col, err := carousel.Fetch(ctx, src, r)
		return PlacesLoadedMsg{Reload: r, Collection: col, Err: err}
	}
}

func (m *MainModel) weatherCmd(country string) tea.Cmd {
	src, timeout := m.source, m.config.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		w, err := src.Weather(ctx, country)
		return WeatherLoadedMsg{Country: country, Weather: w, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case PlacesLoadedMsg:
		return m.handlePlacesLoadedMsg(msg)

	case WeatherLoadedMsg:
		return m.handleWeatherLoadedMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := GlobalKeyStringsMap[msg.String()]
	if name == KeyQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state.CurrentPage == state.PageDetail {
		if name == KeyEsc {
			m.state.CurrentPage = state.PageListing
		}
		return m, nil
	}

	if m.state.SortMenuOpen {
		switch name {
		case KeySortAsc:
			m.applySort(catalog.Ascending)
		case KeySortDesc:
			m.applySort(catalog.Descending)
		case KeySort, KeyEsc:
			m.state.SortMenuOpen = false
		}
		return m, m.drainEvents()
	}

	switch name {
	case KeyBack:
		m.screen.Sync.Back()
	case KeyForward:
		m.screen.Sync.Forward()
	case KeyScrollLeft:
		m.scrollBy(-wheelStep)
	case KeyScrollRight:
		m.scrollBy(wheelStep)
	case KeyNextCountry:
		m.stepCountry(1)
	case KeyPrevCountry:
		m.stepCountry(-1)
	case KeySort:
		m.state.SortMenuOpen = true
	case KeySortAsc:
		m.applySort(catalog.Ascending)
	case KeySortDesc:
		m.applySort(catalog.Descending)
	case KeyEnter:
		if p, ok := m.state.Screen.SelectedPlace(); ok {
			m.openDetail(p)
		}
	case KeyRefresh:
		m.state.Err = nil
		m.screen.Coordinator.Refresh()
	default:
		if i, ok := countryDigit(msg.String()); ok {
			m.screen.Coordinator.OnCountrySelected(i)
		}
	}
	return m, m.drainEvents()
}

func (m *MainModel) stepCountry(delta int) {
	n := len(m.state.Screen.Countries)
	if n == 0 {
		return
	}
	i := (m.state.Screen.CountryIndex + delta + n) % n
	m.screen.Coordinator.OnCountrySelected(i)
}

func (m *MainModel) applySort(order catalog.SortOrder) {
	m.state.SortMenuOpen = false
	m.screen.Coordinator.ApplySortOrder(order)
}

func (m *MainModel) openDetail(p catalog.Place) {
	m.state.Detail = p
	m.state.CurrentPage = state.PageDetail
}

// scrollBy is the passive channel: the strip moves under the user's hand
// and whatever settles at the leading edge becomes the selection.
func (m *MainModel) scrollBy(delta int) {
	if req, interrupted := m.carousel.ScrollBy(delta); interrupted {
		m.screen.Sync.ScrollSettled(req.Seq)
	}
	m.observe()
}

// observe feeds the current layout to the synchronizer.
func (m *MainModel) observe() {
	visible := m.carousel.Visible()
	m.state.Visible = visible
	m.screen.Sync.OnVisibleChanged(visible)
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	req, settled := m.carousel.Step()
	// The final frame is observed while the request is still in flight so
	// a clamped target does not hand the selection to the leading card.
	m.observe()
	if settled {
		m.screen.Sync.ScrollSettled(req.Seq)
	}
	return m, tea.Batch(animateCmd(), m.drainEvents())
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.carousel.Resize(msg.Width, views.CardHeight)
	newW := msg.Width - 12
	if newW > 10 {
		m.weather.Resize(min(newW, 60), 8)
	}
	m.observe()
	return m, m.drainEvents()
}

func (m *MainModel) handlePlacesLoadedMsg(msg PlacesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.screen.Coordinator.Fail(msg.Reload.Generation, msg.Err) {
			log.ErrorLog.Printf("reload %d (%s) failed: %v", msg.Reload.Generation, msg.Reload.Reason, msg.Err)
		}
		return m, m.drainEvents()
	}

	if !m.screen.Coordinator.Deliver(msg.Collection) {
		log.InfoLog.Printf("dropped stale collection %d (current %d)", msg.Collection.Generation, m.screen.Coordinator.Generation())
		return m, nil
	}
	m.state.Loaded = true
	m.state.Err = nil
	log.InfoLog.Printf("installed %d places for %s", len(msg.Collection.Places), msg.Collection.Country)
	return m, m.drainEvents()
}

func (m *MainModel) handleWeatherLoadedMsg(msg WeatherLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Country != m.weatherFor {
		return m, nil
	}
	if msg.Err != nil {
		m.state.WeatherStatus = state.WeatherFailed
		m.state.WeatherErr = msg.Err
		log.WarningLog.Printf("weather for %s: %v", msg.Country, msg.Err)
		return m, nil
	}
	m.state.Weather = msg.Weather
	m.state.WeatherStatus = state.WeatherReady
	m.state.WeatherErr = nil
	m.weather.SetWeather(msg.Weather)
	return m, nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX = msg.X
	m.mouseY = msg.Y

	if m.state.CurrentPage == state.PageDetail {
		if msg.Action == tea.MouseActionRelease && zone.Get(views.ZoneDetailUp).InBounds(msg) {
			m.state.CurrentPage = state.PageListing
		}
		return m, nil
	}

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.scrollBy(-wheelStep)
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.scrollBy(wheelStep)
		}
		return m, m.drainEvents()
	}

	if msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	switch {
	case m.state.SortMenuOpen && zone.Get(views.ZoneSortAsc).InBounds(msg):
		m.applySort(catalog.Ascending)
	case m.state.SortMenuOpen && zone.Get(views.ZoneSortDesc).InBounds(msg):
		m.applySort(catalog.Descending)
	case zone.Get(views.ZoneSort).InBounds(msg):
		m.state.SortMenuOpen = !m.state.SortMenuOpen
	case zone.Get(views.ZoneBack).InBounds(msg):
		m.screen.Sync.Back()
	case zone.Get(views.ZoneForward).InBounds(msg):
		m.screen.Sync.Forward()
	default:
		m.clickChipOrCard(msg)
	}
	return m, m.drainEvents()
}

func (m *MainModel) clickChipOrCard(msg tea.MouseMsg) {
	for i := range m.state.Screen.Countries {
		if zone.Get(views.ChipZone(i)).InBounds(msg) {
			m.screen.Coordinator.OnCountrySelected(i)
			return
		}
	}
	for _, it := range m.carousel.Snapshot().Items {
		if it.Index < len(m.state.Screen.Places) && zone.Get(views.CardZone(it.Index)).InBounds(msg) {
			m.openDetail(m.state.Screen.Places[it.Index])
			return
		}
	}
}

// drainEvents applies the bus events queued by the last core call and
// returns the commands they ask for.
func (m *MainModel) drainEvents() tea.Cmd {
	var cmds []tea.Cmd
	for len(m.events) > 0 {
		e := m.events[0]
		m.events = m.events[1:]

		switch ev := e.(type) {
		case carousel.SelectionChanged:
			cmds = append(cmds, m.applyState(ev.State))
		case carousel.ScrollRequested:
			m.carousel.ScrollTo(ev.Request)
		case carousel.ReloadRequested:
			m.lastReload = ev.Reload
			log.InfoLog.Printf("reload %d requested (%s, %s)", ev.Reload.Generation, ev.Reload.Reason, ev.Reload.Order)
			cmds = append(cmds, m.loadCmd(ev.Reload))
		case carousel.ReloadFailed:
			m.state.Err = ev.Err
		}
	}

	// The core dropped its request, e.g. the strip emptied.
	if _, ok := m.screen.Sync.InFlight(); !ok && m.carousel.Animating() {
		m.carousel.ScrollBy(0)
	}
	return tea.Batch(cmds...)
}

func (m *MainModel) applyState(st carousel.State) tea.Cmd {
	m.state.Screen = st
	m.carousel.SetCount(st.ItemCount)

	c, ok := st.SelectedCountry()
	if !ok || c.Name == m.weatherFor {
		return nil
	}
	m.weatherFor = c.Name
	m.state.WeatherStatus = state.WeatherLoading
	m.state.WeatherErr = nil
	return m.weatherCmd(c.Name)
}

func (m *MainModel) helpLine() string {
	order := []KeyName{KeyBack, KeyForward, KeyScrollLeft, KeyScrollRight, KeyNextCountry, KeySort, KeyEnter, KeyRefresh, KeyQuit}
	parts := make([]string, 0, len(order))
	for _, k := range order {
		h := GlobalkeyBindings[k].Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	switch m.state.CurrentPage {
	case state.PageDetail:
		return views.RenderDetail(m.state, m.weather.View(), m.width, m.height)
	default:
		return views.RenderListing(m.state, views.ViewProps{
			Width:       m.width,
			Height:      m.height,
			MouseX:      m.mouseX,
			MouseY:      m.mouseY,
			SpinnerView: m.spinner.View(),
			Layout:      m.carousel.Snapshot(),
			TrackView:   m.carousel.View(),
			Help:        m.helpLine(),
		})
	}
}

func Start(src catalog.Source, cfg config.Config) error {
	m := InitialModel(src, cfg)
	defer m.Close()
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
