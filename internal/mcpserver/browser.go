package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"travelbrowser/internal/carousel"
	"travelbrowser/internal/catalog"
	"travelbrowser/internal/log"
)

// BrowserConfig sizes the synthetic viewport of a headless session.
type BrowserConfig struct {
	Locale    string
	Threshold float64
	Viewport  int // cells
	Strip     carousel.Strip
}

// DefaultBrowserConfig matches an 80 column terminal with 30 cell cards.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Locale:    "en",
		Threshold: carousel.DefaultThreshold,
		Viewport:  80,
		Strip:     carousel.Strip{ItemSize: 30, Gap: 2, PaddingStart: 2, PaddingEnd: 2},
	}
}

// Browser drives one carousel session without a terminal. Scroll requests
// jump straight to their target; reloads are fetched synchronously.
type Browser struct {
	mu     sync.Mutex
	src    catalog.Source
	cfg    BrowserConfig
	screen *carousel.Screen

	scroll  int
	visible []int
	started bool

	reload  *carousel.Reload
	request *carousel.ScrollRequest
}

func NewBrowser(src catalog.Source, cfg BrowserConfig) *Browser {
	b := &Browser{src: src, cfg: cfg}
	b.screen = carousel.NewScreen(carousel.WithLocale(cfg.Locale))
	b.screen.Session.Bus().Subscribe(b.onEvent)
	return b
}

func (b *Browser) onEvent(e carousel.Event) {
	switch ev := e.(type) {
	case carousel.ReloadRequested:
		r := ev.Reload
		b.reload = &r
	case carousel.ScrollRequested:
		req := ev.Request
		b.request = &req
	}
}

// BrowseArgs defines the input for the browse tool.
type BrowseArgs struct {
	Action  string `json:"action" jsonschema:"one of: state, select_country, move, forward, back, sort, scroll, refresh"`
	Country string `json:"country,omitempty" jsonschema:"country name for select_country"`
	Index   *int   `json:"index,omitempty" jsonschema:"card index for move, or chip index for select_country"`
	Order   string `json:"order,omitempty" jsonschema:"sort order for sort: asc or desc"`
	Delta   int    `json:"delta,omitempty" jsonschema:"cells to scroll by for scroll; negative scrolls back"`
}

// BrowseResult is the session state after an action.
type BrowseResult struct {
	Country       string   `json:"country"`
	Countries     []string `json:"countries"`
	Places        []string `json:"places"`
	SelectedIndex int      `json:"selected_index"`
	Selected      string   `json:"selected,omitempty"`
	SortOrder     string   `json:"sort_order"`
	Visible       []int    `json:"visible"`
	Scroll        int      `json:"scroll"`
	Changed       bool     `json:"changed"`
}

// Do applies one action and returns the resulting state.
func (b *Browser) Do(ctx context.Context, args BrowseArgs) (BrowseResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		b.started = true
		b.screen.Coordinator.Start()
		if err := b.settle(ctx); err != nil {
			b.started = false
			return BrowseResult{}, err
		}
	}

	before := b.screen.State()
	var changed bool
	switch strings.ToLower(strings.TrimSpace(args.Action)) {
	case "", "state":
	case "select_country":
		i, err := b.countryIndex(before, args)
		if err != nil {
			return BrowseResult{}, err
		}
		_, changed = b.screen.Coordinator.OnCountrySelected(i)
	case "move":
		if args.Index == nil {
			return BrowseResult{}, fmt.Errorf("move requires index")
		}
		_, changed = b.screen.Sync.MoveToIndex(*args.Index)
	case "forward":
		_, changed = b.screen.Sync.Forward()
	case "back":
		_, changed = b.screen.Sync.Back()
	case "sort":
		order, err := catalog.ParseSortOrder(args.Order)
		if err != nil {
			return BrowseResult{}, err
		}
		b.screen.Coordinator.ApplySortOrder(order)
		changed = true
	case "scroll":
		changed = b.scrollBy(args.Delta)
	case "refresh":
		b.screen.Coordinator.Refresh()
		changed = true
	default:
		return BrowseResult{}, fmt.Errorf("unknown action %q", args.Action)
	}

	if err := b.settle(ctx); err != nil {
		return BrowseResult{}, err
	}
	return b.result(changed), nil
}

func (b *Browser) countryIndex(st carousel.State, args BrowseArgs) (int, error) {
	if args.Country != "" {
		for i, c := range st.Countries {
			if strings.EqualFold(c.Name, args.Country) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%q: %w", args.Country, catalog.ErrCountryNotFound)
	}
	if args.Index != nil {
		return *args.Index, nil
	}
	return 0, fmt.Errorf("select_country requires country or index")
}

// scrollBy is a user drag: it interrupts any animation and feeds the
// passive channel.
func (b *Browser) scrollBy(delta int) bool {
	if req, ok := b.screen.Sync.InFlight(); ok {
		b.screen.Sync.ScrollSettled(req.Seq)
	}
	count := b.screen.State().ItemCount
	b.scroll = b.cfg.Strip.ClampScroll(b.scroll+delta, b.cfg.Viewport, count)
	return b.observe()
}

// settle drains outstanding reloads and scroll requests.
func (b *Browser) settle(ctx context.Context) error {
	for b.reload != nil {
		r := *b.reload
		b.reload = nil
		col, err := carousel.Fetch(ctx, b.src, r)
		if err != nil {
			log.ErrorLog.Printf("headless reload %d failed: %v", r.Generation, err)
			b.screen.Coordinator.Fail(r.Generation, err)
			return err
		}
		b.screen.Coordinator.Deliver(col)
	}

	if b.request != nil {
		req := *b.request
		b.request = nil
		count := b.screen.State().ItemCount
		b.scroll = b.cfg.Strip.OffsetFor(req.Target, b.cfg.Viewport, count)
		b.observe()
		b.screen.Sync.ScrollSettled(req.Seq)
	} else if b.screen.State().ItemCount == 0 {
		b.scroll = 0
		b.observe()
	}
	return nil
}

func (b *Browser) observe() bool {
	count := b.screen.State().ItemCount
	snap := b.cfg.Strip.Snapshot(b.scroll, b.cfg.Viewport, count)
	b.visible = carousel.ComputeVisible(snap, b.cfg.Threshold)
	return b.screen.Sync.OnVisibleChanged(b.visible)
}

func (b *Browser) result(changed bool) BrowseResult {
	st := b.screen.State()
	res := BrowseResult{
		Countries:     catalog.Names(st.Countries, catalog.CountryName),
		Places:        catalog.Names(st.Places, catalog.PlaceName),
		SelectedIndex: st.SelectedIndex,
		SortOrder:     st.SortOrder.String(),
		Visible:       append([]int{}, b.visible...),
		Scroll:        b.scroll,
		Changed:       changed,
	}
	if c, ok := st.SelectedCountry(); ok {
		res.Country = c.Name
	}
	if p, ok := st.SelectedPlace(); ok {
		res.Selected = p.Name
	}
	return res
}
