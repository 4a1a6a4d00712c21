package carousel

import (
	"errors"
	"testing"

	"travelbrowser/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) handle(e Event) { r.events = append(r.events, e) }

func (r *recorder) scrolls() []ScrollRequest {
	var out []ScrollRequest
	for _, e := range r.events {
		if s, ok := e.(ScrollRequested); ok {
			out = append(out, s.Request)
		}
	}
	return out
}

func (r *recorder) selections() []SelectionChanged {
	var out []SelectionChanged
	for _, e := range r.events {
		if s, ok := e.(SelectionChanged); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

func places(names ...string) []catalog.Place {
	out := make([]catalog.Place, len(names))
	for i, n := range names {
		out[i] = catalog.Place{Name: n, Country: "Testland"}
	}
	return out
}

// loadedScreen returns a screen holding names in delivery order with the
// initial scroll settled, plus a recorder subscribed after loading.
func loadedScreen(t *testing.T, names ...string) (*Screen, *recorder) {
	t.Helper()
	sc := NewScreen()
	r := sc.Coordinator.Start()
	require.True(t, sc.Coordinator.Deliver(Collection{
		Generation: r.Generation,
		Country:    "Testland",
		Countries:  []catalog.Country{{Name: "Testland"}, {Name: "Elsewhere"}},
		Places:     places(names...),
	}))
	if req, ok := sc.Sync.InFlight(); ok {
		sc.Sync.ScrollSettled(req.Seq)
	}
	rec := &recorder{}
	sc.Session.Bus().Subscribe(rec.handle)
	return sc, rec
}

func TestMoveToIndexCommitsAndRequestsScroll(t *testing.T) {
	sc, rec := loadedScreen(t, "A", "B", "C", "D", "E")

	req, ok := sc.Sync.MoveToIndex(3)
	require.True(t, ok)
	assert.Equal(t, 3, req.Target)
	assert.Equal(t, 3, sc.State().SelectedIndex)

	sel := rec.selections()
	require.Len(t, sel, 1)
	assert.Equal(t, SourceActive, sel[0].Source)
	assert.Equal(t, []ScrollRequest{req}, rec.scrolls())
}

func TestMoveToIndexOutOfRangeIsNoop(t *testing.T) {
	sc, rec := loadedScreen(t, "A", "B", "C")
	sc.Sync.MoveToIndex(1)
	rec.reset()

	for _, i := range []int{-1, 3, 99} {
		_, ok := sc.Sync.MoveToIndex(i)
		assert.False(t, ok, "index %d", i)
	}
	assert.Equal(t, 1, sc.State().SelectedIndex)
	assert.Empty(t, rec.events)
}

func TestActiveThenPassiveDoesNotOscillate(t *testing.T) {
	sc, rec := loadedScreen(t, "A", "B", "C", "D", "E")
	sc.Sync.OnVisibleChanged([]int{0, 1})

	req, _ := sc.Sync.MoveToIndex(3)
	rec.reset()

	// Animation frames pass over cards 1 and 2 before reaching 3.
	assert.False(t, sc.Sync.OnVisibleChanged([]int{1, 2}))
	assert.False(t, sc.Sync.OnVisibleChanged([]int{2, 3}))
	assert.False(t, sc.Sync.OnVisibleChanged([]int{3, 4}))
	assert.True(t, sc.Sync.ScrollSettled(req.Seq))
	assert.False(t, sc.Sync.OnVisibleChanged([]int{3, 4}))

	assert.Equal(t, 3, sc.State().SelectedIndex)
	assert.Empty(t, rec.events, "the settled scroll must not produce further changes")
}

func TestPassiveFollowsUserScroll(t *testing.T) {
	sc, rec := loadedScreen(t, "A", "B", "C", "D", "E")

	assert.True(t, sc.Sync.OnVisibleChanged([]int{2, 3}))
	assert.Equal(t, 2, sc.State().SelectedIndex)
	assert.False(t, sc.Sync.OnVisibleChanged([]int{2, 3}), "unchanged sequence is ignored")
	assert.False(t, sc.Sync.OnVisibleChanged([]int{2}), "same frontmost commits nothing")
	assert.Equal(t, 2, sc.State().SelectedIndex)

	sel := rec.selections()
	require.Len(t, sel, 1)
	assert.Equal(t, SourcePassive, sel[0].Source)
	assert.Empty(t, rec.scrolls(), "passive commits never request scrolling")
}

func TestPassiveIgnoresEmptyAndOutOfRange(t *testing.T) {
	sc, _ := loadedScreen(t, "A", "B")
	sc.Sync.OnVisibleChanged([]int{1})

	assert.False(t, sc.Sync.OnVisibleChanged([]int{}))
	assert.False(t, sc.Sync.OnVisibleChanged([]int{7}))
	assert.Equal(t, 1, sc.State().SelectedIndex)
}

func TestNewerMoveSupersedesInFlightScroll(t *testing.T) {
	sc, _ := loadedScreen(t, "A", "B", "C", "D", "E")

	first, _ := sc.Sync.MoveToIndex(4)
	second, _ := sc.Sync.MoveToIndex(1)
	assert.Greater(t, second.Seq, first.Seq)

	assert.False(t, sc.Sync.ScrollSettled(first.Seq), "stale animation cannot settle")
	inflight, ok := sc.Sync.InFlight()
	require.True(t, ok)
	assert.Equal(t, 1, inflight.Target)

	assert.True(t, sc.Sync.ScrollSettled(second.Seq))
	_, ok = sc.Sync.InFlight()
	assert.False(t, ok)
	assert.Equal(t, 1, sc.State().SelectedIndex)
}

func TestSettledAtUnreachableTargetKeepsSelection(t *testing.T) {
	// Near the end the strip cannot scroll far enough for the last card to
	// be frontmost; settling must not snap the selection back.
	sc, _ := loadedScreen(t, "A", "B", "C", "D", "E")
	req, _ := sc.Sync.MoveToIndex(4)
	sc.Sync.OnVisibleChanged([]int{3, 4})
	sc.Sync.ScrollSettled(req.Seq)

	assert.Equal(t, 4, sc.State().SelectedIndex)

	sc.Sync.OnVisibleChanged([]int{2, 3})
	assert.Equal(t, 2, sc.State().SelectedIndex, "a real user scroll afterwards still counts")
}

func TestArrowScenario(t *testing.T) {
	sc, _ := loadedScreen(t, "A", "B", "C", "D", "E")
	sc.Sync.MoveToIndex(2)

	_, ok := sc.Sync.Forward()
	assert.True(t, ok)
	assert.Equal(t, 3, sc.State().SelectedIndex)

	sc.Sync.MoveToIndex(4)
	assert.False(t, sc.State().CanGoForward())
	_, ok = sc.Sync.Forward()
	assert.False(t, ok)
	assert.Equal(t, 4, sc.State().SelectedIndex)

	sc.Sync.MoveToIndex(0)
	assert.False(t, sc.State().CanGoBack())
	_, ok = sc.Sync.Back()
	assert.False(t, ok)
	assert.Equal(t, 0, sc.State().SelectedIndex)

	_, ok = sc.Sync.Forward()
	assert.True(t, ok)
	_, ok = sc.Sync.Back()
	assert.True(t, ok)
	assert.Equal(t, 0, sc.State().SelectedIndex)
}

func TestArrowsOnEmptyCollection(t *testing.T) {
	sc := NewScreen()
	_, ok := sc.Sync.Forward()
	assert.False(t, ok)
	_, ok = sc.Sync.Back()
	assert.False(t, ok)
	_, ok = sc.Sync.MoveToIndex(0)
	assert.False(t, ok)
	assert.Equal(t, NoSelection, sc.State().SelectedIndex)
}

func TestSnapshotIsACopy(t *testing.T) {
	sc, _ := loadedScreen(t, "A", "B")
	st := sc.State()
	st.Places[0].Name = "mutated"
	st.SelectedIndex = 1

	again := sc.State()
	assert.Equal(t, "A", again.Places[0].Name)
	assert.Equal(t, 0, again.SelectedIndex)
}

func TestSessionsAreIndependent(t *testing.T) {
	a, _ := loadedScreen(t, "A", "B", "C")
	b, _ := loadedScreen(t, "A", "B", "C")

	a.Sync.MoveToIndex(2)
	assert.Equal(t, 2, a.State().SelectedIndex)
	assert.Equal(t, 0, b.State().SelectedIndex)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	var got int
	unsub := bus.Subscribe(func(Event) { got++ })
	bus.Publish(ReloadFailed{Err: errors.New("x")})
	unsub()
	bus.Publish(ReloadFailed{Err: errors.New("y")})
	assert.Equal(t, 1, got)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "passive", SourcePassive.String())
	assert.Equal(t, "active", SourceActive.String())
	assert.Equal(t, "reload", SourceReload.String())
}
