package carousel

import "slices"

// Source says which channel produced a state change.
type Source int

const (
	SourcePassive Source = iota // the user scrolled
	SourceActive                // an explicit move command
	SourceReload                // a sort or a delivered collection
)

func (s Source) String() string {
	switch s {
	case SourcePassive:
		return "passive"
	case SourceActive:
		return "active"
	case SourceReload:
		return "reload"
	}
	return "unknown"
}

// ScrollRequest asks the layout layer to bring card Target into view.
type ScrollRequest struct {
	Target int
	Seq    uint64
}

// Synchronizer merges the passive and active channels into the session's
// selected index.
type Synchronizer struct {
	session *Session

	seq      uint64
	pending  ScrollRequest
	inFlight bool

	lastVisible []int
}

func NewSynchronizer(s *Session) *Synchronizer {
	return &Synchronizer{session: s}
}

// OnVisibleChanged feeds the visible-index sequence of the latest layout
// pass. When it differs from the previous one, its frontmost index becomes
// the selection, without a scroll request.
//
// While an active scroll is in flight the sequence is only recorded: the
// frames of the animation must not pull the selection back.
func (y *Synchronizer) OnVisibleChanged(visible []int) bool {
	if SameIndices(visible, y.lastVisible) {
		return false
	}
	y.lastVisible = slices.Clone(visible)

	if y.inFlight {
		return false
	}
	front, ok := Frontmost(visible)
	if !ok {
		return false
	}
	return y.commit(front, SourcePassive)
}

// MoveToIndex selects card i and requests a scroll to it. Indices outside
// [0, ItemCount) are ignored.
func (y *Synchronizer) MoveToIndex(i int) (ScrollRequest, bool) {
	st := &y.session.state
	if i < 0 || i >= st.ItemCount {
		return ScrollRequest{}, false
	}
	y.commit(i, SourceActive)
	return y.requestScroll(i), true
}

// Forward is the forward arrow; it does nothing on the last card.
func (y *Synchronizer) Forward() (ScrollRequest, bool) {
	st := y.session.state
	if !st.CanGoForward() {
		return ScrollRequest{}, false
	}
	return y.MoveToIndex(st.SelectedIndex + 1)
}

// Back is the back arrow; it does nothing on the first card.
func (y *Synchronizer) Back() (ScrollRequest, bool) {
	st := y.session.state
	if !st.CanGoBack() {
		return ScrollRequest{}, false
	}
	return y.MoveToIndex(st.SelectedIndex - 1)
}

// ScrollSettled tells the synchronizer that the animation for seq came to
// rest or was interrupted by the user. Stale sequence numbers are ignored.
// Settling never changes the selection; the next differing visible
// sequence does.
func (y *Synchronizer) ScrollSettled(seq uint64) bool {
	if !y.inFlight || seq != y.pending.Seq {
		return false
	}
	y.inFlight = false
	return true
}

// InFlight returns the active scroll request, if any.
func (y *Synchronizer) InFlight() (ScrollRequest, bool) {
	return y.pending, y.inFlight
}

func (y *Synchronizer) commit(i int, src Source) bool {
	st := &y.session.state
	if i < 0 || i >= st.ItemCount || i == st.SelectedIndex {
		return false
	}
	y.session.setSelected(i)
	y.publishState(src)
	return true
}

func (y *Synchronizer) publishState(src Source) {
	y.session.bus.Publish(SelectionChanged{State: y.session.Snapshot(), Source: src})
}

func (y *Synchronizer) requestScroll(target int) ScrollRequest {
	y.seq++
	y.pending = ScrollRequest{Target: target, Seq: y.seq}
	y.inFlight = true
	y.session.bus.Publish(ScrollRequested{Request: y.pending})
	return y.pending
}

// forgetLayout drops the recorded visible sequence after the collection
// was replaced, so the first layout of the new collection counts as a change.
func (y *Synchronizer) forgetLayout() {
	y.lastVisible = nil
}

// cancelScroll abandons any in-flight request, e.g. when the strip empties.
func (y *Synchronizer) cancelScroll() {
	y.inFlight = false
}
