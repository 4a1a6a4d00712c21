// Package carousel keeps a horizontally scrolling strip of place cards in
// sync with one selected index.
//
// Two channels feed the selection. The passive channel is the layout layer
// reporting which cards are substantially visible after a scroll; the active
// channel is an explicit command (chip, arrow, swipe) that also asks the
// layout layer to animate. Both funnel through a Synchronizer that is the
// only writer of the Session, so the two directions never fight.
package carousel

import "slices"

// DefaultThreshold is the fraction of a card that must be inside the
// viewport for it to count as visible.
const DefaultThreshold = 0.3

// VisibleItem is one laid-out item that overlaps the viewport.
type VisibleItem struct {
	Index  int
	Offset int // distance of the leading edge from the viewport origin, may be negative
	Size   int // extent along the scroll axis
}

// ViewportSnapshot is the layout of one frame. Items are ordered by Offset.
type ViewportSnapshot struct {
	Items         []VisibleItem
	ViewportStart int
	ViewportEnd   int
	TotalItems    int
}

// ComputeVisible returns the indices of the items that are visible enough
// under percentThreshold, in on-screen order.
//
// A trailing item is dropped when less than the threshold of it has scrolled
// in. A leading item is then dropped when it has mostly scrolled out; that
// check is scaled by the trailing item's size, not the leading one's.
func ComputeVisible(s ViewportSnapshot, percentThreshold float64) []int {
	if s.TotalItems == 0 || len(s.Items) == 0 {
		return []int{}
	}
	t := clampThreshold(percentThreshold)

	items := s.Items
	last := items[len(items)-1]
	scale := float64(last.Size) * t

	if float64(last.Offset)+scale > float64(s.ViewportEnd) {
		items = items[:len(items)-1]
	}
	if len(items) > 0 && float64(items[0].Offset)+scale < float64(s.ViewportStart) {
		items = items[1:]
	}

	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

// Frontmost returns the first visible index.
func Frontmost(visible []int) (int, bool) {
	if len(visible) == 0 {
		return 0, false
	}
	return visible[0], true
}

// SameIndices reports whether two visible sequences are identical.
func SameIndices(a, b []int) bool {
	return slices.Equal(a, b)
}

func clampThreshold(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
