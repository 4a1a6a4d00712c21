package carousel

// Strip describes a uniform horizontal row of cards: every card is ItemSize
// wide, separated by Gap, with padding before the first and after the last.
// It plays the part of the lazy row layout for the terminal renderer and
// for headless sessions.
type Strip struct {
	ItemSize     int
	Gap          int
	PaddingStart int
	PaddingEnd   int
}

// ContentSize is the scrollable extent of count cards including padding.
func (s Strip) ContentSize(count int) int {
	if count <= 0 {
		return s.PaddingStart + s.PaddingEnd
	}
	return s.PaddingStart + count*s.ItemSize + (count-1)*s.Gap + s.PaddingEnd
}

// MaxScroll is the largest valid scroll offset for a viewport of the given width.
func (s Strip) MaxScroll(viewport, count int) int {
	m := s.ContentSize(count) - viewport
	if m < 0 {
		return 0
	}
	return m
}

// ClampScroll limits a scroll offset to [0, MaxScroll].
func (s Strip) ClampScroll(scroll, viewport, count int) int {
	if scroll < 0 {
		return 0
	}
	if m := s.MaxScroll(viewport, count); scroll > m {
		return m
	}
	return scroll
}

// OffsetFor is the scroll offset that puts card index at the leading edge,
// clamped so the strip never scrolls past its end.
func (s Strip) OffsetFor(index, viewport, count int) int {
	return s.ClampScroll(index*(s.ItemSize+s.Gap), viewport, count)
}

// Snapshot lays out count cards at the given scroll offset and reports the
// ones that overlap [0, viewport).
func (s Strip) Snapshot(scroll, viewport, count int) ViewportSnapshot {
	snap := ViewportSnapshot{
		ViewportStart: 0,
		ViewportEnd:   viewport,
		TotalItems:    count,
	}
	if count <= 0 || s.ItemSize <= 0 {
		return snap
	}
	stride := s.ItemSize + s.Gap
	for i := 0; i < count; i++ {
		offset := s.PaddingStart + i*stride - scroll
		if offset >= viewport {
			break
		}
		if offset+s.ItemSize <= 0 {
			continue
		}
		snap.Items = append(snap.Items, VisibleItem{Index: i, Offset: offset, Size: s.ItemSize})
	}
	return snap
}
