package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Zone ids shared with the model's mouse handling.
const (
	ZoneBack     = "arrow_back"
	ZoneForward  = "arrow_forward"
	ZoneSort     = "sort_button"
	ZoneSortAsc  = "sort_asc"
	ZoneSortDesc = "sort_desc"
	ZoneDetailUp = "detail_back"
)

// ChipZone and CardZone name the clickable chip and card regions.
func ChipZone(i int) string { return fmt.Sprintf("chip_%d", i) }
func CardZone(i int) string { return fmt.Sprintf("card_%d", i) }

// fit truncates s to width cells with an ellipsis and pads it to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// wrap breaks s into at most maxLines lines of width cells. The last line
// is truncated with an ellipsis when text remains.
func wrap(s string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}
	var lines []string
	var cur string
	words := strings.Fields(s)
	for i, w := range words {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if cur == "" || runewidth.StringWidth(next) <= width {
			cur = next
			continue
		}
		if len(lines) == maxLines-1 {
			rest := strings.Join(append([]string{cur}, words[i:]...), " ")
			return append(lines, runewidth.Truncate(rest, width, "…"))
		}
		lines = append(lines, runewidth.Truncate(cur, width, "…"))
		cur = w
	}
	if cur != "" {
		lines = append(lines, runewidth.Truncate(cur, width, "…"))
	}
	return lines
}

// cut returns the cells [from, to) of a plain, fixed-width line.
func cut(line string, from, to int) string {
	var b strings.Builder
	col := 0
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if col >= from && col+w <= to {
			b.WriteRune(r)
		} else if col < to && col+w > from {
			// A wide rune straddles the edge.
			b.WriteString(strings.Repeat(" ", min(col+w, to)-max(col, from)))
		}
		col += w
		if col >= to {
			break
		}
	}
	return b.String()
}
