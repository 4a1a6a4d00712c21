package components

import (
	"math"
	"strings"

	"travelbrowser/internal/carousel"
	"travelbrowser/ui/tui/styles"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// Carousel is the layout side of the place strip. It owns the scroll
// offset, animates it towards scroll requests with a spring and reports
// what the viewport shows on every frame.
type Carousel struct {
	Strip     carousel.Strip
	Threshold float64

	viewport int
	count    int

	scroll   float64
	velocity float64
	target   float64
	spring   harmonica.Spring

	request   carousel.ScrollRequest
	animating bool
}

var _ Component = (*Carousel)(nil)

func NewCarousel(cardWidth int, threshold float64) *Carousel {
	return &Carousel{
		Strip:     carousel.Strip{ItemSize: cardWidth, Gap: 2, PaddingStart: 2, PaddingEnd: 2},
		Threshold: threshold,
		// Critically damped so the strip never overshoots the clamp.
		spring: harmonica.NewSpring(harmonica.FPS(60), 12.0, 1.0),
	}
}

// View draws the scroll track under the strip. The thumb covers the share
// of the strip that is on screen; nothing is drawn when everything fits.
func (c *Carousel) View() string {
	width := c.viewport - 4
	content := c.Strip.ContentSize(c.count)
	maxScroll := c.Strip.MaxScroll(c.viewport, c.count)
	if width < 4 || maxScroll == 0 {
		return ""
	}
	thumb := max(1, width*c.viewport/content)
	pos := (width - thumb) * c.Scroll() / maxScroll

	track := lipgloss.NewStyle().Foreground(styles.BaseColor)
	bar := lipgloss.NewStyle().Foreground(styles.BrandColor)
	return "  " + track.Render(strings.Repeat("─", pos)) +
		bar.Render(strings.Repeat("━", thumb)) +
		track.Render(strings.Repeat("─", width-pos-thumb))
}

// Resize sets the viewport width in cells. The strip height is fixed by the
// card layout.
func (c *Carousel) Resize(width, _ int) {
	c.viewport = width
	c.clamp()
}

// SetCount tells the carousel how many cards the strip holds.
func (c *Carousel) SetCount(n int) {
	c.count = n
	c.clamp()
}

// ScrollTo starts animating towards req. A newer request replaces the one
// in flight.
func (c *Carousel) ScrollTo(req carousel.ScrollRequest) {
	c.request = req
	c.target = float64(c.Strip.OffsetFor(req.Target, c.viewport, c.count))
	c.animating = true
}

// ScrollBy moves the strip directly, as a drag or wheel would. An animation
// in flight is interrupted and its request returned.
func (c *Carousel) ScrollBy(delta int) (carousel.ScrollRequest, bool) {
	interrupted, was := c.request, c.animating
	c.animating = false
	c.velocity = 0
	c.scroll = float64(c.Strip.ClampScroll(c.Scroll()+delta, c.viewport, c.count))
	c.target = c.scroll
	return interrupted, was
}

// Step advances the animation by one frame. It returns the request that
// came to rest on this frame, if any.
func (c *Carousel) Step() (carousel.ScrollRequest, bool) {
	if !c.animating {
		return carousel.ScrollRequest{}, false
	}
	c.scroll, c.velocity = c.spring.Update(c.scroll, c.velocity, c.target)
	if math.Abs(c.target-c.scroll) < 0.5 && math.Abs(c.velocity) < 1 {
		c.scroll = c.target
		c.velocity = 0
		c.animating = false
		return c.request, true
	}
	return carousel.ScrollRequest{}, false
}

func (c *Carousel) Animating() bool {
	return c.animating
}

// Scroll is the current offset rounded to whole cells.
func (c *Carousel) Scroll() int {
	return int(math.Round(c.scroll))
}

func (c *Carousel) Viewport() int {
	return c.viewport
}

// Snapshot lays out the strip at the current offset.
func (c *Carousel) Snapshot() carousel.ViewportSnapshot {
	return c.Strip.Snapshot(c.Scroll(), c.viewport, c.count)
}

// Visible applies the visibility threshold to the current layout.
func (c *Carousel) Visible() []int {
	return carousel.ComputeVisible(c.Snapshot(), c.Threshold)
}

func (c *Carousel) clamp() {
	c.scroll = float64(c.Strip.ClampScroll(c.Scroll(), c.viewport, c.count))
	if c.animating {
		c.target = float64(c.Strip.OffsetFor(c.request.Target, c.viewport, c.count))
	} else {
		c.target = c.scroll
	}
}
