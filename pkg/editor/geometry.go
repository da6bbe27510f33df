package editor

import (
	"github.com/bastiangx/codeserve/internal/utils"
)

// Position is a screen point in pixels.
type Position struct {
	Top  int `msgpack:"top"`
	Left int `msgpack:"left"`
}

// Rect is a screen box in pixels.
type Rect struct {
	Top    int `msgpack:"top"`
	Left   int `msgpack:"left"`
	Width  int `msgpack:"width"`
	Height int `msgpack:"height"`
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// Geometry is the bounding box and scroll state of the text input.
type Geometry struct {
	Bounds     Rect `msgpack:"bounds"`
	ScrollTop  int  `msgpack:"scroll_top"`
	ScrollLeft int  `msgpack:"scroll_left"`
}

// Metrics approximate a monospace text area: every character has the same
// width and every line the same height.
type Metrics struct {
	CharWidth  int
	LineHeight int
	AnchorGap  int
	ListWidth  int
	ListHeight int
}

// DefaultMetrics returns metrics for a 14px monospace font.
func DefaultMetrics() Metrics {
	return Metrics{
		CharWidth:  8,
		LineHeight: 20,
		AnchorGap:  5,
		ListWidth:  320,
		ListHeight: 320,
	}
}

// Anchor places the dropdown just below the line holding cursor.
func (m Metrics) Anchor(g Geometry, text string, cursor int) Position {
	if cursor > len(text) {
		cursor = len(text)
	}
	if cursor < 0 {
		cursor = 0
	}
	line, column := utils.CountLinesAndColumn(text[:cursor])
	return Position{
		Top:  g.Bounds.Top + line*m.LineHeight - g.ScrollTop + m.LineHeight + m.AnchorGap,
		Left: g.Bounds.Left + column*m.CharWidth - g.ScrollLeft,
	}
}

// ListRegion is the screen area covered by a dropdown anchored at p.
func (m Metrics) ListRegion(p Position) Rect {
	return Rect{Top: p.Top, Left: p.Left, Width: m.ListWidth, Height: m.ListHeight}
}
