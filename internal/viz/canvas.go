package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/agemap/internal/geo"
	"github.com/san-kum/agemap/internal/style"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const emptyCell = 0x2800

type overlayCell struct {
	r     rune
	fg    style.Color
	bg    style.Color
	hasBG bool
}

// Canvas is a Braille pixel grid with one foreground color per cell and a
// text overlay drawn on top of the dots. The canvas size in sub-pixels is
// (Width*2) x (Height*4); colors live at cell resolution, so the last dot
// painted into a cell decides its color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	colors        [][]style.Color
	painted       [][]bool
	overlay       map[[2]int]overlayCell
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		colors:  make([][]style.Color, h),
		painted: make([][]bool, h),
		overlay: make(map[[2]int]overlayCell),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.colors[i] = make([]style.Color, w)
		c.painted[i] = make([]bool, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = emptyCell
		}
	}
	return c
}

// SubW and SubH are the canvas dimensions in sub-pixels.
func (c *Canvas) SubW() int { return c.Width * 2 }
func (c *Canvas) SubH() int { return c.Height * 4 }

// Set turns on the sub-pixel at (x, y) in the terminal's default color.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// SetColored turns on the sub-pixel and colors its cell.
func (c *Canvas) SetColored(x, y int, fg style.Color) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.colors[row][col] = fg
	c.painted[row][col] = true
}

// CellColor returns the color painted into a cell, or the zero Color for
// cells only ever touched by the default-color Set.
func (c *Canvas) CellColor(col, row int) style.Color {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return style.Color{}
	}
	if !c.painted[row][col] {
		return style.Color{}
	}
	return c.colors[row][col]
}

// Unset clears a sub-pixel. Cell color stays for any remaining dots.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < emptyCell {
		c.Grid[row][col] = emptyCell
	}
}

// Clear resets dots, colors and the text overlay.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = emptyCell
			c.colors[i][j] = style.Color{}
			c.painted[i][j] = false
		}
	}
	c.overlay = make(map[[2]int]overlayCell)
}

func (c *Canvas) line(x0, y0, x1, y1 int, plot func(int, int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, c.Set)
}

// DrawLineColored draws a Bresenham line painting cells along the way.
func (c *Canvas) DrawLineColored(x0, y0, x1, y1 int, fg style.Color) {
	c.line(x0, y0, x1, y1, func(x, y int) { c.SetColored(x, y, fg) })
}

// FillRings rasterizes a projected polygon (outer ring plus holes) in the
// given color.
func (c *Canvas) FillRings(rings []geo.ScreenRing, fg style.Color) {
	geo.ScanRings(rings, c.SubW(), c.SubH(), func(y, x0, x1 int) {
		for x := x0; x <= x1; x++ {
			c.SetColored(x, y, fg)
		}
	})
}

// StrokeRing outlines a projected ring in the given color.
func (c *Canvas) StrokeRing(ring geo.ScreenRing, fg style.Color) {
	n := len(ring)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		c.DrawLineColored(int(a[0]), int(a[1]), int(b[0]), int(b[1]), fg)
	}
}

// WriteText lays text over the dots starting at a cell position. Runes
// outside the canvas are clipped.
func (c *Canvas) WriteText(col, row int, text string, fg style.Color) {
	c.writeText(col, row, text, fg, style.Color{}, false)
}

// WriteTextBG is WriteText with an explicit background fill.
func (c *Canvas) WriteTextBG(col, row int, text string, fg, bg style.Color) {
	c.writeText(col, row, text, fg, bg, true)
}

func (c *Canvas) writeText(col, row int, text string, fg, bg style.Color, hasBG bool) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range text {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.overlay[[2]int{col, row}] = overlayCell{r: r, fg: fg, bg: bg, hasBG: hasBG}
		}
		col++
	}
}

type renderKey struct {
	fg    style.Color
	bg    style.Color
	hasFG bool
	hasBG bool
}

// String renders the canvas with ANSI colors, batching runs of cells that
// share a style so a frame stays reasonably small.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		var key renderKey
		flush := func() {
			if run.Len() == 0 {
				return
			}
			s := run.String()
			if key.hasFG || key.hasBG {
				st := lipgloss.NewStyle()
				if key.hasFG {
					st = st.Foreground(lipgloss.Color(key.fg.Hex()))
				}
				if key.hasBG {
					st = st.Background(lipgloss.Color(key.bg.Hex()))
				}
				s = st.Render(s)
			}
			b.WriteString(s)
			run.Reset()
		}

		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			k := renderKey{}
			if ov, ok := c.overlay[[2]int{col, row}]; ok {
				r = ov.r
				k = renderKey{fg: ov.fg, bg: ov.bg, hasFG: true, hasBG: ov.hasBG}
			} else if c.painted[row][col] && r != emptyCell {
				k = renderKey{fg: c.colors[row][col], hasFG: true}
			}
			if k != key {
				flush()
				key = k
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
