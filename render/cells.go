package render

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"routeboard/diagram"
	"routeboard/geometry"
)

// Line arms of a box-drawing cell.
const (
	armN uint8 = 1 << iota
	armE
	armS
	armW
)

// glyphs maps a set of arms to the box-drawing character joining them. Bends use the
// rounded corner characters.
var glyphs = map[uint8]rune{
	armN:                      '╵',
	armE:                      '╶',
	armS:                      '╷',
	armW:                      '╴',
	armN | armS:               '│',
	armE | armW:               '─',
	armE | armS:               '╭',
	armS | armW:               '╮',
	armN | armE:               '╰',
	armN | armW:               '╯',
	armN | armE | armS:        '├',
	armN | armS | armW:        '┤',
	armE | armS | armW:        '┬',
	armN | armE | armW:        '┴',
	armN | armE | armS | armW: '┼',
}

// Arrow glyphs never get merged with lines.
const (
	ArrowRight = '▶'
	ArrowLeft  = '◀'
	ArrowUp    = '▲'
	ArrowDown  = '▼'
)

// Cell is one character position of a CellSurface.
type Cell struct {
	Rune         rune // Explicit glyph such as text or an arrow; zero derives one from the line arms
	Color        Color
	Highlight    bool // Covered by a translucent stroke
	Continuation bool // Right half of a wide character
	arms         uint8
}

// Glyph returns the character shown in the cell.
func (c Cell) Glyph() rune {
	if c.Rune != 0 {
		return c.Rune
	}
	if g, ok := glyphs[c.arms]; ok {
		return g
	}
	return ' '
}

// Empty reports whether nothing has been drawn in the cell.
func (c Cell) Empty() bool {
	return c.Rune == 0 && c.arms == 0 && !c.Continuation
}

// CellSurface rasterises drawing operations onto a grid of character cells. Lines
// meeting in a cell are merged into the matching junction or corner character.
type CellSurface struct {
	cells         [][]Cell
	width, height int
	origin        diagram.Point // World position of the top-left corner of cell (0,0)
	cellW, cellH  float64

	segs   [][2]diagram.Point
	poly   []diagram.Point
	cur    diagram.Point
	start  diagram.Point
	hasCur bool
}

// NewCellSurface creates a width x height cell grid. Each cell covers cellW x cellH
// world units, starting at origin.
func NewCellSurface(width, height int, origin diagram.Point, cellW, cellH float64) *CellSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return &CellSurface{cells: cells, width: width, height: height, origin: origin, cellW: cellW, cellH: cellH}
}

// Size returns the grid dimensions in cells.
func (s *CellSurface) Size() (width, height int) {
	return s.width, s.height
}

// Cell returns the cell at (x, y). Out of range positions are empty.
func (s *CellSurface) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Cell{}
	}
	return s.cells[y][x]
}

// ToCell returns the cell containing world point p. The result may be out of range.
func (s *CellSurface) ToCell(p diagram.Point) (int, int) {
	return int(math.Floor((p.X - s.origin.X) / s.cellW)), int(math.Floor((p.Y - s.origin.Y) / s.cellH))
}

// ToWorld returns the world position of the centre of cell (x, y).
func (s *CellSurface) ToWorld(x, y int) diagram.Point {
	return diagram.Point{
		X: s.origin.X + (float64(x)+0.5)*s.cellW,
		Y: s.origin.Y + (float64(y)+0.5)*s.cellH,
	}
}

func (s *CellSurface) at(x, y int) *Cell {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return nil
	}
	return &s.cells[y][x]
}

// Plot puts r in the cell containing p if that cell is still empty.
func (s *CellSurface) Plot(p diagram.Point, r rune, c Color) {
	x, y := s.ToCell(p)
	if cell := s.at(x, y); cell != nil && cell.Empty() {
		cell.Rune = r
		cell.Color = c
	}
}

func (s *CellSurface) MoveTo(x, y float64) {
	p := diagram.Point{X: x, Y: y}
	s.cur, s.start, s.hasCur = p, p, true
	s.poly = append(s.poly[:0], p)
}

func (s *CellSurface) LineTo(x, y float64) {
	p := diagram.Point{X: x, Y: y}
	if !s.hasCur {
		s.MoveTo(x, y)
		return
	}
	s.segs = append(s.segs, [2]diagram.Point{s.cur, p})
	s.poly = append(s.poly, p)
	s.cur = p
}

// Arc is drawn as the sharp bend its tangents meet at; the merged line arms then pick
// the rounded corner character.
func (s *CellSurface) Arc(cx, cy, r, a1, a2 float64) {
	c := diagram.Point{X: cx, Y: cy}
	u1 := diagram.Point{X: math.Cos(a1), Y: math.Sin(a1)}
	u2 := diagram.Point{X: math.Cos(a2), Y: math.Sin(a2)}
	from := c.Add(geometry.Scale(u1, r))
	to := c.Add(geometry.Scale(u2, r))

	s.LineTo(from.X, from.Y)
	if k := 1 + geometry.Dot(u1, u2); k > 0.1 {
		bend := c.Add(geometry.Scale(u1.Add(u2), r/k))
		s.LineTo(bend.X, bend.Y)
	}
	s.LineTo(to.X, to.Y)
}

func (s *CellSurface) ClosePath() {
	if s.hasCur {
		s.LineTo(s.start.X, s.start.Y)
	}
}

func (s *CellSurface) reset() {
	s.segs = s.segs[:0]
	s.poly = s.poly[:0]
	s.hasCur = false
}

// Stroke draws the pending segments. Translucent pens highlight the covered cells
// instead of drawing lines.
func (s *CellSurface) Stroke(pen Pen) {
	for _, seg := range s.segs {
		s.drawSegment(seg[0], seg[1], pen.Color, pen.Color.Alpha < 1)
	}
	s.reset()
}

// Fill marks the first vertex of the pending polygon with an arrow glyph pointing away
// from the other vertices. The glyph goes one cell back from the tip so it does not
// cover the outline the tip touches.
func (s *CellSurface) Fill(c Color) {
	defer s.reset()
	if len(s.poly) < 3 {
		return
	}
	tip := s.poly[0]
	var base diagram.Point
	rest := s.poly[1:]
	if rest[len(rest)-1] == tip {
		rest = rest[:len(rest)-1]
	}
	for _, p := range rest {
		base = base.Add(p)
	}
	base = geometry.Scale(base, 1/float64(len(rest)))
	dir := tip.Sub(base)

	x, y := s.ToCell(tip)
	var glyph rune
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X >= 0 {
			glyph, x = ArrowRight, x-1
		} else {
			glyph, x = ArrowLeft, x+1
		}
	} else {
		if dir.Y >= 0 {
			glyph, y = ArrowDown, y-1
		} else {
			glyph, y = ArrowUp, y+1
		}
	}
	if cell := s.at(x, y); cell != nil {
		cell.Rune = glyph
		cell.Color = c
	}
}

func (s *CellSurface) drawSegment(a, b diagram.Point, c Color, highlight bool) {
	ax, ay := s.ToCell(a)
	bx, by := s.ToCell(b)
	switch {
	case ax == bx && ay == by:
		return
	case ay == by:
		if ax > bx {
			ax, bx = bx, ax
		}
		for x := ax; x <= bx; x++ {
			var arms uint8
			if x > ax {
				arms |= armW
			}
			if x < bx {
				arms |= armE
			}
			s.mark(x, ay, arms, c, highlight)
		}
	case ax == bx:
		if ay > by {
			ay, by = by, ay
		}
		for y := ay; y <= by; y++ {
			var arms uint8
			if y > ay {
				arms |= armN
			}
			if y < by {
				arms |= armS
			}
			s.mark(ax, y, arms, c, highlight)
		}
	default:
		s.drawDiagonal(ax, ay, bx, by, c, highlight)
	}
}

// drawDiagonal plots a Bresenham line of dots.
func (s *CellSurface) drawDiagonal(x0, y0, x1, y1 int, c Color, highlight bool) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		cell := s.at(x0, y0)
		if cell != nil {
			if highlight {
				cell.Highlight = true
			} else if cell.Empty() {
				cell.Rune = '·'
				cell.Color = c
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *CellSurface) mark(x, y int, arms uint8, c Color, highlight bool) {
	cell := s.at(x, y)
	if cell == nil {
		return
	}
	if highlight {
		cell.Highlight = true
		return
	}
	cell.arms |= arms
	if cell.Rune == 0 {
		cell.Color = c
	}
}

// DrawText writes text centred on the cell containing (x, y). Wide characters take two
// cells; text running off the grid is truncated.
func (s *CellSurface) DrawText(text string, x, y float64, c Color) {
	cx, cy := s.ToCell(diagram.Point{X: x, Y: y})
	if cy < 0 || cy >= s.height || s.width == 0 {
		return
	}
	text = runewidth.Truncate(text, s.width, "…")
	col := cx - runewidth.StringWidth(text)/2
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cell := s.at(col, cy); cell != nil {
			*cell = Cell{Rune: r, Color: c}
			if w == 2 {
				if next := s.at(col+1, cy); next != nil {
					*next = Cell{Continuation: true, Color: c}
				}
			}
		}
		col += w
	}
}

// String returns the grid as text, one line per row with trailing spaces removed.
func (s *CellSurface) String() string {
	lines := make([]string, s.height)
	var sb strings.Builder
	for y := 0; y < s.height; y++ {
		sb.Reset()
		for x := 0; x < s.width; x++ {
			cell := s.cells[y][x]
			if cell.Continuation {
				continue
			}
			sb.WriteRune(cell.Glyph())
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
