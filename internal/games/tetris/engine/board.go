package engine

import "strings"

// Playfield dimensions.
const (
	Width  = 10
	Height = 20
)

// Board is the fixed-size playfield. Row 0 is the top row.
// A cell holds None when empty or the kind of the piece locked there.
type Board struct {
	cells [Height][Width]Kind
}

// NewBoard creates an empty playfield.
func NewBoard() *Board {
	return &Board{}
}

// Clear empties every cell.
func (b *Board) Clear() {
	b.cells = [Height][Width]Kind{}
}

// Cell returns the content at (x, y), or None outside the field.
func (b *Board) Cell(x, y int) Kind {
	if !inBounds(x, y) {
		return None
	}
	return b.cells[y][x]
}

// Set writes a cell. Coordinates outside the field are ignored.
func (b *Board) Set(x, y int, k Kind) {
	if !inBounds(x, y) {
		return
	}
	b.cells[y][x] = k
}

// Cells returns a copy of the whole grid.
func (b *Board) Cells() [Height][Width]Kind {
	return b.cells
}

// Collides reports whether piece p, shifted by dx columns and dy rows
// upward (dy > 0 moves up, dy < 0 moves down) and rotated by rotationOffset
// quarter turns, would leave the field or overlap a filled cell.
func (b *Board) Collides(p *Piece, dx, dy, rotationOffset int) bool {
	if p == nil {
		return false
	}
	for _, off := range Shape(p.Kind, p.Rotation+rotationOffset) {
		x := p.X + off.X + dx
		y := p.Y + off.Y - dy
		if !inBounds(x, y) || b.cells[y][x] != None {
			return true
		}
	}
	return false
}

// Resting reports whether p cannot move one row further down.
func (b *Board) Resting(p *Piece) bool {
	return b.Collides(p, 0, -1, 0)
}

// Place locks p into the field and clears any completed rows.
// It only acts when p is resting; otherwise ok is false and nothing changes.
func (b *Board) Place(p *Piece) (ok bool, cleared int) {
	if p == nil || !b.Resting(p) {
		return false, 0
	}
	for _, c := range p.Cells(0) {
		b.Set(c.X, c.Y, p.Kind)
	}
	return true, b.ClearLines()
}

// ClearLines removes every full row, shifting the rows above it down by one
// and inserting an empty row at the top. It returns the number of rows removed.
func (b *Board) ClearLines() int {
	lines := 0
	for y := range Height {
		if !b.rowFull(y) {
			continue
		}
		lines++
		for row := y; row > 0; row-- {
			b.cells[row] = b.cells[row-1]
		}
		b.cells[0] = [Width]Kind{}
	}
	return lines
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.cells[y] {
		if c == None {
			return false
		}
	}
	return true
}

// String renders the field one row per line, '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := range Height {
		for x := range Width {
			sb.WriteString(b.cells[y][x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}
