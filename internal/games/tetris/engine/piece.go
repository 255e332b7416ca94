package engine

// Piece is the falling piece. X and Y locate the top-left corner of its
// bounding box on the playfield.
type Piece struct {
	Kind       Kind
	X, Y       int
	Rotation   int
	MoveResets int
}

// newPiece creates a piece of kind k at its spawn position in rotation state 0.
func newPiece(k Kind) *Piece {
	pos := SpawnPosition(k)
	return &Piece{Kind: k, X: pos.X, Y: pos.Y}
}

// Cells returns the playfield cells occupied by the piece when rotated by
// rotationOffset quarter turns from its current state.
func (p *Piece) Cells(rotationOffset int) [4]Point {
	var out [4]Point
	for i, off := range Shape(p.Kind, p.Rotation+rotationOffset) {
		out[i] = Point{X: p.X + off.X, Y: p.Y + off.Y}
	}
	return out
}

// Rotate turns the piece by distance quarter turns (-1, 1 or 2) using SRS
// offset resolution against b. The first candidate that fits wins. It
// reports whether the rotation was accepted; a rejected rotation leaves the
// piece untouched.
func (p *Piece) Rotate(distance int, b *Board) bool {
	if distance != -1 && distance != 1 && distance != 2 {
		return false
	}
	next := mod4(p.Rotation + distance)
	from := kickOffsets(p.Kind, p.Rotation)
	to := kickOffsets(p.Kind, next)
	for i := range from {
		dx := from[i].X - to[i].X
		dy := from[i].Y - to[i].Y
		if b.Collides(p, dx, dy, distance) {
			continue
		}
		p.Rotation = next
		p.X += dx
		p.Y -= dy
		return true
	}
	return false
}

// Translate shifts the piece dx columns. A colliding move is rejected.
func (p *Piece) Translate(dx int, b *Board) bool {
	if b.Collides(p, dx, 0, 0) {
		return false
	}
	p.X += dx
	return true
}

// Fall moves the piece one row down. It reports false when the piece is resting.
func (p *Piece) Fall(b *Board) bool {
	if b.Resting(p) {
		return false
	}
	p.Y++
	return true
}
