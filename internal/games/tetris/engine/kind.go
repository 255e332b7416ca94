// Package engine implements the rules and state of a falling-block puzzle
// game using the Super Rotation System, a 7-bag randomizer, lock delay with
// move reset, delayed auto-shift and hold.
//
// The engine is tick-driven and single-threaded. It has no knowledge of
// terminals, windows or key events; a presentation layer calls the intent
// methods on Session, advances it with Tick and reads the result back.
package engine

// Kind identifies one of the seven tetrominoes.
// The zero value is None and doubles as the empty playfield cell.
type Kind uint8

const (
	None Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

// Kinds lists every piece kind in catalog order.
var Kinds = [7]Kind{I, J, L, O, S, T, Z}

// Valid reports whether k is one of the seven piece kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= Z
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	default:
		return "."
	}
}

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// figures holds the occupied cells of every kind and rotation state,
// numbered row-major inside the kind's bounding box (5x5 for I, 3x3 otherwise).
var figures = [7][4][4]int{
	{{11, 12, 13, 14}, {7, 12, 17, 22}, {10, 11, 12, 13}, {2, 7, 12, 17}}, // I
	{{0, 3, 4, 5}, {1, 2, 4, 7}, {3, 4, 5, 8}, {1, 4, 6, 7}},             // J
	{{2, 3, 4, 5}, {1, 4, 7, 8}, {3, 4, 5, 6}, {0, 1, 4, 7}},             // L
	{{1, 2, 4, 5}, {4, 5, 7, 8}, {3, 4, 6, 7}, {0, 1, 3, 4}},             // O
	{{1, 2, 3, 4}, {1, 4, 5, 8}, {4, 5, 6, 7}, {0, 3, 4, 7}},             // S
	{{1, 3, 4, 5}, {1, 4, 5, 7}, {3, 4, 5, 7}, {1, 3, 4, 7}},             // T
	{{0, 1, 4, 5}, {2, 4, 5, 7}, {3, 4, 7, 8}, {1, 3, 4, 6}},             // Z
}

// SRS offset data. Y grows upward in these tables, so a table delta dy moves
// the piece -dy rows on the playfield.
var (
	offsetsJLSTZ = [4][5]Point{
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	}

	offsetsI = [4][5]Point{
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
		{{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, -2}},
		{{-1, 1}, {1, 1}, {-2, 1}, {1, 0}, {-2, 0}},
		{{0, 1}, {0, 1}, {0, 1}, {0, -1}, {0, 2}},
	}

	offsetsO = [4]Point{
		{0, 0},
		{0, -1},
		{-1, -1},
		{-1, 0},
	}
)

// shapes is the catalog expanded into cell offsets once at startup.
var shapes [8][4][4]Point

func init() {
	for i, k := range Kinds {
		size := BoxSize(k)
		for rot := range 4 {
			for n, idx := range figures[i][rot] {
				shapes[k][rot][n] = Point{X: idx % size, Y: idx / size}
			}
		}
	}
}

// BoxSize returns the side length of the kind's bounding box.
func BoxSize(k Kind) int {
	switch {
	case k == I:
		return 5
	case k.Valid():
		return 3
	default:
		return 0
	}
}

// Shape returns the occupied cell offsets of kind k in the given rotation
// state, relative to the top-left corner of its bounding box.
func Shape(k Kind, rotation int) [4]Point {
	if !k.Valid() {
		return [4]Point{}
	}
	return shapes[k][mod4(rotation)]
}

// SpawnPosition returns where a freshly spawned piece of kind k places the
// top-left corner of its bounding box. The I box sits one cell up and left
// so that every kind appears on the same rows.
func SpawnPosition(k Kind) Point {
	if k == I {
		return Point{X: 2, Y: 0}
	}
	return Point{X: 3, Y: 1}
}

// kickOffsets returns the SRS offset candidates of kind k for a rotation state.
func kickOffsets(k Kind, rotation int) []Point {
	rotation = mod4(rotation)
	switch k {
	case I:
		return offsetsI[rotation][:]
	case O:
		return offsetsO[rotation : rotation+1]
	default:
		return offsetsJLSTZ[rotation][:]
	}
}

func mod4(n int) int {
	return ((n % 4) + 4) % 4
}
