package engine

// Gravity describes how fast pieces fall at a level: every Interval ticks
// the piece moves Distance rows down.
type Gravity struct {
	Interval int
	Distance int
}

// gravityTable is indexed by level-1. Levels past the end use the last row.
var gravityTable = []Gravity{
	{60, 1},
	{48, 1},
	{37, 1},
	{28, 1},
	{21, 1},
	{16, 1},
	{11, 1},
	{8, 1},
	{6, 1},
	{4, 1},
	{3, 1},
	{2, 1},
	{1, 1},
	{1, 2},
}

// GravityFor returns the gravity of a level, clamped to the table.
func GravityFor(level int) Gravity {
	idx := min(max(level-1, 0), len(gravityTable)-1)
	return gravityTable[idx]
}

// lineScores holds the points per cleared line count, multiplied by level.
var lineScores = [5]int{0, 100, 300, 500, 800}

// LineScore returns the points awarded for clearing lines rows in one pass.
func LineScore(lines, level int) int {
	if lines <= 0 || lines >= len(lineScores) {
		return 0
	}
	return lineScores[lines] * level
}
