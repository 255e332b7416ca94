package engine

// Direction is a horizontal auto-shift direction.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) delta() int {
	if d == Left {
		return -1
	}
	return 1
}

func (d Direction) opposite() Direction {
	if d == Left {
		return Right
	}
	return Left
}

// autoShift tracks delayed auto-shift for both directions as tick deadlines.
// A deadline of zero means no timer is pending.
type autoShift struct {
	deadline [2]uint64
	armed    [2]bool
}

// start schedules auto-repeat for d and disarms the opposite direction.
func (a *autoShift) start(d Direction, now uint64, delay int) {
	a.deadline[d] = now + uint64(max(delay, 1))
	a.armed[d.opposite()] = false
}

// stop cancels the timer and auto-repeat of d.
func (a *autoShift) stop(d Direction) {
	a.deadline[d] = 0
	a.armed[d] = false
}

// advance arms any direction whose deadline has passed. Arming one
// direction cancels the other.
func (a *autoShift) advance(now uint64) {
	for _, d := range [2]Direction{Left, Right} {
		if a.deadline[d] == 0 || now < a.deadline[d] {
			continue
		}
		a.deadline[d] = 0
		a.armed[d] = true
		a.deadline[d.opposite()] = 0
		a.armed[d.opposite()] = false
	}
}

// repeat returns the column delta auto-shift applies on this tick.
func (a *autoShift) repeat(now uint64, rate int) int {
	rate = max(rate, 1)
	if now%uint64(rate) != 0 {
		return 0
	}
	switch {
	case a.armed[Left]:
		return Left.delta()
	case a.armed[Right]:
		return Right.delta()
	}
	return 0
}

// isArmed reports whether auto-repeat is currently active for d.
func (a *autoShift) isArmed(d Direction) bool {
	return a.armed[d]
}

func (a *autoShift) reset() {
	*a = autoShift{}
}
