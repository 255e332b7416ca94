package engine

import "math/rand"

// refillThreshold is the buffered count below which a new bag is appended.
const refillThreshold = 6

// Queue is the 7-bag randomizer feeding the upcoming pieces.
// Every bag-aligned group of seven draws contains each kind exactly once.
type Queue struct {
	rng     *rand.Rand
	pending []Kind
	bags    int
}

// NewQueue creates an empty queue whose bags are shuffled by rng.
func NewQueue(rng *rand.Rand) *Queue {
	return &Queue{rng: rng}
}

// RefillIfNeeded appends a shuffled bag when fewer than six kinds are buffered.
func (q *Queue) RefillIfNeeded() {
	if len(q.pending) >= refillThreshold {
		return
	}
	bag := Kinds
	q.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	q.pending = append(q.pending, bag[:]...)
	q.bags++
}

// Dequeue removes and returns the next kind, refilling first if needed.
func (q *Queue) Dequeue() Kind {
	q.RefillIfNeeded()
	next := q.pending[0]
	q.pending = q.pending[1:]
	return next
}

// Peek returns up to n upcoming kinds without consuming them.
// Fewer than n are returned when the buffer is shorter.
func (q *Queue) Peek(n int) []Kind {
	if n <= 0 {
		return nil
	}
	n = min(n, len(q.pending))
	out := make([]Kind, n)
	copy(out, q.pending[:n])
	return out
}

// Len returns the number of buffered kinds.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Bags returns how many bags have been generated so far.
func (q *Queue) Bags() int {
	return q.bags
}
