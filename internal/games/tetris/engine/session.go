package engine

import "math/rand"

// Fixed rules.
const (
	// MoveResetLimit caps how many moves or rotations may restart lock delay
	// for a single piece.
	MoveResetLimit = 15

	// LinesPerLevel is the number of cleared lines between level ups.
	LinesPerLevel = 10
)

// Phase is the controller state derived from the session.
type Phase int

const (
	PhaseNoPiece Phase = iota
	PhaseFalling
	PhaseLockDelay
	PhaseGameOver
	PhaseCompleted
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNoPiece:
		return "no_piece"
	case PhaseFalling:
		return "falling"
	case PhaseLockDelay:
		return "lock_delay"
	case PhaseGameOver:
		return "game_over"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Logger receives debug events from a session.
// *log.Logger from github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}

// Options configures a session. Durations are in ticks.
type Options struct {
	Seed         int64
	StartLevel   int // Level at zero lines, at least 1
	LineGoal     int // Lines that complete the session, 0 for endless
	LockDelay    int // Ticks a resting piece waits before locking
	DASDelay     int // Ticks a direction must be held before auto-repeat
	AutoRepeat   int // Ticks between auto-repeat moves
	SoftDropRate int // Ticks between soft-drop moves
	Logger       Logger
}

// DefaultOptions returns the reference timings for a 60 Hz tick.
func DefaultOptions() Options {
	return Options{
		StartLevel:   1,
		LockDelay:    30,
		DASDelay:     8,
		AutoRepeat:   2,
		SoftDropRate: 1,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.StartLevel < 1 {
		o.StartLevel = def.StartLevel
	}
	if o.LineGoal < 0 {
		o.LineGoal = 0
	}
	if o.LockDelay <= 0 {
		o.LockDelay = def.LockDelay
	}
	if o.DASDelay <= 0 {
		o.DASDelay = def.DASDelay
	}
	if o.AutoRepeat <= 0 {
		o.AutoRepeat = def.AutoRepeat
	}
	if o.SoftDropRate <= 0 {
		o.SoftDropRate = def.SoftDropRate
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	return o
}

// Session is one game: it owns the playfield, the falling piece, the
// randomizer and all timers. Player intents are applied immediately and
// Tick advances gravity, lock delay and auto-shift by one step.
// Invalid intents are ignored.
type Session struct {
	opts Options
	log  Logger
	rng  *rand.Rand

	board *Board
	queue *Queue
	piece *Piece

	held     Kind
	holdUsed bool

	score  int
	lines  int
	pieces int
	tick   uint64

	gameActive bool
	completed  bool

	lockDelay    bool
	lockDeadline uint64
	hardDropping bool
	softDropping bool
	das          autoShift
}

// New creates a session ready to play. The first piece spawns on the first Tick.
func New(opts Options) *Session {
	s := &Session{opts: opts.normalized()}
	s.log = s.opts.Logger
	s.Reset()
	return s
}

// Reset starts a new game. The first game uses the configured seed; later
// resets draw a fresh seed from the previous game's generator.
func (s *Session) Reset() {
	seed := s.opts.Seed
	if s.rng != nil {
		seed = s.rng.Int63()
	}
	s.rng = rand.New(rand.NewSource(seed))
	s.board = NewBoard()
	s.queue = NewQueue(s.rng)
	s.piece = nil
	s.held = None
	s.holdUsed = false
	s.score = 0
	s.lines = 0
	s.pieces = 0
	s.tick = 0
	s.gameActive = true
	s.completed = false
	s.lockDelay = false
	s.lockDeadline = 0
	s.hardDropping = false
	s.softDropping = false
	s.das.reset()
	s.log.Debug("session reset", "seed", seed)
}

// Tick advances the simulation by one frame.
func (s *Session) Tick() {
	if !s.gameActive {
		return
	}
	s.tick++

	if s.piece == nil && !s.spawn(s.queue.Dequeue()) {
		return
	}

	g := GravityFor(s.Level())
	if s.tick%uint64(g.Interval) == 0 {
		for range g.Distance {
			s.moveDown()
		}
	}

	if s.lockDelay && s.tick >= s.lockDeadline {
		s.lockExpired()
	}

	s.das.advance(s.tick)

	if s.softDropping && s.tick%uint64(s.opts.SoftDropRate) == 0 {
		s.moveDown()
	}

	if dx := s.das.repeat(s.tick, s.opts.AutoRepeat); dx != 0 {
		s.translate(dx)
	}
}

// --- Intents ---

// MoveLeft shifts the piece one column left.
func (s *Session) MoveLeft() { s.translate(-1) }

// MoveRight shifts the piece one column right.
func (s *Session) MoveRight() { s.translate(1) }

// RotateCW rotates the piece a quarter turn clockwise.
func (s *Session) RotateCW() { s.rotate(1) }

// RotateCCW rotates the piece a quarter turn counter-clockwise.
func (s *Session) RotateCCW() { s.rotate(-1) }

// Rotate180 rotates the piece half a turn.
func (s *Session) Rotate180() { s.rotate(2) }

// StartSoftDrop makes the piece fall on every soft-drop tick regardless of gravity.
func (s *Session) StartSoftDrop() {
	if s.gameActive {
		s.softDropping = true
	}
}

// StopSoftDrop ends soft drop.
func (s *Session) StopSoftDrop() {
	s.softDropping = false
}

// HardDrop drops the piece until it rests and locks it immediately.
func (s *Session) HardDrop() {
	if !s.gameActive || s.piece == nil {
		return
	}
	s.hardDropping = true
	s.softDropping = false
	for s.hardDropping && s.piece != nil {
		s.moveDown()
	}
	s.hardDropping = false
}

// Hold swaps the piece with the hold slot, once per locked piece.
// With an empty slot the next queued piece comes into play.
func (s *Session) Hold() {
	if !s.gameActive || s.piece == nil || s.holdUsed {
		return
	}
	current := s.piece.Kind
	next := s.held
	if next == None {
		next = s.queue.Dequeue()
	}
	s.held = current
	s.holdUsed = true
	s.log.Debug("hold", "held", current, "next", next)
	s.spawn(next)
}

// StartDasLeft begins charging auto-shift to the left.
func (s *Session) StartDasLeft() { s.startDas(Left) }

// StopDasLeft cancels left auto-shift.
func (s *Session) StopDasLeft() { s.das.stop(Left) }

// StartDasRight begins charging auto-shift to the right.
func (s *Session) StartDasRight() { s.startDas(Right) }

// StopDasRight cancels right auto-shift.
func (s *Session) StopDasRight() { s.das.stop(Right) }

func (s *Session) startDas(d Direction) {
	if s.gameActive {
		s.das.start(d, s.tick, s.opts.DASDelay)
	}
}

// --- State machine internals ---

// spawn brings a piece of kind k into play and reports whether it fits.
func (s *Session) spawn(k Kind) bool {
	s.piece = newPiece(k)
	s.cancelLock()
	if s.board.Collides(s.piece, 0, 0, 0) {
		s.gameActive = false
		s.softDropping = false
		s.das.reset()
		s.log.Debug("game over", "kind", k, "score", s.score, "lines", s.lines)
		return false
	}
	s.log.Debug("spawn", "kind", k, "x", s.piece.X, "y", s.piece.Y)
	return true
}

// moveDown drops the piece one row. A piece that cannot fall either locks
// (hard drop or reset limit reached) or starts lock delay with a fresh
// move-reset budget.
func (s *Session) moveDown() {
	if s.piece == nil {
		return
	}
	if s.piece.Fall(s.board) {
		if s.piece.MoveResets < MoveResetLimit {
			s.cancelLock()
		}
		return
	}
	switch {
	case s.piece.MoveResets >= MoveResetLimit:
		s.lock()
	case s.hardDropping:
		s.hardDropping = false
		s.lock()
	case !s.lockDelay:
		s.lockDelay = true
		s.piece.MoveResets = 0
		s.lockDeadline = s.tick + uint64(s.opts.LockDelay)
	}
}

func (s *Session) translate(dx int) {
	if !s.gameActive || s.piece == nil {
		return
	}
	if s.piece.Translate(dx, s.board) {
		s.moveReset()
	}
}

func (s *Session) rotate(distance int) {
	if !s.gameActive || s.piece == nil {
		return
	}
	if s.piece.Rotate(distance, s.board) {
		s.moveReset()
	}
}

// moveReset restarts lock delay after a successful move or rotation.
func (s *Session) moveReset() {
	if !s.lockDelay {
		return
	}
	s.piece.MoveResets++
	s.lockDeadline = s.tick + uint64(s.opts.LockDelay)
}

// lockExpired handles the lock timer firing. A piece that slid off its
// ledge keeps the timer running instead of locking mid-air.
func (s *Session) lockExpired() {
	if s.piece != nil && s.board.Resting(s.piece) {
		s.lock()
		return
	}
	s.lockDeadline = s.tick + uint64(s.opts.LockDelay)
}

// lock commits the piece to the field and scores cleared lines.
func (s *Session) lock() {
	ok, cleared := s.board.Place(s.piece)
	if !ok {
		return
	}
	s.log.Debug("lock", "kind", s.piece.Kind, "x", s.piece.X, "y", s.piece.Y, "rotation", s.piece.Rotation)
	s.commitLines(cleared)
	s.cancelLock()
	s.holdUsed = false
	s.piece = nil
	s.pieces++

	if s.opts.LineGoal > 0 && s.lines >= s.opts.LineGoal {
		s.completed = true
		s.gameActive = false
		s.softDropping = false
		s.das.reset()
		s.log.Debug("line goal reached", "lines", s.lines, "ticks", s.tick)
	}
}

func (s *Session) commitLines(cleared int) {
	if cleared == 0 {
		return
	}
	level := s.Level()
	s.lines += cleared
	s.score += LineScore(cleared, level)
	s.log.Debug("lines cleared", "count", cleared, "level", level, "score", s.score)
}

func (s *Session) cancelLock() {
	s.lockDelay = false
	s.lockDeadline = 0
}

// --- Queries ---

// Phase returns the current controller state.
func (s *Session) Phase() Phase {
	switch {
	case s.completed:
		return PhaseCompleted
	case !s.gameActive:
		return PhaseGameOver
	case s.piece == nil:
		return PhaseNoPiece
	case s.lockDelay:
		return PhaseLockDelay
	default:
		return PhaseFalling
	}
}

// Field returns a copy of the playfield.
func (s *Session) Field() [Height][Width]Kind {
	return s.board.Cells()
}

// Cell returns the locked content of one playfield cell.
func (s *Session) Cell(x, y int) Kind {
	return s.board.Cell(x, y)
}

// ActivePiece returns a copy of the falling piece. ok is false when there is none.
func (s *Session) ActivePiece() (p Piece, ok bool) {
	if s.piece == nil {
		return Piece{}, false
	}
	return *s.piece, true
}

// Cells returns the playfield cells of the falling piece.
func (s *Session) Cells() ([4]Point, bool) {
	if s.piece == nil {
		return [4]Point{}, false
	}
	return s.piece.Cells(0), true
}

// GhostOffset returns how many rows the piece would fall if hard-dropped.
// It is 0 without a piece.
func (s *Session) GhostOffset() int {
	if s.piece == nil {
		return 0
	}
	for i := range Height + 1 {
		if s.board.Collides(s.piece, 0, -i, 0) {
			return max(i-1, 0)
		}
	}
	return 0
}

// Preview returns up to n upcoming kinds.
func (s *Session) Preview(n int) []Kind {
	return s.queue.Peek(n)
}

// Held returns the kind in the hold slot, None when empty.
func (s *Session) Held() Kind { return s.held }

// HoldUsed reports whether hold was already used for the current piece.
func (s *Session) HoldUsed() bool { return s.holdUsed }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of cleared lines.
func (s *Session) Lines() int { return s.lines }

// Level is derived from cleared lines on every call.
func (s *Session) Level() int {
	return s.opts.StartLevel + s.lines/LinesPerLevel
}

// Active reports whether the game is still being played.
func (s *Session) Active() bool { return s.gameActive }

// Completed reports whether the line goal was reached.
func (s *Session) Completed() bool { return s.completed }

// LockDelayActive reports whether the lock timer is running.
func (s *Session) LockDelayActive() bool { return s.lockDelay }

// SoftDropping reports whether soft drop is engaged.
func (s *Session) SoftDropping() bool { return s.softDropping }

// Ticks returns the number of ticks played.
func (s *Session) Ticks() uint64 { return s.tick }

// PiecesLocked returns how many pieces have been locked.
func (s *Session) PiecesLocked() int { return s.pieces }

// LineGoal returns the configured line goal, 0 when endless.
func (s *Session) LineGoal() int { return s.opts.LineGoal }
