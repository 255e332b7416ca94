package engine

// PreviewSize is the number of upcoming pieces included in a snapshot.
const PreviewSize = 5

// Snapshot captures everything a renderer needs after a tick.
// It shares no memory with the session.
type Snapshot struct {
	Tick        uint64
	Phase       Phase
	Field       [Height][Width]Kind
	Piece       Piece
	HasPiece    bool
	Cells       [4]Point
	GhostOffset int
	Next        []Kind
	Held        Kind
	HoldUsed    bool
	Score       int
	Level       int
	Lines       int
	LineGoal    int
	Active      bool
	LockDelay   bool
	SoftDrop    bool
}

// Snapshot returns a read-only copy of the session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.tick,
		Phase:       s.Phase(),
		Field:       s.board.Cells(),
		GhostOffset: s.GhostOffset(),
		Next:        s.queue.Peek(PreviewSize),
		Held:        s.held,
		HoldUsed:    s.holdUsed,
		Score:       s.score,
		Level:       s.Level(),
		Lines:       s.lines,
		LineGoal:    s.opts.LineGoal,
		Active:      s.gameActive,
		LockDelay:   s.lockDelay,
		SoftDrop:    s.softDropping,
	}
	if s.piece != nil {
		snap.Piece = *s.piece
		snap.HasPiece = true
		snap.Cells = s.piece.Cells(0)
	}
	return snap
}
