package organizer

// Action is one intended file move.
type Action struct {
	Source      string
	Destination string
	Size        int64
}

// Plan is the ordered set of moves a run intends to perform. A dry run stops
// here; Execute carries the plan out.
type Plan struct {
	RunID     string
	Directory string
	Mode      string
	Pattern   string
	Actions   []Action

	// SkippedInPlace counts files that matched but already live in their
	// destination directory.
	SkippedInPlace int
	// MalformedJournalLines counts journal lines dropped while building a
	// reverse plan.
	MalformedJournalLines int
}

// Empty reports whether the plan has nothing to do.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Actions) == 0
}

// TotalBytes sums the sizes of all planned moves.
func (p *Plan) TotalBytes() int64 {
	var total int64
	for _, action := range p.Actions {
		total += action.Size
	}
	return total
}

// Summary reports what Execute actually did.
type Summary struct {
	RunID      string
	Moved      int
	Failed     int
	Skipped    int
	BytesMoved int64
	BackupDir  string

	// Missing counts reverse records whose organized file no longer
	// existed when its turn in the replay came.
	Missing int
}
