package session

// ActionLogSize is how many recent actions a session remembers.
const ActionLogSize = 10

// ActionLog is a bounded FIFO of human-readable action descriptions.
// When full, recording a new entry evicts the oldest.
type ActionLog struct {
	entries []string
	start   int
	size    int
}

func NewActionLog(capacity int) *ActionLog {
	if capacity < 1 {
		capacity = 1
	}
	return &ActionLog{entries: make([]string, capacity)}
}

func (l *ActionLog) Record(action string) {
	if l.size < len(l.entries) {
		l.entries[(l.start+l.size)%len(l.entries)] = action
		l.size++
		return
	}
	l.entries[l.start] = action
	l.start = (l.start + 1) % len(l.entries)
}

// Entries returns a copy of the log, oldest first.
func (l *ActionLog) Entries() []string {
	out := make([]string, l.size)
	for i := range out {
		out[i] = l.entries[(l.start+i)%len(l.entries)]
	}
	return out
}

func (l *ActionLog) Len() int { return l.size }
