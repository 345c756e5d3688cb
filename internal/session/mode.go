package session

import "fmt"

// Mode is the active role of the assistant. It decides which tools are
// callable and what context is injected into the prompt.
type Mode int

const (
	Router Mode = iota
	Jobs
	Approvals
	// Estimations is reserved; it has no tools yet.
	Estimations
)

var modeNames = [...]string{
	Router:      "router",
	Jobs:        "jobs",
	Approvals:   "approvals",
	Estimations: "estimations",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Selectable is the subset of modes the router tool may switch to.
type Selectable string

const (
	SelectJobs      Selectable = "jobs"
	SelectApprovals Selectable = "approvals"
)

// Selectables lists the values accepted by the router tool.
var Selectables = []Selectable{SelectJobs, SelectApprovals}

func ParseSelectable(s string) (Selectable, error) {
	for _, sel := range Selectables {
		if string(sel) == s {
			return sel, nil
		}
	}
	return "", fmt.Errorf("invalid agent mode %q: must be one of jobs, approvals", s)
}

// Mode maps a selectable value onto the full mode set. Callers only obtain
// Selectable values through ParseSelectable, so anything else is a bug.
func (s Selectable) Mode() Mode {
	switch s {
	case SelectJobs:
		return Jobs
	case SelectApprovals:
		return Approvals
	default:
		panic(fmt.Sprintf("session: invalid selectable agent mode %q", string(s)))
	}
}

// SelectableFromMode reports the router value for m, if m can be selected.
func SelectableFromMode(m Mode) (Selectable, bool) {
	switch m {
	case Jobs:
		return SelectJobs, true
	case Approvals:
		return SelectApprovals, true
	case Router, Estimations:
		return "", false
	default:
		return "", false
	}
}
