package session

import (
	"sync"

	"github.com/chris/switchboard/internal/db"
)

const (
	DefaultMaxHistoryMessages = 15
	DefaultHistoryRetainCount = 10
)

// State is the mutable per-conversation container threaded through every
// tool call and both per-turn hooks. Tool executions and background writers
// hold Lock for the whole read-modify-log sequence; the individual accessors
// are safe on their own.
type State struct {
	mu sync.Mutex

	modeMu sync.RWMutex
	mode   Mode

	Store *db.DB

	actionsMu sync.Mutex
	actions   *ActionLog

	// MaxHistoryMessages is the transcript length that triggers trimming;
	// HistoryRetainCount is how many trailing messages survive it.
	MaxHistoryMessages int
	HistoryRetainCount int
}

type Option func(*State)

func WithHistoryLimits(maxMessages, retain int) Option {
	return func(s *State) {
		if maxMessages > 0 {
			s.MaxHistoryMessages = maxMessages
		}
		if retain > 0 {
			s.HistoryRetainCount = retain
		}
	}
}

// New creates the state for one conversation, starting in router mode.
func New(store *db.DB, opts ...Option) *State {
	s := &State{
		mode:               Router,
		Store:              store,
		actions:            NewActionLog(ActionLogSize),
		MaxHistoryMessages: DefaultMaxHistoryMessages,
		HistoryRetainCount: DefaultHistoryRetainCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lock serializes mutation of the record store and the action log.
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

func (s *State) Mode() Mode {
	s.modeMu.RLock()
	defer s.modeMu.RUnlock()
	return s.mode
}

func (s *State) SetMode(m Mode) {
	s.modeMu.Lock()
	defer s.modeMu.Unlock()
	s.mode = m
}

func (s *State) Record(action string) {
	s.actionsMu.Lock()
	defer s.actionsMu.Unlock()
	s.actions.Record(action)
}

// RecentActions returns the action log, oldest first.
func (s *State) RecentActions() []string {
	s.actionsMu.Lock()
	defer s.actionsMu.Unlock()
	return s.actions.Entries()
}
