package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/chris/switchboard/internal/db"
	"github.com/chris/switchboard/internal/metrics"
	"github.com/chris/switchboard/internal/session"
)

// DefaultSpec is how often open jobs are checked for missed deadlines.
const DefaultSpec = "@every 5m"

// Scheduler periodically looks for open jobs whose deadline has passed and
// notes each one in its session's action log, so the next turn's context
// mentions it.
type Scheduler struct {
	cron *cron.Cron
	spec string
	now  func() time.Time

	mu      sync.Mutex
	watched map[*session.State]map[string]bool // state -> notified job@deadline keys
}

func New(spec string) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		now:     time.Now,
		watched: make(map[*session.State]map[string]bool),
	}
}

// Watch adds a session to the sweep.
func (s *Scheduler) Watch(st *session.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watched[st]; !ok {
		s.watched[st] = make(map[string]bool)
	}
}

func (s *Scheduler) Unwatch(st *session.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watched, st)
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Sweep); err != nil {
		return fmt.Errorf("scheduling deadline check %q: %w", s.spec, err)
	}
	s.cron.Start()
	log.Info().Str("spec", s.spec).Msg("scheduler started")
	return nil
}

// Stop halts the cron and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep checks every watched session once.
func (s *Scheduler) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for st, seen := range s.watched {
		n, err := sweep(st, seen, now)
		if err != nil {
			log.Error().Err(err).Msg("deadline sweep failed")
			continue
		}
		if n > 0 {
			log.Info().Int("overdue", n).Msg("recorded overdue jobs")
		}
	}
}

var openStatuses = []db.JobStatus{db.JobPending, db.JobInProgress}

// sweep records a notice for each newly overdue job and returns how many it
// wrote. A job is announced again only if its deadline changes.
func sweep(st *session.State, seen map[string]bool, now time.Time) (int, error) {
	st.Lock()
	defer st.Unlock()

	overdue, err := st.Store.ListJobs(db.JobFilter{To: &now, Statuses: openStatuses})
	if err != nil {
		return 0, fmt.Errorf("listing overdue jobs: %w", err)
	}

	current := make(map[string]bool, len(overdue))
	written := 0
	for _, j := range overdue {
		if !j.Deadline.Before(now) {
			continue
		}
		key := j.ID + "@" + j.Deadline.UTC().Format(time.RFC3339Nano)
		current[key] = true
		if seen[key] {
			continue
		}
		st.Record(fmt.Sprintf("Job overdue: %s (%s), due %s", j.Name, j.ID, humanize.RelTime(j.Deadline, now, "ago", "from now")))
		metrics.OverdueNotices.Inc()
		written++
	}

	// Forget jobs that are no longer overdue so the set stays bounded.
	for k := range seen {
		if !current[k] {
			delete(seen, k)
		}
	}
	for k := range current {
		seen[k] = true
	}
	return written, nil
}
