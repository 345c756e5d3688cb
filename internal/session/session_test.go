package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/switchboard/internal/db"
)

func TestActionLogEvictsOldest(t *testing.T) {
	l := NewActionLog(ActionLogSize)
	for i := 1; i <= 11; i++ {
		l.Record(fmt.Sprintf("Added job with ID: job_%d", i))
	}

	entries := l.Entries()
	require.Len(t, entries, ActionLogSize)
	assert.NotContains(t, entries, "Added job with ID: job_1")
	assert.Equal(t, "Added job with ID: job_2", entries[0])
	assert.Equal(t, "Added job with ID: job_11", entries[len(entries)-1])
}

func TestActionLogPartial(t *testing.T) {
	l := NewActionLog(3)
	assert.Empty(t, l.Entries())

	l.Record("a")
	l.Record("b")
	assert.Equal(t, []string{"a", "b"}, l.Entries())
	assert.Equal(t, 2, l.Len())

	l.Record("c")
	l.Record("d")
	l.Record("e")
	assert.Equal(t, []string{"c", "d", "e"}, l.Entries())
}

func TestActionLogEntriesIsCopy(t *testing.T) {
	l := NewActionLog(2)
	l.Record("a")
	entries := l.Entries()
	entries[0] = "mutated"
	assert.Equal(t, []string{"a"}, l.Entries())
}

func TestNewStateDefaults(t *testing.T) {
	s := New(nil)
	assert.Equal(t, Router, s.Mode())
	assert.Equal(t, DefaultMaxHistoryMessages, s.MaxHistoryMessages)
	assert.Equal(t, DefaultHistoryRetainCount, s.HistoryRetainCount)
	assert.Empty(t, s.RecentActions())
}

func TestWithHistoryLimits(t *testing.T) {
	s := New(nil, WithHistoryLimits(30, 20))
	assert.Equal(t, 30, s.MaxHistoryMessages)
	assert.Equal(t, 20, s.HistoryRetainCount)

	// Zero values keep the defaults.
	s = New(nil, WithHistoryLimits(0, 0))
	assert.Equal(t, DefaultMaxHistoryMessages, s.MaxHistoryMessages)
	assert.Equal(t, DefaultHistoryRetainCount, s.HistoryRetainCount)
}

func TestStateKeepsStore(t *testing.T) {
	store, err := db.Open(db.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := New(store)
	assert.Same(t, store, s.Store)
}

func TestStateConcurrentRecord(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Lock()
			defer s.Unlock()
			s.Record(fmt.Sprintf("action %d", i))
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.RecentActions(), ActionLogSize)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Router, Jobs, Approvals, Estimations} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("billing")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestSelectable(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"jobs", Jobs},
		{"approvals", Approvals},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel, err := ParseSelectable(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.Mode())

			back, ok := SelectableFromMode(tt.want)
			assert.True(t, ok)
			assert.Equal(t, sel, back)
		})
	}

	for _, in := range []string{"router", "estimations", "", "JOBS"} {
		_, err := ParseSelectable(in)
		assert.Error(t, err, "ParseSelectable(%q)", in)
	}

	_, ok := SelectableFromMode(Router)
	assert.False(t, ok)
	_, ok = SelectableFromMode(Estimations)
	assert.False(t, ok)
}

func TestSelectableModePanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { Selectable("estimations").Mode() })
}
