package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/chris/switchboard/internal/db"
	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/metrics"
	"github.com/chris/switchboard/internal/session"
)

// Conversation is one user's session: its own record store, state and
// transcript. Turns are sequential.
type Conversation struct {
	agent *Agent
	store *db.DB
	state *session.State

	mu      sync.Mutex
	history []llm.Message
}

// StartSession opens a fresh in-memory store and starts a conversation in
// router mode.
func (a *Agent) StartSession(opts ...session.Option) (*Conversation, error) {
	store, err := db.Open(db.InMemory)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return &Conversation{
		agent: a,
		store: store,
		state: session.New(store, opts...),
	}, nil
}

// Send runs one turn. When the turn fails the transcript is left as it was
// before it; record changes made by tools that already ran are kept.
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reply, history, err := c.agent.Run(ctx, c.state, c.history, text)
	if err != nil {
		metrics.Turns.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.Turns.WithLabelValues("ok").Inc()
	c.history = history
	return reply, nil
}

// State exposes the session for background work such as the deadline
// sweep.
func (c *Conversation) State() *session.State { return c.state }

// History returns a copy of the transcript.
func (c *Conversation) History() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Message, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Conversation) Close() error {
	return c.store.Close()
}
