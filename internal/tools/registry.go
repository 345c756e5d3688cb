package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/metrics"
	"github.com/chris/switchboard/internal/session"
)

// DefaultMaxRetries is the per-tool, per-turn retry budget.
const DefaultMaxRetries = 5

// Registry holds tool definitions in registration order.
type Registry struct {
	mu         sync.RWMutex
	tools      map[string]*Def
	order      []string
	maxRetries int
}

// NewRegistry returns a registry holding the router, jobs and approvals
// tools. maxRetries <= 0 uses DefaultMaxRetries.
func NewRegistry(maxRetries int) *Registry {
	r := newRegistry(maxRetries)
	r.Register(defRouteToAgent())
	for _, d := range jobTools() {
		d.Visible = OnlyInMode(session.Jobs)
		r.Register(d)
	}
	for _, d := range approvalTools() {
		d.Visible = OnlyInMode(session.Approvals)
		r.Register(d)
	}
	return r
}

func newRegistry(maxRetries int) *Registry {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Registry{tools: make(map[string]*Def), maxRetries: maxRetries}
}

// Register adds a tool, replacing any existing tool with the same name.
func (r *Registry) Register(def *Def) {
	if def.Visible == nil {
		def.Visible = Always
	}
	if def.MaxRetries <= 0 {
		def.MaxRetries = r.maxRetries
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = def
}

// RetryBudget is the number of retries name may use in one turn. Unknown
// names share the registry default.
func (r *Registry) RetryBudget(name string) int {
	if d, ok := r.Get(name); ok {
		return d.MaxRetries
	}
	return r.maxRetries
}

func (r *Registry) Get(name string) (*Def, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.tools[name]
	return d, ok
}

// All returns every tool in registration order.
func (r *Registry) All() []*Def {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Def, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Visible returns the tools offered in the session's current state.
func (r *Registry) Visible(s *session.State) []*Def {
	var out []*Def
	for _, d := range r.All() {
		if d.Visible(s) {
			out = append(out, d)
		}
	}
	return out
}

// Tools is Visible in the shape the LLM clients take.
func (r *Registry) Tools(s *session.State) []llm.Tool {
	defs := r.Visible(s)
	out := make([]llm.Tool, len(defs))
	for i, d := range defs {
		out[i] = d.Tool()
	}
	return out
}

// Execute runs one tool call against the session. Calls to tools that do
// not exist or are hidden in the current mode come back as retries so the
// model can pick again.
func (r *Registry) Execute(ctx context.Context, s *session.State, name string, params map[string]any) (Result, error) {
	def, ok := r.Get(name)
	if !ok || !def.Visible(s) {
		metrics.ToolCalls.WithLabelValues("", metrics.OutcomeUnknown).Inc()
		log.Warn().Str("tool", name).Str("mode", s.Mode().String()).Msg("unknown or hidden tool")
		return Retry("Unknown tool name: %s. Available tools: %s", name, r.visibleNames(s)), nil
	}

	args, err := ParseArgs(params)
	if err != nil {
		metrics.ToolCalls.WithLabelValues(name, metrics.OutcomeRetry).Inc()
		return Retry("Invalid arguments: %v", err), nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	s.Lock()
	res, err := def.Fn(ctx, s, args)
	s.Unlock()

	switch {
	case err != nil:
		metrics.ToolCalls.WithLabelValues(name, metrics.OutcomeError).Inc()
		return Result{}, fmt.Errorf("running %s: %w", name, err)
	case res.IsRetry():
		metrics.ToolCalls.WithLabelValues(name, metrics.OutcomeRetry).Inc()
		log.Debug().Str("tool", name).Str("reason", res.Message).Msg("tool asked for retry")
	default:
		metrics.ToolCalls.WithLabelValues(name, metrics.OutcomeOK).Inc()
	}
	return res, nil
}

func (r *Registry) visibleNames(s *session.State) string {
	var names []string
	for _, d := range r.Visible(s) {
		names = append(names, d.Name)
	}
	return strings.Join(names, ", ")
}
