package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/session"
)

// Func executes one tool call. A returned error means the store itself
// failed and the turn should stop; anything the model can correct is
// reported as a Retry result instead.
type Func func(ctx context.Context, s *session.State, args Args) (Result, error)

// Def describes a tool the model may call.
type Def struct {
	Name        string
	Description string
	Parameters  map[string]any

	// Visible reports whether the tool is offered to the model in the
	// current state. Nil means always.
	Visible func(*session.State) bool

	// MaxRetries caps how many Retry results the tool may return within a
	// single turn. Zero takes the registry default.
	MaxRetries int

	Fn Func
}

func (d *Def) Tool() llm.Tool {
	return llm.Tool{
		Name:        d.Name,
		Description: d.Description,
		Parameters:  d.Parameters,
	}
}

// Always is the visibility predicate for tools offered in every mode.
func Always(*session.State) bool { return true }

// OnlyInMode returns a predicate that offers a tool only while the session
// is in mode m.
func OnlyInMode(m session.Mode) func(*session.State) bool {
	return func(s *session.State) bool { return s.Mode() == m }
}

// Result is the outcome of a tool call: either a success carrying a short
// message and structured content, or a retry carrying the reason the model
// should fix its call.
type Result struct {
	Message string
	Content any

	retry bool
}

func Success(message string, content any) Result {
	return Result{Message: message, Content: content}
}

func Retry(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...), retry: true}
}

func (r Result) IsRetry() bool { return r.retry }

const retrySuffix = "Fix the errors and try again."

// Render produces the text returned to the model for this result.
func (r Result) Render() string {
	if r.retry {
		return r.Message + "\n\n" + retrySuffix
	}
	out, _ := sjson.Set("{}", "message", r.Message)
	if r.Content == nil {
		return out
	}
	raw, err := json.Marshal(r.Content)
	if err != nil {
		out, _ = sjson.Set(out, "content", fmt.Sprintf("%v", r.Content))
		return out
	}
	out, _ = sjson.SetRaw(out, "content", string(raw))
	return out
}
