package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/session"
	"github.com/chris/switchboard/internal/tools"
)

// ErrNoUserPrompt means context injection ran on a transcript with nothing
// for the user to have asked.
var ErrNoUserPrompt = errors.New("no user prompt in transcript")

// InjectContext returns a copy of messages whose latest user prompt carries
// the session's live context: a job index in jobs mode, and the recent
// action log in every mode once it has entries. Other modes add nothing of
// their own. The input slice is not modified.
func InjectContext(s *session.State, messages []llm.Message) ([]llm.Message, error) {
	p := llm.LastPromptIndex(messages)
	if p < 0 {
		return nil, ErrNoUserPrompt
	}

	var b strings.Builder
	if s.Mode() == session.Jobs {
		index, err := tools.JobIndex(s.Store)
		if err != nil {
			return nil, fmt.Errorf("building job context: %w", err)
		}
		if index == "" {
			index = "No jobs found."
		}
		b.WriteString("## Current jobs\n")
		b.WriteString(index)
		b.WriteString("\n\n")
	}
	b.WriteString(messages[p].Content)
	if actions := s.RecentActions(); len(actions) > 0 {
		b.WriteString("\n\n## Recent actions\n- ")
		b.WriteString(strings.Join(actions, "\n- "))
	}

	out := make([]llm.Message, len(messages))
	copy(out, messages)
	out[p].Content = b.String()
	return out, nil
}
