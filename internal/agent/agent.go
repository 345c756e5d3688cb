package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/metrics"
	"github.com/chris/switchboard/internal/session"
	"github.com/chris/switchboard/internal/tools"
)

const maxToolRounds = 10

const maxRoundsReply = "I hit the maximum number of tool calls. Here's what I have so far."

// Agent runs turns against a model with a mode-filtered tool set. One Agent
// can serve many conversations; everything per-conversation lives in the
// session.State passed to Run.
type Agent struct {
	client       llm.Client
	tools        *tools.Registry
	systemPrompt string
}

func New(client llm.Client, registry *tools.Registry) *Agent {
	return &Agent{client: client, tools: registry, systemPrompt: llm.SystemPrompt}
}

// Run takes a user message, runs the tool-calling loop, and returns the
// final text response together with the updated transcript. The returned
// transcript holds the prompt as the user wrote it; the live context is
// only added to what is sent to the model.
func (a *Agent) Run(ctx context.Context, s *session.State, history []llm.Message, prompt string) (string, []llm.Message, error) {
	messages := make([]llm.Message, len(history), len(history)+1)
	copy(messages, history)
	messages = append(messages, llm.Message{Role: "user", Content: prompt})

	if trimmed := llm.TrimHistory(messages, s.MaxHistoryMessages, s.HistoryRetainCount); len(trimmed) < len(messages) {
		log.Debug().Int("from", len(messages)).Int("to", len(trimmed)).Msg("history trimmed")
		metrics.HistoryTrims.Inc()
		messages = trimmed
	}

	outbound, err := InjectContext(s, messages)
	if err != nil {
		return "", nil, err
	}

	retries := make(map[string]int)
	for i := 0; i < maxToolRounds; i++ {
		visible := a.tools.Tools(s)
		log.Debug().
			Str("mode", s.Mode().String()).
			Int("tools", len(visible)).
			Int("tokens", llm.EstimateRequestTokens(a.systemPrompt, outbound, visible)).
			Msg("calling model")

		resp, err := a.client.Chat(ctx, a.systemPrompt, outbound, visible)
		if err != nil {
			return "", nil, fmt.Errorf("llm chat: %w", err)
		}

		// No tool calls: final answer
		if len(resp.ToolCalls) == 0 {
			messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content})
			return resp.Content, messages, nil
		}

		call := llm.Message{Role: "assistant", Content: resp.Content, ToolCalls: resp.ToolCalls}
		messages = append(messages, call)
		outbound = append(outbound, call)

		for _, tc := range resp.ToolCalls {
			res, err := a.tools.Execute(ctx, s, tc.Name, tc.Params)
			if err != nil {
				return "", nil, err
			}
			if res.IsRetry() {
				retries[tc.Name]++
				if budget := a.tools.RetryBudget(tc.Name); retries[tc.Name] > budget {
					return "", nil, fmt.Errorf("tool %s exceeded max retries (%d)", tc.Name, budget)
				}
			}

			content := res.Render()
			log.Debug().Str("tool", tc.Name).Bool("retry", res.IsRetry()).Str("result", truncate(content, 200)).Msg("tool called")
			result := llm.Message{
				Role:       "user",
				Content:    content,
				ToolCallID: tc.ID,
				IsError:    res.IsRetry(),
			}
			messages = append(messages, result)
			outbound = append(outbound, result)
		}
	}

	log.Warn().Int("rounds", maxToolRounds).Msg("tool round limit reached")
	messages = append(messages, llm.Message{Role: "assistant", Content: maxRoundsReply})
	return maxRoundsReply, messages, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
