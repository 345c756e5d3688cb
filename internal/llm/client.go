package llm

import "context"

type Message struct {
	Role       string     `json:"role"` // user, assistant, system
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // for tool result messages
	IsError    bool       `json:"is_error,omitempty"`     // tool result asks the model to retry
}

type ToolCall struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

type Response struct {
	Content   string
	ToolCalls []ToolCall
}

type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

type Client interface {
	Chat(ctx context.Context, systemPrompt string, messages []Message, tools []Tool) (*Response, error)
}

// IsPrompt reports whether m was authored by the user, as opposed to a tool
// result or a model reply.
func IsPrompt(m Message) bool {
	return m.Role == "user" && m.ToolCallID == ""
}

// LastPromptIndex returns the index of the most recent user prompt, or -1.
func LastPromptIndex(messages []Message) int {
	for i := len(messages) - 1; i >= 0; i-- {
		if IsPrompt(messages[i]) {
			return i
		}
	}
	return -1
}
