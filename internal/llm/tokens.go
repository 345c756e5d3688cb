package llm

import "encoding/json"

// charsPerToken approximates English text. Only used for logging how large
// each model request is, so precision does not matter.
const charsPerToken = 4

const (
	messageOverhead  = 4 // role tokens, delimiters
	toolCallOverhead = 4
	toolDefOverhead  = 10
)

// EstimateTokens returns a rough token count for a string, rounded up.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return (len(s) + charsPerToken - 1) / charsPerToken
}

// EstimateMessageTokens covers content, tool calls, and per-message framing.
func EstimateMessageTokens(m Message) int {
	tokens := messageOverhead + EstimateTokens(m.Content)
	for _, tc := range m.ToolCalls {
		tokens += EstimateTokens(tc.Name) + toolCallOverhead
		if params, err := json.Marshal(tc.Params); err == nil {
			tokens += EstimateTokens(string(params))
		}
	}
	if m.ToolCallID != "" {
		tokens += EstimateTokens(m.ToolCallID) + 2
	}
	return tokens
}

func EstimateMessagesTokens(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += EstimateMessageTokens(m)
	}
	return total
}

// EstimateToolsTokens counts tool schemas, which are sent with every request.
func EstimateToolsTokens(tools []Tool) int {
	total := 0
	for _, t := range tools {
		total += EstimateTokens(t.Name) + EstimateTokens(t.Description) + toolDefOverhead
		if schema, err := json.Marshal(t.Parameters); err == nil {
			total += EstimateTokens(string(schema))
		}
	}
	return total
}

// EstimateRequestTokens is the approximate size of one Chat call.
func EstimateRequestTokens(systemPrompt string, messages []Message, tools []Tool) int {
	return EstimateTokens(systemPrompt) + EstimateMessagesTokens(messages) + EstimateToolsTokens(tools)
}
