package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/chris/switchboard/internal/llm"
)

// request is what the agent sent on one Chat call.
type request struct {
	messages []llm.Message
	tools    []string
}

func (r request) hasTool(name string) bool {
	for _, t := range r.tools {
		if t == name {
			return true
		}
	}
	return false
}

// scriptedClient answers Chat calls from a fixed list of steps.
type scriptedClient struct {
	mu       sync.Mutex
	steps    []func(request) (*llm.Response, error)
	requests []request
}

func script(steps ...func(request) (*llm.Response, error)) *scriptedClient {
	return &scriptedClient{steps: steps}
}

func (c *scriptedClient) Chat(ctx context.Context, _ string, messages []llm.Message, tools []llm.Tool) (*llm.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := request{messages: append([]llm.Message(nil), messages...)}
	for _, t := range tools {
		req.tools = append(req.tools, t.Name)
	}
	c.requests = append(c.requests, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.steps) == 0 {
		return nil, errors.New("script exhausted")
	}
	step := c.steps[0]
	c.steps = c.steps[1:]
	return step(req)
}

func reply(text string) func(request) (*llm.Response, error) {
	return func(request) (*llm.Response, error) {
		return &llm.Response{Content: text}, nil
	}
}

var callSeq int

func callTool(name, argsJSON string) func(request) (*llm.Response, error) {
	return func(request) (*llm.Response, error) {
		var params map[string]any
		if err := json.Unmarshal([]byte(argsJSON), &params); err != nil {
			return nil, err
		}
		callSeq++
		return &llm.Response{ToolCalls: []llm.ToolCall{{
			ID:     fmt.Sprintf("call_%d", callSeq),
			Name:   name,
			Params: params,
		}}}, nil
	}
}

// lastToolResult returns the newest tool result the model was shown.
func lastToolResult(r request) llm.Message {
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].ToolCallID != "" {
			return r.messages[i]
		}
	}
	return llm.Message{}
}
