package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicChat(t *testing.T) {
	var got anthRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-Api-Key"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"content":[
			{"type":"text","text":"Switching."},
			{"type":"tool_use","id":"tu_1","name":"route_to_agent","input":{"agent_mode":"jobs"}}
		]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient("key", "", "", 0)
	c.endpoint = srv.URL

	resp, err := c.Chat(context.Background(), "system", []Message{
		{Role: "user", Content: "switch to jobs"},
	}, []Tool{{Name: "route_to_agent", Description: "Switch mode", Parameters: ObjReq(map[string]any{
		"agent_mode": Enum("Mode", "jobs", "approvals"),
	}, "agent_mode")}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if got.MaxTokens != defaultMaxTokens {
		t.Errorf("expected max_tokens %d, got %d", defaultMaxTokens, got.MaxTokens)
	}
	if len(got.Tools) != 1 || got.Tools[0].Name != "route_to_agent" {
		t.Errorf("unexpected tools: %+v", got.Tools)
	}
	if resp.Content != "Switching." {
		t.Errorf("expected content %q, got %q", "Switching.", resp.Content)
	}
	if len(resp.ToolCalls) != 1 || resp.ToolCalls[0].Params["agent_mode"] != "jobs" {
		t.Errorf("unexpected tool calls: %+v", resp.ToolCalls)
	}
}

func TestAnthropicChat_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"overloaded_error"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewAnthropicClient("key", "", "", 0)
	c.endpoint = srv.URL
	if _, err := c.Chat(context.Background(), "s", []Message{{Role: "user", Content: "hi"}}, nil); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestToAnthMessages_SkipsUntilFirstPrompt(t *testing.T) {
	msgs := []Message{
		{Role: "assistant", ToolCalls: []ToolCall{{ID: "c0", Name: "get_jobs"}}},
		{Role: "user", Content: "[]", ToolCallID: "c0"},
		{Role: "assistant", Content: "done"},
		{Role: "user", Content: "next"},
		{Role: "assistant", ToolCalls: []ToolCall{{ID: "c1", Name: "get_job"}}},
		{Role: "user", Content: "not found", ToolCallID: "c1", IsError: true},
	}

	out := toAnthMessages(msgs)
	if len(out) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(out))
	}
	if out[0].Role != "user" || out[0].Content != "next" {
		t.Errorf("expected first turn to be the prompt, got %+v", out[0])
	}
	blocks, ok := out[2].Content.([]anthBlock)
	if !ok || len(blocks) != 1 {
		t.Fatalf("expected a tool_result block, got %+v", out[2].Content)
	}
	if !blocks[0].IsError || blocks[0].ToolUseID != "c1" {
		t.Errorf("expected error tool_result for c1, got %+v", blocks[0])
	}

	// Nil params must still encode as an object.
	tu := out[1].Content.([]anthBlock)[0]
	if string(tu.Input) != "{}" {
		t.Errorf("expected {} input, got %s", tu.Input)
	}
}
