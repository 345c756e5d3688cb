package tools

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/metrics"
	"github.com/chris/switchboard/internal/session"
)

func defRouteToAgent() *Def {
	modes := make([]string, len(session.Selectables))
	for i, m := range session.Selectables {
		modes[i] = string(m)
	}
	return &Def{
		Name:        "route_to_agent",
		Description: "Switch to the agent that handles the user's request. Use jobs for anything about jobs and deadlines, approvals for approval requests.",
		Parameters: llm.ObjReq(map[string]any{
			"agent_mode": llm.Enum("The agent to hand the conversation to", modes...),
		}, "agent_mode"),
		Visible: Always,
		Fn:      routeToAgent,
	}
}

func routeToAgent(_ context.Context, s *session.State, args Args) (Result, error) {
	raw, err := args.RequiredString("agent_mode")
	if err != nil {
		return Retry("%v", err), nil
	}
	sel, err := session.ParseSelectable(raw)
	if err != nil {
		return Retry("%v", err), nil
	}

	from, to := s.Mode(), sel.Mode()
	s.SetMode(to)
	metrics.ModeSwitches.WithLabelValues(to.String()).Inc()
	log.Info().Str("from", from.String()).Str("to", to.String()).Msg("mode switched")

	msg := "Switched to agent mode: " + to.String()
	s.Record(msg)

	var (
		index string
		empty string
	)
	switch to {
	case session.Jobs:
		index, err = JobIndex(s.Store)
		empty = "No jobs found."
	case session.Approvals:
		index, err = ApprovalIndex(s.Store)
		empty = "No approvals found."
	}
	if err != nil {
		return Result{}, err
	}
	if index == "" {
		return Success(msg, empty), nil
	}
	return Success(msg, json.RawMessage(index)), nil
}
