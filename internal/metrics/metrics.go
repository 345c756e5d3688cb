package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool call outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeRetry   = "retry"
	OutcomeError   = "error"
	OutcomeUnknown = "unknown"
)

var (
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "switchboard_tool_calls_total",
			Help: "Tool calls executed, by tool and outcome",
		},
		[]string{"tool", "outcome"},
	)

	ModeSwitches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "switchboard_mode_switches_total",
			Help: "Mode switches made by the router tool, by target mode",
		},
		[]string{"mode"},
	)

	HistoryTrims = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "switchboard_history_trims_total",
			Help: "Turns whose transcript was trimmed",
		},
	)

	Turns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "switchboard_turns_total",
			Help: "Conversation turns, by status",
		},
		[]string{"status"},
	)

	OverdueNotices = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "switchboard_overdue_notices_total",
			Help: "Overdue-job notices recorded by the deadline sweep",
		},
	)
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
