package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"LLM_PROVIDER", "LLM_MAX_TOKENS", "MAX_HISTORY_MESSAGES", "HISTORY_RETAIN_COUNT",
		"TOOL_MAX_RETRIES", "LOG_LEVEL", "METRICS_ADDR",
	} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.LLMProvider != "openai" {
		t.Errorf("LLMProvider = %q, want openai", cfg.LLMProvider)
	}
	if cfg.MaxHistoryMessages != 15 || cfg.HistoryRetainCount != 10 {
		t.Errorf("history limits = %d/%d, want 15/10", cfg.MaxHistoryMessages, cfg.HistoryRetainCount)
	}
	if cfg.ToolMaxRetries != 5 {
		t.Errorf("ToolMaxRetries = %d, want 5", cfg.ToolMaxRetries)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	t.Setenv("MAX_HISTORY_MESSAGES", "30")
	t.Setenv("HISTORY_RETAIN_COUNT", "abc")
	t.Setenv("DEADLINE_CHECK_CRON", "")

	cfg := Load()
	if cfg.MaxHistoryMessages != 30 {
		t.Errorf("MaxHistoryMessages = %d, want 30", cfg.MaxHistoryMessages)
	}
	if cfg.HistoryRetainCount != 10 {
		t.Errorf("HistoryRetainCount = %d, want fallback 10", cfg.HistoryRetainCount)
	}
	if cfg.DeadlineCheckCron != "" {
		t.Errorf("DeadlineCheckCron = %q, want empty (disabled)", cfg.DeadlineCheckCron)
	}
	if got := cfg.APIKey(); got != "sk-ant" {
		t.Errorf("APIKey() = %q, want sk-ant", got)
	}
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		val  string
		want int
	}{
		{"", 7},
		{"12", 12},
		{"0", 7},
		{"-3", 7},
		{"twelve", 7},
	}
	for _, tt := range tests {
		t.Setenv("SWITCHBOARD_TEST_INT", tt.val)
		if got := envInt("SWITCHBOARD_TEST_INT", 7); got != tt.want {
			t.Errorf("envInt(%q) = %d, want %d", tt.val, got, tt.want)
		}
	}
}
