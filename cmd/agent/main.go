package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/chris/switchboard/config"
	"github.com/chris/switchboard/internal/agent"
	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/metrics"
	"github.com/chris/switchboard/internal/scheduler"
	"github.com/chris/switchboard/internal/session"
	"github.com/chris/switchboard/internal/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	flags := pflag.NewFlagSet("agent", pflag.ContinueOnError)
	flags.StringVar(&cfg.LLMProvider, "provider", cfg.LLMProvider, "LLM provider: anthropic, openai or ollama")
	flags.StringVarP(&cfg.LLMModel, "model", "m", cfg.LLMModel, "model name (provider default when empty)")
	flags.IntVar(&cfg.MaxHistoryMessages, "max-history", cfg.MaxHistoryMessages, "transcript length that triggers trimming")
	flags.IntVar(&cfg.HistoryRetainCount, "retain-history", cfg.HistoryRetainCount, "messages kept after trimming")
	flags.IntVar(&cfg.ToolMaxRetries, "max-retries", cfg.ToolMaxRetries, "retries allowed per tool per turn")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.DeadlineCheckCron, "deadline-check", cfg.DeadlineCheckCron, "cron spec for the overdue-job sweep (empty disables)")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := setupLogging(cfg.LogLevel); err != nil {
		return err
	}

	client, err := llm.NewClient(llm.ProviderConfig{
		Provider:  cfg.LLMProvider,
		APIKey:    cfg.APIKey(),
		AuthToken: cfg.AnthropicToken,
		Model:     cfg.LLMModel,
		BaseURL:   cfg.OllamaBaseURL,
		MaxTokens: cfg.LLMMaxTokens,
	})
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}

	ag := agent.New(client, tools.NewRegistry(cfg.ToolMaxRetries))
	conv, err := ag.StartSession(session.WithHistoryLimits(cfg.MaxHistoryMessages, cfg.HistoryRetainCount))
	if err != nil {
		return err
	}
	defer conv.Close()

	if cfg.DeadlineCheckCron != "" {
		sched := scheduler.New(cfg.DeadlineCheckCron)
		sched.Watch(conv.State())
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Debug().Str("provider", cfg.LLMProvider).Str("model", cfg.LLMModel).Msg("conversation started")
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	return runCLI(ctx, conv, os.Stdin, os.Stdout, os.Stderr, interactive)
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	return nil
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}
