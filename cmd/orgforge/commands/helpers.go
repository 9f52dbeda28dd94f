package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/orgforge/orgforge/pkg/browser"
	"github.com/orgforge/orgforge/pkg/engine"
	"github.com/orgforge/orgforge/pkg/stores"
	"github.com/orgforge/orgforge/pkg/telemetry"
)

// resolveTarget builds the target from flags, falling back to environment
// variables. OrgForge never acquires credentials itself.
func resolveTarget() (engine.Target, error) {
	target := engine.Target{
		InstanceURL: instanceURL,
		AccessToken: accessToken,
	}
	if target.InstanceURL == "" {
		target.InstanceURL = os.Getenv(envInstanceURL)
	}
	if target.AccessToken == "" {
		target.AccessToken = os.Getenv(envAccessToken)
	}
	if target.InstanceURL == "" || target.AccessToken == "" {
		return engine.Target{}, fmt.Errorf(
			"instance URL and access token are required (flags or %s / %s)",
			envInstanceURL, envAccessToken)
	}
	return target, nil
}

// newOrchestrator wires the rod connector and telemetry into an orchestrator.
// The returned cleanup flushes the tracer; call it before exiting.
func newOrchestrator() (*engine.Orchestrator, func(), error) {
	cfg := telemetry.DefaultConfig()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	cfg.Tracing.Enabled = traceEnabled
	cfg.Tracing.Exporter = traceExporter
	cfg.Tracing.Endpoint = traceEndpoint
	cfg.Metrics.Enabled = metricsEnabled
	cfg.Metrics.ListenAddress = metricsAddr

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	tracer, err := telemetry.NewTracer(cfg.Tracing, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure tracing: %w", err)
	}

	metrics, err := telemetry.NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure metrics: %w", err)
	}
	if err := metrics.StartMetricsServer(); err != nil {
		return nil, nil, fmt.Errorf("failed to start metrics endpoint: %w", err)
	}

	connector := browser.NewConnector(browser.Options{
		Headless: headless,
		SlowMo:   slowMo,
	}, telemetry.ComponentLogger(logger, "browser"))

	orch := engine.NewOrchestrator(connector,
		engine.WithLogger(telemetry.ComponentLogger(logger, "orchestrator")),
		engine.WithTracer(tracer),
		engine.WithMetrics(metrics),
	)

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			log.Debug().Err(err).Msg("tracer shutdown failed")
		}
	}

	return orch, cleanup, nil
}

// recordRun persists the run outcome. History failures are logged, never
// fatal: the configuration changes already happened.
func recordRun(ctx context.Context, target engine.Target, result *engine.BatchResult, operations int, continueOnError bool, started time.Time, runErr error) {
	if historyPath == "" || result == nil {
		return
	}

	store, err := stores.NewSQLiteStore(stores.Config{Path: historyPath})
	if err != nil {
		log.Warn().Err(err).Msg("run history disabled")
		return
	}
	if err := store.Init(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to open run history database")
		return
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to migrate run history database")
		return
	}

	status := stores.RunStatusSucceeded
	switch {
	case runErr != nil:
		status = stores.RunStatusAborted
	case !result.Success():
		status = stores.RunStatusPartial
	}

	applied, _ := json.Marshal(result.Applied)
	failed, _ := json.Marshal(result.Failed)

	var errText *string
	if runErr != nil {
		msg := runErr.Error()
		errText = &msg
	}

	completed := time.Now()
	record := &stores.RunRecord{
		ID:              uuid.New().String(),
		InstanceHost:    hostOnly(target.InstanceURL),
		Status:          status,
		ContinueOnError: continueOnError,
		Operations:      operations,
		AppliedJSON:     string(applied),
		FailedJSON:      string(failed),
		Error:           errText,
		StartedAt:       started,
		CompletedAt:     &completed,
		CreatedAt:       completed,
	}
	if err := store.CreateRun(ctx, record); err != nil {
		log.Warn().Err(err).Msg("failed to record run")
	}
}

func hostOnly(rawURL string) string {
	target := engine.Target{InstanceURL: rawURL}
	return target.Host()
}
