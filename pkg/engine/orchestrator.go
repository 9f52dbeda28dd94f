package engine

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/orgforge/orgforge/pkg/telemetry"
)

// Orchestrator executes configuration batches against a target org through a
// Connector. It owns the failure policy and the session lifecycle; the UI
// mechanics live behind the Actor interface.
type Orchestrator struct {
	connector Connector
	selectors Selectors
	logger    zerolog.Logger
	tracer    *telemetry.Tracer
	metrics   *telemetry.Metrics
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithSelectors overrides the default selector set.
func WithSelectors(sel Selectors) OrchestratorOption {
	return func(o *Orchestrator) { o.selectors = sel }
}

// WithLogger sets the orchestrator's logger. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithTracer enables batch and operation spans.
func WithTracer(tracer *telemetry.Tracer) OrchestratorOption {
	return func(o *Orchestrator) { o.tracer = tracer }
}

// WithMetrics enables run, operation, and error counters.
func WithMetrics(metrics *telemetry.Metrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = metrics }
}

// NewOrchestrator creates an orchestrator over the given connector.
func NewOrchestrator(connector Connector, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		connector: connector,
		selectors: DefaultSelectors(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ApplyBatch connects to the target, executes the batch's operations in the
// fixed category order, and reduces the outcomes.
//
// With continueOnError false, the first hard failure aborts the batch: the
// error is returned alongside the partial result, which still lists what was
// applied before the abort. With continueOnError true, every operation is
// attempted exactly once and failures surface only through the result.
//
// An empty batch is a no-op: it succeeds without opening a browser.
func (o *Orchestrator) ApplyBatch(ctx context.Context, target Target, batch *Batch, continueOnError bool) (*BatchResult, error) {
	if batch == nil {
		return nil, NewConfigurationError("batch document is nil", nil)
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	ops := batch.Operations()
	if len(ops) == 0 {
		return Aggregate(nil), nil
	}
	return o.execute(ctx, target, ops, continueOnError)
}

// ApplySingle executes one operation as a single-entry batch with abort
// semantics.
func (o *Orchestrator) ApplySingle(ctx context.Context, target Target, op Operation) (*BatchResult, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	return o.execute(ctx, target, []Operation{op}, false)
}

func (o *Orchestrator) execute(ctx context.Context, target Target, ops []Operation, continueOnError bool) (*BatchResult, error) {
	runID := uuid.New().String()
	host := target.Host()
	logger := o.logger.With().
		Str("run_id", runID).
		Str("instance", host).
		Logger()

	var batchSpan trace.Span
	if o.tracer != nil {
		ctx, batchSpan = o.tracer.StartBatchSpan(ctx, runID, host, len(ops))
		defer batchSpan.End()
	}
	if o.metrics != nil {
		o.metrics.RecordRunStarted(host)
	}
	start := time.Now()

	logger.Info().
		Int("operations", len(ops)).
		Bool("continue_on_error", continueOnError).
		Msg("starting batch run")

	session, err := o.connector.Connect(ctx, target)
	if err != nil {
		logger.Error().Err(err).Msg("failed to establish session")
		o.recordRunEnd(batchSpan, "failed", time.Since(start), err)
		return nil, err
	}
	defer func() {
		if derr := session.Disconnect(context.WithoutCancel(ctx)); derr != nil {
			logger.Warn().Err(derr).Msg("failed to release browser session")
		}
	}()

	runner := &protocolRunner{actor: session.Actor(), sel: o.selectors}
	results := make([]OperationResult, 0, len(ops))
	var abortErr error

	for _, op := range ops {
		label := op.Label()
		opLogger := logger.With().
			Str("operation", label).
			Str("kind", string(op.Kind)).
			Logger()
		opLogger.Info().Msg("applying operation")

		opCtx := ctx
		var opSpan trace.Span
		if o.tracer != nil {
			opCtx, opSpan = o.tracer.StartOperationSpan(ctx, runID, label, string(op.Kind))
		}

		opStart := time.Now()
		opErr := runner.run(opCtx, op)
		duration := time.Since(opStart)

		if opErr != nil {
			var ae *AutomationError
			if errors.As(opErr, &ae) && ae.Operation == "" {
				ae.WithOperation(label)
			}
		}

		if opSpan != nil {
			if opErr != nil {
				telemetry.RecordError(opSpan, opErr)
			} else {
				telemetry.RecordSuccess(opSpan)
			}
			opSpan.End()
		}
		if o.metrics != nil {
			status := "succeeded"
			if opErr != nil {
				status = "failed"
			}
			o.metrics.RecordOperation(string(op.Kind), status, duration)
			if opErr != nil {
				o.metrics.RecordError(errorClassOf(opErr), errorCodeOf(opErr))
			}
		}

		results = append(results, OperationResult{Label: label, Err: opErr})

		if opErr != nil {
			opLogger.Error().Err(opErr).Dur("duration", duration).Msg("operation failed")
			if !continueOnError {
				abortErr = opErr
				break
			}
			continue
		}
		opLogger.Info().Dur("duration", duration).Msg("operation applied")
	}

	result := Aggregate(results)
	status := "succeeded"
	if abortErr != nil {
		status = "aborted"
	} else if !result.Success() {
		status = "partial"
	}
	o.recordRunEnd(batchSpan, status, time.Since(start), abortErr)

	logger.Info().
		Str("status", status).
		Int("applied", len(result.Applied)).
		Int("failed", len(result.Failed)).
		Dur("duration", time.Since(start)).
		Msg("batch run finished")

	return result, abortErr
}

func (o *Orchestrator) recordRunEnd(span trace.Span, status string, duration time.Duration, err error) {
	if span != nil {
		if err != nil {
			telemetry.RecordError(span, err)
		} else {
			telemetry.RecordSuccess(span)
		}
	}
	if o.metrics != nil {
		o.metrics.RecordRunCompleted(status, duration)
		if err != nil {
			o.metrics.RecordError(errorClassOf(err), errorCodeOf(err))
		}
	}
}

func validateTarget(target Target) error {
	if target.InstanceURL == "" {
		return NewAuthenticationError("instance URL is required", nil)
	}
	if _, err := url.ParseRequestURI(target.InstanceURL); err != nil {
		return NewAuthenticationError("instance URL is not a valid URL", err)
	}
	if target.AccessToken == "" {
		return NewAuthenticationError("access token is required", nil)
	}
	return nil
}

func errorClassOf(err error) string {
	var e *AutomationError
	if errors.As(err, &e) {
		return string(e.Class)
	}
	return string(ErrorClassHard)
}

func errorCodeOf(err error) string {
	var e *AutomationError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
