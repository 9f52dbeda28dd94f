package telemetry

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing service name", func(c *Config) { c.ServiceName = "" }},
		{"missing service version", func(c *Config) { c.ServiceVersion = "" }},
		{"invalid log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"invalid trace exporter", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "jaeger"
		}},
		{"sampling rate out of range", func(c *Config) { c.Tracing.SamplingRate = 1.5 }},
		{"metrics enabled without address", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.ListenAddress = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
}

func TestDisabledMetricsAreNoOps(t *testing.T) {
	m, err := NewMetrics(MetricsConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// None of these may panic on the no-op instance.
	m.RecordRunStarted("acme.my.example.com")
	m.RecordRunCompleted("succeeded", time.Second)
	m.RecordOperation("flow_activation", "failed", time.Second)
	m.RecordError("hard", "ELEMENT_NOT_FOUND")
}

func TestDisabledTracerProducesSpans(t *testing.T) {
	tracer, err := NewTracer(TracingConfig{Enabled: false}, "orgforge", "test", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		_ = tracer.Shutdown(t.Context())
	}()

	ctx, span := tracer.StartBatchSpan(t.Context(), "run-1", "acme.my.example.com", 3)
	if span == nil {
		t.Fatal("expected a span even when tracing is disabled")
	}
	RecordSuccess(span)
	span.End()

	_, opSpan := tracer.StartOperationSpan(ctx, "run-1", "Flow: Lead_Routing", "flow_activation")
	RecordError(opSpan, nil)
	opSpan.End()
}
