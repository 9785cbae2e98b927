package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/abgdnv/sweetshop/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func Test_NewTracerProvider(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{
			name: "Disabled",
			cfg:  config.TelemetryConfig{},
		},
		{
			name: "Enabled with OTLP exporter",
			cfg: config.TelemetryConfig{
				Enabled: true,
				Traces: config.TracesConfig{OtlpHttp: config.OtlpHttpConfig{
					Endpoint: "localhost:4318",
					Insecure: true,
					Timeout:  time.Second,
				}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			// when
			tp, err := NewTracerProvider(ctx, "sweetshop", tc.cfg)
			// then
			require.NoError(t, err)
			assert.Same(t, tp, otel.GetTracerProvider())

			_, span := otel.Tracer("test").Start(ctx, "op")
			assert.True(t, span.SpanContext().IsValid())
			span.End()

			shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		})
	}
}
