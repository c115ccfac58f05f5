package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInitLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "healthcare-client", "production")

	GetLogger().Info().Str("user", "a@x.com").Msg("signed in")
	GetLogger().Debug().Msg("hidden at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "healthcare-client", entry["service"])
	assert.Equal(t, "signed in", entry["message"])
	assert.Equal(t, "a@x.com", entry["user"])
}

func TestLoggerFromContext_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "healthcare-client", "production")

	LoggerFromContext(context.Background()).Info().Msg("no trace")

	assert.NotContains(t, buf.String(), "trace_id")
}

func TestInitMetrics(t *testing.T) {
	metrics, err := InitMetrics()
	require.NoError(t, err)
	require.NotNil(t, metrics)

	assert.NotPanics(t, func() {
		RecordRequestMetric(context.Background(), metrics, "GET", "/users/{id}", 200, 15*time.Millisecond)
		RecordSessionChange(context.Background(), metrics, true)
		RecordRequestMetric(context.Background(), nil, "GET", "/users/{id}", 200, time.Millisecond)
		RecordSessionChange(context.Background(), nil, false)
	})
}

func TestRecordRequestMetric_Collected(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	metrics, err := InitMetrics()
	require.NoError(t, err)
	RecordRequestMetric(context.Background(), metrics, "POST", "/users/login", 200, 20*time.Millisecond)
	RecordSessionChange(context.Background(), metrics, true)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	assert.True(t, names["healthapi.request.count"])
	assert.True(t, names["healthapi.request.duration"])
	assert.True(t, names["session.change.count"])
}
