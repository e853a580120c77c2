// Package metricstest installs an in-memory meter provider so tests can read
// back what the application recorded.
package metricstest

import (
	"context"
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var (
	reader *sdkmetric.ManualReader
	once   sync.Once
)

// Install sets the global meter provider to one backed by a manual reader.
// Only the first call in a test binary installs it; instruments created
// earlier from the global provider are delegated to it.
func Install() *sdkmetric.ManualReader {
	once.Do(func() {
		reader = sdkmetric.NewManualReader()
		otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	})
	return reader
}

// CounterValue returns the cumulative value of the int64 counter name for
// the data point whose attributes include every pair in attrs.
func CounterValue(t testing.TB, name string, attrs map[string]string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := Install().Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if matches(dp.Attributes, attrs) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func matches(set attribute.Set, attrs map[string]string) bool {
	for k, want := range attrs {
		got, ok := set.Value(attribute.Key(k))
		if !ok || got.AsString() != want {
			return false
		}
	}
	return true
}
