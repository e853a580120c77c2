package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-petportal/internal/app/observability/metrics/metricstest"
)

func TestGetIsUsableWithoutProvider(t *testing.T) {
	m := Get()
	assert.NotNil(t, m)
	assert.Same(t, m, Get())

	assert.NotPanics(t, func() {
		ctx := context.Background()
		m.RecordHTTPRequest(ctx, "GET", "/dashboard", 200, 15*time.Millisecond)
		m.RecordAuth(ctx, "login", "success")
		m.RecordUpstream(ctx, "pets.list", 0, time.Millisecond)
		m.RecordSessionRepair(ctx, "corrupt_user_cookie")
	})
}

func TestRecordSessionRepair(t *testing.T) {
	metricstest.Install()
	attrs := map[string]string{"reason": "upstream_unauthorized"}
	before := metricstest.CounterValue(t, "session_repairs_total", attrs)

	Get().RecordSessionRepair(context.Background(), "upstream_unauthorized")

	assert.Equal(t, before+1, metricstest.CounterValue(t, "session_repairs_total", attrs))
}
