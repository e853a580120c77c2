// Package upstream is the client for the external REST API that owns users
// and pets. Every call is a single attempt: no retries, no caching.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
	"github.com/FACorreiaa/go-petportal/internal/app/observability/metrics"
)

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a client for baseURL. A zero timeout leaves the HTTP
// client default in place.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetRetryCount(0)
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}

	return &Client{http: rc, logger: logger}
}

// do issues one request. token may be empty for unauthenticated calls; out
// may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	l := c.logger.With(zap.String("op", op), zap.String("method", method), zap.String("path", path))

	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		metrics.Get().RecordUpstream(ctx, op, 0, time.Since(start))
		if errors.Is(err, context.Canceled) {
			l.Debug("Upstream call canceled", zap.Error(err))
		} else {
			l.Warn("Upstream call failed", zap.Error(err))
		}
		return &TransportError{Op: op, Err: err}
	}
	metrics.Get().RecordUpstream(ctx, op, resp.StatusCode(), time.Since(start))

	if !resp.IsSuccess() {
		apiErr := &APIError{Status: resp.StatusCode(), Message: extractMessage(resp.Body())}
		l.Info("Upstream rejected request", zap.Int("status", apiErr.Status), zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		l.Warn("Failed to decode upstream response", zap.Int("status", resp.StatusCode()), zap.Error(err))
		return fmt.Errorf("%s: %w: %v", op, models.ErrInvalidResponse, err)
	}
	return nil
}
