// Package api wraps every outbound call to the InvisiThreat REST backend.
// The backend is a fixed external contract: this package attaches the bearer
// credential, classifies failures, and nothing more.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/nouhaa3/invisithreat/internal/app/observability/metrics"
	"github.com/nouhaa3/invisithreat/internal/pkg/config"
)

const (
	LoginPath    = "/api/auth/login"
	RegisterPath = "/api/auth/register"
	RefreshPath  = "/api/auth/refresh"
	MePath       = "/api/auth/me"
)

// Client is the single HTTP doorway to the backend. Access tokens travel on
// the request context (WithToken) so one shared client serves every session.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newBearerTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// PostForm sends a form-encoded POST and decodes the JSON response into out.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), out)
}

// PostJSON sends a JSON POST and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "encode request body")
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body), out)
}

// GetJSON sends a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	tracer := otel.Tracer("invisithreat-webui")
	ctx, span := tracer.Start(ctx, "api."+method+" "+path)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.Get().BackendRequestDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		))
	if err != nil {
		metrics.Get().BackendRequestErrors.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
			))
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Error("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return errors.Wrap(err, "api request")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
		return nil
	}

	metrics.Get().BackendRequestErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
			attribute.Int("status", resp.StatusCode),
		))
	apiErr := newError(resp.StatusCode, path, decodeDetail(resp.Body))
	span.SetStatus(codes.Error, apiErr.Error())
	c.logger.Warn("Backend request rejected",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return apiErr
}

// decodeDetail pulls the backend's {"detail": "..."} message. Anything that
// is not a plain string (FastAPI validation errors arrive as arrays) reads
// as empty so callers fall back to a generic message.
func decodeDetail(r io.Reader) string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	if s, ok := body.Detail.(string); ok {
		return s
	}
	return ""
}

// isAuthEndpoint reports whether a 401 from this path means bad credentials
// rather than an expired session. Login and register must pass their 401s
// through untouched or a bad password would bounce the user in a redirect
// loop.
func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "/auth/login") || strings.Contains(path, "/auth/register")
}
