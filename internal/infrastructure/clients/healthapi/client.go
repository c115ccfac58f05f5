// Package healthapi is the HTTP client of the healthcare backend.
package healthapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/config"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

const (
	usersResource          = "users"
	availabilitiesResource = "availabilities"
	appointmentsResource   = "appointments"
	consultationsResource  = "consultations"

	requestIDHeader = "X-Request-ID"
)

// TokenSource supplies the bearer token of the current session
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func() string

// Token calls f
func (f TokenFunc) Token() string {
	return f()
}

// Client talks to the backend REST resources. It never retries and never
// caches; every call goes to the network.
type Client struct {
	cfg        config.APIConfig
	tokens     TokenSource
	httpClient *http.Client
	metrics    *observability.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMetrics records request counts and durations
func WithMetrics(metrics *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient creates a backend client. tokens may be nil for a client that
// only makes anonymous calls.
func NewClient(cfg config.APIConfig, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one backend request
type call struct {
	method string
	// route is the templated path used for spans and metrics
	route     string
	endpoint  string
	query     url.Values
	anonymous bool
	body      any
	out       any
}

func (c *Client) resource(name string, segments ...string) string {
	endpoint := c.cfg.ResourceURL(name)
	for _, segment := range segments {
		endpoint += "/" + url.PathEscape(segment)
	}
	return endpoint
}

func (c *Client) do(ctx context.Context, req call) error {
	ctx, span := observability.StartSpan(ctx, "healthapi "+req.method+" "+req.route)
	defer span.End()

	requestID := uuid.NewString()
	observability.SetSpanAttributes(span,
		attribute.String("http.method", req.method),
		attribute.String("http.route", req.route),
		attribute.String("request.id", requestID),
	)
	logger := observability.LoggerFromContext(ctx)

	endpoint := req.endpoint
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if !req.anonymous && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observability.RecordError(span, err)
		observability.RecordRequestMetric(ctx, c.metrics, req.method, req.route, 0, time.Since(start))
		logger.Error().Err(err).Str("method", req.method).Str("route", req.route).Str("request_id", requestID).Msg("backend request failed")
		return apperrors.NewExternalError(fmt.Sprintf("%s %s failed", req.method, req.route), err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	observability.RecordRequestMetric(ctx, c.metrics, req.method, req.route, resp.StatusCode, duration)
	observability.SetSpanAttributes(span, attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.RecordError(span, err)
		return apperrors.NewExternalError("failed to read response body", err)
	}

	logger.Debug().
		Str("method", req.method).
		Str("route", req.route).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apperrors.NewAPIError(resp.StatusCode, respBody)
		observability.RecordError(span, apiErr)
		return apiErr
	}

	if req.out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, req.out); err != nil {
		observability.RecordError(span, err)
		return apperrors.NewExternalError("failed to decode response body", err)
	}
	return nil
}
