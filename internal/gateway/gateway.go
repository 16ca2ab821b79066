// Package gateway is the single pipeline every call to the external
// task-tracking API passes through. It attaches the session's bearer
// token, recovers from an expired access token with at most one silent
// refresh-and-replay, and classifies failures into user notifications.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasktrack/webapp/internal/api/metrics"
	"github.com/tasktrack/webapp/internal/core/domain"
)

// Session is the injectable per-browser session context the gateway reads
// tokens from and writes refresh results into. It also receives the single
// user notification emitted for a failed call.
type Session interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string)
	// Clear drops both tokens and the current user.
	Clear()
	Notify(n domain.Notification)
}

// Request is an immutable descriptor of one upstream call. The retry state
// lives in the pipeline as an attempt counter, never on the descriptor, so
// concurrent calls cannot share mutable flags.
type Request struct {
	Method string
	Path   string // relative to the API base, e.g. "/tasks/"
	Query  url.Values
	Body   any // marshalled to JSON fresh on every attempt
}

// Gateway talks to the external REST API.
type Gateway struct {
	base   string
	client *http.Client
	log    zerolog.Logger
}

// New builds a Gateway for the given API base URL
// (e.g. "http://localhost:8000/api").
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Gateway{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Do runs the full pipeline and, when out is non-nil, decodes the 2xx
// response body into it. A failed call emits exactly one notification on
// the session and returns a category error the caller can branch on.
func (g *Gateway) Do(ctx context.Context, sess Session, req Request, out any) error {
	body, err := g.DoRaw(ctx, sess, req)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

// DoRaw is Do without response decoding; the export download uses it for
// binary payloads.
func (g *Gateway) DoRaw(ctx context.Context, sess Session, req Request) ([]byte, error) {
	resp, body, err := g.send(ctx, req, sess.AccessToken())
	if err != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: "Cannot connect to server. Please check if the backend is running."})
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUnreachable, req.Method, req.Path, err)
	}

	// A 401 without a refresh token in the session cannot be recovered;
	// this covers unauthenticated calls such as a failed login, where the
	// payload detail must reach the user as-is.
	if resp.StatusCode == http.StatusUnauthorized && sess.RefreshToken() != "" {
		return g.recover(ctx, sess, req)
	}
	return g.finish(sess, req, resp.StatusCode, body)
}

// recover handles the AUTH_FAILED state: exchange the refresh token for a
// new access token and replay the original request exactly once. A second
// 401 on the replay is terminal by construction, because the replay path
// never re-enters recover.
func (g *Gateway) recover(ctx context.Context, sess Session, req Request) ([]byte, error) {
	access, err := g.refresh(ctx, sess.RefreshToken())
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		g.log.Warn().Err(err).Str("path", req.Path).Msg("token refresh failed, clearing session")
		sess.Clear()
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: "Your session has expired. Please log in again."})
		return nil, fmt.Errorf("%w: %s %s", domain.ErrSessionExpired, req.Method, req.Path)
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	sess.SetAccessToken(access)

	resp, body, err := g.send(ctx, req, access)
	if err != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: "Cannot connect to server. Please check if the backend is running."})
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUnreachable, req.Method, req.Path, err)
	}
	return g.finish(sess, req, resp.StatusCode, body)
}

// finish resolves a response that will not be replayed: pass through 2xx,
// otherwise classify, notify once, and return the category error.
func (g *Gateway) finish(sess Session, req Request, status int, body []byte) ([]byte, error) {
	if status >= 200 && status < 300 {
		return body, nil
	}

	n, err := Classify(status, body)
	sess.Notify(n)
	g.log.Debug().
		Int("status", status).
		Str("method", req.Method).
		Str("path", req.Path).
		Msg("upstream call failed")
	return nil, err
}

// send performs one HTTP exchange, attaching the bearer token when one is
// present. The body is re-marshalled per attempt so a replay never reuses
// a consumed reader.
func (g *Gateway) send(ctx context.Context, req Request, token string) (*http.Response, []byte, error) {
	var payload io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	u := g.base + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, payload)
	if err != nil {
		return nil, nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	metrics.UpstreamRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return nil, nil, err
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(req.Method, statusClass(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// refresh exchanges the refresh token for a new access token. The exchange
// itself is sent unauthenticated, matching the refresh endpoint contract.
func (g *Gateway) refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("no refresh token in session")
	}

	resp, body, err := g.send(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/token/refresh/",
		Body:   map[string]string{"refresh": refreshToken},
	}, "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("refresh response carried no access token")
	}
	return out.Access, nil
}

func statusClass(code int) string {
	switch {
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
