// Package upstream talks to the two services that own all business data:
// the reservation proxy (bookings) and the housekeeping API (room status
// and tasks).  Every read returns a fresh snapshot; nothing is cached.
package upstream

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

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxBody bounds how much of an upstream response is read.
const maxBody = 16 << 20

// FetchError reports a failure reaching or understanding an upstream
// service.  Status is zero when no HTTP response was received.
type FetchError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options configures a Client.
type Options struct {
	ReservationsURL string
	HousekeepingURL string
	Timeout         time.Duration
	// RPS limits outbound requests per second; zero disables the limit.
	RPS        float64
	Burst      int
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is safe for concurrent use.
type Client struct {
	reservations string
	housekeeping string
	http         *http.Client
	limiter      *rate.Limiter
	log          *zap.Logger
}

// New builds a Client from opts.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		reservations: strings.TrimRight(opts.ReservationsURL, "/"),
		housekeeping: strings.TrimRight(opts.HousekeepingURL, "/"),
		http:         hc,
		limiter:      limiter,
		log:          log,
	}
}

// do sends a request and returns the response body of a 2xx reply.
func (c *Client) do(ctx context.Context, op, method, target string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Op: op, URL: target, Err: err}
	}
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, &FetchError{Op: op, URL: target, Err: err}
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &FetchError{Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("upstream request failed", zap.String("op", op), zap.String("url", target), zap.Error(err))
		return nil, &FetchError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &FetchError{Op: op, URL: target, Err: err}
	}
	c.log.Debug("upstream request",
		zap.String("op", op),
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("upstream returned error status", zap.String("op", op), zap.Int("status", resp.StatusCode))
		return nil, &FetchError{Op: op, URL: target, Status: resp.StatusCode}
	}
	return data, nil
}

// decodeList accepts a bare JSON array, null, or an object carrying the
// array under key.
func decodeList[T any](data []byte, key string) ([]T, error) {
	data = bytes.TrimSpace(data)
	out := make([]T, 0)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if data[0] == '[' {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	inner, ok := env[key]
	if !ok {
		return nil, fmt.Errorf("response has neither an array nor a %q field", key)
	}
	return decodeList[T](inner, key)
}

func withQuery(base string, q url.Values) string {
	return base + "?" + q.Encode()
}
