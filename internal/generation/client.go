package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// TimeoutMessage is shown when the service does not answer in time.
const TimeoutMessage = "Generation timed out. Please try again."

const maxResponseBytes = 8 << 20

// Generator issues one generation call. Implementations return *Error for
// every failure so callers can surface the message directly.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

type requestIDKey struct{}

// WithRequestID attaches a correlation ID sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation ID carried by ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client talks to the generation service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the service rooted at baseURL
// (for example http://localhost:8000/api/v1).
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the service root the client posts to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate posts req to /generate and normalizes every failure into *Error.
func (c *Client) Generate(ctx context.Context, req Request) (Result, error) {
	data, err := json.Marshal(req.Payload())
	if err != nil {
		return Result{}, &Error{Message: DefaultErrorMessage, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(data))
	if err != nil {
		return Result{}, &Error{Message: DefaultErrorMessage, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if id := RequestID(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("generation request failed", "request_id", RequestID(ctx), "error", err)
		return Result{}, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, transportError(fmt.Errorf("read response: %w", err))
	}
	c.logger.Info("generation response",
		"request_id", RequestID(ctx),
		"status", resp.StatusCode,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		msg := DefaultErrorMessage
		if json.Unmarshal(body, &eb) == nil && eb.message() != "" {
			msg = eb.message()
		}
		return Result{}, &Error{Message: msg, Status: resp.StatusCode}
	}

	var gr GenerateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return Result{}, &Error{Message: DefaultErrorMessage, Status: resp.StatusCode, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if gr.Status == StatusError {
		msg := strings.TrimSpace(gr.Error)
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return Result{}, &Error{Message: msg, Status: resp.StatusCode}
	}

	return NewResult(req.Language, gr), nil
}

func transportError(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Message: TimeoutMessage, Err: err}
	}
	return &Error{Message: DefaultErrorMessage, Err: err}
}
