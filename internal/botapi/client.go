package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/serroba/telegram-bff/internal/credential"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public Telegram Bot API host.
	DefaultBaseURL = "https://api.telegram.org"
	// DefaultTimeout bounds every outbound call.
	DefaultTimeout = 30 * time.Second

	userAgent        = "BotHost-Backend/1.0"
	maxResponseBytes = 8 << 20
)

var (
	ErrTransport         = errors.New("bot api transport failure")
	ErrUpstream          = errors.New("bot api server error")
	ErrMalformedResponse = errors.New("malformed bot api response")
)

// Envelope is the normalized result of a single Bot API call.
// Transport failures and remote rejections share this shape.
type Envelope struct {
	Success   bool
	Data      json.RawMessage
	Error     string
	ErrorCode int
	Status    int
}

// Failed reports whether the call failed below the application layer
// (network error, timeout, 5xx, undecodable body).
func (e Envelope) Failed() bool {
	return !e.Success && e.ErrorCode >= http.StatusInternalServerError
}

// Invoker issues Bot API calls.
type Invoker interface {
	Invoke(ctx context.Context, token, method string, payload any) Envelope
}

// apiResponse is the wire shape returned by the Bot API.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// Client calls the Bot API over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Bot API client with a 30s timeout.
func NewClient(logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Invoke performs exactly one POST to /bot<token>/<method>.
//
// Cancellation of ctx is not propagated: once issued, the call runs to
// completion or to the client timeout.
func (c *Client) Invoke(ctx context.Context, token, method string, payload any) Envelope {
	start := time.Now()

	env, err := c.do(context.WithoutCancel(ctx), token, method, payload)
	if err != nil {
		c.logger.Error("bot api request failed",
			zap.String("method", method),
			zap.String("bot", credential.Mask(token)),
			zap.Int("status", env.Status),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)

		return env
	}

	c.logger.Debug("bot api request completed",
		zap.String("method", method),
		zap.String("bot", credential.Mask(token)),
		zap.Bool("ok", env.Success),
		zap.Int("status", env.Status),
		zap.Duration("elapsed", time.Since(start)),
	)

	return env
}

func (c *Client) do(ctx context.Context, token, method string, payload any) (Envelope, error) {
	if payload == nil {
		payload = struct{}{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(http.StatusInternalServerError, "failed to encode request payload"),
			fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(token, method), bytes.NewReader(body))
	if err != nil {
		return failure(http.StatusInternalServerError, "failed to build request"),
			fmt.Errorf("%w: %w", ErrTransport, scrub(err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = scrub(err)

		return failure(http.StatusInternalServerError, transportMessage(err)), fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return failure(http.StatusInternalServerError, "failed to read bot api response"),
			fmt.Errorf("%w: %w", ErrTransport, scrub(err))
	}

	var parsed apiResponse

	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode >= http.StatusInternalServerError {
		env := failure(resp.StatusCode, fmt.Sprintf("bot api returned status %d", resp.StatusCode))
		env.Status = resp.StatusCode

		if decodeErr == nil && parsed.Description != "" {
			env.Error = parsed.Description
		}

		if decodeErr == nil && parsed.ErrorCode >= http.StatusInternalServerError {
			env.ErrorCode = parsed.ErrorCode
		}

		return env, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if decodeErr != nil {
		env := failure(http.StatusInternalServerError, ErrMalformedResponse.Error())
		env.Status = resp.StatusCode

		return env, fmt.Errorf("%w: %w", ErrMalformedResponse, decodeErr)
	}

	env := Envelope{
		Success:   parsed.OK,
		Error:     parsed.Description,
		ErrorCode: parsed.ErrorCode,
		Status:    resp.StatusCode,
	}

	if parsed.OK {
		env.Data = parsed.Result
	}

	return env, nil
}

func (c *Client) endpoint(token, method string) string {
	return c.baseURL + "/bot" + token + "/" + method
}

func failure(code int, msg string) Envelope {
	return Envelope{
		Success:   false,
		Error:     msg,
		ErrorCode: code,
		Status:    http.StatusInternalServerError,
	}
}

// scrub drops the *url.Error wrapper, whose message embeds the request
// URL and therefore the bot token.
func scrub(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}

	return err
}

func transportMessage(err error) string {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "bot api request timed out"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "bot api request timed out"
	}

	return "bot api request failed: " + err.Error()
}
