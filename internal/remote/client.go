// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package remote is the Remote API Client: the fixed REST surface of the
CodeJourney backend.

Every call is stateless. Authenticated calls take the bearer token as an
argument; the client never reads the token store.

Architecture:

  - Transport: request id, rate limit, and structured logging decorate the
    underlying [http.RoundTripper].
  - Errors: every failure is an [apperr.AppError], except cancellation, which
    surfaces as the context error so callers can drop stale responses.
  - Decoding: response envelopes ({posts}, {post}, {user}) are unwrapped here,
    and author shapes are resolved by [models.Author].
*/
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/constants"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Options configures a [Client].
type Options struct {
	// BaseURL is the scheme and host of the remote API, without /api.
	BaseURL string
	// Timeout bounds every call. Zero means [constants.DefaultRequestTimeout].
	Timeout time.Duration
	// RateLimitRPS and RateLimitBurst configure the outbound token bucket.
	// Zero RPS disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	// Transport is the underlying round tripper. Nil means [http.DefaultTransport].
	Transport http.RoundTripper
	// Logger receives one entry per call.
	Logger *slog.Logger
}

// Client talks to the remote API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a [Client] from options.
func New(options Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(options.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("remote: invalid base URL %q", options.BaseURL)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	transport := options.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	limit := rate.Inf
	if options.RateLimitRPS > 0 {
		limit = rate.Limit(options.RateLimitRPS)
	}
	burst := options.RateLimitBurst
	if burst < 1 {
		burst = constants.DefaultRateLimitBurst
	}

	return &Client{
		baseURL: base,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: chain(transport,
				withRequestID(),
				withRateLimit(rate.NewLimiter(limit, burst)),
				withLogging(logger),
			),
		},
	}, nil
}

// BaseURL returns the configured API origin.
func (client *Client) BaseURL() string { return client.baseURL.String() }

// errorBody is the shape the remote API uses for failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (body errorBody) text() string {
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

// call describes one HTTP exchange.
type call struct {
	method string
	path   string
	token  string
	body   any
	out    any
}

// do performs a call and decodes a 2xx body into c.out.
func (client *Client) do(ctx context.Context, c call) error {
	var reader io.Reader
	if c.body != nil {
		payload, err := json.Marshal(c.body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("remote: encode %s %s: %w", c.method, c.path, err))
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := client.baseURL.JoinPath(c.path)
	request, err := http.NewRequestWithContext(ctx, c.method, endpoint.String(), reader)
	if err != nil {
		return apperr.Internal(fmt.Errorf("remote: build %s %s: %w", c.method, c.path, err))
	}
	if c.body != nil {
		request.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	if c.token != "" {
		request.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+c.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		// The caller went away: hand back the context error untouched so
		// it can be told apart from a transport failure and dropped.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return apperr.Network(err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var body errorBody
		raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		_ = json.Unmarshal(raw, &body)
		return apperr.FromStatus(response.StatusCode, body.text())
	}

	if c.out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(c.out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, io.EOF) {
			return apperr.Internal(fmt.Errorf("remote: empty body from %s %s", c.method, c.path))
		}
		return apperr.Internal(fmt.Errorf("remote: decode %s %s: %w", c.method, c.path, err))
	}

	return nil
}

// IsCanceled reports whether err means the caller abandoned the call.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// escape encodes a single path segment.
func escape(segment string) string {
	return url.PathEscape(segment)
}
