// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/internal/platform/ctxutil"
	"github.com/taibuivan/codejourney/pkg/uuidv7"
)

// roundTripperFunc adapts a function to [http.RoundTripper].
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return f(request)
}

// chain wraps base with decorators; the first decorator is the outermost.
func chain(base http.RoundTripper, decorators ...func(http.RoundTripper) http.RoundTripper) http.RoundTripper {
	for i := len(decorators) - 1; i >= 0; i-- {
		base = decorators[i](base)
	}
	return base
}

// # Request Tracing

// withRequestID attaches a correlation ID to every outbound call.
//
// A request ID already present in the context is reused so that every call
// of one use case shares an id.
func withRequestID() func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(request *http.Request) (*http.Response, error) {
			requestID := ctxutil.GetRequestID(request.Context())
			if requestID == "" {
				requestID = uuidv7.New()
			}

			// RoundTrippers must not mutate the caller's request.
			clone := request.Clone(ctxutil.WithRequestID(request.Context(), requestID))
			clone.Header.Set(constants.HeaderXRequestID, requestID)
			clone.Header.Set(constants.HeaderUserAgent, constants.AppName+"/"+constants.AppVersion)

			return next.RoundTrip(clone)
		})
	}
}

// # Rate Limiting

// withRateLimit throttles outbound calls with a token bucket.
//
// Waiting honours the request context: a cancelled caller never sends.
func withRateLimit(limiter *rate.Limiter) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(request *http.Request) (*http.Response, error) {
			if err := limiter.Wait(request.Context()); err != nil {
				return nil, err
			}
			return next.RoundTrip(request)
		})
	}
}

// # Activity Logging

// withLogging logs every outbound call once it has finished.
func withLogging(logger *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(request *http.Request) (*http.Response, error) {
			startTime := time.Now()
			ctx := request.Context()

			callLogger := logger.With(
				slog.String("request_id", request.Header.Get(constants.HeaderXRequestID)),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
			)
			if op := ctxutil.GetOperation(ctx); op != "" {
				callLogger = callLogger.With(slog.String("operation", op))
			}

			response, err := next.RoundTrip(request)
			latency := time.Since(startTime).Milliseconds()

			if err != nil {
				callLogger.WarnContext(ctx, "remote_call_failed",
					slog.Int64("latency_ms", latency),
					slog.Any("error", err),
				)
				return nil, err
			}

			logLevel := slog.LevelDebug
			if response.StatusCode >= 500 {
				logLevel = slog.LevelError
			} else if response.StatusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			callLogger.Log(ctx, logLevel, "remote_call_finished",
				slog.Int("status", response.StatusCode),
				slog.Int64("latency_ms", latency),
			)

			return response, nil
		})
	}
}
