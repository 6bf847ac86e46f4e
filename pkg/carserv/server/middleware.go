package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Logger logs each request once it has been served.
func Logger(logger *zerolog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			ctx := logger.With().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger().
				WithContext(r.Context())

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}

// Recovery turns a panic in a handler into a 500 response.
func Recovery(logger *zerolog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("path", r.URL.Path).
						Msg("panic recovered")
					InternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type middleware = func(http.Handler) http.Handler

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
