package handlers

import (
	"context"
	"net/http"
	"time"

	"fomezero/utils"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the id RequestID attached to ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestID tags every request with an id (the caller's X-Request-ID, or a
// fresh UUID), echoes it in the response and logs failed requests with it.
func RequestID(logger *utils.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		elapsed := time.Since(start)

		switch {
		case rec.status >= 500:
			logger.Error("[%s] %s %s -> %d (%v)", id, r.Method, r.URL.RequestURI(), rec.status, elapsed)
		case rec.status >= 400:
			logger.Warn("[%s] %s %s -> %d (%v)", id, r.Method, r.URL.RequestURI(), rec.status, elapsed)
		default:
			logger.Debug("[%s] %s %s -> %d (%v)", id, r.Method, r.URL.RequestURI(), rec.status, elapsed)
		}
	})
}
