package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"palette-bridge/internal/ui"
)

// RequestIDHeader carries the per-request ID in responses.
const RequestIDHeader = "X-Request-ID"

// withCORS sets the CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if s.Config.Env != nil {
			origin = s.Config.Env.AllowedOrigin
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// instrument tags the request with an ID, then logs and times it under route.
func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		observer := &statusObserver{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(observer, r)

		took := time.Since(started)
		MetricRequestDuration.WithLabelValues(route).Observe(took.Seconds())
		ui.LogRequest(id, r.Method, r.URL.Path, observer.status, observer.size, took)
	})
}

type statusObserver struct {
	http.ResponseWriter
	status      int
	size        int64
	wroteHeader bool
}

func (o *statusObserver) WriteHeader(status int) {
	if !o.wroteHeader {
		o.status = status
		o.wroteHeader = true
	}
	o.ResponseWriter.WriteHeader(status)
}

func (o *statusObserver) Write(b []byte) (int, error) {
	o.wroteHeader = true
	n, err := o.ResponseWriter.Write(b)
	o.size += int64(n)
	return n, err
}
