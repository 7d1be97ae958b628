package adapthttp

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"healthhub/internal/app"
	"healthhub/internal/metrics"
)

// identityMiddleware attaches the acting user. A trusted Remote-User header
// wins, then the configured default user. Resolution failures leave the
// request anonymous.
func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.svc.Identity == nil {
			next.ServeHTTP(w, r)
			return
		}
		remote := ""
		if s.opts.TrustProxyHeader {
			remote = r.Header.Get("Remote-User")
		}
		user, err := s.svc.Identity.Resolve(r.Context(), remote)
		if err != nil {
			slog.ErrorContext(r.Context(), "resolve user", "error", err)
		}
		if user != nil {
			r = r.WithContext(app.WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		metrics.Requests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		if r.URL.Path == "/metrics" {
			return
		}
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
