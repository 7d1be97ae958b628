package adapthttp

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingMiddleware(t *testing.T) {
	s := &Server{}
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("OK"))
	})
	handler := s.loggingMiddleware(nextHandler)
	buf := captureLogs(t)

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status %d, got %d", http.StatusTeapot, w.Code)
	}
	logOutput := buf.String()
	for _, want := range []string{"method=GET", "path=/test-path", "status=418", "duration_ms="} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("Log output missing %q. Got: %s", want, logOutput)
		}
	}
}

func TestLoggingMiddleware_ImplicitOK(t *testing.T) {
	s := &Server{}
	handler := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	buf := captureLogs(t)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil))
	if !strings.Contains(buf.String(), "status=200") {
		t.Errorf("expected status=200, got %s", buf.String())
	}
}

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) Create(_ context.Context, username string) (*domain.User, error) {
	u := &domain.User{ID: int64(len(s.users) + 1), Username: username}
	s.users[username] = u
	return u, nil
}

func TestIdentityMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		trust       bool
		defaultUser string
		header      string
		want        string
	}{
		{"trusted header", true, "demo", "alice", "alice"},
		{"untrusted header falls back", false, "demo", "alice", "demo"},
		{"no header uses default", true, "demo", "", "demo"},
		{"anonymous", false, "", "alice", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUsers{users: map[string]*domain.User{}}
			s := &Server{
				svc:  Services{Identity: app.NewIdentityService(users, tt.defaultUser)},
				opts: Options{TrustProxyHeader: tt.trust},
			}
			var got string
			h := s.identityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if u := app.UserFrom(r.Context()); u != nil {
					got = u.Username
				}
			}))
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Remote-User", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("user = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&domain.ValidationError{Field: "weight", Message: "x"}, http.StatusBadRequest},
		{domain.ErrUnknownPeriod, http.StatusBadRequest},
		{domain.ErrNoUser, http.StatusUnauthorized},
		{domain.ErrDeviceNotFound, http.StatusNotFound},
		{domain.ErrChallengeClosed, http.StatusConflict},
		{domain.ErrNoDeviceConnected, http.StatusConflict},
		{bytes.ErrTooLarge, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, toastFor(&domain.ValidationError{Field: "weight", Message: app.MsgWeightRequired}))

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	toast := takeFlash(out, req)
	if toast == nil || !toast.Error || toast.Description != app.MsgWeightRequired {
		t.Fatalf("unexpected toast %+v", toast)
	}
	cleared := out.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("expected flash cookie to be cleared, got %v", cleared)
	}
}
