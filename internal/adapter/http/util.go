package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"healthhub/internal/domain"
	"healthhub/internal/task"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeAppError writes err with the status statusFor picks.
func writeAppError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": ve.Message, "field": ve.Field})
		return
	}
	writeError(w, statusFor(err), err)
}

func statusFor(err error) int {
	switch {
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrUnknownPeriod),
		errors.Is(err, domain.ErrUnknownTab),
		errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrUnknownRange),
		errors.Is(err, domain.ErrUnknownSetting):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrDeviceNotFound),
		errors.Is(err, domain.ErrChallengeNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, task.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoDeviceConnected),
		errors.Is(err, domain.ErrChallengeClosed):
		return http.StatusConflict
	case errors.Is(err, task.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// numField renders an optional JSON number the way a form field would carry
// it, so JSON and form input share validation.
func numField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// chain applies middlewares so they run in the order given.
func chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
