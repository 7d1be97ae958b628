package adapthttp

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"healthhub/internal/domain"
	"healthhub/internal/ui"
)

const (
	flashCookie = "healthhub_toast"
	unitCookie  = "healthhub_unit"
)

func setFlash(w http.ResponseWriter, t ui.Toast) {
	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns the pending toast, if any, and clears it.
func takeFlash(w http.ResponseWriter, r *http.Request) *ui.Toast {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var t ui.Toast
	if err := json.Unmarshal(b, &t); err != nil {
		return nil
	}
	return &t
}

// toastFor turns err into the message shown to the user.
func toastFor(err error) ui.Toast {
	t := ui.Toast{Title: "Error", Error: true}
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		t.Description = ve.Message
	case errors.Is(err, domain.ErrNoUser):
		t.Description = "Please sign in to continue"
	case statusFor(err) == http.StatusInternalServerError:
		t.Description = "Something went wrong, please try again"
	default:
		t.Description = err.Error()
	}
	return t
}
