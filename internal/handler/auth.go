package handler

import (
	"net/http"

	"github.com/readroom-dev/readroom/internal/domain"
	"github.com/readroom-dev/readroom/internal/middleware"
)

type registerRequest struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
}

type loginRequest struct {
	Name     string `validate:"required" json:"name"`
	Password string `validate:"required" json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := loadAndValidateRequestBody(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	id, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]domain.UserId{"id": id})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := loadAndValidateRequestBody(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	accessToken, err := h.auth.Login(domain.Credentials{Name: req.Name, Password: req.Password})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	// Long-lived cookie: sessions survive browser and server restarts
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    accessToken,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("You logged in"))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusOK)
}

// Me reports the identity behind the current session, or anonymous.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		writeJSON(w, map[string]interface{}{"anonymous": true})
		return
	}
	writeJSON(w, map[string]interface{}{"anonymous": false, "id": user.Id, "name": user.Name})
}
