package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akshayam/wellness-store.git/internal/auth"
	"github.com/akshayam/wellness-store.git/internal/users"
)

type AuthHandler struct {
	Admins *auth.AdminRepo
	Users  *users.Repo
	Hasher auth.Hasher
	Tokens *auth.TokenIssuer
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/admin/login", h.adminLogin)
	r.Post("/user/login", h.userLogin)
}

type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.Admins.FindByUsername(r.Context(), req.Username)
	if errors.Is(err, auth.ErrAdminNotFound) || (err == nil && !h.Hasher.Verify(req.Password, a.PasswordHash)) {
		writeErr(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	tok, err := h.Tokens.Issue(a.Username)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": tok,
		"token_type":   "bearer",
	})
}

type userLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) userLogin(w http.ResponseWriter, r *http.Request) {
	var req userLoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.Users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, users.ErrNotFound) || (err == nil && !h.Hasher.Verify(req.Password, u.PasswordHash)) {
		writeErr(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
