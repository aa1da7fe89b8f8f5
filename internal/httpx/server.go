package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/akshayam/wellness-store.git/internal/auth"
	"github.com/akshayam/wellness-store.git/internal/orders"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainErr maps engine errors onto HTTP statuses. Stock-validation
// failures carry their per-item detail through to the client.
func writeDomainErr(w http.ResponseWriter, err error) {
	var de *orders.Error
	if !errors.As(err, &de) {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	code := http.StatusInternalServerError
	switch de.Kind {
	case orders.KindValidation:
		code = http.StatusBadRequest
	case orders.KindNotFound:
		code = http.StatusNotFound
	case orders.KindUnauthorized:
		code = http.StatusUnauthorized
	case orders.KindForbidden:
		code = http.StatusForbidden
	}
	if len(de.InvalidItems) > 0 {
		writeJSON(w, code, map[string]any{
			"error":         de.Message,
			"invalid_items": de.InvalidItems,
		})
		return
	}
	writeErr(w, code, de.Message)
}

// AdminOnly guards admin routes behind a bearer token issued by
// POST /admin/login.
func AdminOnly(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				writeErr(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if _, err := tokens.Verify(strings.TrimPrefix(h, "Bearer ")); err != nil {
				writeErr(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
