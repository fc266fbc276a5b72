package handlers

import (
	"errors"
	"net/http"

	"github.com/jhbridge/billing/internal/gate"
	"github.com/jhbridge/billing/internal/httpx"
	"github.com/jhbridge/billing/internal/view"
)

// GateHandler exposes the access gate over HTTP: a login form, logout,
// and a middleware protecting the editors.
type GateHandler struct {
	Gate *gate.Gate
}

func NewGateHandler(g *gate.Gate) *GateHandler { return &GateHandler{Gate: g} }

func (h *GateHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

// renderTemplate wraps view.Render with a plain-text fallback.
func renderTemplate(w http.ResponseWriter, name string, data map[string]any) {
	if err := view.Render(w, name+".html", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (h *GateHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if h.Gate.Authenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, "login", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	code := r.FormValue("access_code")
	if err := h.Gate.Submit(code); err != nil {
		if errors.Is(err, gate.ErrInvalidCode) {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusUnauthorized, "invalid_access_code", nil)
				return
			}
			// cosmetic retry: inline error, input cleared by re-render
			renderTemplate(w, "login", map[string]any{"Error": "Invalid access code. Please try again."})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "gate_error", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "authenticated"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *GateHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := h.Gate.Logout(); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "gate_error", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Protect gates a handler: unauthenticated requests are redirected to
// the login form (HTML) or rejected with 401 (JSON).
func (h *GateHandler) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Gate.Authenticated() {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
