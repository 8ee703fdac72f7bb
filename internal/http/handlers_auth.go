package httpx

import (
	"log/slog"
	"net/http"

	"github.com/glucolab/labconsole/internal/session"
)

// AuthHandlers serves the login view and the session endpoints.
type AuthHandlers struct {
	Session  *session.Store
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

// LoginPage is the login view model.
type LoginPage struct {
	Title    string
	Redirect string
	Error    string
}

// GetLogin renders the login form. The guard already bounced
// authenticated operators to the dashboard.
func (h *AuthHandlers) GetLogin(w http.ResponseWriter, r *http.Request) {
	_ = h.Renderer.Render(w, "login", LoginPage{
		Title:    "Sign In",
		Redirect: r.URL.Query().Get("redirect"),
	})
}

// PostLogin authenticates and, on success, sends the operator back to
// where the guard interrupted them.
func (h *AuthHandlers) PostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	username := formString(r, "username")
	password := r.PostFormValue("password")
	redirect := r.PostFormValue("redirect")

	if !h.Session.Login(r.Context(), username, password) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = h.Renderer.Render(w, "login", LoginPage{
			Title:    "Sign In",
			Redirect: redirect,
			Error:    "Invalid username or password",
		})
		return
	}

	http.Redirect(w, r, safeRedirectTarget(redirect), http.StatusSeeOther)
}

// PostLogout ends the session and lands on the login view.
func (h *AuthHandlers) PostLogout(w http.ResponseWriter, r *http.Request) {
	h.Session.Logout(r.Context())
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
