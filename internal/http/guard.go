package httpx

import (
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/session"
)

const (
	loginPath   = "/login"
	landingPath = "/dashboard"
)

// RouteMeta declares a view's access requirements. A zero Module means the
// view is not permission-gated beyond authentication.
type RouteMeta struct {
	Path         string
	Title        string
	RequiresAuth bool
	AdminOnly    bool
	Module       string
}

// routeTable drives both the guard and the navigation sidebar. Order is
// the sidebar order.
var routeTable = []RouteMeta{
	{Path: loginPath, Title: "Sign In"},
	{Path: landingPath, Title: "Dashboard", RequiresAuth: true},
	{Path: "/batches", Title: "Batch Management", RequiresAuth: true, Module: domainauth.ModuleBatchManagement},
	{Path: "/persons", Title: "Person Management", RequiresAuth: true, Module: domainauth.ModulePersonManagement},
	{Path: "/experiments", Title: "Experiment Management", RequiresAuth: true, Module: domainauth.ModuleExperimentManagement},
	{Path: "/competitor-data", Title: "Competitor Data", RequiresAuth: true, Module: domainauth.ModuleCompetitorData},
	{Path: "/finger-blood-data", Title: "Finger Blood Data", RequiresAuth: true, Module: domainauth.ModuleFingerBloodData},
	{Path: "/sensors", Title: "Sensor Management", RequiresAuth: true, Module: domainauth.ModuleSensorData},
	{Path: "/users", Title: "User Management", RequiresAuth: true, AdminOnly: true, Module: domainauth.ModuleUserManagement},
}

// metaFor matches a request path against the route table by path prefix,
// so item routes like /batches/3/delete inherit their view's metadata.
func metaFor(path string) (RouteMeta, bool) {
	for _, meta := range routeTable {
		if path == meta.Path || strings.HasPrefix(path, meta.Path+"/") {
			return meta, true
		}
	}
	return RouteMeta{}, false
}

// Guard enforces the route table against the operator session on every
// navigation. Unknown paths pass through untouched; the mux decides their
// fate.
func Guard(sess *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			meta, known := metaFor(r.URL.Path)
			if !known {
				next.ServeHTTP(w, r)
				return
			}

			// The login view flips around: an authenticated operator has
			// no business there.
			if meta.Path == loginPath {
				if sess.IsLoggedIn() {
					http.Redirect(w, r, landingPath, http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if !meta.RequiresAuth {
				next.ServeHTTP(w, r)
				return
			}

			if !sess.IsLoggedIn() {
				// A persisted token may still be good; InitAuth revalidates
				// it before giving up and bouncing to login.
				if err := sess.InitAuth(r.Context()); err != nil || !sess.IsLoggedIn() {
					redirectToLogin(w, r)
					return
				}
			}

			// Permission denials land on the dashboard, not the login
			// view: the operator is authenticated, just not entitled.
			if meta.AdminOnly && !sess.IsAdmin() {
				http.Redirect(w, r, landingPath, http.StatusSeeOther)
				return
			}
			if meta.Module != "" && !sess.IsAdmin() && !sess.HasAnyPermission(meta.Module) {
				http.Redirect(w, r, landingPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := loginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeRedirectTarget validates an operator-supplied return path. Only
// local absolute paths are honored; anything else falls back to the
// landing view.
func safeRedirectTarget(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return landingPath
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" || u.Scheme != "" {
		return landingPath
	}
	return raw
}
