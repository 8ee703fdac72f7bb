package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/session"
)

// requirePermission rejects write-level requests the guard's read check
// let through. Returns false with the response already written.
func requirePermission(w http.ResponseWriter, sess *session.Store, module string, kind domainauth.PermissionKind) bool {
	if sess.HasModulePermission(module, kind) {
		return true
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "insufficient_permissions",
		Err:     errors.New("insufficient permissions"),
	})
	return false
}

// pathID reads the {id} path segment as an integer.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// redirectWithError bounces back to a view carrying a banner message, so
// a failed mutation survives the post/redirect/get round-trip.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// bannerError reads the banner message back out of the query string.
func bannerError(r *http.Request) string {
	return r.URL.Query().Get("error")
}

// firstMessage flattens a field-error map into one banner line.
func firstMessage(errs map[string]string) string {
	for field, msg := range errs {
		if field == "" {
			return msg
		}
		return field + ": " + msg
	}
	return "invalid input"
}
