package httpx

import (
	"github.com/glucolab/labconsole/internal/session"
)

// NavItem is one sidebar entry the operator is entitled to see.
type NavItem struct {
	Path   string
	Title  string
	Active bool
}

// BasePage carries the fields every view needs: identity, navigation,
// and the shared error banner.
type BasePage struct {
	Title    string
	Username string
	IsAdmin  bool
	Nav      []NavItem
	Error    string
}

// basePage assembles the chrome for the current operator and view. The
// sidebar only lists views the operator can actually enter; the guard is
// the enforcement, this is the courtesy.
func basePage(sess *session.Store, activePath string) BasePage {
	page := BasePage{
		Username: sess.Username(),
		IsAdmin:  sess.IsAdmin(),
	}

	for _, meta := range routeTable {
		if !meta.RequiresAuth {
			continue
		}
		if meta.AdminOnly && !sess.IsAdmin() {
			continue
		}
		if meta.Module != "" && !sess.IsAdmin() && !sess.HasAnyPermission(meta.Module) {
			continue
		}
		page.Nav = append(page.Nav, NavItem{
			Path:   meta.Path,
			Title:  meta.Title,
			Active: meta.Path == activePath,
		})
		if meta.Path == activePath {
			page.Title = meta.Title
		}
	}
	return page
}
