package httpx

import (
	"net/http"

	"github.com/glucolab/labconsole/internal/apiclient"
	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

// recentActivityLimit is how many audit-trail entries the landing view
// shows.
const recentActivityLimit = 10

// DashboardHandlers serves the landing view.
type DashboardHandlers struct {
	Session  *session.Store
	Data     *store.DataStore
	API      *apiclient.Client
	Renderer *TemplateRenderer
}

// DashboardCard is one module summary tile.
type DashboardCard struct {
	Title string
	Path  string
	Count int
}

// DashboardPage is the dashboard view model.
type DashboardPage struct {
	BasePage
	Cards      []DashboardCard
	Activities []model.Activity
}

// Get renders one tile per module the operator can enter, with the cached
// collection size as the headline number.
func (h *DashboardHandlers) Get(w http.ResponseWriter, r *http.Request) {
	page := DashboardPage{BasePage: basePage(h.Session, landingPath)}
	page.Error = bannerError(r)

	counts := map[string]int{
		"/batches":           len(h.Data.Batches()),
		"/persons":           len(h.Data.Persons()),
		"/experiments":       len(h.Data.Experiments()),
		"/competitor-data":   len(h.Data.CompetitorFiles()),
		"/finger-blood-data": len(h.Data.FingerBloodRecords()),
		"/sensors":           len(h.Data.Sensors()),
	}

	for _, item := range page.Nav {
		count, ok := counts[item.Path]
		if !ok {
			continue
		}
		page.Cards = append(page.Cards, DashboardCard{Title: item.Title, Path: item.Path, Count: count})
	}

	// Best-effort; the view renders without the feed.
	if activities, err := h.API.ListActivities(r.Context(), recentActivityLimit); err == nil {
		page.Activities = activities
	}

	_ = h.Renderer.Render(w, "dashboard", page)
}
