package httpx

import (
	"net/http"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

const batchesPath = "/batches"

// BatchHandlers serves the batch management view and mutations.
type BatchHandlers struct {
	Session  *session.Store
	Data     *store.DataStore
	Renderer *TemplateRenderer
}

func registerBatchRoutes(mux *http.ServeMux, h *BatchHandlers) {
	mux.HandleFunc("GET /batches", h.List)
	mux.HandleFunc("POST /batches", h.Create)
	mux.HandleFunc("POST /batches/{id}", h.Update)
	mux.HandleFunc("POST /batches/{id}/delete", h.Delete)
}

// BatchesPage is the batch view model.
type BatchesPage struct {
	BasePage
	Batches  []model.Batch
	CanWrite bool
}

// List refreshes the cache from the server, then renders it. A refresh
// failure still renders whatever the cache holds, with a banner.
func (h *BatchHandlers) List(w http.ResponseWriter, r *http.Request) {
	page := BatchesPage{BasePage: basePage(h.Session, batchesPath)}
	page.Error = bannerError(r)

	if err := h.Data.RefreshBatches(r.Context()); err != nil && page.Error == "" {
		page.Error = h.Data.LastError()
	}
	page.Batches = h.Data.Batches()
	page.CanWrite = h.Session.HasModulePermission(domainauth.ModuleBatchManagement, domainauth.PermissionWrite)

	_ = h.Renderer.Render(w, "batches", page)
}

func (h *BatchHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleBatchManagement, domainauth.PermissionWrite) {
		return
	}

	req := model.CreateBatchRequest{
		BatchNumber: formString(r, "batch_number"),
		StartTime:   formDateTime(r, "start_time"),
		EndTime:     formDateTimePtr(r, "end_time"),
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, batchesPath, err.Error())
		return
	}

	if _, err := h.Data.AddBatch(r.Context(), req); err != nil {
		redirectWithError(w, r, batchesPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, batchesPath, http.StatusSeeOther)
}

func (h *BatchHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleBatchManagement, domainauth.PermissionWrite) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req := model.UpdateBatchRequest{
		BatchNumber: formStringPtr(r, "batch_number"),
		StartTime:   formDateTimePtr(r, "start_time"),
		EndTime:     formDateTimePtr(r, "end_time"),
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, batchesPath, firstMessage(errs))
		return
	}

	if _, err := h.Data.UpdateBatch(r.Context(), id, req); err != nil {
		redirectWithError(w, r, batchesPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, batchesPath, http.StatusSeeOther)
}

func (h *BatchHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleBatchManagement, domainauth.PermissionDelete) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.Data.DeleteBatch(r.Context(), id); err != nil {
		redirectWithError(w, r, batchesPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, batchesPath, http.StatusSeeOther)
}
