package httpx

import (
	"net/http"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

const experimentsPath = "/experiments"

// ExperimentHandlers serves the experiment management view and mutations.
type ExperimentHandlers struct {
	Session  *session.Store
	Data     *store.DataStore
	Renderer *TemplateRenderer
}

func registerExperimentRoutes(mux *http.ServeMux, h *ExperimentHandlers) {
	mux.HandleFunc("GET /experiments", h.List)
	mux.HandleFunc("POST /experiments", h.Create)
	mux.HandleFunc("POST /experiments/{id}", h.Update)
	mux.HandleFunc("POST /experiments/{id}/delete", h.Delete)
}

// ExperimentsPage is the experiment view model. Batches and Persons feed
// the membership selects.
type ExperimentsPage struct {
	BasePage
	Experiments []model.Experiment
	Batches     []model.Batch
	Persons     []model.Person
	CanWrite    bool
}

func (h *ExperimentHandlers) List(w http.ResponseWriter, r *http.Request) {
	page := ExperimentsPage{BasePage: basePage(h.Session, experimentsPath)}
	page.Error = bannerError(r)

	if err := h.Data.RefreshExperiments(r.Context()); err != nil && page.Error == "" {
		page.Error = h.Data.LastError()
	}
	page.Experiments = h.Data.Experiments()
	page.Batches = h.Data.Batches()
	page.Persons = h.Data.Persons()
	page.CanWrite = h.Session.HasModulePermission(domainauth.ModuleExperimentManagement, domainauth.PermissionWrite)

	_ = h.Renderer.Render(w, "experiments", page)
}

func (h *ExperimentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleExperimentManagement, domainauth.PermissionWrite) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	req := model.CreateExperimentRequest{
		BatchID:           formInt(r, "batch_id"),
		ExperimentContent: formString(r, "experiment_content"),
		MemberIDs:         formIntList(r.PostForm["member_ids"]),
	}
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, experimentsPath, err.Error())
		return
	}

	if _, err := h.Data.AddExperiment(r.Context(), req); err != nil {
		redirectWithError(w, r, experimentsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, experimentsPath, http.StatusSeeOther)
}

func (h *ExperimentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleExperimentManagement, domainauth.PermissionWrite) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	req := model.UpdateExperimentRequest{
		BatchID:           formIntPtr(r, "batch_id"),
		ExperimentContent: formStringPtr(r, "experiment_content"),
		MemberIDs:         formIntList(r.PostForm["member_ids"]),
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, experimentsPath, firstMessage(errs))
		return
	}

	if _, err := h.Data.UpdateExperiment(r.Context(), id, req); err != nil {
		redirectWithError(w, r, experimentsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, experimentsPath, http.StatusSeeOther)
}

func (h *ExperimentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleExperimentManagement, domainauth.PermissionDelete) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.Data.DeleteExperiment(r.Context(), id); err != nil {
		redirectWithError(w, r, experimentsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, experimentsPath, http.StatusSeeOther)
}
