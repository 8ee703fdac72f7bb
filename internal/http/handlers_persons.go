package httpx

import (
	"net/http"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

const personsPath = "/persons"

// PersonHandlers serves the person management view and mutations.
type PersonHandlers struct {
	Session  *session.Store
	Data     *store.DataStore
	Renderer *TemplateRenderer
}

func registerPersonRoutes(mux *http.ServeMux, h *PersonHandlers) {
	mux.HandleFunc("GET /persons", h.List)
	mux.HandleFunc("POST /persons", h.Create)
	mux.HandleFunc("POST /persons/{id}", h.Update)
	mux.HandleFunc("POST /persons/{id}/delete", h.Delete)
}

// PersonsPage is the person view model.
type PersonsPage struct {
	BasePage
	Persons  []model.Person
	Batches  []model.Batch
	CanWrite bool
}

func (h *PersonHandlers) List(w http.ResponseWriter, r *http.Request) {
	page := PersonsPage{BasePage: basePage(h.Session, personsPath)}
	page.Error = bannerError(r)

	if err := h.Data.RefreshPersons(r.Context()); err != nil && page.Error == "" {
		page.Error = h.Data.LastError()
	}
	page.Persons = h.Data.Persons()
	page.Batches = h.Data.Batches()
	page.CanWrite = h.Session.HasModulePermission(domainauth.ModulePersonManagement, domainauth.PermissionWrite)

	_ = h.Renderer.Render(w, "persons", page)
}

func (h *PersonHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModulePersonManagement, domainauth.PermissionWrite) {
		return
	}

	gender, ok := model.ParseGender(formString(r, "gender"))
	if !ok {
		redirectWithError(w, r, personsPath, "gender must be Male, Female, or Other")
		return
	}
	req := model.CreatePersonRequest{
		PersonName: formString(r, "person_name"),
		Age:        formIntPtr(r, "age"),
		HeightCM:   formFloatPtr(r, "height_cm"),
		WeightKG:   formFloatPtr(r, "weight_kg"),
		BatchID:    formIntPtr(r, "batch_id"),
	}
	if gender != "" {
		req.Gender = &gender
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, personsPath, err.Error())
		return
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, personsPath, firstMessage(errs))
		return
	}

	if _, err := h.Data.AddPerson(r.Context(), req); err != nil {
		redirectWithError(w, r, personsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, personsPath, http.StatusSeeOther)
}

func (h *PersonHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModulePersonManagement, domainauth.PermissionWrite) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	gender, genderOK := model.ParseGender(formString(r, "gender"))
	if !genderOK {
		redirectWithError(w, r, personsPath, "gender must be Male, Female, or Other")
		return
	}
	req := model.UpdatePersonRequest{
		PersonName: formStringPtr(r, "person_name"),
		Age:        formIntPtr(r, "age"),
		HeightCM:   formFloatPtr(r, "height_cm"),
		WeightKG:   formFloatPtr(r, "weight_kg"),
		BatchID:    formIntPtr(r, "batch_id"),
	}
	if gender != "" {
		req.Gender = &gender
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, personsPath, firstMessage(errs))
		return
	}

	if _, err := h.Data.UpdatePerson(r.Context(), id, req); err != nil {
		redirectWithError(w, r, personsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, personsPath, http.StatusSeeOther)
}

func (h *PersonHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModulePersonManagement, domainauth.PermissionDelete) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.Data.DeletePerson(r.Context(), id); err != nil {
		redirectWithError(w, r, personsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, personsPath, http.StatusSeeOther)
}
