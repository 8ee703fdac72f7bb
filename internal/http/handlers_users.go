package httpx

import (
	"log/slog"
	"net/http"

	"github.com/glucolab/labconsole/internal/apiclient"
	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/session"
)

const usersPath = "/users"

// moduleNames is the permission grid's row order.
var moduleNames = []string{
	domainauth.ModuleBatchManagement,
	domainauth.ModulePersonManagement,
	domainauth.ModuleExperimentManagement,
	domainauth.ModuleCompetitorData,
	domainauth.ModuleFingerBloodData,
	domainauth.ModuleSensorData,
	domainauth.ModuleUserManagement,
}

// UserHandlers serves the admin-only user management view. The guard
// already restricted the whole path to admins.
type UserHandlers struct {
	Session  *session.Store
	API      *apiclient.Client
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers) {
	mux.HandleFunc("GET /users", h.List)
	mux.HandleFunc("POST /users", h.Create)
	mux.HandleFunc("POST /users/{id}", h.Update)
	mux.HandleFunc("POST /users/{id}/delete", h.Delete)
	mux.HandleFunc("POST /users/{id}/permissions", h.AssignPermissions)
}

// UsersPage is the user management view model.
type UsersPage struct {
	BasePage
	Users   []domainauth.UserProfile
	Modules []string
}

func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	page := UsersPage{BasePage: basePage(h.Session, usersPath), Modules: moduleNames}
	page.Error = bannerError(r)

	users, err := h.API.ListUsers(r.Context())
	if err != nil && page.Error == "" {
		page.Error = apiclient.ErrorMessage(err)
	}
	page.Users = users

	_ = h.Renderer.Render(w, "users", page)
}

func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req := domainauth.CreateUserRequest{
		Username: formString(r, "username"),
		Password: r.PostFormValue("password"),
		Role:     domainauth.Role(formString(r, "role")),
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, usersPath, err.Error())
		return
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, usersPath, firstMessage(errs))
		return
	}

	if _, err := h.API.CreateUser(r.Context(), req); err != nil {
		redirectWithError(w, r, usersPath, apiclient.ErrorMessage(err))
		return
	}
	http.Redirect(w, r, usersPath, http.StatusSeeOther)
}

func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req := domainauth.UpdateUserRequest{
		Username: formStringPtr(r, "username"),
	}
	if pw := r.PostFormValue("password"); pw != "" {
		req.Password = &pw
	}
	if role := formString(r, "role"); role != "" {
		v := domainauth.Role(role)
		req.Role = &v
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, usersPath, firstMessage(errs))
		return
	}

	if _, err := h.API.UpdateUser(r.Context(), id, req); err != nil {
		redirectWithError(w, r, usersPath, apiclient.ErrorMessage(err))
		return
	}
	http.Redirect(w, r, usersPath, http.StatusSeeOther)
}

func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.API.DeleteUser(r.Context(), id); err != nil {
		redirectWithError(w, r, usersPath, apiclient.ErrorMessage(err))
		return
	}
	http.Redirect(w, r, usersPath, http.StatusSeeOther)
}

// AssignPermissions replaces the user's module grants from the checkbox
// grid: one checkbox per module and kind, named <module>_read and so on.
func (h *UserHandlers) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	req := domainauth.AssignPermissionsRequest{UserID: id}
	for _, module := range moduleNames {
		perm := domainauth.ModulePermission{
			Module:    module,
			CanRead:   r.PostForm.Has(module + "_read"),
			CanWrite:  r.PostForm.Has(module + "_write"),
			CanDelete: r.PostForm.Has(module + "_delete"),
		}
		if perm.CanRead || perm.CanWrite || perm.CanDelete {
			req.Permissions = append(req.Permissions, perm)
		}
	}

	if err := h.API.AssignPermissions(r.Context(), req); err != nil {
		redirectWithError(w, r, usersPath, apiclient.ErrorMessage(err))
		return
	}
	http.Redirect(w, r, usersPath, http.StatusSeeOther)
}
