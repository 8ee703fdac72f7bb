package httpx

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/glucolab/labconsole/internal/apiclient"
	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

const competitorDataPath = "/competitor-data"

// maxUploadMemory bounds the multipart parse buffer; larger file parts
// spill to disk.
const maxUploadMemory = 32 << 20

// CompetitorFileHandlers serves the competitor data view, uploads, and
// downloads.
type CompetitorFileHandlers struct {
	Session  *session.Store
	Data     *store.DataStore
	API      *apiclient.Client
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func registerCompetitorFileRoutes(mux *http.ServeMux, h *CompetitorFileHandlers) {
	mux.HandleFunc("GET /competitor-data", h.List)
	mux.HandleFunc("POST /competitor-data/upload", h.Upload)
	mux.HandleFunc("GET /competitor-data/{id}/download", h.Download)
	mux.HandleFunc("POST /competitor-data/{id}/rename", h.Rename)
	mux.HandleFunc("POST /competitor-data/{id}/delete", h.Delete)
}

// CompetitorFilesPage is the competitor data view model.
type CompetitorFilesPage struct {
	BasePage
	Files     []model.CompetitorFile
	Persons   []model.Person
	Batches   []model.Batch
	CanWrite  bool
	CanDelete bool
}

func (h *CompetitorFileHandlers) List(w http.ResponseWriter, r *http.Request) {
	page := CompetitorFilesPage{BasePage: basePage(h.Session, competitorDataPath)}
	page.Error = bannerError(r)

	if err := h.Data.RefreshCompetitorFiles(r.Context()); err != nil && page.Error == "" {
		page.Error = h.Data.LastError()
	}
	page.Files = h.Data.CompetitorFiles()
	page.Persons = h.Data.Persons()
	page.Batches = h.Data.Batches()
	page.CanWrite = h.Session.HasModulePermission(domainauth.ModuleCompetitorData, domainauth.PermissionWrite)
	page.CanDelete = h.Session.HasModulePermission(domainauth.ModuleCompetitorData, domainauth.PermissionDelete)

	_ = h.Renderer.Render(w, "competitor_files", page)
}

// Upload relays the browser's multipart upload to the lab API without
// buffering the whole file.
func (h *CompetitorFileHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleCompetitorData, domainauth.PermissionWrite) {
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		redirectWithError(w, r, competitorDataPath, "invalid upload form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		redirectWithError(w, r, competitorDataPath, "a file is required")
		return
	}
	defer file.Close()

	req := model.UploadCompetitorFileRequest{
		PersonID: formInt(r, "person_id"),
		BatchID:  formInt(r, "batch_id"),
		Filename: header.Filename,
	}
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, competitorDataPath, err.Error())
		return
	}

	if _, err := h.Data.UploadCompetitorFile(r.Context(), req, file); err != nil {
		redirectWithError(w, r, competitorDataPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, competitorDataPath, http.StatusSeeOther)
}

// Download streams the stored file through to the browser.
func (h *CompetitorFileHandlers) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	body, filename, err := h.API.DownloadCompetitorFile(r.Context(), id)
	if err != nil {
		h.Logger.Warn("download failed", slog.Int("id", id), slog.String("detail", apiclient.ErrorMessage(err)))
		redirectWithError(w, r, competitorDataPath, apiclient.ErrorMessage(err))
		return
	}
	defer body.Close()

	if filename == "" {
		filename = fmt.Sprintf("competitor-file-%d", id)
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if _, err := io.Copy(w, body); err != nil {
		h.Logger.Warn("download stream interrupted", slog.Int("id", id), slog.Any("error", err))
	}
}

func (h *CompetitorFileHandlers) Rename(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleCompetitorData, domainauth.PermissionWrite) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req := model.RenameCompetitorFileRequest{NewFileName: formString(r, "new_file_name")}
	req.Normalize()
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, competitorDataPath, err.Error())
		return
	}

	if _, err := h.Data.RenameCompetitorFile(r.Context(), id, req); err != nil {
		redirectWithError(w, r, competitorDataPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, competitorDataPath, http.StatusSeeOther)
}

func (h *CompetitorFileHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleCompetitorData, domainauth.PermissionDelete) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.Data.DeleteCompetitorFile(r.Context(), id); err != nil {
		redirectWithError(w, r, competitorDataPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, competitorDataPath, http.StatusSeeOther)
}
