package httpx

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/glucolab/labconsole/internal/apiclient"
	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/export"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

const fingerBloodPath = "/finger-blood-data"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FingerBloodHandlers serves the glucose measurement view, mutations, and
// the Excel export.
type FingerBloodHandlers struct {
	Session  *session.Store
	Data     *store.DataStore
	API      *apiclient.Client
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func registerFingerBloodRoutes(mux *http.ServeMux, h *FingerBloodHandlers) {
	mux.HandleFunc("GET /finger-blood-data", h.List)
	mux.HandleFunc("POST /finger-blood-data", h.Create)
	mux.HandleFunc("POST /finger-blood-data/{id}", h.Update)
	mux.HandleFunc("POST /finger-blood-data/{id}/delete", h.Delete)
	mux.HandleFunc("GET /finger-blood-data/export", h.Export)
}

// FingerBloodPage is the glucose measurement view model.
type FingerBloodPage struct {
	BasePage
	Records   []model.FingerBloodRecord
	Persons   []model.Person
	Batches   []model.Batch
	Filter    model.FingerBloodExportFilter
	CanWrite  bool
	CanDelete bool
}

func exportFilterFromQuery(r *http.Request) model.FingerBloodExportFilter {
	q := queryValues{r.URL.Query()}
	filter := model.FingerBloodExportFilter{
		BatchID:  formInt(q, "batch_id"),
		PersonID: formInt(q, "person_id"),
	}
	filter.StartTime = formDateTime(q, "start_time")
	filter.EndTime = formDateTime(q, "end_time")
	return filter
}

func (h *FingerBloodHandlers) List(w http.ResponseWriter, r *http.Request) {
	page := FingerBloodPage{BasePage: basePage(h.Session, fingerBloodPath)}
	page.Error = bannerError(r)

	if err := h.Data.RefreshFingerBlood(r.Context()); err != nil && page.Error == "" {
		page.Error = h.Data.LastError()
	}
	page.Filter = exportFilterFromQuery(r)
	page.Records = h.Data.FilterFingerBlood(page.Filter)
	page.Persons = h.Data.Persons()
	page.Batches = h.Data.Batches()
	page.CanWrite = h.Session.HasModulePermission(domainauth.ModuleFingerBloodData, domainauth.PermissionWrite)
	page.CanDelete = h.Session.HasModulePermission(domainauth.ModuleFingerBloodData, domainauth.PermissionDelete)

	_ = h.Renderer.Render(w, "finger_blood", page)
}

func (h *FingerBloodHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleFingerBloodData, domainauth.PermissionWrite) {
		return
	}

	req := model.CreateFingerBloodRequest{
		PersonID:          formInt(r, "person_id"),
		BatchID:           formInt(r, "batch_id"),
		CollectionTime:    formDateTime(r, "collection_time"),
		BloodGlucoseValue: formFloat(r, "blood_glucose_value"),
	}
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, fingerBloodPath, err.Error())
		return
	}

	if _, err := h.Data.AddFingerBloodRecord(r.Context(), req); err != nil {
		redirectWithError(w, r, fingerBloodPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, fingerBloodPath, http.StatusSeeOther)
}

func (h *FingerBloodHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleFingerBloodData, domainauth.PermissionWrite) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req := model.UpdateFingerBloodRequest{
		PersonID:          formIntPtr(r, "person_id"),
		BatchID:           formIntPtr(r, "batch_id"),
		CollectionTime:    formDateTimePtr(r, "collection_time"),
		BloodGlucoseValue: formFloatPtr(r, "blood_glucose_value"),
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, fingerBloodPath, firstMessage(errs))
		return
	}

	if _, err := h.Data.UpdateFingerBloodRecord(r.Context(), id, req); err != nil {
		redirectWithError(w, r, fingerBloodPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, fingerBloodPath, http.StatusSeeOther)
}

func (h *FingerBloodHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleFingerBloodData, domainauth.PermissionDelete) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.Data.DeleteFingerBloodRecord(r.Context(), id); err != nil {
		redirectWithError(w, r, fingerBloodPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, fingerBloodPath, http.StatusSeeOther)
}

// Export serves the filtered measurements as an xlsx download. The
// default build comes from the local cache; source=server proxies the lab
// API's own export instead.
func (h *FingerBloodHandlers) Export(w http.ResponseWriter, r *http.Request) {
	filter := exportFilterFromQuery(r)
	filename := export.Filename("finger_blood_data", time.Now())

	if r.URL.Query().Get("source") == "server" {
		h.exportFromServer(w, r, filter, filename)
		return
	}

	if err := h.Data.RefreshFingerBlood(r.Context()); err != nil {
		redirectWithError(w, r, fingerBloodPath, h.Data.LastError())
		return
	}
	records := h.Data.FilterFingerBlood(filter)

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if err := export.WriteWorkbook(w, export.FingerBloodSheet(records)); err != nil {
		h.Logger.Error("excel export failed", slog.Any("error", err))
	}
}

func (h *FingerBloodHandlers) exportFromServer(w http.ResponseWriter, r *http.Request, filter model.FingerBloodExportFilter, filename string) {
	body, err := h.API.ExportFingerBloodExcel(r.Context(), filter)
	if err != nil {
		h.Logger.Warn("server export failed", slog.String("detail", apiclient.ErrorMessage(err)))
		redirectWithError(w, r, fingerBloodPath, apiclient.ErrorMessage(err))
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if _, err := io.Copy(w, body); err != nil {
		h.Logger.Warn("export stream interrupted", slog.Any("error", err))
	}
}
