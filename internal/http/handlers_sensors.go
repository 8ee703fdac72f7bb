package httpx

import (
	"net/http"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

const sensorsPath = "/sensors"

// SensorHandlers serves the sensor management view and mutations.
type SensorHandlers struct {
	Session  *session.Store
	Data     *store.DataStore
	Renderer *TemplateRenderer
}

func registerSensorRoutes(mux *http.ServeMux, h *SensorHandlers) {
	mux.HandleFunc("GET /sensors", h.List)
	mux.HandleFunc("POST /sensors", h.Create)
	mux.HandleFunc("POST /sensors/{id}", h.Update)
	mux.HandleFunc("POST /sensors/{id}/delete", h.Delete)
}

// SensorsPage is the sensor view model.
type SensorsPage struct {
	BasePage
	Sensors   []model.Sensor
	Persons   []model.Person
	Batches   []model.Batch
	CanWrite  bool
	CanDelete bool
}

func (h *SensorHandlers) List(w http.ResponseWriter, r *http.Request) {
	page := SensorsPage{BasePage: basePage(h.Session, sensorsPath)}
	page.Error = bannerError(r)

	if err := h.Data.RefreshSensors(r.Context()); err != nil && page.Error == "" {
		page.Error = h.Data.LastError()
	}
	page.Sensors = h.Data.Sensors()
	page.Persons = h.Data.Persons()
	page.Batches = h.Data.Batches()
	page.CanWrite = h.Session.HasModulePermission(domainauth.ModuleSensorData, domainauth.PermissionWrite)
	page.CanDelete = h.Session.HasModulePermission(domainauth.ModuleSensorData, domainauth.PermissionDelete)

	_ = h.Renderer.Render(w, "sensors", page)
}

func (h *SensorHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleSensorData, domainauth.PermissionWrite) {
		return
	}

	req := model.CreateSensorRequest{
		SensorName: formString(r, "sensor_name"),
		PersonID:   formInt(r, "person_id"),
		BatchID:    formInt(r, "batch_id"),
		StartTime:  formDateTime(r, "start_time"),
		EndTime:    formDateTimePtr(r, "end_time"),
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		redirectWithError(w, r, sensorsPath, err.Error())
		return
	}

	if _, err := h.Data.AddSensor(r.Context(), req); err != nil {
		redirectWithError(w, r, sensorsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, sensorsPath, http.StatusSeeOther)
}

func (h *SensorHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleSensorData, domainauth.PermissionWrite) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	req := model.UpdateSensorRequest{
		SensorName: formStringPtr(r, "sensor_name"),
		PersonID:   formIntPtr(r, "person_id"),
		BatchID:    formIntPtr(r, "batch_id"),
		StartTime:  formDateTimePtr(r, "start_time"),
		EndTime:    formDateTimePtr(r, "end_time"),
	}
	if errs := checkStruct(req); errs != nil {
		redirectWithError(w, r, sensorsPath, firstMessage(errs))
		return
	}

	if _, err := h.Data.UpdateSensor(r.Context(), id, req); err != nil {
		redirectWithError(w, r, sensorsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, sensorsPath, http.StatusSeeOther)
}

func (h *SensorHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, h.Session, domainauth.ModuleSensorData, domainauth.PermissionDelete) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.Data.DeleteSensor(r.Context(), id); err != nil {
		redirectWithError(w, r, sensorsPath, h.Data.LastError())
		return
	}
	http.Redirect(w, r, sensorsPath, http.StatusSeeOther)
}
