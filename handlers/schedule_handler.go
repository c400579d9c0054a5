package handlers

import (
	"net/http"

	"github.com/Dosada05/futbol5/services"
)

// ScheduleHandler exposes admin CRUD for weekly schedules.
type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// CreateSchedule
// @Summary Create a weekly schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param schedule body services.ScheduleInput true "Schedule, time as HH:MM"
// @Success 201 {object} map[string]interface{} "schedule"
// @Failure 403 {object} map[string]string "schedules are read-only"
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/schedules [post]
// @Security ApiKeyAuth
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var input services.ScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusCreated, jsonResponse{"schedule": schedule}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListSchedules
// @Summary List weekly schedules
// @Tags Schedules
// @Produce json
// @Success 200 {object} map[string]interface{} "schedules"
// @Router /api/schedules [get]
// @Security ApiKeyAuth
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleService.ListSchedules(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"schedules": schedules}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetScheduleByID
// @Summary Get a weekly schedule
// @Tags Schedules
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} map[string]interface{} "schedule"
// @Failure 404 {object} map[string]string
// @Router /api/schedules/{id} [get]
// @Security ApiKeyAuth
func (h *ScheduleHandler) GetScheduleByID(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.GetScheduleByID(r.Context(), scheduleID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateSchedule
// @Summary Update a weekly schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Param schedule body services.ScheduleInput true "Schedule"
// @Success 200 {object} map[string]interface{} "schedule"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/schedules/{id} [put]
// @Security ApiKeyAuth
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(r.Context(), scheduleID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteSchedule
// @Summary Delete a weekly schedule
// @Tags Schedules
// @Param id path int true "Schedule ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/schedules/{id} [delete]
// @Security ApiKeyAuth
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.DeleteSchedule(r.Context(), scheduleID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
