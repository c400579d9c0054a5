package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/futbol5/services"
)

// DailyRunner runs one scheduling decision and delivers its emails.
type DailyRunner interface {
	Run(ctx context.Context, today time.Time) (*services.Decision, error)
}

type TriggerHandler struct {
	job DailyRunner
	loc *time.Location
	now func() time.Time
}

func NewTriggerHandler(job DailyRunner, loc *time.Location) *TriggerHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TriggerHandler{job: job, loc: loc, now: time.Now}
}

type triggerRequest struct {
	Date string `json:"date"`
}

// SendMail runs the decision for the current day, as the external cron does.
// @Summary Run the daily scheduling decision
// @Tags Trigger
// @Produce json
// @Success 201 {object} map[string]interface{} "match created and invitations sent"
// @Success 200 {object} map[string]interface{} "status sent for an existing match"
// @Success 204 "nothing to do"
// @Router /sendmail/ [post]
func (h *TriggerHandler) SendMail(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.now().In(h.loc))
}

// Trigger is the admin variant; the optional date replays another day.
// @Summary Run the daily scheduling decision (admin)
// @Tags Trigger
// @Accept json
// @Produce json
// @Param body body triggerRequest false "RFC 3339 instant or YYYY-MM-DD"
// @Success 201 {object} map[string]interface{}
// @Success 200 {object} map[string]interface{}
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /api/trigger [post]
// @Security ApiKeyAuth
func (h *TriggerHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	today := h.now().In(h.loc)

	if r.ContentLength != 0 {
		var input triggerRequest
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		if input.Date != "" {
			parsed, err := h.parseDate(input.Date)
			if err != nil {
				badRequestResponse(w, r, err)
				return
			}
			today = parsed
		}
	}

	h.run(w, r, today)
}

func (h *TriggerHandler) parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(h.loc), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, h.loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", s)
}

func (h *TriggerHandler) run(w http.ResponseWriter, r *http.Request, today time.Time) {
	decision, err := h.job.Run(r.Context(), today)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	var status int
	switch decision.Action {
	case services.ActionCreateAndInvite:
		status = http.StatusCreated
	case services.ActionSendStatus:
		status = http.StatusOK
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	err = writeJSON(w, status, jsonResponse{"action": decision.Action, "match": decision.Match}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
