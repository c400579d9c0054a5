package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/futbol5/services"
)

type MatchHandler struct {
	matchService services.MatchService
	now          func() time.Time
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms, now: time.Now}
}

type joinMatchRequest struct {
	PlayerID int `json:"player_id"`
}

// CreateMatch
// @Summary Create a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body services.MatchInput true "Match"
// @Success 201 {object} map[string]interface{} "match"
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/matches [post]
// @Security ApiKeyAuth
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatchByID returns the match with its players and guests.
// @Summary Get a match
// @Tags Matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 404 {object} map[string]string
// @Router /api/matches/{id} [get]
func (h *MatchHandler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches
// @Summary List matches
// @Tags Matches
// @Produce json
// @Success 200 {object} map[string]interface{} "matches"
// @Router /api/matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// NextMatch
// @Summary Next upcoming match
// @Tags Matches
// @Produce json
// @Success 200 {object} map[string]interface{} "match"
// @Failure 404 {object} map[string]string
// @Router /api/matches/next [get]
func (h *MatchHandler) NextMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.matchService.NextMatch(r.Context(), h.now())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMatch
// @Summary Update a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body services.MatchInput true "Match"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/matches/{id} [put]
// @Security ApiKeyAuth
func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch
// @Summary Delete a match
// @Tags Matches
// @Param id path int true "Match ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/matches/{id} [delete]
// @Security ApiKeyAuth
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// JoinMatch
// @Summary Join a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param body body joinMatchRequest true "Joining player"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "match already played"
// @Failure 404 {object} map[string]string
// @Router /api/matches/{id}/players [post]
func (h *MatchHandler) JoinMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input joinMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.JoinMatch(r.Context(), matchID, input.PlayerID, h.now())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LeaveMatch
// @Summary Leave a match
// @Tags Matches
// @Produce json
// @Param id path int true "Match ID"
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "match already played"
// @Failure 404 {object} map[string]string
// @Router /api/matches/{id}/players/{playerID} [delete]
func (h *MatchHandler) LeaveMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.LeaveMatch(r.Context(), matchID, playerID, h.now())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGuests
// @Summary List the guests of a match
// @Tags Guests
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]interface{} "guests"
// @Failure 404 {object} map[string]string
// @Router /api/matches/{id}/guests [get]
func (h *MatchHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	guests, err := h.matchService.ListGuests(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"guests": guests}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddGuest
// @Summary Invite a guest
// @Tags Guests
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param guest body services.GuestInput true "Guest"
// @Success 201 {object} map[string]interface{} "guest"
// @Failure 400 {object} map[string]string "match already played"
// @Failure 409 {object} map[string]string
// @Router /api/matches/{id}/guests [post]
func (h *MatchHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GuestInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	guest, err := h.matchService.AddGuest(r.Context(), matchID, input, h.now())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusCreated, jsonResponse{"guest": guest}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveGuest
// @Summary Remove a guest
// @Tags Guests
// @Param id path int true "Guest ID"
// @Success 204
// @Failure 400 {object} map[string]string "match already played"
// @Failure 404 {object} map[string]string
// @Router /api/guests/{id} [delete]
func (h *MatchHandler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	guestID, err := getIDFromURL(r, "guestID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.matchService.RemoveGuest(r.Context(), guestID, h.now()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
