package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/futbol5/services"
)

const maxAvatarUploadBytes = 5 << 20

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// CreatePlayer
// @Summary Create a player
// @Tags Players
// @Accept json
// @Produce json
// @Param player body services.PlayerInput true "Player"
// @Success 201 {object} map[string]interface{} "player"
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/players [post]
// @Security ApiKeyAuth
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayerByID
// @Summary Get a player
// @Tags Players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]interface{} "player"
// @Failure 404 {object} map[string]string
// @Router /api/players/{id} [get]
func (h *PlayerHandler) GetPlayerByID(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPlayers
// @Summary List players
// @Tags Players
// @Produce json
// @Success 200 {object} map[string]interface{} "players"
// @Router /api/players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TopPlayer returns the player with the most joined matches.
// @Summary Top player
// @Tags Players
// @Produce json
// @Success 200 {object} map[string]interface{} "player"
// @Failure 404 {object} map[string]string
// @Router /api/players/top [get]
func (h *PlayerHandler) TopPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.playerService.TopPlayer(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePlayer
// @Summary Update a player
// @Tags Players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param player body services.PlayerInput true "Player"
// @Success 200 {object} map[string]interface{} "player"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/players/{id} [put]
// @Security ApiKeyAuth
func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayer
// @Summary Delete a player
// @Tags Players
// @Param id path int true "Player ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/players/{id} [delete]
// @Security ApiKeyAuth
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPlayerAvatar stores the "avatar" multipart file.
// @Summary Upload a player avatar
// @Tags Players
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Player ID"
// @Param avatar formData file true "JPEG, PNG or WebP image"
// @Success 200 {object} map[string]interface{} "player"
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/players/{id}/avatar [put]
// @Security ApiKeyAuth
func (h *PlayerHandler) UploadPlayerAvatar(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUploadBytes)
	if err := r.ParseMultipartForm(maxAvatarUploadBytes); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content type required"))
		return
	}

	player, err := h.playerService.UpdatePlayerAvatar(r.Context(), playerID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
