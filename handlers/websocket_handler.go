package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/futbol5/hub"
	"github.com/Dosada05/futbol5/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the match pages are served from the same host; API clients may live elsewhere
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub          *hub.Hub
	matchService services.MatchService
}

func NewWebSocketHandler(h *hub.Hub, ms services.MatchService) *WebSocketHandler {
	return &WebSocketHandler{hub: h, matchService: ms}
}

// ServeWs subscribes the client to /ws/matches/{matchID}.
// @Summary Match event feed
// @Description Websocket stream of PLAYER_JOINED, PLAYER_LEFT, GUEST_ADDED and GUEST_REMOVED events.
// @Tags Realtime
// @Param matchID path int true "Match ID"
// @Success 101 "Switching Protocols"
// @Failure 404 {object} map[string]string
// @Router /ws/matches/{matchID} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.matchService.GetMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Int("match_id", matchID), slog.Any("error", err))
		return
	}

	client := hub.NewClient(h.hub, conn, hub.MatchRoom(matchID))
	if !h.hub.Add(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// ServeLobby subscribes the client to match creation events.
func (h *WebSocketHandler) ServeLobby(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.String("room", hub.LobbyRoom), slog.Any("error", err))
		return
	}
	client := hub.NewClient(h.hub, conn, hub.LobbyRoom)
	if !h.hub.Add(client) {
		conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}
