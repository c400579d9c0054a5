package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/futbol5/middleware"
	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/services"
	"github.com/Dosada05/futbol5/utils"
)

//go:embed templates/web/*.html
var webTemplatesFS embed.FS

const matchPlayedMessage = "El partido ya fue"

// WebHandler serves the server-rendered pages and the email-friendly GET links.
type WebHandler struct {
	dashboardService services.DashboardService
	matchService     services.MatchService
	loc              *time.Location
	now              func() time.Time

	index *template.Template
	match *template.Template
}

type indexPage struct {
	Stats  models.DashboardStats
	Player *models.Player
}

type guestView struct {
	models.Guest
	Removable bool
	RemoveURL string
}

type matchPage struct {
	Match       *models.Match
	Player      *models.Player
	Guests      []guestView
	Played      bool
	CanJoin     bool
	CanLeave    bool
	JoinURL     string
	LeaveURL    string
	AddGuestURL string
}

func NewWebHandler(ds services.DashboardService, ms services.MatchService, loc *time.Location) (*WebHandler, error) {
	if loc == nil {
		loc = time.Local
	}
	h := &WebHandler{dashboardService: ds, matchService: ms, loc: loc, now: time.Now}

	funcs := template.FuncMap{
		"when": func(t time.Time) string { return utils.FormatSpanish(t.In(loc)) },
		"matchURL": func(matchID int, player *models.Player) string {
			if player == nil {
				return utils.MatchURL(matchID, nil)
			}
			return utils.MatchURL(matchID, &player.ID)
		},
	}

	var err error
	if h.index, err = parsePage(funcs, "index.html"); err != nil {
		return nil, err
	}
	if h.match, err = parsePage(funcs, "match.html"); err != nil {
		return nil, err
	}
	return h, nil
}

func parsePage(funcs template.FuncMap, page string) (*template.Template, error) {
	return template.New(page).Funcs(funcs).ParseFS(webTemplatesFS, "templates/web/base.html", "templates/web/"+page)
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data interface{}) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.ErrorContext(r.Context(), "failed to render page", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// webError answers the browser in plain text.
func webError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrMatchAlreadyPlayed):
		http.Error(w, matchPlayedMessage, http.StatusBadRequest)
	case errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrGuestNotFound):
		http.NotFound(w, r)
	case errors.As(err, &verr):
		msgs := make([]string, 0, len(verr.Fields))
		for field, msg := range verr.Fields {
			msgs = append(msgs, field+": "+msg)
		}
		http.Error(w, strings.Join(msgs, "\n"), http.StatusBadRequest)
	case errors.Is(err, services.ErrGuestConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.ErrorContext(r.Context(), "web request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// pathID reads a numeric path parameter; anything else is an unknown page.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := getIDFromURL(r, name)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func redirectToMatch(w http.ResponseWriter, r *http.Request, matchID, playerID int) {
	http.Redirect(w, r, utils.MatchURL(matchID, &playerID), http.StatusFound)
}

func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context(), h.now())
	if err != nil {
		webError(w, r, err)
		return
	}
	h.render(w, r, h.index, indexPage{Stats: stats, Player: middleware.CurrentPlayer(r.Context())})
}

func (h *WebHandler) Match(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		webError(w, r, err)
		return
	}

	now := h.now()
	page := matchPage{
		Match:  match,
		Player: middleware.CurrentPlayer(r.Context()),
		Played: match.IsPlayed(now),
	}
	if page.Player != nil {
		page.CanJoin = match.CanJoin(page.Player.ID, now)
		page.CanLeave = match.CanLeave(page.Player.ID, now)
		page.JoinURL = utils.JoinMatchURL(match.ID, page.Player.ID)
		page.LeaveURL = utils.LeaveMatchURL(match.ID, page.Player.ID)
		page.AddGuestURL = utils.AddGuestURL(match.ID)
	}
	for _, g := range match.Guests {
		page.Guests = append(page.Guests, guestView{
			Guest:     g,
			Removable: !page.Played && page.Player != nil && g.InvitingPlayerID == page.Player.ID,
			RemoveURL: utils.RemoveGuestURL(g.ID),
		})
	}
	h.render(w, r, h.match, page)
}

func (h *WebHandler) JoinMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	playerID, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	if _, err := h.matchService.JoinMatch(r.Context(), matchID, playerID, h.now()); err != nil {
		webError(w, r, err)
		return
	}
	redirectToMatch(w, r, matchID, playerID)
}

func (h *WebHandler) LeaveMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	playerID, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	if _, err := h.matchService.LeaveMatch(r.Context(), matchID, playerID, h.now()); err != nil {
		webError(w, r, err)
		return
	}
	redirectToMatch(w, r, matchID, playerID)
}

// AddGuest reads the form fields inviting_player and guest.
func (h *WebHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	invitingID, err := strconv.Atoi(r.PostForm.Get("inviting_player"))
	if err != nil || invitingID <= 0 {
		http.Error(w, "inviting_player is required", http.StatusBadRequest)
		return
	}

	input := services.GuestInput{InvitingPlayerID: invitingID, Name: r.PostForm.Get("guest")}
	if _, err := h.matchService.AddGuest(r.Context(), matchID, input, h.now()); err != nil {
		webError(w, r, err)
		return
	}
	redirectToMatch(w, r, matchID, invitingID)
}

func (h *WebHandler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	guestID, ok := pathID(w, r, "guestID")
	if !ok {
		return
	}
	guest, err := h.matchService.RemoveGuest(r.Context(), guestID, h.now())
	if err != nil {
		webError(w, r, err)
		return
	}
	redirectToMatch(w, r, guest.MatchID, guest.InvitingPlayerID)
}
