package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/futbol5/middleware"
	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/repositories"
	"github.com/Dosada05/futbol5/services"
	"github.com/Dosada05/futbol5/utils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	testSecret      = []byte("handlers-secret")
	testAdminEmail  = "admin@fobal.example"
	testAdminPass   = "pelota"
	kickoff         = time.Date(2015, 3, 25, 19, 0, 0, 0, time.UTC)
	mondayMorning   = time.Date(2015, 3, 23, 7, 15, 0, 0, time.UTC)
	afterTheKickoff = kickoff.Add(2 * time.Hour)
	wednesdayOnTime = time.Date(2015, 3, 25, 15, 0, 0, 0, time.UTC)
	sundayEarly     = time.Date(2015, 3, 29, 4, 0, 0, 0, time.UTC)
)

type sentMails struct {
	mu sync.Mutex
	to []string
}

func (m *sentMails) Send(ctx context.Context, msg *services.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, msg.To.Address)
	return nil
}

func (m *sentMails) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.to...)
}

func (m *sentMails) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = nil
}

// testApp wires the real services over a temporary bolt file.
type testApp struct {
	t         *testing.T
	router    chi.Router
	mails     *sentMails
	players   repositories.PlayerRepository
	matches   repositories.MatchRepository
	guests    repositories.GuestRepository
	schedules repositories.ScheduleRepository
	now       time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repositories.OpenBolt(filepath.Join(t.TempDir(), "futbol5.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	app := &testApp{
		t:         t,
		mails:     &sentMails{},
		players:   repositories.NewBoltPlayerRepository(db),
		matches:   repositories.NewBoltMatchRepository(db),
		guests:    repositories.NewBoltGuestRepository(db),
		schedules: repositories.NewBoltScheduleRepository(db),
		now:       mondayMorning,
	}
	matchPlayers := repositories.NewBoltMatchPlayerRepository(db)

	builder, err := services.NewMessageBuilder("Fobal <noreply@fobal.com>", "http://fobal.test", time.UTC)
	require.NoError(t, err)
	notifier := services.NewNotificationService(app.mails, builder, quietLogger)

	playerService := services.NewPlayerService(app.players, nil, quietLogger)
	matchService := services.NewMatchService(app.matches, matchPlayers, app.guests, app.players, notifier, nil, nil, quietLogger)
	scheduleService := services.NewScheduleService(app.schedules, app.schedules, app.matches)
	engine := services.NewSchedulingService(scheduleService, app.matches, app.players, quietLogger)
	dashboardService := services.NewDashboardService(app.matches, app.players, matchService, playerService)
	hash, err := utils.HashPassword(testAdminPass)
	require.NoError(t, err)
	authService := services.NewAuthService(testAdminEmail, hash)
	job := services.NewDailyJob(engine, matchService, notifier, nil, quietLogger)

	clock := func() time.Time { return app.now }

	web, err := NewWebHandler(dashboardService, matchService, time.UTC)
	require.NoError(t, err)
	web.now = clock
	matchHandler := NewMatchHandler(matchService)
	matchHandler.now = clock
	trigger := NewTriggerHandler(job, time.UTC)
	trigger.now = clock
	dashboard := NewDashboardHandler(dashboardService)
	dashboard.now = clock
	auth := NewAuthHandler(authService, string(testSecret))
	playerHandler := NewPlayerHandler(playerService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	session := middleware.NewPlayerSession(testSecret, playerService, quietLogger)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(session.Middleware)
		r.Get("/", web.Index)
		r.Get("/matches/{matchID}/", web.Match)
		r.Get("/matches/{matchID}/join/{playerID}/", web.JoinMatch)
		r.Get("/matches/{matchID}/leave/{playerID}/", web.LeaveMatch)
		r.Post("/matches/{matchID}/addguest/", web.AddGuest)
		r.Get("/removeguest/{guestID}/", web.RemoveGuest)
	})
	r.Post("/sendmail/", trigger.SendMail)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", auth.Login)
		r.Get("/dashboard", dashboard.Stats)
		r.Get("/players", playerHandler.ListPlayers)
		r.Get("/players/top", playerHandler.TopPlayer)
		r.Get("/players/{playerID}", playerHandler.GetPlayerByID)
		r.Post("/matches/{matchID}/players", matchHandler.JoinMatch)
		r.Delete("/matches/{matchID}/players/{playerID}", matchHandler.LeaveMatch)
		r.Get("/matches/{matchID}/guests", matchHandler.ListGuests)
		r.Post("/matches/{matchID}/guests", matchHandler.AddGuest)
		r.Delete("/guests/{guestID}", matchHandler.RemoveGuest)
		r.Get("/matches/next", matchHandler.NextMatch)
		r.Get("/matches/{matchID}", matchHandler.GetMatchByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(testSecret))
			r.Use(middleware.Authorize(middleware.RoleAdmin))
			r.Post("/players", playerHandler.CreatePlayer)
			r.Put("/players/{playerID}", playerHandler.UpdatePlayer)
			r.Delete("/players/{playerID}", playerHandler.DeletePlayer)
			r.Put("/players/{playerID}/avatar", playerHandler.UploadPlayerAvatar)
			r.Post("/matches", matchHandler.CreateMatch)
			r.Put("/matches/{matchID}", matchHandler.UpdateMatch)
			r.Delete("/matches/{matchID}", matchHandler.DeleteMatch)
			r.Get("/schedules", scheduleHandler.ListSchedules)
			r.Post("/schedules", scheduleHandler.CreateSchedule)
			r.Get("/schedules/{scheduleID}", scheduleHandler.GetScheduleByID)
			r.Put("/schedules/{scheduleID}", scheduleHandler.UpdateSchedule)
			r.Delete("/schedules/{scheduleID}", scheduleHandler.DeleteSchedule)
			r.Post("/trigger", trigger.Trigger)
		})
	})
	app.router = r
	return app
}

func (a *testApp) addPlayers(names ...string) []models.Player {
	a.t.Helper()
	out := make([]models.Player, 0, len(names))
	for _, name := range names {
		p := &models.Player{Name: name, Email: strings.ToLower(name) + "@example.com"}
		require.NoError(a.t, a.players.Create(context.Background(), p))
		out = append(out, *p)
	}
	return out
}

func (a *testApp) addMatch(date time.Time, place string) *models.Match {
	a.t.Helper()
	m := &models.Match{Date: date, Place: place}
	require.NoError(a.t, a.matches.Create(context.Background(), m))
	return m
}

func (a *testApp) addSchedule(weekday models.Weekday, tod models.TimeOfDay, place string, invite models.Weekday) {
	a.t.Helper()
	require.NoError(a.t, a.schedules.Create(context.Background(), &models.WeeklySchedule{
		Weekday: weekday, Time: tod, Place: place, InviteWeekday: invite,
	}))
}

func (a *testApp) guestIDs(matchID int) []int {
	a.t.Helper()
	guests, err := a.guests.ListByMatch(context.Background(), matchID)
	require.NoError(a.t, err)
	ids := make([]int, 0, len(guests))
	for _, g := range guests {
		ids = append(ids, g.ID)
	}
	return ids
}

func newGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(target string) *httptest.ResponseRecorder {
	return a.do(newGet(target))
}

func (a *testApp) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) sendJSON(method, target, body string, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(req)
}

func (a *testApp) adminToken() string {
	a.t.Helper()
	token, err := middleware.IssueAdminToken(testSecret, testAdminEmail, time.Now())
	require.NoError(a.t, err)
	return token
}
