package routes

import (
	"net/http"

	_ "github.com/Dosada05/futbol5/docs"
	"github.com/Dosada05/futbol5/handlers"
	"github.com/Dosada05/futbol5/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Player    *handlers.PlayerHandler
	Match     *handlers.MatchHandler
	Schedule  *handlers.ScheduleHandler
	Dashboard *handlers.DashboardHandler
	Trigger   *handlers.TriggerHandler
	Web       *handlers.WebHandler
	WebSocket *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret     []byte
	CORSOrigins   []string
	PlayerSession *middleware.PlayerSession
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	// web pages, linked from the emails
	router.Group(func(r chi.Router) {
		if opts.PlayerSession != nil {
			r.Use(opts.PlayerSession.Middleware)
		}
		r.Get("/", h.Web.Index)
		r.Get("/matches/{matchID}/", h.Web.Match)
		r.Get("/matches/{matchID}/join/{playerID}/", h.Web.JoinMatch)
		r.Get("/matches/{matchID}/leave/{playerID}/", h.Web.LeaveMatch)
		r.Post("/matches/{matchID}/addguest/", h.Web.AddGuest)
		r.Get("/removeguest/{guestID}/", h.Web.RemoveGuest)
	})
	router.Post("/sendmail/", h.Trigger.SendMail)

	router.Get("/ws/matches/{matchID}", h.WebSocket.ServeWs)
	router.Get("/ws/lobby", h.WebSocket.ServeLobby)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		admin := func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.Authorize(middleware.RoleAdmin))
		}

		r.Post("/auth/login", h.Auth.Login)
		r.Get("/dashboard", h.Dashboard.Stats)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.ListPlayers)
			r.Get("/top", h.Player.TopPlayer)
			r.Get("/{playerID}", h.Player.GetPlayerByID)

			r.Group(func(r chi.Router) {
				admin(r)
				r.Post("/", h.Player.CreatePlayer)
				r.Put("/{playerID}", h.Player.UpdatePlayer)
				r.Delete("/{playerID}", h.Player.DeletePlayer)
				r.Put("/{playerID}/avatar", h.Player.UploadPlayerAvatar)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Match.ListMatches)
			r.Get("/next", h.Match.NextMatch)

			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", h.Match.GetMatchByID)
				r.Post("/players", h.Match.JoinMatch)
				r.Delete("/players/{playerID}", h.Match.LeaveMatch)
				r.Get("/guests", h.Match.ListGuests)
				r.Post("/guests", h.Match.AddGuest)

				r.Group(func(r chi.Router) {
					admin(r)
					r.Put("/", h.Match.UpdateMatch)
					r.Delete("/", h.Match.DeleteMatch)
				})
			})

			r.Group(func(r chi.Router) {
				admin(r)
				r.Post("/", h.Match.CreateMatch)
			})
		})

		r.Delete("/guests/{guestID}", h.Match.RemoveGuest)

		r.Group(func(r chi.Router) {
			admin(r)
			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.Schedule.ListSchedules)
				r.Post("/", h.Schedule.CreateSchedule)
				r.Get("/{scheduleID}", h.Schedule.GetScheduleByID)
				r.Put("/{scheduleID}", h.Schedule.UpdateSchedule)
				r.Delete("/{scheduleID}", h.Schedule.DeleteSchedule)
			})
			r.Post("/trigger", h.Trigger.Trigger)
		})
	})
}
