package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/services"
	"github.com/golang-jwt/jwt/v4"
)

const (
	PlayerCookieName = "fobal_player"
	playerSessionTTL = 90 * 24 * time.Hour
)

// PlayerLookup resolves the player stored in the session.
type PlayerLookup interface {
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
}

// PlayerSession remembers which player is browsing. A ?player_id= query
// parameter, as found in email links, replaces the remembered player.
type PlayerSession struct {
	secret  []byte
	players PlayerLookup
	logger  *slog.Logger
	now     func() time.Time
}

func NewPlayerSession(secret []byte, players PlayerLookup, logger *slog.Logger) *PlayerSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerSession{secret: secret, players: players, logger: logger, now: time.Now}
}

func (s *PlayerSession) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID, fromQuery := s.requestedPlayerID(r)
		if playerID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		player, err := s.players.GetPlayer(r.Context(), playerID)
		switch {
		case err == nil:
			if fromQuery {
				s.setCookie(w, r, playerID)
			}
			r = r.WithContext(context.WithValue(r.Context(), playerContextKey, player))
		case errors.Is(err, services.ErrPlayerNotFound):
			s.logger.Info("player does not exist, clearing session", slog.Int("player_id", playerID))
			s.clearCookie(w)
		default:
			s.logger.Error("failed to load session player", slog.Int("player_id", playerID), slog.Any("error", err))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *PlayerSession) requestedPlayerID(r *http.Request) (int, bool) {
	if raw := r.URL.Query().Get("player_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			return id, true
		}
	}
	cookie, err := r.Cookie(PlayerCookieName)
	if err != nil || cookie.Value == "" {
		return 0, false
	}
	claims, err := parseHS256(s.secret, cookie.Value)
	if err != nil {
		return 0, false
	}
	id, err := intClaim(claims, jwtClaimPlayerID)
	if err != nil {
		return 0, false
	}
	return id, false
}

func (s *PlayerSession) setCookie(w http.ResponseWriter, r *http.Request, playerID int) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		jwtClaimPlayerID: playerID,
		"iat":            now.Unix(),
		"exp":            now.Add(playerSessionTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("failed to sign player session", slog.Any("error", err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     PlayerCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(playerSessionTTL),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *PlayerSession) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     PlayerCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// CurrentPlayer returns the session player, or nil.
func CurrentPlayer(ctx context.Context) *models.Player {
	player, _ := ctx.Value(playerContextKey).(*models.Player)
	return player
}
