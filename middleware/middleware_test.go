package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	handler := Authenticate(testSecret)(Authorize(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := GetSubjectFromContext(r.Context())
		require.NoError(t, err)
		io.WriteString(w, sub)
	})))

	token, err := IssueAdminToken(testSecret, "admin@fobal.example", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@fobal.example", rec.Body.String())

	expired, err := IssueAdminToken(testSecret, "admin@fobal.example", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	forged, err := IssueAdminToken([]byte("other"), "admin@fobal.example", time.Now())
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing": "",
		"expired": "Bearer " + expired,
		"forged":  "Bearer " + forged,
		"garbage": "Bearer abc.def.ghi",
		"basic":   "Basic dXNlcjpwYXNz",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestAuthorizeRejectsOtherRoles(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		jwtClaimSubject: "someone",
		jwtClaimRole:    "player",
		"exp":           time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	handler := Authenticate(testSecret)(Authorize(RoleAdmin)(http.HandlerFunc(okHandler)))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type fakePlayers map[int]*models.Player

func (f fakePlayers) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return nil, services.ErrPlayerNotFound
}

type brokenPlayers struct{}

func (brokenPlayers) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	return nil, errors.New("db down")
}

func newSession(players PlayerLookup) *PlayerSession {
	return NewPlayerSession(testSecret, players, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sessionServer(s *PlayerSession) (http.Handler, *string) {
	seen := new(string)
	return s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = ""
		if p := CurrentPlayer(r.Context()); p != nil {
			*seen = p.Name
		}
	})), seen
}

func TestPlayerSessionFromQueryThenCookie(t *testing.T) {
	handler, seen := sessionServer(newSession(fakePlayers{2: {ID: 2, Name: "Ringo"}}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/1/?player_id=2", nil))
	assert.Equal(t, "Ringo", *seen)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, PlayerCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "Ringo", *seen)
	assert.Empty(t, rec.Result().Cookies(), "cookie is only rewritten from the query")
}

func TestPlayerSessionUnknownPlayerClearsCookie(t *testing.T) {
	session := newSession(fakePlayers{})
	handler, seen := sessionServer(session)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?player_id=99", nil))
	assert.Empty(t, *seen)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, PlayerCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestPlayerSessionIgnoresBadInput(t *testing.T) {
	handler, seen := sessionServer(newSession(fakePlayers{2: {ID: 2, Name: "Ringo"}}))

	for _, target := range []string{"/?player_id=abc", "/?player_id=-1", "/"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Empty(t, *seen, target)
		assert.Empty(t, rec.Result().Cookies(), target)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: PlayerCookieName, Value: "tampered"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, *seen)
}

func TestPlayerSessionLookupFailureKeepsCookie(t *testing.T) {
	handler, seen := sessionServer(newSession(brokenPlayers{}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?player_id=2", nil))
	assert.Empty(t, *seen)
	assert.Empty(t, rec.Result().Cookies())
}
