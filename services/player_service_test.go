package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/futbol5/storage"
	"github.com/Dosada05/futbol5/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string]string
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: map[string]string{}}
}

func (u *memoryUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = string(b)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return storage.PublicURL("https://cdn.fobal.example", key)
}

func TestPlayerCRUD(t *testing.T) {
	f := newFixture(t)
	svc := NewPlayerService(f.players, nil, quietLogger)
	ctx := context.Background()

	p, err := svc.CreatePlayer(ctx, PlayerInput{Name: " Ringo Starr ", Email: "Ringo@Beatles.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ringo Starr", p.Name)
	assert.Equal(t, "ringo@beatles.com", p.Email)

	_, err = svc.CreatePlayer(ctx, PlayerInput{Name: "Ringo Starr", Email: "other@beatles.com"})
	assert.ErrorIs(t, err, ErrPlayerNameConflict)
	_, err = svc.CreatePlayer(ctx, PlayerInput{Name: "Richard", Email: "ringo@beatles.com"})
	assert.ErrorIs(t, err, ErrPlayerEmailConflict)

	_, err = svc.CreatePlayer(ctx, PlayerInput{Name: "Paul", Email: "not-an-email"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	updated, err := svc.UpdatePlayer(ctx, p.ID, PlayerInput{Name: "Richard Starkey", Email: "ringo@beatles.com"})
	require.NoError(t, err)
	assert.Equal(t, "Richard Starkey", updated.Name)

	list, err := svc.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeletePlayer(ctx, p.ID))
	_, err = svc.GetPlayer(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.ErrorIs(t, svc.DeletePlayer(ctx, p.ID), ErrPlayerNotFound)
}

func TestTopPlayer(t *testing.T) {
	f := newFixture(t)
	svc := NewPlayerService(f.players, nil, quietLogger)
	ctx := context.Background()

	_, err := svc.TopPlayer(ctx)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	ps := f.addPlayers(t, "ana", "beto")
	m1 := f.addMatch(t, kickoff, "River")
	m2 := f.addMatch(t, kickoff.Add(24*time.Hour), "River")
	for _, m := range []int{m1.ID, m2.ID} {
		_, err := f.matchPlayers.Add(ctx, m, ps[1].ID)
		require.NoError(t, err)
	}

	top, err := svc.TopPlayer(ctx)
	require.NoError(t, err)
	assert.Equal(t, ps[1].ID, top.ID)
}

func TestUpdatePlayerAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addPlayers(t, "ana")[0]

	_, err := NewPlayerService(f.players, nil, quietLogger).UpdatePlayerAvatar(ctx, p.ID, "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrAvatarStorage)

	uploader := newMemoryUploader()
	svc := NewPlayerService(f.players, uploader, quietLogger)

	_, err = svc.UpdatePlayerAvatar(ctx, p.ID, "application/pdf", strings.NewReader("pdf"))
	assert.ErrorIs(t, err, ErrAvatarContentType)

	first, err := svc.UpdatePlayerAvatar(ctx, p.ID, "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NotNil(t, first.AvatarURL)
	assert.True(t, strings.HasPrefix(*first.AvatarURL, "https://cdn.fobal.example/players/"))
	assert.Len(t, uploader.objects, 1)

	second, err := svc.UpdatePlayerAvatar(ctx, p.ID, "image/webp", strings.NewReader("webp"))
	require.NoError(t, err)
	assert.NotEqual(t, *first.AvatarKey, *second.AvatarKey)
	assert.Len(t, uploader.objects, 1, "previous avatar is deleted")

	loaded, err := svc.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, *second.AvatarURL, *loaded.AvatarURL)

	_, err = svc.UpdatePlayerAvatar(ctx, p.ID+10, "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestDashboardStats(t *testing.T) {
	e := newMatchEnv(t)
	players := NewPlayerService(e.players, nil, quietLogger)
	dash := NewDashboardService(e.matches, e.players, e.svc, players)
	ctx := context.Background()

	empty, err := dash.GetStats(ctx, beforeGame)
	require.NoError(t, err)
	assert.Zero(t, empty.MatchCount)
	assert.Nil(t, empty.TopPlayer)
	assert.Nil(t, empty.NextMatch)

	ps := e.addPlayers(t, "ana", "beto")
	e.addMatch(t, kickoff.Add(-7*24*time.Hour), "Old")
	next := e.addMatch(t, kickoff, "River")
	e.join(t, next.ID, ps[1])

	stats, err := dash.GetStats(ctx, beforeGame)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MatchCount)
	assert.Equal(t, 2, stats.PlayerCount)
	require.NotNil(t, stats.TopPlayer)
	assert.Equal(t, ps[1].ID, stats.TopPlayer.ID)
	require.NotNil(t, stats.NextMatch)
	assert.Equal(t, next.ID, stats.NextMatch.ID)
	assert.Equal(t, 1, stats.NextMatch.PlayerCount)
}

func TestAuthLogin(t *testing.T) {
	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)
	svc := NewAuthService("Admin@Fobal.example", hash)
	ctx := context.Background()

	email, err := svc.Login(ctx, LoginInput{Email: "admin@fobal.example", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "admin@fobal.example", email)

	_, err = svc.Login(ctx, LoginInput{Email: "admin@fobal.example", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
	_, err = svc.Login(ctx, LoginInput{Email: "other@fobal.example", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
	_, err = svc.Login(ctx, LoginInput{Email: "", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = NewAuthService("", "").Login(ctx, LoginInput{Email: "admin@fobal.example", Password: "x"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
