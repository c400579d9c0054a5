package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/futbol5/hub"
	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/repositories"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	players      repositories.PlayerRepository
	matches      repositories.MatchRepository
	matchPlayers repositories.MatchPlayerRepository
	guests       repositories.GuestRepository
	schedules    repositories.ScheduleRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repositories.OpenBolt(filepath.Join(t.TempDir(), "futbol5.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &fixture{
		players:      repositories.NewBoltPlayerRepository(db),
		matches:      repositories.NewBoltMatchRepository(db),
		matchPlayers: repositories.NewBoltMatchPlayerRepository(db),
		guests:       repositories.NewBoltGuestRepository(db),
		schedules:    repositories.NewBoltScheduleRepository(db),
	}
}

func (f *fixture) addPlayers(t *testing.T, names ...string) []models.Player {
	t.Helper()
	out := make([]models.Player, 0, len(names))
	for _, name := range names {
		p := &models.Player{Name: name, Email: name + "@example.com"}
		require.NoError(t, f.players.Create(context.Background(), p))
		out = append(out, *p)
	}
	return out
}

func (f *fixture) addMatch(t *testing.T, date time.Time, place string) *models.Match {
	t.Helper()
	m := &models.Match{Date: date, Place: place}
	require.NoError(t, f.matches.Create(context.Background(), m))
	return m
}

func tod(h, m int) models.TimeOfDay {
	return models.TimeOfDay{Hour: h, Minute: m}
}

// weekSchedules is the usual setup: Wednesday 19:00 invited on Monday and
// Friday 20:00 invited on Thursday, both at River.
func weekSchedules() StaticSchedules {
	return StaticSchedules{
		{ID: 2, Weekday: models.Friday, Time: tod(20, 0), Place: "River", InviteWeekday: models.Thursday},
		{ID: 1, Weekday: models.Wednesday, Time: tod(19, 0), Place: "River", InviteWeekday: models.Monday},
	}
}

// recordingMailer keeps every message it is asked to send.
type recordingMailer struct {
	mu   sync.Mutex
	sent []*EmailMessage
	fail map[string]error
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{fail: map[string]error{}}
}

func (m *recordingMailer) Send(ctx context.Context, msg *EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.fail[msg.To.Address]; ok {
		return err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.To.Address)
	}
	return out
}

func (m *recordingMailer) messages() []*EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*EmailMessage(nil), m.sent...)
}

type broadcastRecord struct {
	room string
	msg  hub.Message
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []broadcastRecord
}

func (b *recordingBroadcaster) BroadcastToRoom(room string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg, _ := message.(hub.Message)
	b.sent = append(b.sent, broadcastRecord{room: room, msg: msg})
}

func (b *recordingBroadcaster) events() []broadcastRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcastRecord(nil), b.sent...)
}
