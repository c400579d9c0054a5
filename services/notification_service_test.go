package services

import (
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://fobal.example"

func newTestBuilder(t *testing.T) *MessageBuilder {
	t.Helper()
	b, err := NewMessageBuilder("Fobal <noreply@fobal.com>", testBaseURL, time.UTC)
	require.NoError(t, err)
	return b
}

func testMatch() *models.Match {
	return &models.Match{ID: 7, Date: time.Date(2015, 3, 25, 19, 0, 0, 0, time.UTC), Place: "Centenario"}
}

func TestBuildInviteMessage(t *testing.T) {
	b := newTestBuilder(t)
	player := models.Player{ID: 3, Name: "George Harrison", Email: "george@beatles.com"}

	msg, err := b.Build(models.Notification{Kind: models.NotificationInvite, Match: testMatch(), Recipient: player})
	require.NoError(t, err)

	assert.Equal(t, "Fobal", msg.Subject)
	assert.Equal(t, mail.Address{Name: "Fobal", Address: "noreply@fobal.com"}, msg.From)
	assert.Equal(t, "george@beatles.com", msg.To.Address)
	assert.Equal(t, "George Harrison", msg.To.Name)

	for _, body := range []string{msg.Text, msg.HTML} {
		assert.Contains(t, body, "Hola George Harrison")
		assert.Contains(t, body, "Centenario")
		assert.Contains(t, body, "miércoles 25/03 a las 19:00")
	}
	assert.Contains(t, msg.Text, testBaseURL+"/matches/7/?player_id=3")
	assert.Contains(t, msg.Text, testBaseURL+"/matches/7/join/3/")
	assert.Contains(t, msg.Text, testBaseURL+"/matches/7/leave/3/")
	assert.Contains(t, msg.HTML, `href="`+testBaseURL+`/matches/7/join/3/"`)
}

func TestBuildStatusMessageCountsGuests(t *testing.T) {
	b := newTestBuilder(t)
	match := testMatch()
	match.Players = []models.Player{{ID: 1, Name: "Status One"}, {ID: 2, Name: "Status Two"}}
	match.Guests = []models.Guest{{ID: 1, Name: "Guest One", InvitingPlayerID: 1}}
	match.CountPlayers()

	msg, err := b.Build(models.Notification{Kind: models.NotificationStatus, Match: match, Recipient: match.Players[0]})
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "Hola Status One")
	assert.Contains(t, msg.Text, "3 jugadores")
	assert.Contains(t, msg.Text, testBaseURL+"/matches/7/?player_id=1")
	assert.NotContains(t, msg.Text, "/join/")
}

func TestBuildActorMessages(t *testing.T) {
	b := newTestBuilder(t)
	recipient := models.Player{ID: 1, Name: "Eduardo Mateo", Email: "eduardo@tartamudo.org"}
	actor := &models.Player{ID: 2, Name: "Ruben Rada", Email: "rada@candombe.com"}
	guest := &models.Guest{ID: 9, Name: "Hugo Fattoruso", InvitingPlayerID: 2}

	tests := []struct {
		kind  models.NotificationKind
		guest *models.Guest
		want  []string
	}{
		{models.NotificationJoin, nil, []string{"Ruben Rada se anotó"}},
		{models.NotificationLeave, nil, []string{"Ruben Rada se bajó"}},
		{models.NotificationGuestAdded, guest, []string{"Ruben Rada invitó a Hugo Fattoruso"}},
		{models.NotificationGuestRemoved, guest, []string{"Hugo Fattoruso", "Ruben Rada"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			msg, err := b.Build(models.Notification{Kind: tt.kind, Match: testMatch(), Recipient: recipient, Actor: actor, Guest: tt.guest})
			require.NoError(t, err)
			assert.Contains(t, msg.Text, "Hola Eduardo Mateo")
			assert.Contains(t, msg.Text, "Centenario")
			assert.Contains(t, msg.Text, testBaseURL+"/matches/7/?player_id=1")
			for _, w := range tt.want {
				assert.Contains(t, msg.Text, w)
			}
		})
	}
}

func TestBuildRejectsIncompleteNotifications(t *testing.T) {
	b := newTestBuilder(t)
	p := models.Player{ID: 1, Name: "a", Email: "a@example.com"}

	_, err := b.Build(models.Notification{Kind: models.NotificationInvite, Recipient: p})
	assert.Error(t, err)
	_, err = b.Build(models.Notification{Kind: models.NotificationJoin, Match: testMatch(), Recipient: p})
	assert.Error(t, err)
	_, err = b.Build(models.Notification{Kind: models.NotificationGuestAdded, Match: testMatch(), Recipient: p, Actor: &p})
	assert.Error(t, err)
	_, err = b.Build(models.Notification{Kind: "carrier_pigeon", Match: testMatch(), Recipient: p})
	assert.Error(t, err)
}

func TestNewMessageBuilderRejectsBadSender(t *testing.T) {
	_, err := NewMessageBuilder("not an address", testBaseURL, time.UTC)
	assert.Error(t, err)
}

func TestEmailMessageBytes(t *testing.T) {
	msg := &EmailMessage{
		From:    mail.Address{Name: "Fobal", Address: "noreply@fobal.com"},
		To:      mail.Address{Name: "Washington Luna", Address: "canario@example.com"},
		Subject: "Fobal",
		Text:    "Hola Washington Luna, partido en Centenario",
		HTML:    "<p>Hola Washington Luna</p>",
	}
	raw, err := msg.Bytes(time.Date(2015, 3, 23, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, "Fobal", parsed.Header.Get("Subject"))
	assert.Equal(t, `"Washington Luna" <canario@example.com>`, parsed.Header.Get("To"))
	assert.True(t, strings.HasSuffix(parsed.Header.Get("Message-ID"), "@fobal.com>"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var types []string
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		types = append(types, part.Header.Get("Content-Type"))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
}

func TestDeliverDecisionMailsEveryPlayer(t *testing.T) {
	mailer := newRecordingMailer()
	svc := NewNotificationService(mailer, newTestBuilder(t), quietLogger)

	players := []models.Player{
		{ID: 1, Name: "Juan Pedro", Email: "jp@example.com"},
		{ID: 2, Name: "Juan Ramon", Email: "jr@example.com"},
	}
	sent, err := svc.DeliverDecision(context.Background(), &Decision{Action: ActionCreateAndInvite, Match: testMatch(), Players: players})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"jp@example.com", "jr@example.com"}, mailer.recipients())

	sent, err = svc.DeliverDecision(context.Background(), &Decision{Action: ActionNone})
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestNotifyExcludesActingPlayer(t *testing.T) {
	canario := models.Player{ID: 1, Name: "Washington Luna", Email: "canario@example.com"}
	jaime := models.Player{ID: 2, Name: "Jaime Roos", Email: "jaime@example.com"}
	rada := models.Player{ID: 3, Name: "Ruben Rada", Email: "rada@example.com"}
	guest := models.Guest{ID: 4, Name: "Hugo", InvitingPlayerID: rada.ID}

	ctx := context.Background()
	tests := []struct {
		name string
		call func(NotificationService, *models.Match) (int, error)
		want []string
	}{
		{"join", func(s NotificationService, m *models.Match) (int, error) { return s.NotifyJoin(ctx, m, rada) },
			[]string{"canario@example.com", "jaime@example.com"}},
		{"leave", func(s NotificationService, m *models.Match) (int, error) { return s.NotifyLeave(ctx, m, jaime) },
			[]string{"canario@example.com", "rada@example.com"}},
		{"guest added", func(s NotificationService, m *models.Match) (int, error) { return s.NotifyGuestAdded(ctx, m, guest, rada) },
			[]string{"canario@example.com", "jaime@example.com"}},
		{"guest removed", func(s NotificationService, m *models.Match) (int, error) { return s.NotifyGuestRemoved(ctx, m, guest, rada) },
			[]string{"canario@example.com", "jaime@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := newRecordingMailer()
			svc := NewNotificationService(mailer, newTestBuilder(t), quietLogger)
			match := testMatch()
			match.Players = []models.Player{canario, jaime, rada}

			sent, err := tt.call(svc, match)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), sent)
			assert.ElementsMatch(t, tt.want, mailer.recipients())
		})
	}
}

func TestDeliverKeepsGoingAfterFailure(t *testing.T) {
	mailer := newRecordingMailer()
	boom := errors.New("mailbox full")
	mailer.fail["bad@example.com"] = boom
	svc := NewNotificationService(mailer, newTestBuilder(t), quietLogger)

	players := []models.Player{
		{ID: 1, Name: "ok1", Email: "ok1@example.com"},
		{ID: 2, Name: "bad", Email: "bad@example.com"},
		{ID: 3, Name: "ok2", Email: "ok2@example.com"},
	}
	sent, err := svc.DeliverDecision(context.Background(), &Decision{Action: ActionSendStatus, Match: testMatch(), Players: players})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"ok1@example.com", "ok2@example.com"}, mailer.recipients())
}
