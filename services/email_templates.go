package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/mail"
	texttemplate "text/template"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/utils"
)

//go:embed templates/emails/*.txt templates/emails/*.html
var emailTemplatesFS embed.FS

const emailSubject = "Fobal"

// MessageBuilder turns a Notification into an EmailMessage.
type MessageBuilder struct {
	from     mail.Address
	baseURL  string
	location *time.Location
	text     *texttemplate.Template
	html     *htmltemplate.Template
}

type emailData struct {
	Name        string
	Place       string
	When        string
	PlayerCount int
	Actor       string
	Guest       string
	MatchURL    string
	JoinURL     string
	LeaveURL    string
}

// NewMessageBuilder parses the embedded templates. from is an RFC 5322
// address; dates are shown in loc.
func NewMessageBuilder(from, baseURL string, loc *time.Location) (*MessageBuilder, error) {
	sender, err := mail.ParseAddress(from)
	if err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}
	if loc == nil {
		loc = time.Local
	}
	text, err := texttemplate.ParseFS(emailTemplatesFS, "templates/emails/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text email templates: %w", err)
	}
	html, err := htmltemplate.ParseFS(emailTemplatesFS, "templates/emails/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html email templates: %w", err)
	}
	return &MessageBuilder{from: *sender, baseURL: baseURL, location: loc, text: text, html: html}, nil
}

func (b *MessageBuilder) formatWhen(t time.Time) string {
	return utils.FormatSpanish(t.In(b.location))
}

func (b *MessageBuilder) Build(n models.Notification) (*EmailMessage, error) {
	if n.Match == nil {
		return nil, fmt.Errorf("notification %s has no match", n.Kind)
	}
	recipientID := n.Recipient.ID
	data := emailData{
		Name:        n.Recipient.Name,
		Place:       n.Match.Place,
		When:        b.formatWhen(n.Match.Date),
		PlayerCount: n.Match.PlayerCount,
		MatchURL:    utils.AbsoluteURL(b.baseURL, utils.MatchURL(n.Match.ID, &recipientID)),
	}

	switch n.Kind {
	case models.NotificationInvite:
		data.JoinURL = utils.AbsoluteURL(b.baseURL, utils.JoinMatchURL(n.Match.ID, recipientID))
		data.LeaveURL = utils.AbsoluteURL(b.baseURL, utils.LeaveMatchURL(n.Match.ID, recipientID))
	case models.NotificationStatus:
	case models.NotificationJoin, models.NotificationLeave:
		if n.Actor == nil {
			return nil, fmt.Errorf("notification %s has no acting player", n.Kind)
		}
		data.Actor = n.Actor.Name
	case models.NotificationGuestAdded, models.NotificationGuestRemoved:
		if n.Actor == nil || n.Guest == nil {
			return nil, fmt.Errorf("notification %s needs the guest and its inviting player", n.Kind)
		}
		data.Actor = n.Actor.Name
		data.Guest = n.Guest.Name
	default:
		return nil, fmt.Errorf("unknown notification kind %q", n.Kind)
	}

	var text, html bytes.Buffer
	if err := b.text.ExecuteTemplate(&text, string(n.Kind)+".txt", data); err != nil {
		return nil, fmt.Errorf("failed to render %s text email: %w", n.Kind, err)
	}
	if err := b.html.ExecuteTemplate(&html, string(n.Kind)+".html", data); err != nil {
		return nil, fmt.Errorf("failed to render %s html email: %w", n.Kind, err)
	}

	return &EmailMessage{
		From:    b.from,
		To:      mail.Address{Name: n.Recipient.Name, Address: n.Recipient.Email},
		Subject: emailSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
