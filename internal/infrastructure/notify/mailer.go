package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/core/domain"
)

const defaultFromName = "Farid Creations"

//go:embed templates/*.html
var templateFS embed.FS

// ErrUnknownTemplate is returned for a template name with no registered file.
var ErrUnknownTemplate = errors.New("notify: unknown template")

var subjects = map[string]string{
	domain.TemplateBookingConfirmation: "Your booking for {{.category}} is confirmed",
	domain.TemplateNewsletterWelcome:   "Welcome to the newsletter, {{.username}}",
	domain.TemplatePasswordReset:       "Reset your password",
}

// Mailer renders the named HTML template with the given variables and hands
// the result to an EmailSender. It implements ports.Notifier.
type Mailer struct {
	sender   EmailSender
	bodies   *template.Template
	subjects map[string]*texttemplate.Template
	logger   zerolog.Logger
}

// NewMailer parses the embedded templates. Missing variables fail rendering
// instead of producing blank fields. Subjects are plain text headers and are
// not HTML escaped.
func NewMailer(sender EmailSender, logger zerolog.Logger) (*Mailer, error) {
	bodies, err := template.New("mail").Option("missingkey=error").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	subs := make(map[string]*texttemplate.Template, len(subjects))
	for name, text := range subjects {
		t, err := texttemplate.New(name).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse subject %s: %w", name, err)
		}
		subs[name] = t
	}

	return &Mailer{sender: sender, bodies: bodies, subjects: subs, logger: logger}, nil
}

// Send renders and delivers one message.
func (m *Mailer) Send(ctx context.Context, to, name string, vars map[string]string) error {
	msg, err := m.Render(to, name, vars)
	if err != nil {
		return err
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.Error().Err(err).Str("template", name).Msg("mail delivery failed")
		return err
	}
	return nil
}

// Render builds the message without sending it.
func (m *Mailer) Render(to, name string, vars map[string]string) (EmailMessage, error) {
	subjectTmpl, ok := m.subjects[name]
	body := m.bodies.Lookup(name + ".html")
	if !ok || body == nil {
		return EmailMessage{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var subject, html bytes.Buffer
	if err := subjectTmpl.Execute(&subject, vars); err != nil {
		return EmailMessage{}, fmt.Errorf("render subject %s: %w", name, err)
	}
	if err := body.Execute(&html, vars); err != nil {
		return EmailMessage{}, fmt.Errorf("render %s: %w", name, err)
	}

	return EmailMessage{
		To:      to,
		Subject: strings.TrimSpace(subject.String()),
		Text:    plainText(vars),
		HTML:    html.String(),
	}, nil
}

// plainText is the fallback body for clients that do not render HTML.
func plainText(vars map[string]string) string {
	var b strings.Builder
	for _, k := range []string{"username", "category", "dateBooked", "duration", "addsOn", "description", "resetLink"} {
		if v, ok := vars[k]; ok && v != "" {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	return b.String()
}
