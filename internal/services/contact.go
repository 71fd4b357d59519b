package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mstudio-pl/studio-site/internal/mailer"
)

// ContactMessage is the wire payload accepted by the contact relay.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactService validates a contact submission and forwards it to the
// site owner through the email provider. A second confirmation email to
// the submitter is best-effort and never fails the request.
type ContactService struct {
	mailer mailer.Mailer
	owner  string
	from   string
	log    zerolog.Logger
	idGen  func() string
}

func NewContactService(m mailer.Mailer, owner, from string, log zerolog.Logger) *ContactService {
	return &ContactService{
		mailer: m,
		owner:  owner,
		from:   from,
		log:    log,
		idGen:  func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
}

// SuccessMessage is returned to the caller on a successful submission.
const SuccessMessage = "Wiadomość została wysłana pomyślnie"

func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Message) == "" {
		return NewInvalidError("Wszystkie pola są wymagane")
	}

	id := s.idGen()
	notification := mailer.Message{
		From:    s.from,
		To:      []string{s.owner},
		ReplyTo: msg.Email,
		Subject: "Nowa wiadomość z formularza kontaktowego od " + msg.Name,
		HTML:    renderNotificationHTML(msg),
		Text:    renderNotificationText(msg),
	}
	providerID, err := s.mailer.Send(ctx, notification)
	if err != nil {
		// Operator detail stays in the log; the caller gets a generic message.
		s.log.Error().Err(err).Str("submission", id).Str("reply_to", msg.Email).Msg("owner notification failed")
		return NewDeliveryError("Błąd podczas wysyłania wiadomości")
	}
	s.log.Info().Str("submission", id).Str("provider_id", providerID).Msg("owner notification sent")

	confirmation := mailer.Message{
		From:    s.from,
		To:      []string{msg.Email},
		Subject: "Dziękujemy za wiadomość",
		HTML:    renderConfirmationHTML(msg),
		Text:    renderConfirmationText(msg),
	}
	if _, err := s.mailer.Send(ctx, confirmation); err != nil {
		// The primary notification already succeeded; log and continue.
		s.log.Warn().Err(err).Str("submission", id).Msg("confirmation email failed")
	}
	return nil
}

var notificationTmpl = template.Must(template.New("notification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #1a1a1a; color: #ffffff;">
  <h2 style="color: #ef4444; border-bottom: 2px solid #ef4444; padding-bottom: 10px;">
    Nowa wiadomość z formularza kontaktowego
  </h2>
  <div style="margin-top: 30px;">
    <p style="margin: 10px 0;"><strong style="color: #00ff41;">Imię i nazwisko:</strong> {{.Name}}</p>
    <p style="margin: 10px 0;"><strong style="color: #00ff41;">Email:</strong> <a href="mailto:{{.Email}}" style="color: #ef4444;">{{.Email}}</a></p>
  </div>
  <div style="margin-top: 30px; padding: 20px; background-color: #2a2a2a; border-left: 4px solid #ef4444; border-radius: 5px;">
    <h3 style="color: #ffffff; margin-top: 0;">Wiadomość:</h3>
    <p style="color: #cccccc; white-space: pre-wrap; line-height: 1.6;">{{.Message}}</p>
  </div>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #333; color: #888; font-size: 12px;">
    <p>Wiadomość wysłana z formularza kontaktowego na stronie.</p>
  </div>
</div>`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #ef4444;">Dziękujemy za wiadomość, {{.Name}}!</h2>
  <p>Otrzymaliśmy Twoją wiadomość i odpowiemy najszybciej jak to możliwe.</p>
  <p style="color: #888; font-size: 12px;">Ta wiadomość została wysłana automatycznie, nie odpowiadaj na nią.</p>
</div>`))

func renderNotificationHTML(msg ContactMessage) string {
	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, msg); err != nil {
		return ""
	}
	return buf.String()
}

func renderNotificationText(msg ContactMessage) string {
	return fmt.Sprintf(`Nowa wiadomość z formularza kontaktowego

Imię i nazwisko: %s
Email: %s

Wiadomość:
%s
`, msg.Name, msg.Email, msg.Message)
}

func renderConfirmationHTML(msg ContactMessage) string {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, msg); err != nil {
		return ""
	}
	return buf.String()
}

func renderConfirmationText(msg ContactMessage) string {
	return fmt.Sprintf("Dziękujemy za wiadomość, %s!\n\nOtrzymaliśmy Twoją wiadomość i odpowiemy najszybciej jak to możliwe.\n", msg.Name)
}
