package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mstudio-pl/studio-site/internal/mailer"
)

type stubMailer struct {
	sent   []mailer.Message
	failOn func(m mailer.Message) error
}

func (s *stubMailer) Send(_ context.Context, m mailer.Message) (string, error) {
	if s.failOn != nil {
		if err := s.failOn(m); err != nil {
			return "", err
		}
	}
	s.sent = append(s.sent, m)
	return "msg", nil
}

func newTestContact(m mailer.Mailer) *ContactService {
	svc := NewContactService(m, "owner@example.com", "Kontakt <onboarding@resend.dev>", zerolog.Nop())
	svc.idGen = func() string { return "SUBMISSION" }
	return svc
}

func TestContactSubmitSendsNotificationAndConfirmation(t *testing.T) {
	mail := &stubMailer{}
	svc := newTestContact(mail)

	err := svc.Submit(context.Background(), ContactMessage{Name: "Jan Kowalski", Email: "jan@example.com", Message: "Hello"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if len(mail.sent) != 2 {
		t.Fatalf("expected notification + confirmation, got %d sends", len(mail.sent))
	}
	notif := mail.sent[0]
	if notif.To[0] != "owner@example.com" || notif.ReplyTo != "jan@example.com" {
		t.Fatalf("unexpected notification addressing: %+v", notif)
	}
	if !strings.Contains(notif.Subject, "Jan Kowalski") {
		t.Fatalf("subject should carry the sender name: %q", notif.Subject)
	}
	if !strings.Contains(notif.HTML, "Jan Kowalski") || !strings.Contains(notif.Text, "Hello") {
		t.Fatalf("both renderings must carry the submission")
	}
	if conf := mail.sent[1]; conf.To[0] != "jan@example.com" || conf.ReplyTo != "" {
		t.Fatalf("unexpected confirmation addressing: %+v", conf)
	}
}

func TestContactSubmitValidation(t *testing.T) {
	mail := &stubMailer{}
	svc := newTestContact(mail)

	for _, msg := range []ContactMessage{
		{Name: "", Email: "a@b.com", Message: "hi"},
		{Name: "Jan", Email: "", Message: "hi"},
		{Name: "Jan", Email: "a@b.com", Message: "   "},
	} {
		err := svc.Submit(context.Background(), msg)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalid {
			t.Fatalf("expected invalid error for %+v, got %v", msg, err)
		}
	}
	if len(mail.sent) != 0 {
		t.Fatalf("validation failures must not reach the provider")
	}
}

func TestContactSubmitDeliveryFailure(t *testing.T) {
	mail := &stubMailer{failOn: func(m mailer.Message) error {
		if m.To[0] == "owner@example.com" {
			return errors.New("provider timeout: upstream 504")
		}
		return nil
	}}
	svc := newTestContact(mail)

	err := svc.Submit(context.Background(), ContactMessage{Name: "Jan", Email: "jan@example.com", Message: "Hello"})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorDelivery {
		t.Fatalf("expected delivery error, got %v", err)
	}
	// Provider internals must not leak into the caller-facing message.
	if strings.Contains(se.Message, "504") || strings.Contains(se.Message, "upstream") {
		t.Fatalf("provider detail leaked: %q", se.Message)
	}
}

func TestContactSubmitConfirmationFailureIsBestEffort(t *testing.T) {
	mail := &stubMailer{failOn: func(m mailer.Message) error {
		if m.To[0] == "jan@example.com" {
			return errors.New("mailbox full")
		}
		return nil
	}}
	svc := newTestContact(mail)

	if err := svc.Submit(context.Background(), ContactMessage{Name: "Jan", Email: "jan@example.com", Message: "Hello"}); err != nil {
		t.Fatalf("confirmation failure must not fail the request: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("expected only the owner notification to be recorded, got %d", len(mail.sent))
	}
}

func TestContactHTMLEscapesUserInput(t *testing.T) {
	mail := &stubMailer{}
	svc := newTestContact(mail)

	err := svc.Submit(context.Background(), ContactMessage{Name: "<script>x</script>", Email: "a@b.com", Message: "hi"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if strings.Contains(mail.sent[0].HTML, "<script>") {
		t.Fatalf("user input must be escaped in the HTML rendering")
	}
}
