package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResendSend(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer re_test" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "msg_1"})
	}))
	defer srv.Close()

	c := NewResend("re_test", srv.URL, 5*time.Second)
	id, err := c.Send(context.Background(), Message{
		From:    "Kontakt <onboarding@resend.dev>",
		To:      []string{"owner@example.com"},
		ReplyTo: "jan@example.com",
		Subject: "hello",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if id != "msg_1" {
		t.Fatalf("unexpected id: %q", id)
	}
	if got.ReplyTo != "jan@example.com" || len(got.To) != 1 || got.To[0] != "owner@example.com" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestResendSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "validation_error", "message": "from is invalid"})
	}))
	defer srv.Close()

	c := NewResend("re_test", srv.URL, 5*time.Second)
	_, err := c.Send(context.Background(), Message{From: "x", To: []string{"y"}, Subject: "s"})
	if err == nil {
		t.Fatalf("expected error")
	}
}
