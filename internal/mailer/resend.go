package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendClient sends mail through the Resend HTTP API.
type ResendClient struct {
	apiKey string
	base   string
	http   *resty.Client
}

// NewResend builds a client for the Resend API. baseURL may be empty to
// use the production endpoint; timeout zero falls back to 15s.
func NewResend(apiKey, baseURL string, timeout time.Duration) *ResendClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultResendBaseURL
	}
	return &ResendClient{
		apiKey: apiKey,
		base:   base,
		http:   resty.New().SetTimeout(timeout),
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (c *ResendClient) Send(ctx context.Context, m Message) (string, error) {
	body := resendRequest{
		From:    m.From,
		To:      m.To,
		ReplyTo: m.ReplyTo,
		Subject: m.Subject,
		HTML:    m.HTML,
		Text:    m.Text,
	}
	var ok resendResponse
	var apiErr resendError
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&ok).
		SetError(&apiErr).
		Post(c.base + "/emails")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		if apiErr.Message != "" {
			return "", fmt.Errorf("resend: %s (%s)", apiErr.Message, r.Status())
		}
		return "", fmt.Errorf("resend: %s; body: %s", r.Status(), r.String())
	}
	return ok.ID, nil
}

var _ Mailer = (*ResendClient)(nil)
