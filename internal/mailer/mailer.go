// Package mailer wraps the transactional email provider.
package mailer

import "context"

// Message is a single outbound email. HTML and Text are alternative
// renderings of the same content.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer dispatches a message and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, m Message) (string, error)
}
