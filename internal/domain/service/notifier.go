package service

import "context"

// Message is one outbound email.
type Message struct {
	Receiver string
	Subject  string
	Body     string // HTML body
}

// Notifier delivers outbound email. Delivery failure surfaces as an error;
// whether that failure aborts the surrounding flow is the orchestrator's call.
type Notifier interface {
	SendEmail(ctx context.Context, msg Message) error
}
