package notify

// Email is one outbound message handed to a Sender.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Result carries the provider's acknowledgement for a sent email.
type Result struct {
	// ID is the provider-assigned message id, empty for providers that
	// don't return one (plain SMTP).
	ID string
}

// Sender delivers a rendered email through a mail provider.
type Sender interface {
	Send(email *Email) (*Result, error)
}
