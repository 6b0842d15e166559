package services

import (
	"context"

	"github.com/rs/zerolog"
)

// Invite is one invitation handed to a Mailer.
type Invite struct {
	To         string
	SenderName string
	Link       string
}

// Mailer delivers invitation emails.
type Mailer interface {
	SendInvite(ctx context.Context, inv Invite) error
}

// LogMailer is the development Mailer: it only logs what would be sent, using
// the request logger carried by ctx.
type LogMailer struct{}

// SendInvite logs the invitation and never fails.
func (LogMailer) SendInvite(ctx context.Context, inv Invite) error {
	zerolog.Ctx(ctx).Info().
		Str("to", inv.To).
		Str("sender", inv.SenderName).
		Str("link", inv.Link).
		Msg("invitation email (not delivered)")
	return nil
}
