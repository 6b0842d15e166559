package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/repo"
)

var defaultValidate = validator.New()

// InviteLink is the personal voting link of one invited friend.
type InviteLink struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}

// CreateResult reports what happened to each address of a Create call.
type CreateResult struct {
	Invited []InviteLink
	// Skipped holds valid addresses that were already invited, repeated in
	// the request, or the sender's own.
	Skipped []string
	Invalid []string
}

// InvitationView is an invitation as listed to its sender.
type InvitationView struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	InviteToken  string    `json:"invite_token"`
	AcceptedBy   *string   `json:"accepted_by,omitempty"`
	HasVoted     bool      `json:"has_voted"`
	CalendarCode *string   `json:"calendar_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReceivedInvitation is an invitation addressed to the caller.
type ReceivedInvitation struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	SenderName   string    `json:"sender_name"`
	CalendarCode string    `json:"calendar_code"`
	InviteToken  string    `json:"invite_token"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// InvitationService tracks who was invited to which calendar.
type InvitationService struct {
	DB     *gorm.DB
	Mailer Mailer
	Views  Invalidator
	// Validate checks email syntax; nil means a shared default validator.
	Validate *validator.Validate
	// NewToken generates invite tokens; nil means UUIDv4.
	NewToken func() string
}

func (s *InvitationService) validate() *validator.Validate {
	if s.Validate != nil {
		return s.Validate
	}
	return defaultValidate
}

func (s *InvitationService) token() string {
	if s.NewToken != nil {
		return s.NewToken()
	}
	return uuid.NewString()
}

// Create invites emails to senderID's calendar and returns one link per new
// invitation, built on baseURL.
func (s *InvitationService) Create(ctx context.Context, senderID string, emails []string, baseURL string) (*CreateResult, error) {
	const op = "InvitationService.Create"
	tr := otel.Tracer("services/InvitationService")
	ctx, span := tr.Start(ctx, "Create", trace.WithAttributes(
		attribute.String("sender.id", senderID),
		attribute.Int("emails.count", len(emails)),
	))
	defer span.End()

	res := &CreateResult{}
	var valid []string
	for _, raw := range emails {
		e := strings.ToLower(strings.TrimSpace(raw))
		if e == "" {
			continue
		}
		if err := s.validate().Var(e, "required,email"); err != nil {
			res.Invalid = append(res.Invalid, raw)
			continue
		}
		valid = append(valid, e)
	}
	if len(valid) == 0 {
		return nil, wrap(op, ErrNoEmails)
	}

	sender, err := repo.GetUser(ctx, s.DB, senderID)
	if err != nil {
		return nil, wrap(op, err, ErrUserNotFound)
	}
	if sender.CalendarCode == nil {
		return nil, wrap(op, ErrNoCalendarCode)
	}
	seen, err := repo.InvitedEmails(ctx, s.DB, senderID)
	if err != nil {
		return nil, wrap(op, err)
	}
	seen[strings.ToLower(sender.Email)] = true

	base := strings.TrimRight(baseURL, "/")
	senderName := DisplayName(sender.Name, &sender.Email)
	log := zerolog.Ctx(ctx)
	for _, e := range valid {
		if seen[e] {
			res.Skipped = append(res.Skipped, e)
			continue
		}
		seen[e] = true

		inv := &domain.Invitation{
			ID:          uuid.NewString(),
			SenderID:    senderID,
			Email:       e,
			InviteToken: s.token(),
			Status:      domain.InvitationPending,
		}
		ok, err := repo.CreateInvitation(ctx, s.DB, inv)
		if err != nil {
			return nil, wrap(op, err)
		}
		if !ok {
			res.Skipped = append(res.Skipped, e)
			continue
		}
		invitationsTotal.Inc()

		link := base + "/vote/" + *sender.CalendarCode + "?invite=" + inv.InviteToken
		res.Invited = append(res.Invited, InviteLink{Email: e, Link: link})
		if s.Mailer != nil {
			if err := s.Mailer.SendInvite(ctx, Invite{To: e, SenderName: senderName, Link: link}); err != nil {
				log.Warn().Err(err).Str("invitation_id", inv.ID).Msg("invite email failed")
			}
		}
	}
	if len(res.Invited) > 0 {
		invalidate(s.Views, senderID)
	}
	span.SetAttributes(attribute.Int("invited.count", len(res.Invited)))
	return res, nil
}

// List returns senderID's invitations newest first, each flagged with
// whether the accepting user has voted on the sender's calendar.
func (s *InvitationService) List(ctx context.Context, senderID string) ([]InvitationView, error) {
	const op = "InvitationService.List"
	sender, err := repo.GetUser(ctx, s.DB, senderID)
	if err != nil {
		return nil, wrap(op, err, ErrUserNotFound)
	}
	rows, err := repo.ListInvitations(ctx, s.DB, senderID)
	if err != nil {
		return nil, wrap(op, err)
	}

	var voterIDs []string
	for _, r := range rows {
		if r.AcceptedBy != nil {
			voterIDs = append(voterIDs, *r.AcceptedBy)
		}
	}
	voted, err := repo.VotersOf(ctx, s.DB, senderID, voterIDs)
	if err != nil {
		return nil, wrap(op, err)
	}

	out := make([]InvitationView, 0, len(rows))
	for _, r := range rows {
		out = append(out, InvitationView{
			ID:           r.ID,
			Email:        r.Email,
			Status:       r.Status,
			InviteToken:  r.InviteToken,
			AcceptedBy:   r.AcceptedBy,
			HasVoted:     r.AcceptedBy != nil && voted[*r.AcceptedBy],
			CalendarCode: sender.CalendarCode,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}

// Delete removes one of senderID's invitations. Rows of other senders are
// left untouched.
func (s *InvitationService) Delete(ctx context.Context, senderID, invitationID string) error {
	const op = "InvitationService.Delete"
	err := repo.DeleteInvitation(ctx, s.DB, invitationID, senderID)
	if err == nil {
		invalidate(s.Views, senderID)
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return wrap(op, err)
	}
	if _, gerr := repo.GetInvitation(ctx, s.DB, invitationID); gerr == nil {
		return wrap(op, ErrNotInviteOwner)
	} else if !errors.Is(gerr, repo.ErrNotFound) {
		return wrap(op, gerr)
	}
	return wrap(op, ErrInvitationNotFound)
}

// MarkVoted flips the invitation that brought voterID to senderID's calendar
// to voted: by token when one is given and matches, else by email.
func (s *InvitationService) MarkVoted(ctx context.Context, senderID, voterID, email, token string) (bool, error) {
	const op = "InvitationService.MarkVoted"
	if token = strings.TrimSpace(token); token != "" {
		n, err := repo.MarkVotedByToken(ctx, s.DB, senderID, token, voterID)
		if err != nil {
			return false, wrap(op, err)
		}
		if n > 0 {
			invalidate(s.Views, senderID)
			return true, nil
		}
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email == "" {
		return false, nil
	}
	n, err := repo.MarkVotedByEmail(ctx, s.DB, senderID, email, voterID)
	if err != nil {
		return false, wrap(op, err)
	}
	if n > 0 {
		invalidate(s.Views, senderID)
	}
	return n > 0, nil
}

// ListReceived returns the calendars email was invited to.
func (s *InvitationService) ListReceived(ctx context.Context, email string) ([]ReceivedInvitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return []ReceivedInvitation{}, nil
	}
	rows, err := repo.ListReceived(ctx, s.DB, email)
	if err != nil {
		return nil, wrap("InvitationService.ListReceived", err)
	}
	out := make([]ReceivedInvitation, 0, len(rows))
	for _, r := range rows {
		senderEmail := r.SenderEmail
		out = append(out, ReceivedInvitation{
			ID:           r.ID,
			SenderID:     r.SenderID,
			SenderName:   DisplayName(r.SenderName, &senderEmail),
			CalendarCode: r.CalendarCode,
			InviteToken:  r.InviteToken,
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}
