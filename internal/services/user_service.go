package services

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/repo"
)

// Principal is the authenticated caller as asserted by the identity provider.
type Principal struct {
	ID    string
	Email string
	Name  string
}

// NameMaxLen caps display names by rune length.
const NameMaxLen = 100

// UserService provisions and edits user profiles.
type UserService struct {
	DB *gorm.DB
	// Policy strips markup from display names; nil uses a strict policy.
	Policy *bluemonday.Policy
}

var strictPolicy = bluemonday.StrictPolicy()

// cleanName removes markup from a display name and trims it. Entities the
// policy escapes are decoded so "Tom & Jerry" survives unchanged.
func (s *UserService) cleanName(raw string) string {
	p := s.Policy
	if p == nil {
		p = strictPolicy
	}
	out := html.UnescapeString(p.Sanitize(raw))
	out = strings.NewReplacer("<", "", ">", "").Replace(out)
	return strings.TrimSpace(out)
}

// Ensure creates the caller's user row on first sight and flips pending
// invitations addressed to their email to accepted.
func (s *UserService) Ensure(ctx context.Context, p Principal) (*domain.User, error) {
	const op = "UserService.Ensure"
	if strings.TrimSpace(p.ID) == "" {
		return nil, wrap(op, ErrUnauthenticated)
	}
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Ensure", trace.WithAttributes(attribute.String("user.id", p.ID)))
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(p.Email))
	var name *string
	if n := s.cleanName(p.Name); n != "" {
		name = &n
	}

	u, created, err := repo.EnsureUser(ctx, s.DB, p.ID, email, name)
	if err != nil {
		return nil, wrap(op, err)
	}
	if created && email != "" {
		n, err := repo.AcceptPending(ctx, s.DB, email, p.ID)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", p.ID).Msg("accept pending invitations failed")
		} else if n > 0 {
			zerolog.Ctx(ctx).Debug().Int64("accepted", n).Str("user_id", p.ID).Msg("pending invitations accepted")
		}
	}
	return u, nil
}

// Profile returns the stored user.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		return nil, wrap("UserService.Profile", err, ErrUserNotFound)
	}
	return u, nil
}

// UpdateName sets the display name after stripping markup and trimming; it
// must be 1..NameMaxLen runes.
func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*domain.User, error) {
	const op = "UserService.UpdateName"
	name = s.cleanName(name)
	if name == "" || utf8.RuneCountInString(name) > NameMaxLen {
		return nil, wrap(op, ErrInvalidName)
	}
	if err := repo.UpdateUserName(ctx, s.DB, userID, name); err != nil {
		return nil, wrap(op, err, ErrUserNotFound)
	}
	return s.Profile(ctx, userID)
}

// DisplayName picks what to show for a user: the name, else the local part
// of the email, else "Anonymous".
func DisplayName(name, email *string) string {
	if name != nil {
		if n := strings.TrimSpace(*name); n != "" {
			return n
		}
	}
	if email != nil {
		local, _, _ := strings.Cut(*email, "@")
		if local = strings.TrimSpace(local); local != "" {
			return local
		}
	}
	return "Anonymous"
}
