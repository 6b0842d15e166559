package handlers

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/http/middleware"
	"github.com/tbourn/gift-calendar/internal/services"
)

//
// Service contracts (context-aware)
//

// CalendarService manages calendar codes and the owner and visitor views.
type CalendarService interface {
	GenerateCode(ctx context.Context, ownerID string) (code string, created bool, err error)
	Overview(ctx context.Context, ownerID string) (*services.Overview, error)
	ByCode(ctx context.Context, viewer services.Principal, code string) (*services.CalendarView, error)
	UpdateVoting(ctx context.Context, ownerID string, enabled bool, deadline *time.Time) (*domain.User, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// InvitationService tracks invitations sent by calendar owners.
type InvitationService interface {
	Create(ctx context.Context, senderID string, emails []string, baseURL string) (*services.CreateResult, error)
	List(ctx context.Context, senderID string) ([]services.InvitationView, error)
	ListReceived(ctx context.Context, email string) ([]services.ReceivedInvitation, error)
	Delete(ctx context.Context, senderID, invitationID string) error
}

// VoteService records friends' answers.
type VoteService interface {
	Submit(ctx context.Context, voter services.Principal, ownerID string, batch map[int]string, inviteToken string) (*services.SubmitResult, error)
}

// RevealService opens calendar days.
type RevealService interface {
	Reveal(ctx context.Context, ownerID string, day int, testMode bool) (*services.RevealResult, error)
	ResetReveals(ctx context.Context, ownerID string) (int64, error)
}

// UserService reads and edits the caller's profile.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateName(ctx context.Context, userID, name string) (*domain.User, error)
}

//
// Handler wiring
//

// Deps are the collaborators of Handlers. DB is optional; without it
// invitation listings carry no ETag and vote responses are not stored for
// Idempotency-Key replay.
type Deps struct {
	Calendar    CalendarService
	Invitations InvitationService
	Votes       VoteService
	Reveals     RevealService
	Users       UserService

	DB             *gorm.DB
	IdempotencyTTL time.Duration
	// AppBaseURL prefixes invite links.
	AppBaseURL string
	// LinkOrigins are browser origins allowed to override AppBaseURL via the
	// Origin header, typically the CORS allow-list.
	LinkOrigins []string
	// Location interprets date-only voting deadlines; nil means time.Local.
	Location *time.Location
}

// Handlers groups the API endpoints.
type Handlers struct {
	cal   CalendarService
	inv   InvitationService
	votes VoteService
	rev   RevealService
	users UserService

	db          *gorm.DB
	idemTTL     time.Duration
	baseURL     string
	linkOrigins map[string]struct{}
	loc         *time.Location
}

// New binds Handlers to d.
func New(d Deps) *Handlers {
	h := &Handlers{
		cal:         d.Calendar,
		inv:         d.Invitations,
		votes:       d.Votes,
		rev:         d.Reveals,
		users:       d.Users,
		db:          d.DB,
		idemTTL:     d.IdempotencyTTL,
		baseURL:     strings.TrimRight(d.AppBaseURL, "/"),
		linkOrigins: make(map[string]struct{}, len(d.LinkOrigins)),
		loc:         d.Location,
	}
	if h.idemTTL <= 0 {
		h.idemTTL = 24 * time.Hour
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	for _, o := range d.LinkOrigins {
		h.linkOrigins[strings.TrimRight(o, "/")] = struct{}{}
	}
	return h
}

// principal is the authenticated caller.
func principal(c *gin.Context) services.Principal {
	return services.Principal{
		ID:    middleware.UserIDFrom(c),
		Email: middleware.UserEmailFrom(c),
		Name:  middleware.UserNameFrom(c),
	}
}

// linkBase picks the origin for invite links: the request's Origin when it is
// allow-listed, else AppBaseURL.
func (h *Handlers) linkBase(c *gin.Context) string {
	origin := strings.TrimRight(c.GetHeader("Origin"), "/")
	if origin == "" {
		return h.baseURL
	}
	if _, ok := h.linkOrigins[origin]; !ok {
		if _, wildcard := h.linkOrigins["*"]; !wildcard {
			return h.baseURL
		}
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return h.baseURL
	}
	return u.Scheme + "://" + u.Host
}
