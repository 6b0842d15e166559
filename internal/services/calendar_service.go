package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/advent"
	"github.com/tbourn/gift-calendar/internal/cache"
	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/repo"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
	// codeAttempts bounds the retries on calendar code collisions.
	codeAttempts = 10
)

// Invalidator drops cached per-owner views after a write.
type Invalidator interface {
	Invalidate(ownerID string)
}

func invalidate(i Invalidator, ownerID string) {
	if i != nil {
		i.Invalidate(ownerID)
	}
}

// DayStatus is one door of the owner's calendar.
type DayStatus struct {
	Day        int       `json:"day"`
	CategoryID int       `json:"category_id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Prompt     string    `json:"prompt"`
	UnlockDate time.Time `json:"unlock_date"`
	Unlocked   bool      `json:"unlocked"`
	Revealed   bool      `json:"revealed"`
	Answers    int64     `json:"answers"`
	Votes      int64     `json:"votes"`
}

// FriendStats counts the owner's invitations and how many of them voted.
type FriendStats struct {
	Total int64 `json:"total"`
	Voted int64 `json:"voted"`
}

// Overview is the owner's dashboard.
type Overview struct {
	CalendarCode       *string     `json:"calendar_code"`
	Name               *string     `json:"name"`
	VotingEnabled      bool        `json:"voting_enabled"`
	VotingDeadline     *time.Time  `json:"voting_deadline,omitempty"`
	VotingOpen         bool        `json:"voting_open"`
	Days               []DayStatus `json:"days"`
	Friends            FriendStats `json:"friends"`
	NextUnlockDay      int         `json:"next_unlock_day,omitempty"`
	NextUnlockIn       string      `json:"next_unlock_in,omitempty"`
	DaysUntilChristmas int         `json:"days_until_christmas"`
}

// CalendarView is what a visitor sees when opening a calendar by code.
type CalendarView struct {
	OwnerID         string            `json:"owner_id"`
	OwnerName       string            `json:"owner_name"`
	CalendarCode    string            `json:"calendar_code"`
	IsOwner         bool              `json:"is_owner"`
	Categories      []domain.Category `json:"categories"`
	HasAlreadyVoted bool              `json:"has_already_voted"`
	HasInvitation   bool              `json:"has_invitation"`
	VotingOpen      bool              `json:"voting_open"`
	VotingMessage   string            `json:"voting_message,omitempty"`
}

// snapshot is the stored part of an Overview. Time-dependent fields are
// derived on every read so cached entries never go stale on the clock.
type snapshot struct {
	user       domain.User
	categories []domain.Category
	totals     map[int]repo.CategoryTotals
	revealed   map[int]bool
	friends    FriendStats
}

// CalendarService owns calendar codes, the owner dashboard and the
// visitor view.
type CalendarService struct {
	DB *gorm.DB
	// Location is the calendar time zone; nil means time.Local.
	Location *time.Location
	// Now is the clock; nil means time.Now.
	Now func() time.Time
	// NewCode generates candidate calendar codes; nil means random codes.
	NewCode func() (string, error)

	views *cache.Cache[*snapshot]
}

// NewCalendarService returns a service whose overviews are cached in an LRU
// of size entries for ttl each.
func NewCalendarService(db *gorm.DB, loc *time.Location, size int, ttl time.Duration) (*CalendarService, error) {
	c, err := cache.New[*snapshot](size, ttl)
	if err != nil {
		return nil, err
	}
	return &CalendarService{DB: db, Location: loc, views: c}, nil
}

// Invalidate drops the cached overview of ownerID.
func (s *CalendarService) Invalidate(ownerID string) {
	if s == nil {
		return
	}
	s.views.Delete(ownerID)
}

func (s *CalendarService) now() time.Time {
	return clock(s.Now, s.Location)
}

func clock(now func() time.Time, loc *time.Location) time.Time {
	t := time.Now()
	if now != nil {
		t = now()
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}

// GenerateCode assigns ownerID a calendar code once. Later calls return the
// stored code with created=false.
func (s *CalendarService) GenerateCode(ctx context.Context, ownerID string) (code string, created bool, err error) {
	const op = "CalendarService.GenerateCode"
	tr := otel.Tracer("services/CalendarService")
	ctx, span := tr.Start(ctx, "GenerateCode", trace.WithAttributes(attribute.String("owner.id", ownerID)))
	defer span.End()

	u, err := repo.GetUser(ctx, s.DB, ownerID)
	if err != nil {
		return "", false, wrap(op, err, ErrUserNotFound)
	}
	if u.CalendarCode != nil {
		return *u.CalendarCode, false, nil
	}

	gen := s.NewCode
	if gen == nil {
		gen = randomCode
	}
	for i := 0; i < codeAttempts; i++ {
		candidate, err := gen()
		if err != nil {
			return "", false, wrap(op, err)
		}
		ok, err := repo.SetCalendarCode(ctx, s.DB, ownerID, candidate)
		if errors.Is(err, repo.ErrDuplicate) {
			continue
		}
		if err != nil {
			return "", false, wrap(op, err)
		}
		s.Invalidate(ownerID)
		if ok {
			span.SetAttributes(attribute.Int("code.attempts", i+1))
			return candidate, true, nil
		}
		// Lost a race with a concurrent request; keep the winner's code.
		u, err := repo.GetUser(ctx, s.DB, ownerID)
		if err != nil {
			return "", false, wrap(op, err, ErrUserNotFound)
		}
		if u.CalendarCode == nil {
			return "", false, wrap(op, ErrCodeUnavailable)
		}
		return *u.CalendarCode, false, nil
	}
	return "", false, wrap(op, ErrCodeUnavailable)
}

func randomCode() (string, error) {
	n := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, codeLength)
	for i := range b {
		k, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[k.Int64()]
	}
	return string(b), nil
}

// Overview returns the owner's dashboard.
func (s *CalendarService) Overview(ctx context.Context, ownerID string) (*Overview, error) {
	const op = "CalendarService.Overview"
	snap, ok := s.views.Get(ownerID)
	if !ok {
		var err error
		if snap, err = s.load(ctx, ownerID); err != nil {
			return nil, wrap(op, err, ErrUserNotFound)
		}
		s.views.Set(ownerID, snap)
	}
	return s.compose(snap, s.now()), nil
}

func (s *CalendarService) load(ctx context.Context, ownerID string) (*snapshot, error) {
	tr := otel.Tracer("services/CalendarService")
	ctx, span := tr.Start(ctx, "Overview.load", trace.WithAttributes(attribute.String("owner.id", ownerID)))
	defer span.End()

	u, err := repo.GetUser(ctx, s.DB, ownerID)
	if err != nil {
		return nil, err
	}
	cats, err := repo.ListCategories(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	rows, err := repo.AnswerTotals(ctx, s.DB, ownerID)
	if err != nil {
		return nil, err
	}
	days, err := repo.RevealedDays(ctx, s.DB, ownerID)
	if err != nil {
		return nil, err
	}
	total, voted, err := repo.InvitationCounts(ctx, s.DB, ownerID)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		user:       *u,
		categories: cats,
		totals:     make(map[int]repo.CategoryTotals, len(rows)),
		revealed:   make(map[int]bool, len(days)),
		friends:    FriendStats{Total: total, Voted: voted},
	}
	for _, r := range rows {
		snap.totals[r.CategoryID] = r
	}
	for _, d := range days {
		snap.revealed[d] = true
	}
	return snap, nil
}

func (s *CalendarService) compose(snap *snapshot, now time.Time) *Overview {
	u := snap.user
	ov := &Overview{
		CalendarCode:       u.CalendarCode,
		Name:               u.Name,
		VotingEnabled:      u.VotingEnabled,
		VotingDeadline:     u.VotingDeadline,
		VotingOpen:         votingWindow(&u, now) == nil,
		Days:               make([]DayStatus, 0, len(snap.categories)),
		Friends:            snap.friends,
		DaysUntilChristmas: advent.DaysUntilChristmas(now),
	}
	for _, c := range snap.categories {
		unlock, _ := advent.UnlockDate(now.Year(), c.ID, now.Location())
		t := snap.totals[c.ID]
		ov.Days = append(ov.Days, DayStatus{
			Day:        c.ID,
			CategoryID: c.ID,
			Name:       c.Name,
			Code:       c.Code,
			Prompt:     c.Prompt,
			UnlockDate: unlock,
			Unlocked:   advent.IsUnlocked(c.ID, now, false),
			Revealed:   snap.revealed[c.ID],
			Answers:    t.Answers,
			Votes:      t.Votes,
		})
	}
	if d, ok := advent.NextUnlockDay(now); ok {
		at, _ := advent.UnlockDate(now.Year(), d, now.Location())
		ov.NextUnlockDay = d
		ov.NextUnlockIn = advent.FormatCountdown(at, now)
	}
	return ov
}

// ByCode resolves a calendar code for viewer. Codes are matched
// case-insensitively.
func (s *CalendarService) ByCode(ctx context.Context, viewer Principal, code string) (*CalendarView, error) {
	const op = "CalendarService.ByCode"
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, wrap(op, ErrCalendarNotFound)
	}
	tr := otel.Tracer("services/CalendarService")
	ctx, span := tr.Start(ctx, "ByCode", trace.WithAttributes(attribute.String("calendar.code", code)))
	defer span.End()

	owner, err := repo.GetUserByCode(ctx, s.DB, code)
	if err != nil {
		return nil, wrap(op, err, ErrCalendarNotFound)
	}
	cats, err := repo.ListCategories(ctx, s.DB)
	if err != nil {
		return nil, wrap(op, err)
	}

	v := &CalendarView{
		OwnerID:      owner.ID,
		OwnerName:    DisplayName(owner.Name, &owner.Email),
		CalendarCode: code,
		IsOwner:      viewer.ID == owner.ID,
		Categories:   cats,
		VotingOpen:   true,
	}
	if werr := votingWindow(owner, s.now()); werr != nil {
		v.VotingOpen = false
		v.VotingMessage = MessageOf(werr)
	}
	if viewer.ID != "" && !v.IsOwner {
		if v.HasAlreadyVoted, err = repo.HasVoted(ctx, s.DB, owner.ID, viewer.ID); err != nil {
			return nil, wrap(op, err)
		}
	}
	if email := strings.ToLower(strings.TrimSpace(viewer.Email)); email != "" {
		if v.HasInvitation, err = repo.HasInvitation(ctx, s.DB, owner.ID, email); err != nil {
			return nil, wrap(op, err)
		}
	}
	return v, nil
}

// UpdateVoting toggles voting on the owner's calendar and sets or clears
// the owner's own deadline.
func (s *CalendarService) UpdateVoting(ctx context.Context, ownerID string, enabled bool, deadline *time.Time) (*domain.User, error) {
	const op = "CalendarService.UpdateVoting"
	if err := repo.UpdateVoting(ctx, s.DB, ownerID, enabled, deadline); err != nil {
		return nil, wrap(op, err, ErrUserNotFound)
	}
	s.Invalidate(ownerID)
	u, err := repo.GetUser(ctx, s.DB, ownerID)
	if err != nil {
		return nil, wrap(op, err, ErrUserNotFound)
	}
	return u, nil
}

// Categories lists the prompt categories in display order.
func (s *CalendarService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := repo.ListCategories(ctx, s.DB)
	if err != nil {
		return nil, wrap("CalendarService.Categories", err)
	}
	return cats, nil
}

// votingWindow returns nil while owner accepts votes at now.
func votingWindow(owner *domain.User, now time.Time) error {
	switch {
	case !advent.IsVotingOpen(now):
		return ErrVotingClosed
	case !owner.VotingEnabled:
		return ErrVotingDisabled
	case owner.VotingDeadline != nil && !now.Before(*owner.VotingDeadline):
		return ErrDeadlinePassed
	}
	return nil
}
