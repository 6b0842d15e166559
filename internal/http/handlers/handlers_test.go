package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/http/middleware"
	"github.com/tbourn/gift-calendar/internal/repo"
	"github.com/tbourn/gift-calendar/internal/services"
)

// ---------- stubs ----------

type stubCalendar struct {
	code     string
	created  bool
	overview *services.Overview
	view     *services.CalendarView
	err      error

	gotViewer   services.Principal
	gotCode     string
	gotEnabled  bool
	gotDeadline *time.Time
}

func (s *stubCalendar) GenerateCode(context.Context, string) (string, bool, error) {
	return s.code, s.created, s.err
}
func (s *stubCalendar) Overview(context.Context, string) (*services.Overview, error) {
	return s.overview, s.err
}
func (s *stubCalendar) ByCode(_ context.Context, viewer services.Principal, code string) (*services.CalendarView, error) {
	s.gotViewer, s.gotCode = viewer, code
	return s.view, s.err
}
func (s *stubCalendar) UpdateVoting(_ context.Context, id string, enabled bool, deadline *time.Time) (*domain.User, error) {
	s.gotEnabled, s.gotDeadline = enabled, deadline
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: id, VotingEnabled: enabled, VotingDeadline: deadline}, nil
}
func (s *stubCalendar) Categories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Pets", Code: "pets"}}, s.err
}

type stubInvitations struct {
	create   *services.CreateResult
	list     []services.InvitationView
	received []services.ReceivedInvitation
	err      error
	listHits int

	gotEmails []string
	gotBase   string
	gotEmail  string
	gotID     string
}

func (s *stubInvitations) Create(_ context.Context, _ string, emails []string, base string) (*services.CreateResult, error) {
	s.gotEmails, s.gotBase = emails, base
	return s.create, s.err
}
func (s *stubInvitations) List(context.Context, string) ([]services.InvitationView, error) {
	s.listHits++
	return s.list, s.err
}
func (s *stubInvitations) ListReceived(_ context.Context, email string) ([]services.ReceivedInvitation, error) {
	s.gotEmail = email
	return s.received, s.err
}
func (s *stubInvitations) Delete(_ context.Context, _ string, id string) error {
	s.gotID = id
	return s.err
}

type stubVotes struct {
	res   *services.SubmitResult
	err   error
	calls int

	gotVoter services.Principal
	gotOwner string
	gotBatch map[int]string
	gotToken string
}

func (s *stubVotes) Submit(_ context.Context, voter services.Principal, owner string, batch map[int]string, token string) (*services.SubmitResult, error) {
	s.calls++
	s.gotVoter, s.gotOwner, s.gotBatch, s.gotToken = voter, owner, batch, token
	return s.res, s.err
}

type stubReveals struct {
	res     *services.RevealResult
	reset   int64
	err     error
	gotDay  int
	gotTest bool
}

func (s *stubReveals) Reveal(_ context.Context, _ string, day int, test bool) (*services.RevealResult, error) {
	s.gotDay, s.gotTest = day, test
	return s.res, s.err
}
func (s *stubReveals) ResetReveals(context.Context, string) (int64, error) { return s.reset, s.err }

type stubUsers struct {
	user    *domain.User
	err     error
	gotName string
}

func (s *stubUsers) Profile(context.Context, string) (*domain.User, error) { return s.user, s.err }
func (s *stubUsers) UpdateName(_ context.Context, _ string, name string) (*domain.User, error) {
	s.gotName = name
	if s.err != nil {
		return nil, s.err
	}
	u := *s.user
	u.Name = &name
	return &u, nil
}

// ---------- plumbing ----------

type fixture struct {
	cal   *stubCalendar
	inv   *stubInvitations
	votes *stubVotes
	rev   *stubReveals
	users *stubUsers
	deps  Deps
}

func newFixture() *fixture {
	f := &fixture{
		cal:   &stubCalendar{},
		inv:   &stubInvitations{},
		votes: &stubVotes{},
		rev:   &stubReveals{},
		users: &stubUsers{},
	}
	f.deps = Deps{
		Calendar: f.cal, Invitations: f.inv, Votes: f.votes, Reveals: f.rev, Users: f.users,
		AppBaseURL: "https://gifts.example.com/",
		Location:   time.UTC,
	}
	return f
}

// router mounts the endpoints behind trusted-header auth, the way the
// server does without a JWT secret.
func (f *fixture) router(lookup middleware.IdempotencyLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(f.deps)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Authenticate(nil, nil), middleware.RequireUser(),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, lookup))
	r.POST("/calendar", h.GenerateCalendarCode)
	r.GET("/calendar", h.GetCalendar)
	r.PUT("/calendar/voting", h.UpdateVoting)
	r.GET("/calendars/:code", h.GetCalendarByCode)
	r.GET("/categories", h.ListCategories)
	r.POST("/invitations", h.CreateInvitations)
	r.GET("/invitations", h.ListInvitations)
	r.GET("/invitations/received", h.ListReceivedInvitations)
	r.DELETE("/invitations/:id", h.DeleteInvitation)
	r.POST("/votes", h.SubmitVotes)
	r.POST("/reveals/:day", h.RevealDay)
	r.DELETE("/reveals", h.ResetReveals)
	r.GET("/me", h.GetMe)
	r.PUT("/me", h.UpdateMe)
	return r
}

func do(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.HeaderUserID, "u-1")
	req.Header.Set(middleware.HeaderUserEmail, "Me@Example.com")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
}

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "handlers.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// ---------- auth ----------

func TestRoutes_RequireUser(t *testing.T) {
	r := newFixture().router(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calendar", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request: %d", w.Code)
	}
}

// ---------- calendar ----------

func TestGenerateCalendarCode(t *testing.T) {
	f := newFixture()
	f.cal.code, f.cal.created = "ABCD2345", true
	r := f.router(nil)

	w := do(r, http.MethodPost, "/calendar", "")
	var got GenerateCodeResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusCreated || got.CalendarCode != "ABCD2345" || !got.Created {
		t.Fatalf("first call: %d %+v", w.Code, got)
	}

	f.cal.created = false
	if w = do(r, http.MethodPost, "/calendar", ""); w.Code != http.StatusOK {
		t.Fatalf("repeat call should be 200, got %d", w.Code)
	}

	f.cal.err = services.ErrUserNotFound
	if w = do(r, http.MethodPost, "/calendar", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown user: %d", w.Code)
	}
}

func TestGetCalendar(t *testing.T) {
	f := newFixture()
	code := "ABCD2345"
	f.cal.overview = &services.Overview{CalendarCode: &code, DaysUntilChristmas: 8, Friends: services.FriendStats{Total: 3, Voted: 1}}
	w := do(f.router(nil), http.MethodGet, "/calendar", "")

	var got map[string]any
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || got["calendar_code"] != code || got["days_until_christmas"] != float64(8) {
		t.Fatalf("unexpected overview: %d %v", w.Code, got)
	}
}

func TestUpdateVoting(t *testing.T) {
	f := newFixture()
	r := f.router(nil)

	w := do(r, http.MethodPut, "/calendar/voting", `{"voting_enabled":true,"voting_deadline":"2025-11-30"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("date deadline: %d %s", w.Code, w.Body.String())
	}
	want := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	if !f.cal.gotEnabled || f.cal.gotDeadline == nil || !f.cal.gotDeadline.Equal(want) {
		t.Fatalf("deadline passed = %v", f.cal.gotDeadline)
	}

	w = do(r, http.MethodPut, "/calendar/voting", `{"voting_enabled":false,"voting_deadline":"2025-12-10T18:00:00+01:00"}`)
	if w.Code != http.StatusOK || f.cal.gotEnabled || !f.cal.gotDeadline.Equal(time.Date(2025, 12, 10, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 deadline: %d %v", w.Code, f.cal.gotDeadline)
	}

	if w = do(r, http.MethodPut, "/calendar/voting", `{"voting_enabled":true}`); w.Code != http.StatusOK || f.cal.gotDeadline != nil {
		t.Fatalf("empty deadline should clear: %d %v", w.Code, f.cal.gotDeadline)
	}

	for _, body := range []string{`{}`, `{"voting_enabled":true,"voting_deadline":"tomorrow"}`, `nope`} {
		if w = do(r, http.MethodPut, "/calendar/voting", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestGetCalendarByCode(t *testing.T) {
	f := newFixture()
	f.cal.view = &services.CalendarView{OwnerID: "owner", OwnerName: "Ana", HasInvitation: true}
	r := f.router(nil)

	w := do(r, http.MethodGet, "/calendars/abcd2345", "", middleware.HeaderUserName, "Bo")
	var got services.CalendarView
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || got.OwnerName != "Ana" || !got.HasInvitation {
		t.Fatalf("unexpected view: %d %+v", w.Code, got)
	}
	if f.cal.gotCode != "abcd2345" || f.cal.gotViewer.ID != "u-1" || f.cal.gotViewer.Email != "me@example.com" || f.cal.gotViewer.Name != "Bo" {
		t.Fatalf("unexpected call: code=%q viewer=%+v", f.cal.gotCode, f.cal.gotViewer)
	}

	f.cal.err = services.ErrCalendarNotFound
	w = do(r, http.MethodGet, "/calendars/NOPE0000", "")
	var er ErrorResponse
	decodeBody(t, w, &er)
	if w.Code != http.StatusNotFound || er.Message != "calendar not found" {
		t.Fatalf("missing calendar: %d %+v", w.Code, er)
	}
}

func TestListCategories(t *testing.T) {
	w := do(newFixture().router(nil), http.MethodGet, "/categories", "")
	var got CategoriesResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || len(got.Categories) != 1 || got.Categories[0].Code != "pets" {
		t.Fatalf("unexpected categories: %d %+v", w.Code, got)
	}
}

// ---------- invitations ----------

func TestCreateInvitations(t *testing.T) {
	f := newFixture()
	f.deps.LinkOrigins = []string{"https://app.example.com"}
	f.inv.create = &services.CreateResult{
		Invited: []services.InviteLink{{Email: "a@x.io", Link: "https://app.example.com/vote/ABCD2345?invite=t1"}},
		Skipped: []string{"me@example.com"},
	}
	r := f.router(nil)

	w := do(r, http.MethodPost, "/invitations", `{"emails":["a@x.io","me@example.com"]}`, "Origin", "https://app.example.com")
	var got CreateInvitationsResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if len(got.Invited) != 1 || got.Invited[0] != "a@x.io" || len(got.Links) != 1 || len(got.Skipped) != 1 || got.Invalid == nil {
		t.Fatalf("unexpected body: %+v", got)
	}
	if f.inv.gotBase != "https://app.example.com" || len(f.inv.gotEmails) != 2 {
		t.Fatalf("unexpected call: base=%q emails=%v", f.inv.gotBase, f.inv.gotEmails)
	}

	// Unknown origins fall back to the configured base.
	do(r, http.MethodPost, "/invitations", `{"emails":["a@x.io"]}`, "Origin", "https://evil.example.net")
	if f.inv.gotBase != "https://gifts.example.com" {
		t.Fatalf("untrusted origin used: %q", f.inv.gotBase)
	}

	if w = do(r, http.MethodPost, "/invitations", `{"emails":[]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("empty list: %d", w.Code)
	}
	many := `{"emails":[` + strings.TrimSuffix(strings.Repeat(`"a@x.io",`, maxInviteBatch+1), ",") + `]}`
	if w = do(r, http.MethodPost, "/invitations", many); w.Code != http.StatusBadRequest {
		t.Fatalf("oversized batch: %d", w.Code)
	}

	f.inv.err = services.ErrNoCalendarCode
	w = do(r, http.MethodPost, "/invitations", `{"emails":["a@x.io"]}`)
	var er ErrorResponse
	decodeBody(t, w, &er)
	if w.Code != http.StatusBadRequest || er.Code != ErrCodeNoCalendarCode {
		t.Fatalf("no code: %d %+v", w.Code, er)
	}
}

func TestListInvitations_ETag(t *testing.T) {
	db := newHandlerDB(t)
	ctx := context.Background()
	if _, _, err := repo.EnsureUser(ctx, db, "u-1", "me@example.com", nil); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}

	f := newFixture()
	f.deps.DB = db
	f.inv.list = []services.InvitationView{{ID: "i1", Email: "a@x.io", HasVoted: true}, {ID: "i2", Email: "b@x.io"}}
	r := f.router(nil)

	w := do(r, http.MethodGet, "/invitations", "")
	etag := w.Header().Get("ETag")
	var got ListInvitationsResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || etag == "" || got.Total != 2 || got.Voted != 1 {
		t.Fatalf("first list: %d etag=%q %+v", w.Code, etag, got)
	}

	w = do(r, http.MethodGet, "/invitations", "", "If-None-Match", etag)
	if w.Code != http.StatusNotModified || f.inv.listHits != 1 {
		t.Fatalf("conditional GET: %d hits=%d", w.Code, f.inv.listHits)
	}

	// A new vote on the calendar changes the tag.
	a, err := repo.IncrementAnswer(ctx, db, "u-1", 1, "golden retriever")
	if err != nil {
		t.Fatalf("IncrementAnswer: %v", err)
	}
	if err := repo.CreateVote(ctx, db, "u-1", "friend", 1, a.ID); err != nil {
		t.Fatalf("CreateVote: %v", err)
	}
	w = do(r, http.MethodGet, "/invitations", "", "If-None-Match", etag)
	if w.Code != http.StatusOK || w.Header().Get("ETag") == etag {
		t.Fatalf("etag should change after a vote: %d %q", w.Code, w.Header().Get("ETag"))
	}
}

func TestListInvitations_NoDBNoETag(t *testing.T) {
	f := newFixture()
	w := do(f.router(nil), http.MethodGet, "/invitations", "")
	var got ListInvitationsResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || w.Header().Get("ETag") != "" || got.Invitations == nil {
		t.Fatalf("unexpected: %d etag=%q %+v", w.Code, w.Header().Get("ETag"), got)
	}
}

func TestListReceivedInvitations(t *testing.T) {
	f := newFixture()
	f.inv.received = []services.ReceivedInvitation{{ID: "i1", SenderName: "Ana", CalendarCode: "ABCD2345"}}
	w := do(f.router(nil), http.MethodGet, "/invitations/received", "")
	var got ReceivedInvitationsResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || len(got.Invitations) != 1 || f.inv.gotEmail != "me@example.com" {
		t.Fatalf("unexpected: %d %+v email=%q", w.Code, got, f.inv.gotEmail)
	}
}

func TestDeleteInvitation(t *testing.T) {
	f := newFixture()
	r := f.router(nil)
	if w := do(r, http.MethodDelete, "/invitations/inv-9", ""); w.Code != http.StatusNoContent || f.inv.gotID != "inv-9" {
		t.Fatalf("delete: %d id=%q", w.Code, f.inv.gotID)
	}

	f.inv.err = services.ErrNotInviteOwner
	if w := do(r, http.MethodDelete, "/invitations/inv-9", ""); w.Code != http.StatusForbidden {
		t.Fatalf("foreign invitation: %d", w.Code)
	}
	f.inv.err = services.ErrInvitationNotFound
	if w := do(r, http.MethodDelete, "/invitations/inv-9", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing invitation: %d", w.Code)
	}
}

// ---------- votes ----------

func TestSubmitVotes(t *testing.T) {
	f := newFixture()
	f.votes.res = &services.SubmitResult{
		Submitted: 1,
		Accepted:  []services.AcceptedAnswer{{CategoryID: 1, AnswerID: "a1", Answer: "Golden Retriever", VoteCount: 2}},
		Errors:    []services.CategoryError{{CategoryID: 2, Code: ErrCodeAlreadyVoted, Message: "you have already voted for this category"}},
	}
	r := f.router(nil)

	w := do(r, http.MethodPost, "/votes", `{"calendar_owner_id":" owner ","answers":{"1":"golden retriever","2":"x"},"invite_token":"tok"}`)
	var got SubmitVotesResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || got.Submitted != 1 || len(got.Accepted) != 1 || len(got.Errors) != 1 {
		t.Fatalf("unexpected: %d %+v", w.Code, got)
	}
	if f.votes.gotOwner != "owner" || f.votes.gotToken != "tok" || f.votes.gotBatch[1] != "golden retriever" || f.votes.gotVoter.ID != "u-1" {
		t.Fatalf("unexpected call: %+v", f.votes)
	}

	for _, body := range []string{`{"answers":{"1":"x"}}`, `{"calendar_owner_id":"o","answers":{"pets":"x"}}`, `{"calendar_owner_id":"o","answers":{"0":"x"}}`} {
		if w = do(r, http.MethodPost, "/votes", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestSubmitVotes_Failures(t *testing.T) {
	f := newFixture()
	r := f.router(nil)

	f.votes.err = services.ErrSelfVote
	if w := do(r, http.MethodPost, "/votes", `{"calendar_owner_id":"u-1","answers":{"1":"x"}}`); w.Code != http.StatusForbidden {
		t.Fatalf("self vote: %d", w.Code)
	}

	f.votes.err = services.ErrAlreadyVoted
	f.votes.res = &services.SubmitResult{Errors: []services.CategoryError{{CategoryID: 1, Code: ErrCodeAlreadyVoted}}}
	w := do(r, http.MethodPost, "/votes", `{"calendar_owner_id":"owner","answers":{"1":"x"}}`)
	var got SubmitVotesError
	decodeBody(t, w, &got)
	if w.Code != http.StatusConflict || got.Code != ErrCodeAlreadyVoted || len(got.Errors) != 1 || got.RequestID == "" {
		t.Fatalf("all duplicates: %d %+v", w.Code, got)
	}
}

func TestSubmitVotes_IdempotentReplay(t *testing.T) {
	db := newHandlerDB(t)
	f := newFixture()
	f.deps.DB = db
	f.deps.IdempotencyTTL = time.Hour
	f.votes.res = &services.SubmitResult{Submitted: 1, Accepted: []services.AcceptedAnswer{{CategoryID: 1, AnswerID: "a1", VoteCount: 1}}}

	lookup := func(ctx context.Context, uid, scope, key string, now time.Time) (*middleware.StoredResponse, error) {
		rec, err := repo.GetIdempotency(ctx, db, uid, scope, key, now)
		if err != nil {
			return nil, nil
		}
		return &middleware.StoredResponse{Status: rec.Status, Body: []byte(rec.Body)}, nil
	}
	r := f.router(lookup)
	body := `{"calendar_owner_id":"owner","answers":{"1":"x"}}`

	first := do(r, http.MethodPost, "/votes", body, middleware.HeaderIdempotencyKey, "k-1")
	if first.Code != http.StatusOK {
		t.Fatalf("first: %d", first.Code)
	}

	// The retry would conflict if it reached the service.
	f.votes.res, f.votes.err = nil, services.ErrAlreadyVoted
	retry := do(r, http.MethodPost, "/votes", body, middleware.HeaderIdempotencyKey, "k-1")
	if retry.Code != http.StatusOK || retry.Body.String() != first.Body.String() {
		t.Fatalf("replay mismatch: %d %s vs %s", retry.Code, retry.Body.String(), first.Body.String())
	}
	if retry.Header().Get(middleware.HeaderIdempotentReplay) != "true" || f.votes.calls != 1 {
		t.Fatalf("retry should be served from storage: calls=%d", f.votes.calls)
	}

	// A different key reaches the service.
	if w := do(r, http.MethodPost, "/votes", body, middleware.HeaderIdempotencyKey, "k-2"); w.Code != http.StatusConflict || f.votes.calls != 2 {
		t.Fatalf("new key: %d calls=%d", w.Code, f.votes.calls)
	}
}

// ---------- reveals ----------

func TestRevealDay(t *testing.T) {
	f := newFixture()
	f.rev.res = &services.RevealResult{Day: 3, Type: services.RevealAnswers, TotalVotes: 2, FirstReveal: true}
	r := f.router(nil)

	w := do(r, http.MethodPost, "/reveals/3", "")
	var got services.RevealResult
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || got.Day != 3 || f.rev.gotDay != 3 || f.rev.gotTest {
		t.Fatalf("reveal: %d %+v test=%v", w.Code, got, f.rev.gotTest)
	}

	if w = do(r, http.MethodPost, "/reveals/3", `{"test_mode":true}`); w.Code != http.StatusOK || !f.rev.gotTest {
		t.Fatalf("test mode flag not passed: %d", w.Code)
	}

	for _, p := range []string{"/reveals/0", "/reveals/10", "/reveals/x"} {
		if w = do(r, http.MethodPost, p, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", p, w.Code)
		}
	}
	if w = do(r, http.MethodPost, "/reveals/3", `{"test_mode":`); w.Code != http.StatusBadRequest {
		t.Fatalf("broken body: %d", w.Code)
	}

	f.rev.err = services.ErrDayLocked
	w = do(r, http.MethodPost, "/reveals/9", "")
	var er ErrorResponse
	decodeBody(t, w, &er)
	if w.Code != http.StatusConflict || er.Code != ErrCodeDayLocked {
		t.Fatalf("locked: %d %+v", w.Code, er)
	}
	f.rev.err = services.ErrTestModeDisabled
	if w = do(r, http.MethodPost, "/reveals/9", `{"test_mode":true}`); w.Code != http.StatusForbidden {
		t.Fatalf("test mode disabled: %d", w.Code)
	}
}

func TestResetReveals(t *testing.T) {
	f := newFixture()
	f.rev.reset = 4
	r := f.router(nil)

	w := do(r, http.MethodDelete, "/reveals", "")
	var got ResetRevealsResponse
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || got.Reset != 4 {
		t.Fatalf("reset: %d %+v", w.Code, got)
	}
	f.rev.err = services.ErrTestModeDisabled
	if w = do(r, http.MethodDelete, "/reveals", ""); w.Code != http.StatusForbidden {
		t.Fatalf("disabled: %d", w.Code)
	}
}

// ---------- profile ----------

func TestMe(t *testing.T) {
	f := newFixture()
	f.users.user = &domain.User{ID: "u-1", Email: "ana.b@example.com"}
	r := f.router(nil)

	w := do(r, http.MethodGet, "/me", "")
	var got map[string]any
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || got["id"] != "u-1" || got["display_name"] != "ana.b" {
		t.Fatalf("profile: %d %v", w.Code, got)
	}

	w = do(r, http.MethodPut, "/me", `{"name":"Ana"}`)
	decodeBody(t, w, &got)
	if w.Code != http.StatusOK || got["display_name"] != "Ana" || f.users.gotName != "Ana" {
		t.Fatalf("rename: %d %v", w.Code, got)
	}

	if w = do(r, http.MethodPut, "/me", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing name: %d", w.Code)
	}
	f.users.err = services.ErrInvalidName
	if w = do(r, http.MethodPut, "/me", `{"name":"`+strings.Repeat("x", 101)+`"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("long name: %d", w.Code)
	}
}
