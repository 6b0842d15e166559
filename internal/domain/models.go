// Package domain defines the persistence models for calendars, invitations,
// votes and reveals. These types are mapped with GORM and form the core data
// layer of the gift calendar application.
package domain

import "time"

// Invitation statuses. Transitions are pending -> accepted (signup) and
// pending|accepted -> voted.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationVoted    = "voted"
)

// PersonalNoteCode is the category code whose answers are revealed as notes
// instead of ranked answers.
const PersonalNoteCode = "personal_note"

// User is the local record of an identity-provider principal. The calendar
// code is assigned once and never changes afterwards.
//
// Fields:
//   - ID: subject issued by the identity provider.
//   - CalendarCode: 8 characters from [A-Z0-9]; NULL until generated.
//   - VotingEnabled / VotingDeadline: per-owner overrides of the voting window.
type User struct {
	ID             string     `json:"id"              gorm:"type:varchar(64);primaryKey"`
	Email          string     `json:"email"           gorm:"type:varchar(320);not null;index"`
	Name           *string    `json:"name,omitempty"  gorm:"type:varchar(255)"`
	CalendarCode   *string    `json:"calendar_code,omitempty" gorm:"type:varchar(8);uniqueIndex:ux_users_calendar_code"`
	VotingEnabled  bool       `json:"voting_enabled"  gorm:"not null;default:true"`
	VotingDeadline *time.Time `json:"voting_deadline,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Category is one of the nine fixed prompts. Its ID doubles as the calendar
// day on which it unlocks.
type Category struct {
	ID           int    `json:"id"            gorm:"primaryKey;autoIncrement:false"`
	Name         string `json:"name"          gorm:"type:varchar(64);not null"`
	Code         string `json:"code"          gorm:"type:varchar(32);not null;uniqueIndex"`
	Description  string `json:"description"   gorm:"type:text;not null;default:''"`
	Prompt       string `json:"prompt"        gorm:"type:text;not null;default:''"`
	DisplayOrder int    `json:"display_order" gorm:"not null;default:0"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// IsNotes reports whether the category is revealed as a list of notes.
func (c Category) IsNotes() bool { return c.Code == PersonalNoteCode }

// Invitation records that a calendar owner invited an email address.
// The (sender_id, email) pair is unique; email is stored lower-cased.
type Invitation struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	SenderID    string    `json:"sender_id"   gorm:"type:varchar(64);not null;uniqueIndex:ux_invitations_sender_email,priority:1"`
	Email       string    `json:"email"       gorm:"type:varchar(320);not null;index;uniqueIndex:ux_invitations_sender_email,priority:2"`
	InviteToken string    `json:"-"           gorm:"type:char(36);not null;uniqueIndex"`
	Status      string    `json:"status"      gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','accepted','voted')"`
	AcceptedBy  *string   `json:"accepted_by,omitempty" gorm:"type:varchar(64);index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Invitation.
func (Invitation) TableName() string { return "invitations" }

// CategoryAnswer is one distinct normalized answer for a (calendar, category)
// pair together with the number of votes it received.
type CategoryAnswer struct {
	ID              string    `json:"id"                gorm:"type:char(36);primaryKey"`
	CalendarOwnerID string    `json:"calendar_owner_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_category_answers_text,priority:1"`
	CategoryID      int       `json:"category_id"       gorm:"not null;uniqueIndex:ux_category_answers_text,priority:2"`
	Answer          string    `json:"answer"            gorm:"type:varchar(500);not null;uniqueIndex:ux_category_answers_text,priority:3"`
	VoteCount       int       `json:"vote_count"        gorm:"not null;default:1"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for CategoryAnswer.
func (CategoryAnswer) TableName() string { return "category_answers" }

// Vote links a voter to the answer they contributed. At most one vote exists
// per (calendar owner, voter, category).
type Vote struct {
	ID              string    `json:"id"                gorm:"type:char(36);primaryKey"`
	CalendarOwnerID string    `json:"calendar_owner_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_votes_owner_voter_category,priority:1"`
	VoterID         string    `json:"voter_id"          gorm:"type:varchar(64);not null;index;uniqueIndex:ux_votes_owner_voter_category,priority:2"`
	CategoryID      int       `json:"category_id"       gorm:"not null;uniqueIndex:ux_votes_owner_voter_category,priority:3"`
	AnswerID        string    `json:"answer_id"         gorm:"type:char(36);not null;index"`
	CreatedAt       time.Time `json:"created_at"`

	// Answer is cascade-deleted with its votes.
	Answer CategoryAnswer `json:"-" gorm:"foreignKey:AnswerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Vote.
func (Vote) TableName() string { return "votes" }

// Reveal marks a category as opened by the calendar owner.
type Reveal struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string    `json:"user_id"     gorm:"type:varchar(64);not null;uniqueIndex:ux_reveals_user_category,priority:1"`
	CategoryID int       `json:"category_id" gorm:"not null;uniqueIndex:ux_reveals_user_category,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Reveal.
func (Reveal) TableName() string { return "reveals" }
