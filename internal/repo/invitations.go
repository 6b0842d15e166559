// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Invitation model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/gift-calendar/internal/domain"
)

// ReceivedRow is an invitation addressed to a user joined with its sender.
type ReceivedRow struct {
	ID           string
	SenderID     string
	Status       string
	InviteToken  string
	CreatedAt    time.Time
	SenderName   *string
	SenderEmail  string
	CalendarCode string
}

// InvitedEmails returns the lower-cased emails senderID has already invited.
func InvitedEmails(ctx context.Context, db *gorm.DB, senderID string) (map[string]bool, error) {
	var emails []string
	if err := db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("sender_id = ?", senderID).
		Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(emails))
	for _, e := range emails {
		out[e] = true
	}
	return out, nil
}

// CreateInvitation inserts inv unless it collides with an existing
// (sender_id, email) row, in which case it reports false.
func CreateInvitation(ctx context.Context, db *gorm.DB, inv *domain.Invitation) (bool, error) {
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = inv.CreatedAt
	if inv.Status == "" {
		inv.Status = domain.InvitationPending
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(inv)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListInvitations returns senderID's invitations, newest first.
func ListInvitations(ctx context.Context, db *gorm.DB, senderID string) ([]domain.Invitation, error) {
	var out []domain.Invitation
	err := db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// GetInvitation fetches an invitation by id regardless of sender, or ErrNotFound.
func GetInvitation(ctx context.Context, db *gorm.DB, id string) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvitation removes the invitation only if senderID owns it.
// Returns ErrNotFound when no such row exists for that sender.
func DeleteInvitation(ctx context.Context, db *gorm.DB, id, senderID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND sender_id = ?", id, senderID).
		Delete(&domain.Invitation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkVotedByToken flips senderID's invitation holding token to voted.
func MarkVotedByToken(ctx context.Context, db *gorm.DB, senderID, token, voterID string) (int64, error) {
	res := db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("sender_id = ? AND invite_token = ?", senderID, token).
		Updates(votedUpdate(voterID))
	return res.RowsAffected, res.Error
}

// MarkVotedByEmail flips senderID's invitation for email to voted.
func MarkVotedByEmail(ctx context.Context, db *gorm.DB, senderID, email, voterID string) (int64, error) {
	res := db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("sender_id = ? AND email = ?", senderID, email).
		Updates(votedUpdate(voterID))
	return res.RowsAffected, res.Error
}

func votedUpdate(voterID string) map[string]any {
	return map[string]any{
		"status":      domain.InvitationVoted,
		"accepted_by": voterID,
		"updated_at":  time.Now().UTC(),
	}
}

// AcceptPending marks every pending invitation for email as accepted by userID.
func AcceptPending(ctx context.Context, db *gorm.DB, email, userID string) (int64, error) {
	res := db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("email = ? AND status = ?", email, domain.InvitationPending).
		Updates(map[string]any{
			"status":      domain.InvitationAccepted,
			"accepted_by": userID,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// HasInvitation reports whether senderID invited email.
func HasInvitation(ctx context.Context, db *gorm.DB, senderID, email string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("sender_id = ? AND email = ?", senderID, email).
		Count(&n).Error
	return n > 0, err
}

// InvitationCounts returns how many invitations senderID sent and how many
// of them reached the voted state.
func InvitationCounts(ctx context.Context, db *gorm.DB, senderID string) (total, voted int64, err error) {
	q := db.WithContext(ctx).Model(&domain.Invitation{}).Where("sender_id = ?", senderID)
	if err = q.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("sender_id = ? AND status = ?", senderID, domain.InvitationVoted).
		Count(&voted).Error
	return total, voted, err
}

// ListReceived returns invitations addressed to email whose sender has a
// calendar, newest first.
func ListReceived(ctx context.Context, db *gorm.DB, email string) ([]ReceivedRow, error) {
	var out []ReceivedRow
	err := db.WithContext(ctx).Table("invitations").
		Select(`invitations.id, invitations.sender_id, invitations.status, invitations.invite_token,
			invitations.created_at, users.name AS sender_name, users.email AS sender_email,
			users.calendar_code AS calendar_code`).
		Joins("JOIN users ON users.id = invitations.sender_id").
		Where("invitations.email = ? AND users.calendar_code IS NOT NULL", email).
		Order("invitations.created_at DESC, invitations.id DESC").
		Scan(&out).Error
	return out, err
}
