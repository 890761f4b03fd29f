package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
)

// EmailRepository persists routing envelopes and the per-recipient
// read/bookmark projection.
type EmailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates the email repository.
func NewEmailRepository(db *gorm.DB) *EmailRepository {
	return &EmailRepository{db: db}
}

// FindByID loads an email with its parties and status rows.
func (r *EmailRepository) FindByID(ctx context.Context, id string) (*entity.Email, error) {
	var email entity.Email
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Preload("SuratJalan").
		Preload("Statuses").
		Where("id = ?", id).
		First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &email, nil
}

// FindLatestBySurat returns the most recent hop of a document.
func (r *EmailRepository) FindLatestBySurat(ctx context.Context, suratJalanID string) (*entity.Email, error) {
	var email entity.Email
	err := r.db.WithContext(ctx).
		Preload("Statuses").
		Where("surat_jalan_id = ?", suratJalanID).
		Order("created_at DESC").
		First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &email, nil
}

// ListInbox returns the emails a user's status rows make visible, newest
// first. The status row is the source of truth, not the email's current
// recipient: direction flips on approve/reject, and bongkaran publish
// pre-seeds a watcher row for the gardu induk who is not the addressee.
func (r *EmailRepository) ListInbox(ctx context.Context, userID string) ([]entity.Email, error) {
	var emails []entity.Email
	err := r.db.WithContext(ctx).
		Joins("JOIN email_statuses es ON es.email_id = emails.id").
		Where("es.user_id = ? AND es.is_deleted = false", userID).
		Preload("Sender").
		Preload("SuratJalan").
		Preload("Statuses", "user_id = ?", userID).
		Order("emails.created_at DESC").
		Find(&emails).Error
	return emails, err
}

// ListSent returns the emails a user has sent, newest first.
func (r *EmailRepository) ListSent(ctx context.Context, userID string) ([]entity.Email, error) {
	var emails []entity.Email
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", userID).
		Preload("Recipient").
		Preload("SuratJalan").
		Order("created_at DESC").
		Find(&emails).Error
	return emails, err
}

// UnreadCount counts the unread, visible status rows of a user,
// watcher rows included.
func (r *EmailRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.EmailStatus{}).
		Where("user_id = ? AND is_read = false AND is_deleted = false", userID).
		Count(&count).Error
	return count, err
}

// FindStatus returns the unique status row for an (email, user) pair.
func (r *EmailRepository) FindStatus(ctx context.Context, emailID, userID string) (*entity.EmailStatus, error) {
	var status entity.EmailStatus
	err := r.db.WithContext(ctx).
		Where("email_id = ? AND user_id = ?", emailID, userID).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &status, nil
}

// CreateStatus inserts a status row. A second row for the same
// (email, user) pair violates the composite key and comes back as
// ErrDuplicate.
func (r *EmailRepository) CreateStatus(ctx context.Context, status *entity.EmailStatus) error {
	err := r.db.WithContext(ctx).Create(status).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// MarkRead sets is_read on the caller's status row. The write is issued
// unconditionally, which makes the operation idempotent at the data
// level.
func (r *EmailRepository) MarkRead(ctx context.Context, emailID, userID string) error {
	status, err := r.FindStatus(ctx, emailID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.EmailStatus{}).
		Where("id = ?", status.ID).
		Updates(map[string]interface{}{
			"is_read":    true,
			"read_at":    now,
			"updated_at": now,
		}).Error
}

// ToggleBookmark flips the bookmark flag and stamps or clears
// bookmarked_at accordingly.
func (r *EmailRepository) ToggleBookmark(ctx context.Context, emailID, userID string) (*entity.EmailStatus, error) {
	status, err := r.FindStatus(ctx, emailID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status.IsBookmarked = !status.IsBookmarked
	if status.IsBookmarked {
		status.BookmarkedAt = &now
	} else {
		status.BookmarkedAt = nil
	}
	status.UpdatedAt = now

	if err := r.db.WithContext(ctx).Save(status).Error; err != nil {
		return nil, err
	}
	return status, nil
}

// SoftDelete hides an email from one user's lists without touching the
// email or any other recipient's row.
func (r *EmailRepository) SoftDelete(ctx context.Context, emailID, userID string) error {
	status, err := r.FindStatus(ctx, emailID, userID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&entity.EmailStatus{}).
		Where("id = ?", status.ID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		}).Error
}

// HardDelete removes an email and every status row referencing it, for
// all recipients.
func (r *EmailRepository) HardDelete(ctx context.Context, emailID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var email entity.Email
		if err := tx.Where("id = ?", emailID).First(&email).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("email_id = ?", emailID).Delete(&entity.EmailStatus{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Email{}, "id = ?", emailID).Error
	})
}
