package service

import (
	"context"
	"fmt"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
	"github.com/Mzarifin59/letter-pln-sub001/internal/repository"
	"github.com/Mzarifin59/letter-pln-sub001/internal/workflow"
)

// MailboxService is the read/interaction side of the email projection:
// inbox and sent views, read/bookmark flags and the two delete flavours.
type MailboxService struct {
	emailRepo *repository.EmailRepository
}

// NewMailboxService creates the mailbox service.
func NewMailboxService(emailRepo *repository.EmailRepository) *MailboxService {
	return &MailboxService{emailRepo: emailRepo}
}

// Inbox lists the caller's visible received emails.
func (s *MailboxService) Inbox(ctx context.Context, userID string) ([]entity.Email, error) {
	emails, err := s.emailRepo.ListInbox(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	for i := range emails {
		if emails[i].SuratJalan != nil {
			emails[i].SuratJalan.Decorate()
		}
	}
	return emails, nil
}

// Sent lists the caller's sent emails.
func (s *MailboxService) Sent(ctx context.Context, userID string) ([]entity.Email, error) {
	emails, err := s.emailRepo.ListSent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sent: %w", err)
	}
	for i := range emails {
		if emails[i].SuratJalan != nil {
			emails[i].SuratJalan.Decorate()
		}
	}
	return emails, nil
}

// UnreadCount counts the caller's unread emails.
func (s *MailboxService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.emailRepo.UnreadCount(ctx, userID)
}

// MarkRead flags the caller's copy of an email as read.
func (s *MailboxService) MarkRead(ctx context.Context, emailID, userID string) error {
	return s.emailRepo.MarkRead(ctx, emailID, userID)
}

// ToggleBookmark flips the caller's bookmark on an email.
func (s *MailboxService) ToggleBookmark(ctx context.Context, emailID, userID string) (*entity.EmailStatus, error) {
	return s.emailRepo.ToggleBookmark(ctx, emailID, userID)
}

// Dismiss soft-deletes the caller's copy of an email; other recipients
// keep theirs.
func (s *MailboxService) Dismiss(ctx context.Context, emailID, userID string) error {
	return s.emailRepo.SoftDelete(ctx, emailID, userID)
}

// Remove hard-deletes an email and every recipient's status row. Admin
// only.
func (s *MailboxService) Remove(ctx context.Context, emailID, actorRole string) error {
	if actorRole != entity.RoleAdmin {
		return fmt.Errorf("%w: role %s cannot remove emails", workflow.ErrUnauthorized, actorRole)
	}
	return s.emailRepo.HardDelete(ctx, emailID)
}
