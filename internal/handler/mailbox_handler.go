package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Mzarifin59/letter-pln-sub001/internal/service"
)

// MailboxHandler serves the per-user email views and flags.
type MailboxHandler struct {
	svc *service.MailboxService
}

// NewMailboxHandler creates the mailbox handler.
func NewMailboxHandler(svc *service.MailboxService) *MailboxHandler {
	return &MailboxHandler{svc: svc}
}

// Inbox lists the caller's received emails.
func (h *MailboxHandler) Inbox(c *gin.Context) {
	emails, err := h.svc.Inbox(c.Request.Context(), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, emails)
}

// Sent lists the caller's sent emails.
func (h *MailboxHandler) Sent(c *gin.Context) {
	emails, err := h.svc.Sent(c.Request.Context(), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, emails)
}

// UnreadCount returns the caller's unread email count.
func (h *MailboxHandler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context(), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"unread": count})
}

// MarkRead flags the caller's copy of an email as read.
func (h *MailboxHandler) MarkRead(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), GetUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Bookmark flips the caller's bookmark flag on an email.
func (h *MailboxHandler) Bookmark(c *gin.Context) {
	status, err := h.svc.ToggleBookmark(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, status)
}

// Dismiss hides the caller's copy of an email.
func (h *MailboxHandler) Dismiss(c *gin.Context) {
	if err := h.svc.Dismiss(c.Request.Context(), c.Param("id"), GetUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Remove hard-deletes an email for everyone. Admin only.
func (h *MailboxHandler) Remove(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id"), GetUserRole(c)); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
