package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Mzarifin59/letter-pln-sub001/internal/repository"
)

// UserHandler serves the admin-facing user directory.
type UserHandler struct {
	repo *repository.UserRepository
}

// NewUserHandler creates the user handler.
func NewUserHandler(repo *repository.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// List returns users, optionally filtered by role.
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	users, total, err := h.repo.List(c.Request.Context(), page, pageSize, c.Query("role"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{
		"items":     users,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get returns one user.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, user)
}
