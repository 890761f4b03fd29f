package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mzarifin59/letter-pln-sub001/internal/repository"
	"github.com/Mzarifin59/letter-pln-sub001/internal/service"
	"github.com/Mzarifin59/letter-pln-sub001/internal/workflow"
)

// Handlers bundles all HTTP handlers.
type Handlers struct {
	Auth     *AuthHandler
	Document *DocumentHandler
	Mailbox  *MailboxHandler
	User     *UserHandler
}

// NewHandlers creates the handler set.
func NewHandlers(svc *service.Services, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(svc.Auth),
		Document: NewDocumentHandler(svc.Document, svc.Export),
		Mailbox:  NewMailboxHandler(svc.Mailbox),
		User:     NewUserHandler(repos.User),
	}
}

// Response is the common envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope; the HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps service/workflow errors onto the envelope.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, workflow.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, workflow.ErrUnauthorized):
		Forbidden(c, err.Error())
	case errors.Is(err, workflow.ErrState):
		Conflict(c, err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(c, "Invalid credentials")
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID reads the authenticated actor's id off the context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetUserRole reads the authenticated actor's role off the context.
func GetUserRole(c *gin.Context) string {
	return c.GetString("user_role")
}

// GetPagination reads page/page_size query params with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
