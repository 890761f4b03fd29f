package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mzarifin59/letter-pln-sub001/internal/service"
)

// DocumentHandler serves the document lifecycle endpoints.
type DocumentHandler struct {
	svc    *service.DocumentService
	export *service.ExportService
}

// NewDocumentHandler creates the document handler.
func NewDocumentHandler(svc *service.DocumentService, export *service.ExportService) *DocumentHandler {
	return &DocumentHandler{svc: svc, export: export}
}

// List returns a filtered page of documents.
func (h *DocumentHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{}
	if v := c.Query("keyword"); v != "" {
		filters["keyword"] = v
	}
	if v := c.Query("kategori"); v != "" {
		filters["kategori"] = v
	}
	if v := c.Query("status_entry"); v != "" {
		filters["status_entry"] = v
	}
	if v := c.Query("status_surat"); v != "" {
		filters["status_surat"] = v
	}
	if v := c.Query("created_by"); v != "" {
		filters["created_by"] = v
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Get returns one document with its detail and email history.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, doc)
}

// Create stores a new document, optionally publishing it in one call.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doc, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, doc)
}

// Update edits a draft.
func (h *DocumentHandler) Update(c *gin.Context) {
	var req service.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doc, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, doc)
}

// Publish submits a draft or rejected document into an approval round.
func (h *DocumentHandler) Publish(c *gin.Context) {
	doc, err := h.svc.Publish(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, doc)
}

type approveJSONRequest struct {
	SignatureDrawn string `json:"signature_drawn"`
}

// Approve records the caller's approval. The signature for bongkaran
// arrives either as a multipart file field "signature" or as a data URL
// in "signature_drawn" (multipart form value or JSON body).
func (h *DocumentHandler) Approve(c *gin.Context) {
	var input service.ApproveInput

	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		if file, err := c.FormFile("signature"); err == nil {
			src, err := file.Open()
			if err != nil {
				BadRequest(c, "Cannot read signature file")
				return
			}
			defer src.Close()
			input.SignatureFile = src
			input.SignatureFileName = file.Filename
			input.SignatureFileSize = file.Size
			input.SignatureFileType = file.Header.Get("Content-Type")
		}
		input.SignatureDrawn = c.PostForm("signature_drawn")
	} else if c.Request.ContentLength > 0 {
		var req approveJSONRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "Invalid request body")
			return
		}
		input.SignatureDrawn = req.SignatureDrawn
	}

	doc, err := h.svc.Approve(c.Request.Context(), c.Param("id"), GetUserID(c), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, doc)
}

type rejectRequest struct {
	Pesan string `json:"pesan"`
}

// Reject bounces the document back with a mandatory message.
func (h *DocumentHandler) Reject(c *gin.Context) {
	var req rejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "Invalid request body")
			return
		}
	}

	doc, err := h.svc.Reject(c.Request.Context(), c.Param("id"), GetUserID(c), req.Pesan)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, doc)
}

// Delete removes a document and everything hanging off it.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), GetUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Export streams the published register as an xlsx workbook.
func (h *DocumentHandler) Export(c *gin.Context) {
	filters := map[string]interface{}{}
	if v := c.Query("kategori"); v != "" {
		filters["kategori"] = v
	}
	if v := c.Query("status_surat"); v != "" {
		filters["status_surat"] = v
	}

	f, err := h.export.Register(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("register-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
