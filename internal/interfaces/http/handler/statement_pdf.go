package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PDFRenderer renders one stored statement as a PDF document
type PDFRenderer interface {
	PDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// StatementPDFHandler serves GET /api/<statements>/:id/pdf
type StatementPDFHandler struct {
	BaseHandler
	kind     string
	renderer PDFRenderer
}

// NewStatementPDFHandler creates a handler. kind names the download,
// e.g. "income-statement".
func NewStatementPDFHandler(kind string, renderer PDFRenderer) *StatementPDFHandler {
	return &StatementPDFHandler{kind: kind, renderer: renderer}
}

// Download renders the statement and sends it as an attachment
func (h *StatementPDFHandler) Download(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	pdf, err := h.renderer.PDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.pdf"`, h.kind, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
