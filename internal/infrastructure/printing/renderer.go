package printing

import (
	"context"
	"time"
)

// Statements are always printed on A4, sized in millimeters.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

// Margins are page margins in millimeters
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leaves room for the page-number footer
func DefaultMargins() Margins {
	return Margins{Top: 15, Right: 12, Bottom: 15, Left: 12}
}

// RenderRequest is one HTML document to print
type RenderRequest struct {
	HTML      string
	Title     string // PDF document title, escaped into <title>
	Landscape bool
	Margins   Margins
	// FooterHTML is a Chrome footer template; it may use the pageNumber and
	// totalPages classes.
	FooterHTML string
	Timeout    time.Duration // zero uses the renderer default
}

// RenderResult is a printed document
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer prints HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// Failure codes carried by RenderError
const (
	ErrCodeRenderTimeout  = "RENDER_TIMEOUT"
	ErrCodeRenderFailed   = "RENDER_FAILED"
	ErrCodeInvalidHTML    = "INVALID_HTML"
	ErrCodeTemplateFailed = "TEMPLATE_FAILED"
)

// RenderError reports why a statement could not be printed
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

// NewRenderError creates a RenderError; cause may be nil
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }
