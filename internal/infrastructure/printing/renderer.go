package printing

import (
	"context"
	"strings"
	"time"
)

// PaperSize names a supported page format.
type PaperSize string

const (
	PaperSizeLabel100x150 PaperSize = "LABEL_100x150"
	PaperSizeLabel100x100 PaperSize = "LABEL_100x100"
	PaperSizeA6           PaperSize = "A6"
	PaperSizeA4           PaperSize = "A4"
)

// sheet is a page size in millimeters
type sheet struct{ w, h int }

var sheets = map[PaperSize]sheet{
	PaperSizeLabel100x150: {100, 150},
	PaperSizeLabel100x100: {100, 100},
	PaperSizeA6:           {105, 148},
	PaperSizeA4:           {210, 297},
}

// ParsePaperSize matches a configured size name ignoring case and padding.
func ParsePaperSize(s string) (PaperSize, bool) {
	s = strings.TrimSpace(s)
	for size := range sheets {
		if strings.EqualFold(s, string(size)) {
			return size, true
		}
	}
	return "", false
}

func (p PaperSize) IsValid() bool {
	_, ok := sheets[p]
	return ok
}

// Dimensions returns width and height in millimeters; zero for unknown sizes.
func (p PaperSize) Dimensions() (width, height int) {
	s := sheets[p]
	return s.w, s.h
}

// IsLabel reports a thermal label roll format
func (p PaperSize) IsLabel() bool {
	return strings.HasPrefix(string(p), "LABEL_")
}

// RenderRequest is one HTML document to print.
type RenderRequest struct {
	HTML      string
	PaperSize PaperSize
	// MarginMM is applied on every side
	MarginMM int
	// Title becomes the document title when HTML is a fragment
	Title string
	// Timeout overrides the renderer default when set
	Timeout time.Duration
}

func (r *RenderRequest) validate() error {
	switch {
	case r == nil:
		return NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	case strings.TrimSpace(r.HTML) == "":
		return NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	case !r.PaperSize.IsValid():
		return NewRenderError(ErrCodeInvalidPaperSize, "unsupported paper size "+string(r.PaperSize), nil)
	}
	return nil
}

// RenderResult is the printed PDF.
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer prints HTML to PDF.
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// Failure codes carried by RenderError.
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeTemplateFailed   = "TEMPLATE_FAILED"
	ErrCodeStorageFailed    = "STORAGE_FAILED"
)

// RenderError is returned by every stage of label production: templating,
// rendering and storage.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

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
