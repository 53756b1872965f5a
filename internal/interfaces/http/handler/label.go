package handler

import (
	"context"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/infrastructure/logger"
)

var (
	labelYearPattern  = regexp.MustCompile(`^\d{4}$`)
	labelMonthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
)

// LabelSource opens stored label PDFs by key
type LabelSource interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// LabelHandler serves the label PDFs produced when a route is finalized
type LabelHandler struct {
	BaseHandler
	labels LabelSource
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labels LabelSource) *LabelHandler {
	return &LabelHandler{labels: labels}
}

// ServePDF godoc
// @ID           getLabelPDF
//
//	@Summary		Download a label PDF
//	@Description	Streams the label PDF rendered when a route was finalized.
//	@Tags			labels
//	@Produce		application/pdf
//	@Param			year		path		string	true	"Year, four digits"
//	@Param			month		path		string	true	"Month, two digits"
//	@Param			filename	path		string	true	"<route id>.pdf"
//	@Success		200			{file}		binary
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/labels/{year}/{month}/{filename} [get]
func (h *LabelHandler) ServePDF(c *gin.Context) {
	year, month, filename := c.Param("year"), c.Param("month"), c.Param("filename")
	if !labelYearPattern.MatchString(year) || !labelMonthPattern.MatchString(month) {
		h.BadRequest(c, "Invalid label path")
		return
	}
	routeID, found := strings.CutSuffix(filename, ".pdf")
	if !found {
		h.BadRequest(c, "Invalid label path")
		return
	}
	if _, err := uuid.Parse(routeID); err != nil {
		h.BadRequest(c, "Invalid label path")
		return
	}

	key := path.Join(year, month, filename)
	file, err := h.labels.Get(c.Request.Context(), key)
	if err != nil {
		logger.GetGinLogger(c).Debug("Label not found", zap.String("key", key), zap.Error(err))
		h.NotFound(c, "Label not found")
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		logger.GetGinLogger(c).Warn("Label stream interrupted", zap.String("key", key), zap.Error(err))
	}
}
