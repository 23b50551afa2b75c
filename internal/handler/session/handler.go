package session

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-report-api/internal/dataset"
	"github.com/jwalitptl/therapy-report-api/internal/export"
	"github.com/jwalitptl/therapy-report-api/internal/handler"
	"github.com/jwalitptl/therapy-report-api/internal/model"
	"github.com/jwalitptl/therapy-report-api/internal/report"
	apperrors "github.com/jwalitptl/therapy-report-api/pkg/errors"
	"github.com/jwalitptl/therapy-report-api/pkg/httputil"
	"github.com/jwalitptl/therapy-report-api/pkg/logger"
	"github.com/jwalitptl/therapy-report-api/pkg/metrics"
)

type DatasetLoader interface {
	Load() ([]model.SessionRecord, error)
}

type Handler struct {
	loader      DatasetLoader
	metrics     *metrics.Metrics
	logger      *logger.Logger
	newExporter func(format string) (export.Exporter, error)
}

func NewHandler(loader DatasetLoader, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		loader:      loader,
		metrics:     m,
		logger:      log,
		newExporter: export.NewExporter,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	sessions.GET("", h.ListSessions)
	sessions.GET("/export", h.ExportSessions)
}

func (h *Handler) filtered(c *gin.Context) ([]model.SessionRecord, bool) {
	filter, err := handler.ParseFilter(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return nil, false
	}

	records, err := h.loader.Load()
	if err != nil {
		if errors.Is(err, dataset.ErrNoData) {
			httputil.RespondWithError(c, apperrors.NewNoData(err))
		} else {
			httputil.RespondWithError(c, apperrors.Internal(err))
		}
		return nil, false
	}

	return report.Filter(records, filter), true
}

func (h *Handler) ListSessions(c *gin.Context) {
	records, ok := h.filtered(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, records)
}

// ExportSessions serves the filtered record set in the requested
// format (csv, xlsx or pdf) as a file download. The document is
// rendered into a buffer first; datasets are bounded, and it keeps a
// render failure from leaking a truncated download with attachment
// headers already set.
func (h *Handler) ExportSessions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	exporter, err := h.newExporter(format)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	records, ok := h.filtered(c)
	if !ok {
		return
	}

	rep := export.Report{
		Records:    records,
		Overview:   report.Overview(records),
		Therapists: report.TherapistSummaries(records),
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := exporter.Export(&buf, rep); err != nil {
		h.metrics.ExportsTotal.WithLabelValues(format, "error").Inc()
		h.logger.Error(err, "session export failed", "format", format)
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	h.metrics.ExportsTotal.WithLabelValues(format, "success").Inc()
	h.metrics.ExportLatency.WithLabelValues(format).Observe(time.Since(start).Seconds())

	filename := fmt.Sprintf("therapy_sessions_%s.%s", time.Now().Format("20060102"), exporter.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, exporter.ContentType(), buf.Bytes())
}
