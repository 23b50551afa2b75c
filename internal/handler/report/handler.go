package report

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-report-api/internal/dataset"
	"github.com/jwalitptl/therapy-report-api/internal/handler"
	"github.com/jwalitptl/therapy-report-api/internal/model"
	"github.com/jwalitptl/therapy-report-api/internal/report"
	apperrors "github.com/jwalitptl/therapy-report-api/pkg/errors"
	"github.com/jwalitptl/therapy-report-api/pkg/httputil"
)

// DatasetLoader supplies the record set reports are computed over.
type DatasetLoader interface {
	Load() ([]model.SessionRecord, error)
}

type Handler struct {
	loader DatasetLoader
}

func NewHandler(loader DatasetLoader) *Handler {
	return &Handler{loader: loader}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	reports.GET("/overview", h.GetOverview)
	reports.GET("/therapists", h.GetTherapistSummaries)
	reports.GET("/status", h.GetStatusDistribution)
	reports.GET("/revenue", h.GetRevenueOverTime)
	reports.GET("/crosstab", h.GetCrossTab)
}

// filtered loads the dataset and applies the request's filter params.
// On failure it has already written the error response.
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

func (h *Handler) GetOverview(c *gin.Context) {
	records, ok := h.filtered(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, report.Overview(records))
}

func (h *Handler) GetTherapistSummaries(c *gin.Context) {
	records, ok := h.filtered(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, report.TherapistSummaries(records))
}

func (h *Handler) GetStatusDistribution(c *gin.Context) {
	records, ok := h.filtered(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, report.StatusDistribution(records))
}

func (h *Handler) GetRevenueOverTime(c *gin.Context) {
	bucket, err := model.ParseBucket(c.Query("bucket"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	records, ok := h.filtered(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, report.RevenueOverTime(records, bucket))
}

func (h *Handler) GetCrossTab(c *gin.Context) {
	records, ok := h.filtered(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, report.CrossTab(records))
}
