package dataset

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/therapy-report-api/internal/config"
	"github.com/jwalitptl/therapy-report-api/internal/dataset"
	"github.com/jwalitptl/therapy-report-api/internal/generator"
	"github.com/jwalitptl/therapy-report-api/internal/model"
	apperrors "github.com/jwalitptl/therapy-report-api/pkg/errors"
	"github.com/jwalitptl/therapy-report-api/pkg/httputil"
	"github.com/jwalitptl/therapy-report-api/pkg/logger"
	"github.com/jwalitptl/therapy-report-api/pkg/metrics"
)

// GenerateRequest is the payload for a dataset generation run. Count
// is the number of candidate draws; the saved dataset may be smaller
// because weekend candidates are discarded. Seed makes the run
// reproducible; leaving it unset gives a fresh dataset every time.
type GenerateRequest struct {
	Count     int    `json:"count" binding:"omitempty,min=1,max=100000"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Seed      *int64 `json:"seed"`
}

type GenerateResponse struct {
	RequestedCount int    `json:"requested_count"`
	GeneratedCount int    `json:"generated_count"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	CSVPath        string `json:"csv_path"`
	JSONPath       string `json:"json_path"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(validateDateOrder, GenerateRequest{})
	}
}

// validateDateOrder rejects start_date after end_date at binding
// time, before the generator ever sees the request.
func validateDateOrder(sl validator.StructLevel) {
	req := sl.Current().Interface().(GenerateRequest)
	if req.StartDate == "" || req.EndDate == "" {
		return
	}
	from, err1 := time.Parse(model.DateFormat, req.StartDate)
	to, err2 := time.Parse(model.DateFormat, req.EndDate)
	if err1 == nil && err2 == nil && from.After(to) {
		sl.ReportError(req.StartDate, "StartDate", "start_date", "ltefield", "end_date")
	}
}

type Handler struct {
	store   *dataset.Store
	cfg     config.DatasetConfig
	genCfg  config.GeneratorConfig
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewHandler(store *dataset.Store, cfg config.DatasetConfig, genCfg config.GeneratorConfig, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, genCfg: genCfg, metrics: m, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	datasets := r.Group("/datasets")
	datasets.POST("/generate", h.GenerateDataset)
}

// GenerateDataset synthesizes a new dataset and persists it as both
// CSV and JSON, replacing the previous one.
func (h *Handler) GenerateDataset(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	count := req.Count
	if count == 0 {
		count = h.genCfg.DefaultCount
	}

	end := model.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	start := model.Date{Time: end.AddDate(0, 0, -h.genCfg.RangeDays)}
	if req.StartDate != "" {
		d, err := model.ParseDate(req.StartDate)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
			return
		}
		start = d
	}
	if req.EndDate != "" {
		d, err := model.ParseDate(req.EndDate)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
			return
		}
		end = d
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	svc := generator.NewService(rng)
	records, err := svc.Generate(generator.GenerateRequest{
		Count:     count,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		if errors.Is(err, generator.ErrInvalidRange) {
			httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		} else {
			httputil.RespondWithError(c, apperrors.Internal(err))
		}
		return
	}

	if err := h.store.SaveCSV(h.cfg.CSVPath, records); err != nil {
		h.logger.Error(err, "failed to save dataset", "path", h.cfg.CSVPath)
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	if err := h.store.SaveJSON(h.cfg.JSONPath, records); err != nil {
		h.logger.Error(err, "failed to save dataset", "path", h.cfg.JSONPath)
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	h.metrics.DatasetGenerations.Inc()
	h.metrics.DatasetSize.Set(float64(len(records)))
	h.logger.Info("dataset generated",
		"requested", count,
		"generated", len(records),
		"start_date", start.String(),
		"end_date", end.String(),
	)

	c.JSON(http.StatusCreated, httputil.Response{
		Success: true,
		Data: GenerateResponse{
			RequestedCount: count,
			GeneratedCount: len(records),
			StartDate:      start.String(),
			EndDate:        end.String(),
			CSVPath:        h.cfg.CSVPath,
			JSONPath:       h.cfg.JSONPath,
		},
	})
}
