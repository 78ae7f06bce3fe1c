package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
	"github.com/rahmatrdn/go-query-advisor/internal/usecase"
)

type ReportHandler struct {
	advisorUsecase usecase.AdvisorUsecase
	reportUsecase  usecase.ReportUsecase
}

func NewReportHandler(advisorUsecase usecase.AdvisorUsecase, reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{
		advisorUsecase: advisorUsecase,
		reportUsecase:  reportUsecase,
	}
}

func (h *ReportHandler) Register(app *fiber.App) {
	group := app.Group("/analyses")
	group.Post("/", h.CreateAnalysis)
	group.Post("/query-log", h.AnalyzeQueryLog)
	group.Get("/", h.ListRuns)
	group.Get("/:id", h.GetReport)

	app.Get("/predictions", h.Predict)
	app.Get("/records", h.RecentRecords)
}

type analyzeRequest struct {
	Source  string                `json:"source" validate:"max=64"`
	Records []*entity.QueryRecord `json:"records"`
}

// CreateAnalysis godoc
// @Summary   Analyze submitted query records
// @Tags      analyses
// @Accept    json
// @Produce   json
// @Param     request  body      analyzeRequest  true  "records to analyze"
// @Success   201      {object}  entity.AnalysisReport
// @Failure   400      {object}  ErrorResponse
// @Failure   401      {object}  ErrorResponse
// @Failure   500      {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /analyses [post]
func (h *ReportHandler) CreateAnalysis(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := helper.ValidateInput(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.advisorUsecase.Analyze(c.Context(), req.Source, req.Records)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// AnalyzeQueryLog godoc
// @Summary   Analyze the configured query log source
// @Tags      analyses
// @Produce   json
// @Param     lookback  query     string  false  "window to read, e.g. 15m"
// @Success   201       {object}  entity.AnalysisReport
// @Failure   400       {object}  ErrorResponse
// @Failure   401       {object}  ErrorResponse
// @Failure   502       {object}  ErrorResponse
// @Failure   503       {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /analyses/query-log [post]
func (h *ReportHandler) AnalyzeQueryLog(c *fiber.Ctx) error {
	lookback := querylog.DefaultLookback
	if raw := c.Query("lookback"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 || d > querylog.MaxLookback {
			return errorJSON(c, fiber.StatusBadRequest, "lookback must be a positive duration up to "+querylog.MaxLookback.String())
		}
		lookback = d
	}

	report, err := h.advisorUsecase.AnalyzeQueryLog(c.Context(), lookback)
	if err != nil {
		if errwrap.Is(err, usecase.ErrQueryLogDisabled) {
			return errorJSON(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return errorJSON(c, fiber.StatusBadGateway, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReport godoc
// @Summary  Get a stored analysis report
// @Tags     analyses
// @Produce  json
// @Param    id   path      string  true  "run id"
// @Success  200  {object}  entity.AnalysisReport
// @Failure  404  {object}  ErrorResponse
// @Failure  500  {object}  ErrorResponse
// @Router   /analyses/{id} [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.reportUsecase.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		if errwrap.Is(err, usecase.ErrRunNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(report)
}

// ListRuns godoc
// @Summary  List recent analysis runs
// @Tags     analyses
// @Produce  json
// @Param    limit  query     int  false  "maximum runs"
// @Success  200    {object}  map[string][]entity.AnalysisRun
// @Failure  500    {object}  ErrorResponse
// @Router   /analyses [get]
func (h *ReportHandler) ListRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", usecase.DefaultRunLimit)

	runs, err := h.reportUsecase.ListRuns(c.Context(), limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"data": runs,
	})
}

// Predict godoc
// @Summary  Predict execution time for a statement type
// @Tags     predictions
// @Produce  json
// @Param    type  query     string  true   "statement type, e.g. SELECT"
// @Param    rows  query     int     false  "expected rows"
// @Success  200   {object}  entity.PerformancePrediction
// @Failure  400   {object}  ErrorResponse
// @Failure  500   {object}  ErrorResponse
// @Router   /predictions [get]
func (h *ReportHandler) Predict(c *fiber.Ctx) error {
	statementType := c.Query("type")
	if statementType == "" {
		return errorJSON(c, fiber.StatusBadRequest, "type is required")
	}

	var rows int64
	if raw := c.Query("rows"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return errorJSON(c, fiber.StatusBadRequest, "rows must be a non-negative integer")
		}
		rows = n
	}

	prediction, err := h.advisorUsecase.Predict(c.Context(), statementType, rows)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(prediction)
}

// RecentRecords godoc
// @Summary  List recently stored query records
// @Tags     records
// @Produce  json
// @Param    source  query     string  false  "record source"
// @Param    limit   query     int     false  "maximum records"
// @Success  200     {object}  map[string][]entity.QueryRecord
// @Failure  500     {object}  ErrorResponse
// @Router   /records [get]
func (h *ReportHandler) RecentRecords(c *fiber.Ctx) error {
	records, err := h.reportUsecase.RecentRecords(c.Context(), c.Query("source"), c.QueryInt("limit", usecase.DefaultRecordLimit))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"data": records,
	})
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
