package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/analyzer"
)

// InspectHandler shows how a single query would be grouped and scored,
// without storing anything.
type InspectHandler struct{}

func NewInspectHandler() *InspectHandler {
	return &InspectHandler{}
}

func (h *InspectHandler) Register(app *fiber.App) {
	app.Post("/fingerprints", h.Inspect)
}

type inspectColumn struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	Usage  string `json:"usage"`
	Filter string `json:"filter,omitempty"`
}

type inspectJoin struct {
	Left     string `json:"left"`
	Right    string `json:"right"`
	JoinType string `json:"join_type"`
}

type inspectResponse struct {
	Key           string             `json:"key"`
	Fingerprint   string             `json:"fingerprint"`
	StatementType string             `json:"statement_type"`
	MaskedValues  int                `json:"masked_values"`
	Tables        []string           `json:"tables"`
	Columns       []inspectColumn    `json:"columns"`
	Joins         []inspectJoin      `json:"joins"`
	Cost          analyzer.QueryCost `json:"cost"`
}

// Inspect godoc
// @Summary  Fingerprint and score a single query
// @Tags     fingerprints
// @Accept   json
// @Produce  json
// @Param    record  body      entity.QueryRecord  true  "query to inspect"
// @Success  200     {object}  inspectResponse
// @Failure  400     {object}  ErrorResponse
// @Router   /fingerprints [post]
func (h *InspectHandler) Inspect(c *fiber.Ctx) error {
	var rec entity.QueryRecord
	if err := c.BodyParser(&rec); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	rec = rec.Normalize()
	if strings.TrimSpace(rec.Query) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "query is required")
	}

	in := analyzer.Inspect(rec.Query)
	key, _ := analyzer.GroupKey(rec.Query)
	tables := analyzer.MergeTables(rec.Tables, in.Tables)

	resp := inspectResponse{
		Key:           key,
		Fingerprint:   in.Fingerprint,
		StatementType: rec.StatementType(),
		MaskedValues:  in.Masked,
		Tables:        tables,
		Columns:       make([]inspectColumn, 0, len(in.Columns)),
		Joins:         []inspectJoin{},
		Cost:          analyzer.CostOf(rec.ExecutionTimeMs, rec.RowsScanned, in.JoinClauses, in.HasSort),
	}
	for _, col := range in.Columns {
		resp.Columns = append(resp.Columns, inspectColumn{Table: col.Table, Column: col.Column, Usage: col.Usage.String(), Filter: col.Filter})
	}
	for _, j := range analyzer.ExtractJoins(rec.Tables, rec.Query) {
		resp.Joins = append(resp.Joins, inspectJoin{Left: j.Left, Right: j.Right, JoinType: j.JoinType})
	}
	return c.JSON(resp)
}
