package entity

import (
	"strings"
	"time"
)

// Conflict types between a proposed index and one that already exists.
const (
	ConflictDuplicate   = "duplicate"
	ConflictRedundant   = "redundant"
	ConflictOverlapping = "overlapping"
)

// ExistingIndex is an index operators have registered as already present on a
// table. Recommendations are checked against this catalog.
type ExistingIndex struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:text;uniqueIndex:idx_existing_index_name;not null" json:"name" validate:"required,max=128"`
	Table     string    `gorm:"column:table_name;type:text;uniqueIndex:idx_existing_index_name;not null" json:"table" validate:"required,max=128"`
	Columns   []string  `gorm:"serializer:json" json:"columns" validate:"required,min=1,dive,required"`
	IndexType string    `json:"index_type,omitempty"`
	Unique    bool      `json:"unique"`
	Condition string    `gorm:"type:text" json:"condition,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ExistingIndex) TableName() string {
	return "existing_indexes"
}

// Partial reports whether the index only covers rows matching Condition.
func (i ExistingIndex) Partial() bool {
	return strings.TrimSpace(i.Condition) != ""
}

// IndexConflict ties a proposed index to an existing one that already serves
// some or all of it. Severity is 1 for an exact duplicate.
type IndexConflict struct {
	ExistingIndex string  `json:"existing_index"`
	ConflictType  string  `json:"conflict_type"`
	Severity      float64 `json:"severity"`
}

// IndexSimulation is the modelled effect of creating a proposed index.
type IndexSimulation struct {
	CurrentTimeMs   float64 `json:"current_time_ms"`
	PredictedTimeMs float64 `json:"predicted_time_ms"`
	ImprovementPct  float64 `json:"improvement_pct"`
	Confidence      float64 `json:"confidence"`
	StorageCostMB   float64 `json:"storage_cost_mb"`
	ROIScore        float64 `json:"roi_score"`
	Verdict         string  `json:"verdict"`
}

// PatternFilter is a constant comparison every record of a pattern applied to
// one column, e.g. `deleted_at IS NULL`.
type PatternFilter struct {
	Table     string `json:"table"`
	Column    string `json:"column"`
	Predicate string `json:"predicate"`
}

func (f PatternFilter) Condition() string {
	return f.Column + " " + f.Predicate
}

// PartialIndexRecommendation is an index restricted to the rows a pattern
// always selects.
type PartialIndexRecommendation struct {
	ID                      int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	RunID                   string          `gorm:"index;not null" json:"-"`
	Table                   string          `gorm:"column:table_name" json:"table"`
	Columns                 []string        `gorm:"serializer:json" json:"columns"`
	Condition               string          `gorm:"type:text" json:"condition"`
	Selectivity             float64         `json:"selectivity"`
	StorageSavingsPct       float64         `json:"storage_savings_pct"`
	Priority                int             `json:"priority"`
	EstimatedImprovementPct float64         `json:"estimated_improvement_pct"`
	PatternKey              string          `gorm:"type:text" json:"pattern_key"`
	Statement               string          `gorm:"column:sql_statement;type:text" json:"sql"`
	Simulation              IndexSimulation `gorm:"serializer:json" json:"simulation"`
	Conflicts               []IndexConflict `gorm:"serializer:json" json:"conflicts,omitempty"`
}

func (PartialIndexRecommendation) TableName() string {
	return "partial_index_recommendations"
}
