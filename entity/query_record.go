package entity

import (
	"strings"
	"time"
)

// Statement types derived from the first token of a query.
const (
	StatementSelect = "SELECT"
	StatementInsert = "INSERT"
	StatementUpdate = "UPDATE"
	StatementDelete = "DELETE"
	StatementOther  = "OTHER"
)

// QueryRecord is one observed query execution. It doubles as the row stored in
// the record history table so predictions can use executions from earlier runs.
type QueryRecord struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	Source          string    `gorm:"index" json:"source,omitempty"`
	Query           string    `gorm:"type:text" json:"query"`
	ExecutionTimeMs int64     `json:"execution_time_ms"`
	Timestamp       int64     `gorm:"index" json:"timestamp"`
	Tables          []string  `gorm:"serializer:json" json:"tables"`
	RowsScanned     int64     `json:"rows_scanned"`
	Statement       string    `gorm:"column:statement_type;index" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"-"`
}

func (QueryRecord) TableName() string {
	return "query_records"
}

// Normalize returns a copy with negative metrics clamped to zero and the query
// text trimmed.
func (r QueryRecord) Normalize() QueryRecord {
	r.Query = strings.TrimSpace(r.Query)
	if r.ExecutionTimeMs < 0 {
		r.ExecutionTimeMs = 0
	}
	if r.RowsScanned < 0 {
		r.RowsScanned = 0
	}
	if r.Timestamp < 0 {
		r.Timestamp = 0
	}
	if len(r.Tables) > 0 {
		tables := make([]string, 0, len(r.Tables))
		for _, t := range r.Tables {
			if t = strings.TrimSpace(t); t != "" {
				tables = append(tables, t)
			}
		}
		r.Tables = tables
	}
	return r
}

// StatementType classifies the record by the first keyword of its text.
func (r QueryRecord) StatementType() string {
	return StatementTypeOf(r.Query)
}

// EfficiencyScore is execution time per scanned row; lower is better.
func (r QueryRecord) EfficiencyScore() float64 {
	rows := r.RowsScanned
	if rows < 1 {
		rows = 1
	}
	return float64(r.ExecutionTimeMs) / float64(rows)
}

// StatementTypeOf returns SELECT, INSERT, UPDATE, DELETE or OTHER for text.
func StatementTypeOf(text string) string {
	text = strings.TrimLeft(text, " \t\r\n(")
	end := strings.IndexFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	if end >= 0 {
		text = text[:end]
	}
	switch t := strings.ToUpper(text); t {
	case StatementSelect, StatementInsert, StatementUpdate, StatementDelete:
		return t
	}
	return StatementOther
}
