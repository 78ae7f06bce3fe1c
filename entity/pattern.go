package entity

// UnknownPatternKey groups records that carry no query text.
const UnknownPatternKey = "UNKNOWN"

// Cost categories.
const (
	CostLow    = "low"
	CostMedium = "medium"
	CostHigh   = "high"
)

// Pattern aggregates every record sharing a grouping key.
type Pattern struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	RunID            string          `gorm:"index;not null" json:"-"`
	Key              string          `gorm:"type:text" json:"key"`
	Fingerprint      string          `gorm:"type:text" json:"fingerprint"`
	StatementType    string          `json:"statement_type"`
	Frequency        int64           `json:"frequency"`
	AvgTimeMs        float64         `json:"avg_time_ms"`
	TotalTimeMs      int64           `json:"total_time_ms"`
	MinTimeMs        int64           `json:"min_time_ms"`
	MaxTimeMs        int64           `json:"max_time_ms"`
	StdDevTimeMs     float64         `json:"stddev_time_ms"`
	SlownessScore    float64         `gorm:"index" json:"slowness_score"`
	TotalRowsScanned int64           `json:"total_rows_scanned"`
	AvgRowsScanned   float64         `json:"avg_rows_scanned"`
	AvgEfficiency    float64         `json:"avg_efficiency"`
	AvgCost          float64         `json:"avg_cost"`
	CostCategory     string          `json:"cost_category"`
	Tables           []string        `gorm:"serializer:json" json:"tables"`
	SampleQueries    []string        `gorm:"serializer:json" json:"sample_queries"`
	Filters          []PatternFilter `gorm:"serializer:json" json:"filters,omitempty"`
	FirstSeen        int64           `json:"first_seen"`
	LastSeen         int64           `json:"last_seen"`
}

func (Pattern) TableName() string {
	return "patterns"
}

// ColumnOperators counts how a column was used by one pattern.
type ColumnOperators struct {
	Equality int64 `json:"equality"`
	Range    int64 `json:"range"`
	OrderBy  int64 `json:"order_by"`
	Join     int64 `json:"join"`
}

// EqualityOnly reports whether every observed use was an equality comparison.
func (o ColumnOperators) EqualityOnly() bool {
	return o.Equality > 0 && o.Range == 0 && o.OrderBy == 0
}

// Total is the number of observed uses.
func (o ColumnOperators) Total() int64 {
	return o.Equality + o.Range + o.OrderBy + o.Join
}

// ColumnUsage tracks a (table, column) pair across WHERE, JOIN and ORDER BY
// clauses. Patterns is keyed by pattern key.
type ColumnUsage struct {
	Table          string                     `json:"table"`
	Column         string                     `json:"column"`
	UsageCount     int64                      `json:"usage_count"`
	WhereCount     int64                      `json:"where_count"`
	JoinCount      int64                      `json:"join_count"`
	OrderByCount   int64                      `json:"order_by_count"`
	AvgQueryTimeMs float64                    `json:"avg_query_time_ms"`
	Patterns       map[string]ColumnOperators `json:"patterns"`
}

// JoinStat is keyed by an unordered table pair, Left < Right.
type JoinStat struct {
	Left             string  `json:"left"`
	Right            string  `json:"right"`
	JoinType         string  `json:"join_type"`
	Count            int64   `json:"count"`
	TotalTimeMs      int64   `json:"total_time_ms"`
	AvgTimeMs        float64 `json:"avg_time_ms"`
	PerformanceScore float64 `json:"performance_score"`
}

// TimeBucketStat is keyed by UTC hour of day and day of week (0 = Sunday).
type TimeBucketStat struct {
	Hour        int     `json:"hour"`
	Day         int     `json:"day"`
	Count       int64   `json:"count"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	Peak        bool    `json:"peak"`
}

// StatementTypeStat is the per statement type history fed to the predictor.
type StatementTypeStat struct {
	StatementType    string `json:"statement_type"`
	Count            int64  `json:"count"`
	TotalTimeMs      int64  `json:"total_time_ms"`
	TotalRowsScanned int64  `json:"total_rows_scanned"`
}

// AvgTimeMs is zero when no samples exist.
func (s StatementTypeStat) AvgTimeMs() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.TotalTimeMs) / float64(s.Count)
}

func (s StatementTypeStat) AvgRowsScanned() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.TotalRowsScanned) / float64(s.Count)
}
