package entity

import (
	"time"
)

// Index types suggested by the recommender.
const (
	IndexBTree = "BTREE"
	IndexHash  = "HASH"
)

// Anomaly severities.
const (
	SeverityWarn     = "warn"
	SeverityCritical = "critical"
)

// AnalysisRun is one execution of the pipeline over a batch of records.
type AnalysisRun struct {
	ID           string `gorm:"primaryKey;type:text" json:"id"`
	Source       string `gorm:"index" json:"source"`
	RecordCount  int64  `json:"record_count"`
	PatternCount int64  `json:"pattern_count"`

	// Summary is stored alongside the run so stored reports keep their insights.
	Summary   AnalysisSummary `gorm:"serializer:json" json:"-"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by AnalysisRun to `analysis_runs`
func (AnalysisRun) TableName() string {
	return "analysis_runs"
}

// IndexRecommendation is a suggested index backed by PatternKey.
type IndexRecommendation struct {
	ID                      int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	RunID                   string  `gorm:"index;not null" json:"-"`
	Table                   string  `gorm:"column:table_name" json:"table"`
	Column                  string  `gorm:"column:column_name" json:"column"`
	IndexType               string  `json:"index_type"`
	Priority                int     `json:"priority"`
	EstimatedImprovementPct float64 `json:"estimated_improvement_pct"`
	Reason                  string  `gorm:"type:text" json:"reason"`
	PatternKey              string  `gorm:"type:text" json:"pattern_key"`

	Simulation IndexSimulation `gorm:"serializer:json" json:"simulation"`
	Conflicts  []IndexConflict `gorm:"serializer:json" json:"conflicts,omitempty"`
}

// Served reports whether an existing index already duplicates or covers the
// recommendation.
func (r IndexRecommendation) Served() bool {
	for _, c := range r.Conflicts {
		if c.ConflictType != ConflictOverlapping {
			return true
		}
	}
	return false
}

func (IndexRecommendation) TableName() string {
	return "index_recommendations"
}

// AnomalyFlag marks a pattern whose recent average drifted from its baseline.
type AnomalyFlag struct {
	ID              int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	RunID           string  `gorm:"index;not null" json:"run_id,omitempty"`
	PatternKey      string  `gorm:"type:text" json:"pattern_key"`
	StatementType   string  `json:"statement_type"`
	BaselineAvgMs   float64 `json:"baseline_avg_ms"`
	RecentAvgMs     float64 `json:"recent_avg_ms"`
	Ratio           float64 `json:"ratio"`
	BaselineSamples int     `json:"baseline_samples"`
	RecentSamples   int     `json:"recent_samples"`
	Severity        string  `json:"severity"`
	Score           float64 `json:"score"`
	Description     string  `gorm:"type:text" json:"description"`
}

func (AnomalyFlag) TableName() string {
	return "anomaly_flags"
}

// PerformancePrediction is the forecast for a not yet executed query.
type PerformancePrediction struct {
	StatementType   string  `json:"statement_type"`
	EstimatedTimeMs float64 `json:"estimated_time_ms"`
	Confidence      float64 `json:"confidence"`
	Recommendation  string  `json:"recommendation"`
	SampleCount     int64   `json:"sample_count"`
	CacheApplied    bool    `json:"cache_applied"`
}

// AnalysisSummary condenses a run into headline numbers and advisory text.
type AnalysisSummary struct {
	TotalQueries     int64    `json:"total_queries"`
	AvgTimeMs        float64  `json:"avg_time_ms"`
	UniquePatterns   int      `json:"unique_patterns"`
	SlowQueries      int64    `json:"slow_queries"`
	HighCostPatterns int      `json:"high_cost_patterns"`
	PeakHour         int      `json:"peak_hour"`
	Insights         []string `json:"insights"`
}

// AnalysisReport is everything one run produced.
type AnalysisReport struct {
	Run             AnalysisRun                  `json:"run"`
	Summary         AnalysisSummary              `json:"summary"`
	Patterns        []Pattern                    `json:"patterns"`
	Recommendations []IndexRecommendation        `json:"recommendations"`
	PartialIndexes  []PartialIndexRecommendation `json:"partial_indexes"`
	Anomalies       []AnomalyFlag                `json:"anomalies"`
	Joins           []JoinStat                   `json:"joins,omitempty"`
	TimeBuckets     []TimeBucketStat             `json:"time_buckets,omitempty"`
}
