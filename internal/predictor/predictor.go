// Package predictor estimates the execution time of a query from the history
// of its statement type.
package predictor

import (
	"math"
	"strings"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

const (
	baselineTimeMs     = 10.0
	baselineRowsPerMs  = 100.0
	baselineConfidence = 0.1

	minRowFactor = 0.1
	maxRowFactor = 10.0

	// cache hits are not guaranteed
	cacheConfidenceFactor = 0.9
)

// Recommendation templates.
const (
	RecommendNoHistory = "No historical data available; estimate is a row-count baseline"
	RecommendSlow      = "Consider adding an index or optimizing the query"
	RecommendFine      = "Query performance looks good"
)

type Config struct {
	CacheEnabled          bool
	CacheFactor           float64 `validate:"gt=0,lte=1"`
	SlowThresholdMs       float64 `validate:"gt=0"`
	FullConfidenceSamples int     `validate:"min=1"`
	MaxConfidence         float64 `validate:"gt=0,lte=1"`
}

func DefaultConfig() Config {
	return Config{
		CacheFactor:           0.6,
		SlowThresholdMs:       100,
		FullConfidenceSamples: 10,
		MaxConfidence:         0.95,
	}
}

// Predictor is read-only after construction and safe for concurrent use.
type Predictor struct {
	cfg     Config
	history map[string]entity.StatementTypeStat
	global  entity.StatementTypeStat
}

func New(cfg Config, history map[string]entity.StatementTypeStat) (*Predictor, error) {
	if err := helper.ValidateConfig("predictor", cfg); err != nil {
		return nil, err
	}
	p := &Predictor{
		cfg:     cfg,
		history: make(map[string]entity.StatementTypeStat, len(history)),
	}
	for k, v := range history {
		k = strings.ToUpper(strings.TrimSpace(k))
		if v.Count <= 0 {
			continue
		}
		p.history[k] = v
		p.global.Count += v.Count
		p.global.TotalTimeMs += v.TotalTimeMs
		p.global.TotalRowsScanned += v.TotalRowsScanned
	}
	return p, nil
}

// Predict estimates how long a statementType query scanning rowsHint rows
// will take. It never fails; missing history lowers the confidence instead.
func (p *Predictor) Predict(statementType string, rowsHint int64) entity.PerformancePrediction {
	statementType = strings.ToUpper(strings.TrimSpace(statementType))
	rowsHint = max(rowsHint, 0)

	out := entity.PerformancePrediction{StatementType: statementType}
	var estimate, confidence float64

	hist, ok := p.history[statementType]
	switch {
	case ok:
		estimate = hist.AvgTimeMs() * rowFactor(rowsHint, hist.AvgRowsScanned())
		confidence = p.confidence(hist.Count)
		out.SampleCount = hist.Count
	case p.global.Count > 0:
		estimate = p.global.AvgTimeMs() * rowFactor(rowsHint, p.global.AvgRowsScanned())
		confidence = p.confidence(p.global.Count) / 2
		out.SampleCount = p.global.Count
	default:
		estimate = baselineTimeMs + float64(rowsHint)/baselineRowsPerMs
		confidence = baselineConfidence
	}

	if p.cfg.CacheEnabled {
		estimate *= p.cfg.CacheFactor
		confidence *= cacheConfidenceFactor
		out.CacheApplied = true
	}

	out.EstimatedTimeMs = estimate
	out.Confidence = math.Max(0, math.Min(confidence, 1))
	switch {
	case out.SampleCount == 0:
		out.Recommendation = RecommendNoHistory
	case estimate > p.cfg.SlowThresholdMs:
		out.Recommendation = RecommendSlow
	default:
		out.Recommendation = RecommendFine
	}
	return out
}

func (p *Predictor) confidence(samples int64) float64 {
	return math.Min(float64(samples)/float64(p.cfg.FullConfidenceSamples), p.cfg.MaxConfidence)
}

// rowFactor scales a historical average by how many more rows the query is
// expected to scan than the history did.
func rowFactor(hint int64, avgRows float64) float64 {
	if hint <= 0 || avgRows <= 0 {
		return 1
	}
	return math.Max(minRowFactor, math.Min(float64(hint)/avgRows, maxRowFactor))
}
