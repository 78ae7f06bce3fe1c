// Package recommender proposes single-column indexes for columns that slow,
// frequent query patterns filter, join or sort on.
package recommender

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

const (
	maxPriority    = 100
	maxImprovement = 100.0

	improvementCeiling  = 95.0
	improvementTimeKnee = 100.0
)

type Config struct {
	SlownessThreshold  float64 `validate:"gte=0"`
	FrequencyThreshold int64   `validate:"gte=0"`

	// HashMinEqualityUses is the equality evidence a column needs before a
	// HASH index is proposed over BTREE.
	HashMinEqualityUses int64 `validate:"gte=1"`
}

func DefaultConfig() Config {
	return Config{
		SlownessThreshold:   1000,
		FrequencyThreshold:  10,
		HashMinEqualityUses: 100,
	}
}

type Recommender struct {
	cfg Config
}

func New(cfg Config) (*Recommender, error) {
	if err := helper.ValidateConfig("recommender", cfg); err != nil {
		return nil, err
	}
	return &Recommender{cfg: cfg}, nil
}

// Eligible reports whether p clears both the slowness and frequency
// thresholds.
func (r *Recommender) Eligible(p entity.Pattern) bool {
	return p.SlownessScore >= r.cfg.SlownessThreshold && p.Frequency >= r.cfg.FrequencyThreshold
}

// IndexTypeFor proposes HASH only for columns a pattern compared by equality
// alone, and often enough; everything else gets BTREE.
func (r *Recommender) IndexTypeFor(ops entity.ColumnOperators) string {
	if ops.EqualityOnly() && ops.Join == 0 && ops.Equality >= r.cfg.HashMinEqualityUses {
		return entity.IndexHash
	}
	return entity.IndexBTree
}

// Priority maps a slowness score onto 0..100 on a log scale: 10ms of total
// time scores about 20, a second about 60 and 100 seconds 100.
func Priority(slowness float64) int {
	if slowness <= 0 || math.IsNaN(slowness) {
		return 0
	}
	p := math.Round(20 * math.Log10(1+slowness))
	return int(math.Min(p, maxPriority))
}

// ImprovementPct estimates the gain of an index from how many rows the
// pattern scans and how slow it is. Fast queries over few rows gain little.
func ImprovementPct(avgTimeMs, avgRows float64) float64 {
	if avgTimeMs <= 0 || math.IsNaN(avgTimeMs) {
		return 0
	}
	avgRows = math.Max(avgRows, 0)
	rowFactor := 1 - 1/(1+math.Log10(1+avgRows))
	timeFactor := avgTimeMs / (avgTimeMs + improvementTimeKnee)
	return math.Max(0, math.Min(improvementCeiling*rowFactor*timeFactor, maxImprovement))
}

type columnKey struct {
	table  string
	column string
}

// Recommend proposes at most one index per (table, column) pair. Each
// recommendation cites the eligible pattern that produced its priority.
func (r *Recommender) Recommend(patterns []entity.Pattern, columns []entity.ColumnUsage) []entity.IndexRecommendation {
	byPattern := make(map[string][]int, len(patterns))
	for i, c := range columns {
		for key := range c.Patterns {
			byPattern[key] = append(byPattern[key], i)
		}
	}

	chosen := make(map[columnKey]int)
	var recs []entity.IndexRecommendation
	for _, p := range patterns {
		if !r.Eligible(p) {
			continue
		}
		priority := Priority(p.SlownessScore)
		improvement := ImprovementPct(p.AvgTimeMs, p.AvgRowsScanned)

		for _, idx := range byPattern[p.Key] {
			c := columns[idx]
			ops := c.Patterns[p.Key]
			if ops.Total() == 0 || c.Column == "" {
				continue
			}
			table := c.Table
			if table == "" {
				if len(p.Tables) != 1 {
					continue
				}
				table = p.Tables[0]
			}

			rec := entity.IndexRecommendation{
				Table:                   table,
				Column:                  c.Column,
				IndexType:               r.IndexTypeFor(ops),
				Priority:                priority,
				EstimatedImprovementPct: improvement,
				Reason:                  reason(p, ops),
				PatternKey:              p.Key,
				Simulation:              Simulate(p, 1, improvement, 1),
			}
			k := columnKey{table: table, column: c.Column}
			if at, ok := chosen[k]; ok {
				if recs[at].Priority < priority {
					recs[at] = rec
				}
				continue
			}
			chosen[k] = len(recs)
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority > recs[j].Priority
		}
		if recs[i].Table != recs[j].Table {
			return recs[i].Table < recs[j].Table
		}
		return recs[i].Column < recs[j].Column
	})
	if recs == nil {
		recs = []entity.IndexRecommendation{}
	}
	return recs
}

func reason(p entity.Pattern, ops entity.ColumnOperators) string {
	var uses []string
	if ops.Equality > 0 {
		uses = append(uses, fmt.Sprintf("equality x%d", ops.Equality))
	}
	if ops.Range > 0 {
		uses = append(uses, fmt.Sprintf("range x%d", ops.Range))
	}
	if ops.OrderBy > 0 {
		uses = append(uses, fmt.Sprintf("order by x%d", ops.OrderBy))
	}
	if ops.Join > 0 {
		uses = append(uses, fmt.Sprintf("join x%d", ops.Join))
	}
	return fmt.Sprintf("%s pattern ran %d times at %.2fms average (slowness %.0f); column used in %s",
		p.StatementType, p.Frequency, p.AvgTimeMs, p.SlownessScore, strings.Join(uses, ", "))
}

// Insights summarizes how many recommendations existing indexes already serve
// and how many partial indexes were proposed.
func Insights(recs []entity.IndexRecommendation, partial []entity.PartialIndexRecommendation) []string {
	var out []string
	served := 0
	for _, r := range recs {
		if r.Served() {
			served++
		}
	}
	if served > 0 {
		out = append(out, fmt.Sprintf("%d of %d index recommendations are already served by existing indexes", served, len(recs)))
	}
	if len(partial) > 0 {
		out = append(out, fmt.Sprintf("%d partial indexes could cover filtered patterns with less storage", len(partial)))
	}
	return out
}
