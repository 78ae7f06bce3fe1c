package recommender

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

// a filter keeping half the rows or more does not shrink the index enough
const maxPartialSelectivity = 0.5

// Partial proposes indexes restricted to the rows an eligible pattern always
// selects. Each pattern's constant filters on a table become the index
// condition and the other columns the pattern uses there become its key,
// equality columns first. Tables where the filter is the only column used get
// no proposal.
func (r *Recommender) Partial(patterns []entity.Pattern, columns []entity.ColumnUsage) []entity.PartialIndexRecommendation {
	byStatement := make(map[string]int)
	var recs []entity.PartialIndexRecommendation

	for _, p := range patterns {
		if !r.Eligible(p) || len(p.Filters) == 0 {
			continue
		}
		filters := make(map[string][]entity.PatternFilter)
		for _, f := range p.Filters {
			filters[f.Table] = append(filters[f.Table], f)
		}
		tables := make([]string, 0, len(filters))
		for t := range filters {
			tables = append(tables, t)
		}
		sort.Strings(tables)

		for _, table := range tables {
			rec, ok := r.partialFor(p, table, filters[table], columns)
			if !ok {
				continue
			}
			if at, seen := byStatement[rec.Statement]; seen {
				if recs[at].Priority < rec.Priority {
					recs[at] = rec
				}
				continue
			}
			byStatement[rec.Statement] = len(recs)
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority > recs[j].Priority
		}
		return recs[i].Statement < recs[j].Statement
	})
	if recs == nil {
		recs = []entity.PartialIndexRecommendation{}
	}
	return recs
}

func (r *Recommender) partialFor(p entity.Pattern, table string, filters []entity.PatternFilter, columns []entity.ColumnUsage) (entity.PartialIndexRecommendation, bool) {
	filtered := make(map[string]struct{}, len(filters))
	conditions := make([]string, 0, len(filters))
	selectivity := 1.0
	for _, f := range filters {
		filtered[f.Column] = struct{}{}
		conditions = append(conditions, f.Condition())
		selectivity *= FilterSelectivity(f.Predicate)
	}
	if selectivity >= maxPartialSelectivity {
		return entity.PartialIndexRecommendation{}, false
	}

	type keyColumn struct {
		name string
		rank int
	}
	var keys []keyColumn
	for _, c := range columns {
		ops := c.Patterns[p.Key]
		if ops.Total() == 0 || c.Table != table || c.Column == "" {
			continue
		}
		if _, ok := filtered[c.Column]; ok {
			continue
		}
		keys = append(keys, keyColumn{name: c.Column, rank: keyRank(ops)})
	}
	if len(keys) == 0 {
		return entity.PartialIndexRecommendation{}, false
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].rank != keys[j].rank {
			return keys[i].rank < keys[j].rank
		}
		return keys[i].name < keys[j].name
	})
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.name
	}

	condition := strings.Join(conditions, " AND ")
	improvement := ImprovementPct(p.AvgTimeMs, p.AvgRowsScanned)
	return entity.PartialIndexRecommendation{
		Table:                   table,
		Columns:                 names,
		Condition:               condition,
		Selectivity:             selectivity,
		StorageSavingsPct:       (1 - selectivity) * 100,
		Priority:                Priority(p.SlownessScore),
		EstimatedImprovementPct: improvement,
		PatternKey:              p.Key,
		Statement: fmt.Sprintf("CREATE INDEX idx_%s_%s_partial ON %s (%s) WHERE %s",
			table, strings.Join(names, "_"), table, strings.Join(names, ", "), condition),
		Simulation: Simulate(p, len(names), improvement, selectivity),
	}, true
}

// FilterSelectivity guesses the share of rows a constant filter keeps.
// Soft-delete and flag columns are assumed skewed.
func FilterSelectivity(predicate string) float64 {
	switch strings.ToUpper(predicate) {
	case "IS NULL", "IS TRUE", "IS FALSE", "= TRUE", "= FALSE":
		return 0.1
	case "IS NOT NULL":
		return 0.5
	}
	return 0.2
}

func keyRank(ops entity.ColumnOperators) int {
	switch {
	case ops.Equality > 0:
		return 0
	case ops.Join > 0:
		return 1
	case ops.Range > 0:
		return 2
	}
	return 3
}
