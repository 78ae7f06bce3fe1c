package recommender

import (
	"sort"
	"strings"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

const (
	severityDuplicate   = 1.0
	severityRedundant   = 0.8
	severityOverlapping = 0.6
)

// Conflicts compares a proposed index on table(columns) with every existing
// index on the same table. Column order matters: an existing index whose
// leading columns are the proposal serves it, one that merely shares a column
// overlaps it. A partial existing index can only overlap.
func Conflicts(table string, columns []string, existing []*entity.ExistingIndex) []entity.IndexConflict {
	table = strings.ToLower(table)
	var out []entity.IndexConflict
	for _, idx := range existing {
		if idx == nil || strings.ToLower(idx.Table) != table {
			continue
		}
		have := lower(idx.Columns)
		var c entity.IndexConflict
		switch {
		case hasPrefix(have, columns) && len(have) == len(columns):
			c = entity.IndexConflict{ConflictType: entity.ConflictDuplicate, Severity: severityDuplicate}
		case hasPrefix(have, columns):
			c = entity.IndexConflict{ConflictType: entity.ConflictRedundant, Severity: severityRedundant}
		case shares(have, columns):
			c = entity.IndexConflict{ConflictType: entity.ConflictOverlapping, Severity: severityOverlapping}
		default:
			continue
		}
		if idx.Partial() && c.ConflictType != entity.ConflictOverlapping {
			c = entity.IndexConflict{ConflictType: entity.ConflictOverlapping, Severity: severityOverlapping}
		}
		c.ExistingIndex = idx.Name
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].ExistingIndex < out[j].ExistingIndex
	})
	return out
}

// CheckExisting attaches conflicts with the existing catalog to every full and
// partial recommendation.
func CheckExisting(recs []entity.IndexRecommendation, partial []entity.PartialIndexRecommendation, existing []*entity.ExistingIndex) {
	if len(existing) == 0 {
		return
	}
	for i := range recs {
		recs[i].Conflicts = Conflicts(recs[i].Table, []string{recs[i].Column}, existing)
	}
	for i := range partial {
		partial[i].Conflicts = Conflicts(partial[i].Table, partial[i].Columns, existing)
	}
}

func lower(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return out
}

func hasPrefix(have, want []string) bool {
	if len(want) == 0 || len(want) > len(have) {
		return false
	}
	for i, c := range want {
		if have[i] != strings.ToLower(c) {
			return false
		}
	}
	return true
}

func shares(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == strings.ToLower(w) {
				return true
			}
		}
	}
	return false
}
