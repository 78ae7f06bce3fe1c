package analyzer

import (
	"math"
	"sort"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

const (
	defaultSampleLimit  = 5
	defaultRecentWindow = 5

	peakMinCount     = 10
	peakMinAvgTimeMs = 100.0

	joinFullFrequency = 100.0
	joinFastTimeMs    = 1000.0
)

type patternState struct {
	pattern         entity.Pattern
	sumSquares      float64
	totalEfficiency float64
	totalCost       float64
	tables          map[string]struct{}
	filters         map[columnKey]*filterState

	// last recentWindow execution times; next is the slot to overwrite once
	// the ring is full
	recent []float64
	next   int
}

func (st *patternState) push(elapsed float64, window int) {
	if window <= 0 {
		return
	}
	if len(st.recent) < window {
		st.recent = append(st.recent, elapsed)
		return
	}
	st.recent[st.next] = elapsed
	st.next = (st.next + 1) % window
}

type columnKey struct {
	table  string
	column string
}

// filterState remembers the constant comparison a pattern applies to a
// column. Any other comparison on that column makes it mixed for good.
type filterState struct {
	predicate string
	mixed     bool
	records   int64
}

type columnState struct {
	usage     entity.ColumnUsage
	totalTime float64
}

type joinKey struct {
	left  string
	right string
}

type bucketKey struct {
	hour int
	day  int
}

// Aggregator folds query records into running per-pattern, per-column,
// per-join, per-time-bucket and per-statement-type statistics.
//
// Aggregator is not safe for concurrent use: it expects a single writer.
// Every read accessor returns a copy, so results can be handed to other
// goroutines while more records are added.
type Aggregator struct {
	sampleLimit  int
	recentWindow int

	patterns map[string]*patternState
	order    []string
	columns  map[columnKey]*columnState
	joins    map[joinKey]*entity.JoinStat
	buckets  map[bucketKey]*entity.TimeBucketStat
	types    map[string]*entity.StatementTypeStat
	total    int64
}

type Option func(*Aggregator)

// WithRecentWindow sets how many of the latest execution times each pattern
// retains for anomaly detection.
func WithRecentWindow(n int) Option {
	return func(a *Aggregator) {
		if n >= 1 {
			a.recentWindow = n
		}
	}
}

// WithSampleLimit bounds how many raw query texts each pattern keeps.
func WithSampleLimit(n int) Option {
	return func(a *Aggregator) {
		if n >= 0 {
			a.sampleLimit = n
		}
	}
}

func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		sampleLimit:  defaultSampleLimit,
		recentWindow: defaultRecentWindow,
		patterns:     make(map[string]*patternState),
		columns:      make(map[columnKey]*columnState),
		joins:        make(map[joinKey]*entity.JoinStat),
		buckets:      make(map[bucketKey]*entity.TimeBucketStat),
		types:        make(map[string]*entity.StatementTypeStat),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddAll adds records in order.
func (a *Aggregator) AddAll(records []entity.QueryRecord) {
	for i := range records {
		a.Add(records[i])
	}
}

// Add folds one record into every running aggregate. Malformed records are
// normalized, never dropped.
func (a *Aggregator) Add(record entity.QueryRecord) {
	r := record.Normalize()
	in := Inspect(r.Query)
	key, fp := groupKey(r.Query, in.Fingerprint, in.Masked)
	if key != fp {
		// statement-type and unknown groups mix shapes, so no single
		// fingerprint describes them
		fp = key
	}
	tables := MergeTables(r.Tables, in.Tables)
	refs := resolveTables(in.Columns, tables)
	statementType := r.StatementType()
	elapsed := float64(r.ExecutionTimeMs)

	a.total++
	st := a.addPattern(key, fp, statementType, r, in, tables)
	st.addFilters(refs, in.HasOr)
	a.addColumns(key, refs, elapsed)
	a.addJoins(joinPairs(tables, in.joinTypes), r.ExecutionTimeMs)
	a.addBucket(r.Timestamp, r.ExecutionTimeMs)

	ts, ok := a.types[statementType]
	if !ok {
		ts = &entity.StatementTypeStat{StatementType: statementType}
		a.types[statementType] = ts
	}
	ts.Count++
	ts.TotalTimeMs += r.ExecutionTimeMs
	ts.TotalRowsScanned += r.RowsScanned
}

func (a *Aggregator) addPattern(key, fp, statementType string, r entity.QueryRecord, in Inspection, tables []string) *patternState {
	st, ok := a.patterns[key]
	if !ok {
		st = &patternState{
			pattern: entity.Pattern{
				Key:           key,
				Fingerprint:   fp,
				StatementType: statementType,
				MinTimeMs:     r.ExecutionTimeMs,
				MaxTimeMs:     r.ExecutionTimeMs,
				FirstSeen:     r.Timestamp,
				LastSeen:      r.Timestamp,
			},
			tables:  make(map[string]struct{}),
			filters: make(map[columnKey]*filterState),
		}
		a.patterns[key] = st
		a.order = append(a.order, key)
	}

	p := &st.pattern
	p.Frequency++
	p.TotalTimeMs += r.ExecutionTimeMs
	p.TotalRowsScanned += r.RowsScanned
	p.MinTimeMs = min(p.MinTimeMs, r.ExecutionTimeMs)
	p.MaxTimeMs = max(p.MaxTimeMs, r.ExecutionTimeMs)
	p.FirstSeen = min(p.FirstSeen, r.Timestamp)
	p.LastSeen = max(p.LastSeen, r.Timestamp)
	if len(p.SampleQueries) < a.sampleLimit && r.Query != "" {
		p.SampleQueries = append(p.SampleQueries, r.Query)
	}

	elapsed := float64(r.ExecutionTimeMs)
	st.sumSquares += elapsed * elapsed
	st.totalEfficiency += r.EfficiencyScore()
	st.totalCost += CostOf(r.ExecutionTimeMs, r.RowsScanned, in.JoinClauses, in.HasSort).Total
	st.push(elapsed, a.recentWindow)
	for _, t := range tables {
		st.tables[t] = struct{}{}
	}
	return st
}

// resolveTables fills in the table of unqualified columns when the record
// touches exactly one table.
func resolveTables(refs []ColumnRef, tables []string) []ColumnRef {
	if len(tables) != 1 {
		return refs
	}
	out := make([]ColumnRef, len(refs))
	for i, ref := range refs {
		if ref.Table == "" {
			ref.Table = tables[0]
		}
		out[i] = ref
	}
	return out
}

// addFilters keeps, per column, the constant comparison this pattern applies.
// A record that compares the column differently, or joins predicates with OR,
// marks it mixed. A filter only counts once every record of the pattern has
// applied it.
func (st *patternState) addFilters(refs []ColumnRef, hasOr bool) {
	counted := make(map[columnKey]struct{}, len(refs))
	for _, ref := range refs {
		if ref.Usage != UsageEquality && ref.Usage != UsageRange {
			continue
		}
		k := columnKey{table: ref.Table, column: ref.Column}
		fs, ok := st.filters[k]
		if !ok {
			fs = &filterState{predicate: ref.Filter}
			st.filters[k] = fs
		}
		if hasOr || ref.Filter == "" || ref.Filter != fs.predicate {
			fs.mixed = true
		}
		if _, ok := counted[k]; !ok {
			counted[k] = struct{}{}
			fs.records++
		}
	}
}

func (a *Aggregator) addColumns(patternKey string, refs []ColumnRef, elapsed float64) {
	for _, ref := range refs {
		table := ref.Table
		k := columnKey{table: table, column: ref.Column}
		cs, ok := a.columns[k]
		if !ok {
			cs = &columnState{usage: entity.ColumnUsage{
				Table:    table,
				Column:   ref.Column,
				Patterns: make(map[string]entity.ColumnOperators),
			}}
			a.columns[k] = cs
		}

		u := &cs.usage
		u.UsageCount++
		cs.totalTime += elapsed
		u.AvgQueryTimeMs = cs.totalTime / float64(u.UsageCount)

		ops := u.Patterns[patternKey]
		switch ref.Usage {
		case UsageEquality:
			u.WhereCount++
			ops.Equality++
		case UsageRange:
			u.WhereCount++
			ops.Range++
		case UsageOrderBy:
			u.OrderByCount++
			ops.OrderBy++
		case UsageJoin:
			u.JoinCount++
			ops.Join++
		}
		u.Patterns[patternKey] = ops
	}
}

func (a *Aggregator) addJoins(pairs []JoinRef, elapsedMs int64) {
	for _, pair := range pairs {
		k := joinKey{left: pair.Left, right: pair.Right}
		js, ok := a.joins[k]
		if !ok {
			js = &entity.JoinStat{Left: pair.Left, Right: pair.Right, JoinType: pair.JoinType}
			a.joins[k] = js
		}
		if js.JoinType == JoinImplicit && pair.JoinType != JoinImplicit {
			js.JoinType = pair.JoinType
		}
		js.Count++
		js.TotalTimeMs += elapsedMs
		js.AvgTimeMs = float64(js.TotalTimeMs) / float64(js.Count)
		js.PerformanceScore = joinPerformanceScore(js.Count, js.AvgTimeMs)
	}
}

// joinPerformanceScore averages a frequency score and a speed score, both in
// [0, 1]; higher means a well-exercised, fast join.
func joinPerformanceScore(count int64, avgTimeMs float64) float64 {
	frequency := math.Min(float64(count)/joinFullFrequency, 1)
	speed := 1.0
	if avgTimeMs > 0 {
		speed = math.Min(joinFastTimeMs/avgTimeMs, 1)
	}
	return (frequency + speed) / 2
}

func (a *Aggregator) addBucket(timestampMs, elapsedMs int64) {
	hour, day := BucketTime(timestampMs)
	k := bucketKey{hour: hour, day: day}
	b, ok := a.buckets[k]
	if !ok {
		b = &entity.TimeBucketStat{Hour: hour, Day: day}
		a.buckets[k] = b
	}
	b.Count++
	b.TotalTimeMs += elapsedMs
	b.AvgTimeMs = float64(b.TotalTimeMs) / float64(b.Count)
	b.Peak = b.Count > peakMinCount && b.AvgTimeMs > peakMinAvgTimeMs
}

// Analyze returns a snapshot of every pattern ordered by slowness score, then
// frequency, then first appearance.
func (a *Aggregator) Analyze() []entity.Pattern {
	patterns := make([]entity.Pattern, 0, len(a.order))
	for _, key := range a.order {
		patterns = append(patterns, a.snapshot(a.patterns[key]))
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].SlownessScore != patterns[j].SlownessScore {
			return patterns[i].SlownessScore > patterns[j].SlownessScore
		}
		return patterns[i].Frequency > patterns[j].Frequency
	})
	return patterns
}

// Pattern returns the snapshot for key.
func (a *Aggregator) Pattern(key string) (entity.Pattern, bool) {
	st, ok := a.patterns[key]
	if !ok {
		return entity.Pattern{}, false
	}
	return a.snapshot(st), true
}

func (a *Aggregator) snapshot(st *patternState) entity.Pattern {
	p := st.pattern
	n := float64(p.Frequency)
	p.AvgTimeMs = float64(p.TotalTimeMs) / n
	p.SlownessScore = n * p.AvgTimeMs
	p.StdDevTimeMs = math.Sqrt(math.Max(st.sumSquares/n-p.AvgTimeMs*p.AvgTimeMs, 0))
	p.AvgRowsScanned = float64(p.TotalRowsScanned) / n
	p.AvgEfficiency = st.totalEfficiency / n
	p.AvgCost = st.totalCost / n
	p.CostCategory = CostCategory(p.AvgCost)

	p.Tables = make([]string, 0, len(st.tables))
	for t := range st.tables {
		p.Tables = append(p.Tables, t)
	}
	sort.Strings(p.Tables)
	p.SampleQueries = append([]string(nil), st.pattern.SampleQueries...)

	p.Filters = nil
	for k, fs := range st.filters {
		if fs.mixed || k.table == "" || fs.records != p.Frequency {
			continue
		}
		p.Filters = append(p.Filters, entity.PatternFilter{Table: k.table, Column: k.column, Predicate: fs.predicate})
	}
	sort.Slice(p.Filters, func(i, j int) bool {
		if p.Filters[i].Table != p.Filters[j].Table {
			return p.Filters[i].Table < p.Filters[j].Table
		}
		return p.Filters[i].Column < p.Filters[j].Column
	})
	return p
}

// Recent returns up to the last recent-window execution times of key's
// records, oldest first.
func (a *Aggregator) Recent(key string) []float64 {
	st, ok := a.patterns[key]
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(st.recent))
	out = append(out, st.recent[st.next:]...)
	return append(out, st.recent[:st.next]...)
}

// ColumnUsage returns column statistics ordered by usage count, then table and
// column name.
func (a *Aggregator) ColumnUsage() []entity.ColumnUsage {
	out := make([]entity.ColumnUsage, 0, len(a.columns))
	for _, cs := range a.columns {
		u := cs.usage
		u.Patterns = make(map[string]entity.ColumnOperators, len(cs.usage.Patterns))
		for k, v := range cs.usage.Patterns {
			u.Patterns[k] = v
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		if out[i].Table != out[j].Table {
			return out[i].Table < out[j].Table
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Joins returns join statistics ordered by count, then table pair.
func (a *Aggregator) Joins() []entity.JoinStat {
	out := make([]entity.JoinStat, 0, len(a.joins))
	for _, js := range a.joins {
		out = append(out, *js)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Left != out[j].Left {
			return out[i].Left < out[j].Left
		}
		return out[i].Right < out[j].Right
	})
	return out
}

// TimeBuckets returns hour/day buckets ordered by count, then hour and day.
func (a *Aggregator) TimeBuckets() []entity.TimeBucketStat {
	out := make([]entity.TimeBucketStat, 0, len(a.buckets))
	for _, b := range a.buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// StatementTypeStats returns per statement type history keyed by type.
func (a *Aggregator) StatementTypeStats() map[string]entity.StatementTypeStat {
	out := make(map[string]entity.StatementTypeStat, len(a.types))
	for k, v := range a.types {
		out[k] = *v
	}
	return out
}

// TotalRecords is the number of records added so far.
func (a *Aggregator) TotalRecords() int64 {
	return a.total
}
