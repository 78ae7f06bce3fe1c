package analyzer

import (
	"fmt"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

const (
	// SlowQueryThresholdMs marks a pattern as slow when its average exceeds it.
	SlowQueryThresholdMs = 100.0

	highFrequency     = 10
	slowJoinAvgTimeMs = 200.0
	slowJoinMinCount  = 5
	highAverageTimeMs = 200.0
	noPeakHour        = -1
)

// Summarize reduces one analysis into headline numbers and human-readable
// insights.
func Summarize(patterns []entity.Pattern, joins []entity.JoinStat, buckets []entity.TimeBucketStat) entity.AnalysisSummary {
	s := entity.AnalysisSummary{
		UniquePatterns: len(patterns),
		PeakHour:       noPeakHour,
	}

	var totalTime, frequent int64
	for _, p := range patterns {
		s.TotalQueries += p.Frequency
		totalTime += p.TotalTimeMs
		if p.AvgTimeMs > SlowQueryThresholdMs {
			s.SlowQueries += p.Frequency
		}
		if p.CostCategory == entity.CostHigh {
			s.HighCostPatterns++
		}
		if p.Frequency >= highFrequency {
			frequent++
		}
	}
	if s.TotalQueries > 0 {
		s.AvgTimeMs = float64(totalTime) / float64(s.TotalQueries)
	}

	var hourly [24]int64
	peakWindows := 0
	for _, b := range buckets {
		if b.Hour >= 0 && b.Hour < len(hourly) {
			hourly[b.Hour] += b.Count
		}
		if b.Peak {
			peakWindows++
		}
	}
	var best int64
	for hour, count := range hourly {
		if count > best {
			best = count
			s.PeakHour = hour
		}
	}

	slowJoins := 0
	for _, j := range joins {
		if j.AvgTimeMs > slowJoinAvgTimeMs && j.Count >= slowJoinMinCount {
			slowJoins++
		}
	}

	if len(patterns) > 0 {
		s.Insights = append(s.Insights,
			fmt.Sprintf("%d unique query patterns, %d of them run %d or more times", len(patterns), frequent, highFrequency))
	}
	if s.SlowQueries > 0 {
		s.Insights = append(s.Insights,
			fmt.Sprintf("%d queries belong to patterns averaging over %.0fms", s.SlowQueries, SlowQueryThresholdMs))
	}
	if s.AvgTimeMs > highAverageTimeMs {
		s.Insights = append(s.Insights,
			fmt.Sprintf("average execution time is high at %.1fms", s.AvgTimeMs))
	}
	if slowJoins > 0 {
		s.Insights = append(s.Insights,
			fmt.Sprintf("%d frequent joins average over %.0fms, check their join columns are indexed", slowJoins, slowJoinAvgTimeMs))
	}
	if s.HighCostPatterns > 0 {
		s.Insights = append(s.Insights,
			fmt.Sprintf("%d patterns have a high estimated cost", s.HighCostPatterns))
	}
	if peakWindows > 0 {
		s.Insights = append(s.Insights,
			fmt.Sprintf("%d hour/day windows are busy and slow, consider caching or scheduling heavy work elsewhere", peakWindows))
	}
	return s
}

// Summary summarizes patterns together with the aggregator's join and time
// statistics.
func (a *Aggregator) Summary(patterns []entity.Pattern) entity.AnalysisSummary {
	return Summarize(patterns, a.Joins(), a.TimeBuckets())
}
