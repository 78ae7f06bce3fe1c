package recommender

import (
	"math"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

const (
	// one key plus a row pointer per indexed value
	bytesPerIndexEntry = 16.0
	bytesPerMB         = 1 << 20

	// storage below a megabyte is not allowed to inflate the ROI
	minROIStorageMB = 1.0
)

// ROI verdicts.
const (
	VerdictExcellent = "excellent ROI, highly recommended"
	VerdictGood      = "good ROI, recommended"
	VerdictModerate  = "moderate ROI, consider carefully"
	VerdictLow       = "low ROI, not recommended"
)

// Simulate models an index over columns for pattern p: the predicted time
// after the estimated improvement, the storage the index costs and the
// improvement bought per megabyte. coverage is the share of rows the index
// holds, 1 for a full index.
func Simulate(p entity.Pattern, columns int, improvementPct, coverage float64) entity.IndexSimulation {
	columns = max(columns, 1)
	coverage = math.Max(0, math.Min(coverage, 1))
	rows := math.Max(p.AvgRowsScanned, 0)

	sim := entity.IndexSimulation{
		CurrentTimeMs:   p.AvgTimeMs,
		PredictedTimeMs: p.AvgTimeMs * (1 - improvementPct/100),
		ImprovementPct:  improvementPct,
		Confidence:      (columnConfidence(columns) + rowConfidence(rows)) / 2,
		StorageCostMB:   rows * coverage * float64(columns) * bytesPerIndexEntry / bytesPerMB,
	}
	sim.ROIScore = improvementPct / math.Max(sim.StorageCostMB, minROIStorageMB)
	switch {
	case sim.ROIScore > 50:
		sim.Verdict = VerdictExcellent
	case sim.ROIScore > 20:
		sim.Verdict = VerdictGood
	case sim.ROIScore > 10:
		sim.Verdict = VerdictModerate
	default:
		sim.Verdict = VerdictLow
	}
	return sim
}

func columnConfidence(columns int) float64 {
	switch {
	case columns == 1:
		return 0.9
	case columns <= 3:
		return 0.8
	}
	return 0.6
}

func rowConfidence(rows float64) float64 {
	switch {
	case rows > 10_000:
		return 0.9
	case rows > 1_000:
		return 0.8
	}
	return 0.6
}
