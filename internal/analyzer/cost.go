package analyzer

import "github.com/rahmatrdn/go-query-advisor/entity"

const (
	costPerRow         = 0.001
	costJoinMultiplier = 1.5
	costSortMultiplier = 2.0
	costLowCeiling     = 10.0
	costMediumCeiling  = 100.0
)

// QueryCost splits a record's estimated cost into its components.
type QueryCost struct {
	Base     float64 `json:"base"`
	RowScan  float64 `json:"row_scan"`
	Join     float64 `json:"join"`
	Sort     float64 `json:"sort"`
	Total    float64 `json:"total"`
	Category string  `json:"category"`
}

// CostOf charges execution time, a per-row scan cost, a join surcharge per
// JOIN clause and a sort surcharge for ORDER BY or GROUP BY.
func CostOf(executionTimeMs, rowsScanned int64, joins int, hasSort bool) QueryCost {
	c := QueryCost{
		Base:    float64(executionTimeMs),
		RowScan: float64(rowsScanned) * costPerRow,
	}
	if joins > 0 {
		c.Join = c.RowScan * costJoinMultiplier * float64(joins)
	}
	if hasSort {
		c.Sort = c.RowScan * costSortMultiplier
	}
	c.Total = c.Base + c.RowScan + c.Join + c.Sort
	c.Category = CostCategory(c.Total)
	return c
}

// CostCategory buckets a total cost into low, medium or high.
func CostCategory(total float64) string {
	switch {
	case total < costLowCeiling:
		return entity.CostLow
	case total < costMediumCeiling:
		return entity.CostMedium
	}
	return entity.CostHigh
}
