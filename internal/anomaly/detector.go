// Package anomaly flags patterns whose recent execution times drifted above
// their own historical baseline.
package anomaly

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

type Config struct {
	RecentWindow   int     `validate:"min=1"`
	RatioThreshold float64 `validate:"gte=1"`
	MinSamples     int     `validate:"min=1"`
}

func DefaultConfig() Config {
	return Config{
		RecentWindow:   5,
		RatioThreshold: 2.0,
		MinSamples:     10,
	}
}

type Detector struct {
	cfg Config
}

func New(cfg Config) (*Detector, error) {
	if err := helper.ValidateConfig("anomaly", cfg); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Detect compares the mean of recent against the mean of baseline. It returns
// nil when the baseline is too thin to trust, when there is nothing recent or
// when the ratio stays within the threshold.
func (d *Detector) Detect(p entity.Pattern, recent, baseline []float64) *entity.AnomalyFlag {
	if len(baseline) < d.cfg.MinSamples || len(recent) == 0 {
		return nil
	}
	return d.compare(p, stat.Mean(recent, nil), stat.Mean(baseline, nil), len(recent), len(baseline))
}

// DetectSeries splits series into a baseline and its last RecentWindow values.
func (d *Detector) DetectSeries(p entity.Pattern, series []float64) *entity.AnomalyFlag {
	if len(series) <= d.cfg.RecentWindow {
		return nil
	}
	cut := len(series) - d.cfg.RecentWindow
	return d.Detect(p, series[cut:], series[:cut])
}

// DetectRunning judges p from its last RecentWindow timings alone. The
// baseline mean comes from the pattern's running totals with the recent sum
// taken out, so earlier timings are never revisited.
func (d *Detector) DetectRunning(p entity.Pattern, recent []float64) *entity.AnomalyFlag {
	w := d.cfg.RecentWindow
	if len(recent) < w || p.Frequency <= int64(w) {
		return nil
	}
	recent = recent[len(recent)-w:]
	baselineN := p.Frequency - int64(w)
	if baselineN < int64(d.cfg.MinSamples) {
		return nil
	}
	recentMean := stat.Mean(recent, nil)
	baseMean := (float64(p.TotalTimeMs) - recentMean*float64(w)) / float64(baselineN)
	return d.compare(p, recentMean, baseMean, w, int(baselineN))
}

func (d *Detector) compare(p entity.Pattern, recentMean, baseMean float64, recentN, baselineN int) *entity.AnomalyFlag {
	if baseMean <= 0 || math.IsNaN(baseMean) {
		return nil
	}
	ratio := recentMean / baseMean
	if !(ratio > d.cfg.RatioThreshold) {
		return nil
	}

	severity := entity.SeverityWarn
	if ratio >= 2*d.cfg.RatioThreshold {
		severity = entity.SeverityCritical
	}
	return &entity.AnomalyFlag{
		PatternKey:      p.Key,
		StatementType:   p.StatementType,
		BaselineAvgMs:   baseMean,
		RecentAvgMs:     recentMean,
		Ratio:           ratio,
		BaselineSamples: baselineN,
		RecentSamples:   recentN,
		Severity:        severity,
		Score:           math.Min(ratio/(2*d.cfg.RatioThreshold), 1),
		Description: fmt.Sprintf("recent average %.1fms is %.1fx the baseline of %.1fms over %d samples",
			recentMean, ratio, baseMean, baselineN),
	}
}

// DetectAll runs DetectRunning over every pattern with the recent timings
// returned for its key. Flags are ordered by score, then pattern key.
func (d *Detector) DetectAll(patterns []entity.Pattern, recent func(key string) []float64) []entity.AnomalyFlag {
	flags := []entity.AnomalyFlag{}
	for _, p := range patterns {
		if f := d.DetectRunning(p, recent(p.Key)); f != nil {
			flags = append(flags, *f)
		}
	}
	sort.Slice(flags, func(i, j int) bool {
		if flags[i].Score != flags[j].Score {
			return flags[i].Score > flags[j].Score
		}
		return flags[i].PatternKey < flags[j].PatternKey
	})
	return flags
}

// Window is the number of recent timings a caller must retain per pattern.
func (d *Detector) Window() int {
	return d.cfg.RecentWindow
}
