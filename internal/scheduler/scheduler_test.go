package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	errwrap "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

type fakeAnalyzer struct {
	calls    atomic.Int32
	lookback atomic.Int64
	err      error
}

func (f *fakeAnalyzer) AnalyzeQueryLog(ctx context.Context, lookback time.Duration) (*entity.AnalysisReport, error) {
	f.calls.Add(1)
	f.lookback.Store(int64(lookback))
	if _, ok := ctx.Deadline(); !ok {
		return nil, errwrap.New("missing deadline")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &entity.AnalysisReport{Run: entity.AnalysisRun{ID: "run"}}, nil
}

func TestSchedulerRunsAnalysis(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	s, err := New(Config{Interval: 20 * time.Millisecond, Lookback: 30 * time.Minute, RunOnStart: true}, analyzer, nil)
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return analyzer.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Shutdown())

	assert.Equal(t, int64(30*time.Minute), analyzer.lookback.Load())
}

func TestSchedulerSurvivesFailures(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errwrap.New("clickhouse down")}
	s, err := New(Config{Interval: 20 * time.Millisecond, Lookback: time.Minute, RunOnStart: true}, analyzer, nil)
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return analyzer.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Shutdown())
}

func TestSchedulerConfigValidation(t *testing.T) {
	_, err := New(Config{Interval: 0, Lookback: time.Minute}, &fakeAnalyzer{}, nil)
	require.Error(t, err)
	assert.True(t, errwrap.Is(err, helper.ErrInvalidConfig))

	_, err = New(Config{Interval: time.Minute, Lookback: time.Minute, Timeout: -time.Second}, &fakeAnalyzer{}, nil)
	assert.True(t, errwrap.Is(err, helper.ErrInvalidConfig))
}
