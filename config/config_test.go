package config

import (
	"testing"
	"time"

	errwrap "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "advisor.db", cfg.SQLitePath)
	assert.False(t, cfg.ClickHouse.Enabled())
	assert.False(t, cfg.AMQP.Enabled())
	assert.Equal(t, 15*time.Minute, cfg.Schedule.Interval)

	analysis := cfg.Analysis.Usecase()
	assert.Equal(t, 1000.0, analysis.Recommender.SlownessThreshold)
	assert.Equal(t, int64(10), analysis.Recommender.FrequencyThreshold)
	assert.Equal(t, 5, analysis.Anomaly.RecentWindow)
	assert.Equal(t, 2.0, analysis.Anomaly.RatioThreshold)
	assert.Equal(t, 0.6, analysis.Predictor.CacheFactor)
	assert.Equal(t, 0.95, analysis.Predictor.MaxConfidence)
	assert.Equal(t, 100_000, analysis.HistoryLimit)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADVISOR_HTTP_ADDR", ":9090")
	t.Setenv("ADVISOR_CLICKHOUSE_ADDR", "ch:9000")
	t.Setenv("ADVISOR_AMQP_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("ADVISOR_SCHEDULE_LOOKBACK", "30m")
	t.Setenv("ADVISOR_SLOWNESS_THRESHOLD", "250.5")
	t.Setenv("ADVISOR_CACHE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.ClickHouse.Enabled())
	assert.Equal(t, "ch:9000", cfg.ClickHouse.Options().Addr)
	assert.Equal(t, 5*time.Second, cfg.ClickHouse.Options().DialTimeout)
	assert.True(t, cfg.AMQP.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Schedule.Scheduler().Lookback)

	analysis := cfg.Analysis.Usecase()
	assert.Equal(t, 250.5, analysis.Recommender.SlownessThreshold)
	assert.True(t, analysis.Predictor.CacheEnabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "negative slowness threshold", key: "ADVISOR_SLOWNESS_THRESHOLD", val: "-1"},
		{name: "negative frequency threshold", key: "ADVISOR_FREQUENCY_THRESHOLD", val: "-3"},
		{name: "ratio below one", key: "ADVISOR_ANOMALY_RATIO_THRESHOLD", val: "0.5"},
		{name: "zero recent window", key: "ADVISOR_ANOMALY_RECENT_WINDOW", val: "0"},
		{name: "cache factor above one", key: "ADVISOR_CACHE_FACTOR", val: "1.5"},
		{name: "unknown log level", key: "ADVISOR_LOG_LEVEL", val: "loud"},
		{name: "lookback beyond retention", key: "ADVISOR_SCHEDULE_LOOKBACK", val: "1000h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errwrap.Is(err, helper.ErrInvalidConfig))
		})
	}
}

func TestLoadRejectsUnparseableValues(t *testing.T) {
	t.Setenv("ADVISOR_SCHEDULE_INTERVAL", "often")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDorisSource(t *testing.T) {
	t.Setenv("ADVISOR_QUERY_LOG_SOURCE", "doris")
	t.Setenv("ADVISOR_DORIS_HOST", "fe.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "doris", cfg.QueryLogSource)
	assert.True(t, cfg.Doris.Enabled())
	assert.Equal(t, 9030, cfg.Doris.Options().Port)
	assert.Equal(t, "root", cfg.Doris.Options().User)

	t.Setenv("ADVISOR_QUERY_LOG_SOURCE", "postgres")
	_, err = Load()
	assert.True(t, errwrap.Is(err, helper.ErrInvalidConfig))
}
