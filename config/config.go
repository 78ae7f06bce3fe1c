// Package config loads the advisor settings from the environment, optionally
// seeded by a .env file.
package config

import (
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	errwrap "github.com/pkg/errors"
	"github.com/subosito/gotenv"

	"github.com/rahmatrdn/go-query-advisor/internal/anomaly"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/predictor"
	"github.com/rahmatrdn/go-query-advisor/internal/recommender"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/clickhouse"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/doris"
	"github.com/rahmatrdn/go-query-advisor/internal/scheduler"
	"github.com/rahmatrdn/go-query-advisor/internal/usecase"
)

type Config struct {
	HTTPAddr       string `env:"ADVISOR_HTTP_ADDR,default=:8080" validate:"required"`
	SQLitePath     string `env:"ADVISOR_SQLITE_PATH,default=advisor.db" validate:"required"`
	LogLevel       string `env:"ADVISOR_LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	LogDevelopment bool   `env:"ADVISOR_LOG_DEVELOPMENT,default=false"`
	LogFile        string `env:"ADVISOR_LOG_FILE"`
	LogMaxSizeMB   int    `env:"ADVISOR_LOG_MAX_SIZE_MB,default=100" validate:"gte=1"`
	LogMaxBackups  int    `env:"ADVISOR_LOG_MAX_BACKUPS,default=5" validate:"gte=0"`

	// JWTSecret turns on bearer token checks for writes when set.
	JWTSecret string `env:"ADVISOR_JWT_SECRET"`

	// QueryLogSource picks the backend read by scheduled and on-demand
	// query log analyses.
	QueryLogSource string `env:"ADVISOR_QUERY_LOG_SOURCE,default=clickhouse" validate:"oneof=clickhouse doris"`

	ClickHouse ClickHouse
	Doris      Doris
	AMQP       AMQP
	Schedule   Schedule
	Analysis   Analysis
}

// ClickHouse is optional; an empty Addr disables query log ingestion.
type ClickHouse struct {
	Addr        string        `env:"ADVISOR_CLICKHOUSE_ADDR"`
	Database    string        `env:"ADVISOR_CLICKHOUSE_DATABASE,default=default"`
	Username    string        `env:"ADVISOR_CLICKHOUSE_USERNAME,default=default"`
	Password    string        `env:"ADVISOR_CLICKHOUSE_PASSWORD"`
	DialTimeout time.Duration `env:"ADVISOR_CLICKHOUSE_DIAL_TIMEOUT,default=5s" validate:"gt=0"`
}

func (c ClickHouse) Enabled() bool {
	return c.Addr != ""
}

func (c ClickHouse) Options() clickhouse.Options {
	return clickhouse.Options{
		Addr:        c.Addr,
		Database:    c.Database,
		Username:    c.Username,
		Password:    c.Password,
		DialTimeout: c.DialTimeout,
	}
}

// Doris is optional; an empty Host disables audit log ingestion.
type Doris struct {
	Host           string        `env:"ADVISOR_DORIS_HOST"`
	Port           int           `env:"ADVISOR_DORIS_PORT,default=9030" validate:"gt=0,lte=65535"`
	User           string        `env:"ADVISOR_DORIS_USER,default=root"`
	Password       string        `env:"ADVISOR_DORIS_PASSWORD"`
	ConnectTimeout time.Duration `env:"ADVISOR_DORIS_CONNECT_TIMEOUT,default=5s" validate:"gt=0"`
}

func (d Doris) Enabled() bool {
	return d.Host != ""
}

func (d Doris) Options() doris.Options {
	return doris.Options{
		Host:           d.Host,
		Port:           d.Port,
		User:           d.User,
		Password:       d.Password,
		ConnectTimeout: d.ConnectTimeout,
	}
}

// AMQP is optional; an empty URL keeps anomaly flags off the bus.
type AMQP struct {
	URL      string `env:"ADVISOR_AMQP_URL"`
	Exchange string `env:"ADVISOR_AMQP_EXCHANGE,default=query_advisor" validate:"required"`
}

func (a AMQP) Enabled() bool {
	return a.URL != ""
}

type Schedule struct {
	Enabled  bool          `env:"ADVISOR_SCHEDULE_ENABLED,default=false"`
	Interval time.Duration `env:"ADVISOR_SCHEDULE_INTERVAL,default=15m" validate:"gt=0"`
	Lookback time.Duration `env:"ADVISOR_SCHEDULE_LOOKBACK,default=1h" validate:"gt=0,lte=720h"`
}

func (s Schedule) Scheduler() scheduler.Config {
	return scheduler.Config{
		Interval:   s.Interval,
		Lookback:   s.Lookback,
		RunOnStart: true,
	}
}

type Analysis struct {
	SlownessThreshold   float64 `env:"ADVISOR_SLOWNESS_THRESHOLD,default=1000"`
	FrequencyThreshold  int64   `env:"ADVISOR_FREQUENCY_THRESHOLD,default=10"`
	HashMinEqualityUses int64   `env:"ADVISOR_HASH_MIN_EQUALITY_USES,default=100"`

	RecentWindow   int     `env:"ADVISOR_ANOMALY_RECENT_WINDOW,default=5"`
	RatioThreshold float64 `env:"ADVISOR_ANOMALY_RATIO_THRESHOLD,default=2.0"`
	MinSamples     int     `env:"ADVISOR_ANOMALY_MIN_SAMPLES,default=10"`

	CacheEnabled bool    `env:"ADVISOR_CACHE_ENABLED,default=false"`
	CacheFactor  float64 `env:"ADVISOR_CACHE_FACTOR,default=0.6"`

	SampleLimit   int `env:"ADVISOR_SAMPLE_LIMIT,default=5"`
	QueryLogLimit int `env:"ADVISOR_QUERY_LOG_LIMIT,default=50000" validate:"lte=200000"`
	HistoryLimit  int `env:"ADVISOR_HISTORY_LIMIT,default=100000"`
}

// Usecase maps the flat environment knobs onto the analysis components.
func (a Analysis) Usecase() usecase.AnalysisConfig {
	cfg := usecase.DefaultAnalysisConfig()
	cfg.Recommender = recommender.Config{
		SlownessThreshold:   a.SlownessThreshold,
		FrequencyThreshold:  a.FrequencyThreshold,
		HashMinEqualityUses: a.HashMinEqualityUses,
	}
	cfg.Anomaly = anomaly.Config{
		RecentWindow:   a.RecentWindow,
		RatioThreshold: a.RatioThreshold,
		MinSamples:     a.MinSamples,
	}
	pred := predictor.DefaultConfig()
	pred.CacheEnabled = a.CacheEnabled
	pred.CacheFactor = a.CacheFactor
	cfg.Predictor = pred
	cfg.SampleLimit = a.SampleLimit
	cfg.QueryLogLimit = a.QueryLogLimit
	cfg.HistoryLimit = a.HistoryLimit
	return cfg
}

// Load reads .env when present, decodes the environment and validates the
// result, including the analysis thresholds.
func Load() (*Config, error) {
	funcName := "config.Load"

	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errwrap.Wrap(err, funcName)
	}

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return &cfg, nil
}

func (c *Config) Logging() helper.LogOptions {
	return helper.LogOptions{
		Level:       c.LogLevel,
		Development: c.LogDevelopment,
		File:        c.LogFile,
		MaxSizeMB:   c.LogMaxSizeMB,
		MaxBackups:  c.LogMaxBackups,
	}
}

func (c *Config) Validate() error {
	if err := helper.ValidateConfig("config", c); err != nil {
		return err
	}
	return helper.ValidateConfig("analysis", c.Analysis.Usecase())
}
