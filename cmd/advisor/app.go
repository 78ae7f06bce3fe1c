package main

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-query-advisor/config"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/metrics"
	"github.com/rahmatrdn/go-query-advisor/internal/publisher"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/clickhouse"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/doris"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/sqlite"
	"github.com/rahmatrdn/go-query-advisor/internal/usecase"
)

// app holds every long-lived dependency built from one Config.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry

	db        *gorm.DB
	logDB     *sql.DB
	queryLog  querylog.Reader
	publisher publisher.Publisher

	advisor      usecase.AdvisorUsecase
	reports      usecase.ReportUsecase
	suppressions usecase.SuppressionUsecase
	indexes      usecase.IndexCatalogUsecase
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := helper.NewLogger(cfg.Logging())
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		registry:  prometheus.NewRegistry(),
		publisher: publisher.Noop{},
	}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) init() error {
	db, err := sqlite.Open(a.cfg.SQLitePath)
	if err != nil {
		return err
	}
	a.db = db

	if err := a.openQueryLog(); err != nil {
		return err
	}

	if a.cfg.AMQP.Enabled() {
		pub, err := publisher.Dial(a.cfg.AMQP.URL, a.cfg.AMQP.Exchange, a.logger)
		if err != nil {
			return err
		}
		a.publisher = pub
	}

	runRepo := sqlite.NewRunRepository(db)
	recordRepo := sqlite.NewQueryRecordRepository(db)
	suppressionRepo := sqlite.NewSuppressionRepository(db)
	indexRepo := sqlite.NewExistingIndexRepository(db)

	advisor, err := usecase.NewAdvisorUsecase(
		a.cfg.Analysis.Usecase(),
		runRepo,
		recordRepo,
		suppressionRepo,
		indexRepo,
		a.queryLog,
		a.publisher,
		metrics.NewMetrics(a.registry),
		a.logger,
	)
	if err != nil {
		return err
	}
	a.advisor = advisor
	a.reports = usecase.NewReportUsecase(runRepo, recordRepo)
	a.suppressions = usecase.NewSuppressionUsecase(suppressionRepo)
	a.indexes = usecase.NewIndexCatalogUsecase(indexRepo)
	return nil
}

// openQueryLog leaves queryLog nil when the selected source has no address.
func (a *app) openQueryLog() error {
	switch a.cfg.QueryLogSource {
	case clickhouse.SourceName:
		if !a.cfg.ClickHouse.Enabled() {
			return nil
		}
		a.logDB = clickhouse.Open(a.cfg.ClickHouse.Options())
		a.queryLog = clickhouse.NewQueryLogReader(a.logDB)
	case doris.SourceName:
		if !a.cfg.Doris.Enabled() {
			return nil
		}
		db, err := doris.Open(a.cfg.Doris.Options())
		if err != nil {
			return err
		}
		a.logDB = db
		a.queryLog = doris.NewAuditLogReader(db)
	}
	return nil
}

func (a *app) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("closing publisher", zap.Error(err))
		}
	}
	if a.logDB != nil {
		if err := a.logDB.Close(); err != nil {
			a.logger.Warn("closing query log source", zap.Error(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
