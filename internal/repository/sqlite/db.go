package sqlite

import (
	errwrap "github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

// ErrDuplicate is returned when an insert collides with a unique index.
var ErrDuplicate = errwrap.New("record already exists")

// Open connects to the SQLite file at path (":memory:" for a throwaway store)
// and migrates every advisor table.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errwrap.Wrap(err, "sqlite.Open")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errwrap.Wrap(err, "sqlite.Open")
	}
	// one connection: sqlite has a single writer and every ":memory:"
	// connection would otherwise see its own empty database
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.QueryRecord{},
		&entity.AnalysisRun{},
		&entity.Pattern{},
		&entity.IndexRecommendation{},
		&entity.PartialIndexRecommendation{},
		&entity.AnomalyFlag{},
		&entity.Suppression{},
		&entity.ExistingIndex{},
	)
	return errwrap.Wrap(err, "sqlite.AutoMigrate")
}
