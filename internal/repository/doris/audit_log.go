// Package doris reads executed statements from the Apache Doris audit log
// over the MySQL protocol.
package doris

import (
	"context"
	"database/sql"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
)

// SourceName tags records and runs read from the audit log.
const SourceName = "doris"

const auditLogSQL = "SELECT `stmt`, `query_time`, " +
	"CAST(UNIX_TIMESTAMP(`time`) * 1000 AS BIGINT) AS ts, `scan_rows` " +
	"FROM `__internal_schema`.`audit_log` " +
	"WHERE `time` >= DATE_SUB(NOW(), INTERVAL ? SECOND) AND `state` <> 'ERR' " +
	"ORDER BY `time` LIMIT ?"

type Options struct {
	Host           string
	Port           int
	User           string
	Password       string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// Open builds a pooled handle for a Doris frontend. Statements are
// interpolated client side since older frontends reject server prepares.
func Open(opts Options) (*sql.DB, error) {
	funcName := "doris.Open"
	if strings.TrimSpace(opts.Host) == "" {
		return nil, errwrap.New(funcName + ": host is required")
	}
	if opts.Port <= 0 {
		return nil, errwrap.New(funcName + ": port is required")
	}
	if strings.TrimSpace(opts.User) == "" {
		return nil, errwrap.New(funcName + ": user is required")
	}

	c := mysql.NewConfig()
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
	c.User = opts.User
	c.Passwd = opts.Password
	c.Timeout = opts.ConnectTimeout
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	c.ReadTimeout = opts.ReadTimeout
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 2 * time.Minute
	}
	c.WriteTimeout = c.ReadTimeout
	c.InterpolateParams = true
	c.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", c.FormatDSN())
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	db.SetConnMaxLifetime(2 * time.Minute)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	return db, nil
}

type auditLogReader struct {
	db *sql.DB
}

func NewAuditLogReader(db *sql.DB) querylog.Reader {
	return &auditLogReader{db: db}
}

func (r *auditLogReader) Source() string {
	return SourceName
}

// ReadQueryLog returns statements that did not fail within lookback, oldest
// first. Tables are left empty for the analyzer to extract from the text.
func (r *auditLogReader) ReadQueryLog(ctx context.Context, lookback time.Duration, limit int) ([]*entity.QueryRecord, error) {
	funcName := "AuditLogReader.ReadQueryLog"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	lookback, limit, err := querylog.Window(lookback, limit)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, auditLogSQL, int64(lookback.Seconds()), limit)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	var records []*entity.QueryRecord
	for rows.Next() {
		var (
			stmt        sql.NullString
			queryTimeMs sql.NullInt64
			timestampMs sql.NullInt64
			scanRows    sql.NullInt64
		)
		if err := rows.Scan(&stmt, &queryTimeMs, &timestampMs, &scanRows); err != nil {
			return nil, errwrap.Wrap(err, funcName)
		}
		if !stmt.Valid || strings.TrimSpace(stmt.String) == "" {
			continue
		}
		records = append(records, &entity.QueryRecord{
			Source:          SourceName,
			Query:           stmt.String,
			ExecutionTimeMs: queryTimeMs.Int64,
			Timestamp:       timestampMs.Int64,
			RowsScanned:     scanRows.Int64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return records, nil
}

func (r *auditLogReader) ServerVersion(ctx context.Context) (string, error) {
	funcName := "AuditLogReader.ServerVersion"
	if err := helper.CheckDeadline(ctx); err != nil {
		return "", errwrap.Wrap(err, funcName)
	}

	var version string
	if err := r.db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version); err != nil {
		return "", errwrap.Wrap(err, funcName)
	}
	return version, nil
}
