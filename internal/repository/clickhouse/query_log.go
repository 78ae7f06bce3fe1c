package clickhouse

import (
	"context"
	"database/sql"
	"strings"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
)

// SourceName tags records and runs read from system.query_log.
const SourceName = "clickhouse"

const queryLogSQL = `
SELECT
    query,
    query_duration_ms,
    toUnixTimestamp64Milli(event_time_microseconds) AS ts,
    arrayStringConcat(tables, ',')                  AS tables,
    read_rows
FROM system.query_log
WHERE
    type = 'QueryFinish'
    AND is_initial_query = 1
    AND event_time >= now() - toIntervalSecond(?)
ORDER BY event_time_microseconds
LIMIT ?`

type Options struct {
	Addr        string
	Database    string
	Username    string
	Password    string
	DialTimeout time.Duration
}

// Open returns a database/sql handle backed by the native ClickHouse
// protocol. No connection is made until first use.
func Open(opts Options) *sql.DB {
	return ch.OpenDB(&ch.Options{
		Addr: []string{opts.Addr},
		Auth: ch.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout: opts.DialTimeout,
	})
}

type queryLogReader struct {
	db *sql.DB
}

func NewQueryLogReader(db *sql.DB) querylog.Reader {
	return &queryLogReader{db: db}
}

func (r *queryLogReader) Source() string {
	return SourceName
}

// ReadQueryLog returns finished initial queries of the last lookback, oldest
// first. Zero values select the defaults; values above the maxima are
// rejected.
func (r *queryLogReader) ReadQueryLog(ctx context.Context, lookback time.Duration, limit int) ([]*entity.QueryRecord, error) {
	funcName := "QueryLogReader.ReadQueryLog"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	lookback, limit, err := querylog.Window(lookback, limit)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryLogSQL, int64(lookback.Seconds()), limit)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	var records []*entity.QueryRecord
	for rows.Next() {
		var (
			query       string
			durationMs  int64
			timestampMs int64
			tables      string
			readRows    int64
		)
		if err := rows.Scan(&query, &durationMs, &timestampMs, &tables, &readRows); err != nil {
			return nil, errwrap.Wrap(err, funcName)
		}
		records = append(records, &entity.QueryRecord{
			Source:          SourceName,
			Query:           query,
			ExecutionTimeMs: durationMs,
			Timestamp:       timestampMs,
			Tables:          splitTables(tables),
			RowsScanned:     readRows,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return records, nil
}

func (r *queryLogReader) ServerVersion(ctx context.Context) (string, error) {
	funcName := "QueryLogReader.ServerVersion"
	if err := helper.CheckDeadline(ctx); err != nil {
		return "", errwrap.Wrap(err, funcName)
	}

	var version string
	if err := r.db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", errwrap.Wrap(err, funcName)
	}
	return version, nil
}

// splitTables turns "db.users,db.orders" into ["users", "orders"].
func splitTables(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	tables := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if i := strings.LastIndexByte(p, '.'); i >= 0 {
			p = p[i+1:]
		}
		p = strings.Trim(p, "`")
		if p != "" {
			tables = append(tables, p)
		}
	}
	return tables
}
