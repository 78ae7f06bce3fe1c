package clickhouse

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
)

var queryLogPattern = regexp.QuoteMeta("FROM system.query_log")

func newMockReader(t *testing.T) (querylog.Reader, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewQueryLogReader(db), mock
}

func TestReadQueryLog(t *testing.T) {
	reader, mock := newMockReader(t)

	rows := sqlmock.NewRows([]string{"query", "query_duration_ms", "ts", "tables", "read_rows"}).
		AddRow("SELECT * FROM users WHERE id = 1", int64(150), int64(1710000000000), "default.users", int64(1000)).
		AddRow("SELECT * FROM orders o JOIN users u ON o.uid = u.id", int64(900), int64(1710000001000), "shop.orders,default.users", int64(50000)).
		AddRow("SELECT 1", int64(0), int64(1710000002000), "", int64(1))
	mock.ExpectQuery(queryLogPattern).
		WithArgs(int64(7200), 10).
		WillReturnRows(rows)

	records, err := reader.ReadQueryLog(context.Background(), 2*time.Hour, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, SourceName, reader.Source())
	assert.Equal(t, SourceName, records[0].Source)
	assert.Equal(t, "SELECT * FROM users WHERE id = 1", records[0].Query)
	assert.EqualValues(t, 150, records[0].ExecutionTimeMs)
	assert.EqualValues(t, 1710000000000, records[0].Timestamp)
	assert.EqualValues(t, 1000, records[0].RowsScanned)
	assert.Equal(t, []string{"users"}, records[0].Tables)
	assert.Equal(t, []string{"orders", "users"}, records[1].Tables)
	assert.Nil(t, records[2].Tables)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadQueryLogDefaults(t *testing.T) {
	reader, mock := newMockReader(t)
	mock.ExpectQuery(queryLogPattern).
		WithArgs(int64(querylog.DefaultLookback.Seconds()), querylog.DefaultLimit).
		WillReturnRows(sqlmock.NewRows([]string{"query", "query_duration_ms", "ts", "tables", "read_rows"}))

	records, err := reader.ReadQueryLog(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadQueryLogRejectsLargeWindows(t *testing.T) {
	reader, mock := newMockReader(t)

	_, err := reader.ReadQueryLog(context.Background(), querylog.MaxLookback+time.Second, 10)
	assert.ErrorContains(t, err, "lookback too large")

	_, err = reader.ReadQueryLog(context.Background(), time.Hour, querylog.MaxLimit+1)
	assert.ErrorContains(t, err, "limit too large")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadQueryLogErrors(t *testing.T) {
	reader, mock := newMockReader(t)
	boom := errors.New("connection refused")
	mock.ExpectQuery(queryLogPattern).WillReturnError(boom)

	_, err := reader.ReadQueryLog(context.Background(), time.Hour, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "QueryLogReader.ReadQueryLog")

	mock.ExpectQuery(queryLogPattern).WillReturnRows(
		sqlmock.NewRows([]string{"query", "query_duration_ms", "ts", "tables", "read_rows"}).
			AddRow("SELECT 1", "not a number", int64(0), "", int64(0)))
	_, err = reader.ReadQueryLog(context.Background(), time.Hour, 10)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = reader.ReadQueryLog(ctx, time.Hour, 10)
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServerVersion(t *testing.T) {
	reader, mock := newMockReader(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version()")).
		WillReturnRows(sqlmock.NewRows([]string{"version()"}).AddRow("24.3.1.1"))

	version, err := reader.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "24.3.1.1", version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitTables(t *testing.T) {
	assert.Equal(t, []string{"users", "orders"}, splitTables("db.users, `orders`"))
	assert.Nil(t, splitTables(""))
	assert.Empty(t, splitTables(" , "))
}
