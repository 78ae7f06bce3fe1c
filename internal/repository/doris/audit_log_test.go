package doris

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

var auditLogPattern = regexp.QuoteMeta("FROM `__internal_schema`.`audit_log`")

var auditLogColumns = []string{"stmt", "query_time", "ts", "scan_rows"}

func newMockReader(t *testing.T) (querylog.Reader, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAuditLogReader(db), mock
}

func TestReadAuditLog(t *testing.T) {
	reader, mock := newMockReader(t)

	rows := sqlmock.NewRows(auditLogColumns).
		AddRow("SELECT * FROM sales WHERE region = 'eu'", int64(320), int64(1710000000000), int64(120000)).
		AddRow(nil, int64(1), int64(1710000000500), int64(0)).
		AddRow("   ", int64(1), int64(1710000000600), int64(0)).
		AddRow("INSERT INTO sales VALUES (1, 'eu')", int64(15), int64(1710000001000), nil)
	mock.ExpectQuery(auditLogPattern).
		WithArgs(int64(1800), 25).
		WillReturnRows(rows)

	records, err := reader.ReadQueryLog(context.Background(), 30*time.Minute, 25)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, SourceName, reader.Source())
	assert.Equal(t, SourceName, records[0].Source)
	assert.Equal(t, "SELECT * FROM sales WHERE region = 'eu'", records[0].Query)
	assert.EqualValues(t, 320, records[0].ExecutionTimeMs)
	assert.EqualValues(t, 1710000000000, records[0].Timestamp)
	assert.EqualValues(t, 120000, records[0].RowsScanned)
	assert.Nil(t, records[0].Tables)
	assert.EqualValues(t, 0, records[1].RowsScanned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadAuditLogErrors(t *testing.T) {
	reader, mock := newMockReader(t)

	_, err := reader.ReadQueryLog(context.Background(), querylog.MaxLookback+time.Hour, 10)
	assert.ErrorContains(t, err, "lookback too large")

	boom := errors.New("access denied")
	mock.ExpectQuery(auditLogPattern).WillReturnError(boom)
	_, err = reader.ReadQueryLog(context.Background(), time.Hour, 10)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "AuditLogReader.ReadQueryLog")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogServerVersion(t *testing.T) {
	reader, mock := newMockReader(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT VERSION()")).
		WillReturnRows(sqlmock.NewRows([]string{"VERSION()"}).AddRow("5.7.99"))

	version, err := reader.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5.7.99", version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenValidatesOptions(t *testing.T) {
	_, err := Open(Options{Port: 9030, User: "root"})
	assert.ErrorContains(t, err, "host is required")

	_, err = Open(Options{Host: "fe", User: "root"})
	assert.ErrorContains(t, err, "port is required")

	_, err = Open(Options{Host: "fe", Port: 9030})
	assert.ErrorContains(t, err, "user is required")

	db, err := Open(Options{Host: "fe", Port: 9030, User: "root"})
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
