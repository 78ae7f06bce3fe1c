package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	input := `{"query":"SELECT * FROM users WHERE id = 1","execution_time_ms":150,"timestamp":1700000000000,"tables":["users"],"rows_scanned":1000}

{"query":"INSERT INTO logs VALUES (1)","execution_time_ms":50,"timestamp":1700000001000,"tables":["logs"],"rows_scanned":1}
`
	records, err := readRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "SELECT * FROM users WHERE id = 1", records[0].Query)
	assert.Equal(t, int64(150), records[0].ExecutionTimeMs)
	assert.Equal(t, []string{"users"}, records[0].Tables)
	assert.Equal(t, int64(1), records[1].RowsScanned)
}

func TestReadRecordsReportsBadLine(t *testing.T) {
	_, err := readRecords(strings.NewReader("{\"query\":\"SELECT 1\"}\n{not json}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestAnalyzeCmdFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no input", args: []string{"analyze"}, want: "exactly one of"},
		{name: "both inputs", args: []string{"analyze", "--file", "x.jsonl", "--query-log"}, want: "exactly one of"},
		{name: "lookback too long", args: []string{"analyze", "--query-log", "--lookback", "1000h"}, want: "--lookback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&out)
			root.SetArgs(tt.args)

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
