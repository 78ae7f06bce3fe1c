package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTables(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"select", "SELECT * FROM users WHERE id = 1", []string{"users"}},
		{"schema qualified", "SELECT * FROM shop.Orders o", []string{"orders"}},
		{"comma list", "SELECT * FROM a, b AS bb, c WHERE a.id = b.id", []string{"a", "b", "c"}},
		{"joins", "SELECT * FROM users u LEFT JOIN orders o ON o.user_id = u.id JOIN items i ON i.order_id = o.id", []string{"users", "orders", "items"}},
		{"insert", "INSERT INTO logs (msg) VALUES ('x')", []string{"logs"}},
		{"update", "UPDATE accounts SET balance = 0 WHERE id = 3", []string{"accounts"}},
		{"delete", "DELETE FROM sessions WHERE expires_at < 100", []string{"sessions"}},
		{"backticks", "SELECT * FROM `Events`", []string{"events"}},
		{"subquery", "SELECT * FROM (SELECT id FROM t) x", []string{"t"}},
		{"malformed", "FROM FROM JOIN (((", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTables(tt.in))
		})
	}
}

func TestExtractColumns(t *testing.T) {
	refs := ExtractColumns("SELECT * FROM users WHERE id = 1 AND created_at > 5 ORDER BY name")
	assert.Equal(t, []ColumnRef{
		{Table: "users", Column: "id", Usage: UsageEquality, Filter: "= 1"},
		{Table: "users", Column: "created_at", Usage: UsageRange},
		{Table: "users", Column: "name", Usage: UsageOrderBy},
	}, refs)

	refs = ExtractColumns("SELECT * FROM users u JOIN orders o ON o.user_id = u.id WHERE o.status IN ('a', 'b') AND u.name LIKE 'x%'")
	assert.Equal(t, []ColumnRef{
		{Table: "orders", Column: "user_id", Usage: UsageJoin},
		{Table: "users", Column: "id", Usage: UsageJoin},
		{Table: "orders", Column: "status", Usage: UsageEquality},
		{Table: "users", Column: "name", Usage: UsageRange},
	}, refs)
}

func TestExtractColumnsConstantFilters(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT * FROM t WHERE deleted_at IS NULL", "IS NULL"},
		{"SELECT * FROM t WHERE deleted_at is not null", "IS NOT NULL"},
		{"SELECT * FROM t WHERE active = true", "= TRUE"},
		{"SELECT * FROM t WHERE verified IS FALSE", "IS FALSE"},
		{"SELECT * FROM t WHERE status = 'active'", "= 'active'"},
		{"SELECT * FROM t WHERE tenant = -3", "= -3"},
		{"SELECT * FROM t WHERE id = ?", ""},
		{"SELECT * FROM t WHERE id = :id", ""},
		{"SELECT * FROM t WHERE id IN (1, 2)", ""},
		{"SELECT * FROM t WHERE total = 5 + 1", ""},
		{"SELECT * FROM t WHERE created_at > '2024-01-01'", ""},
	}
	for _, tt := range tests {
		refs := ExtractColumns(tt.query)
		require.Len(t, refs, 1, tt.query)
		assert.Equal(t, tt.want, refs[0].Filter, tt.query)
	}
}

func TestInspectNotesDisjunctions(t *testing.T) {
	assert.True(t, Inspect("SELECT * FROM t WHERE a = 1 OR b = 2").HasOr)
	assert.False(t, Inspect("SELECT * FROM t WHERE a = 1 AND b = 2").HasOr)
}

func TestExtractColumnsUnresolvedTable(t *testing.T) {
	refs := ExtractColumns("SELECT * FROM a, b WHERE flag = 1")
	require.Len(t, refs, 1)
	assert.Equal(t, "", refs[0].Table)
	assert.Equal(t, "flag", refs[0].Column)
}

func TestExtractColumnsDegradesGracefully(t *testing.T) {
	for _, text := range []string{"", "WHERE", "WHERE =", "ORDER BY", "SELECT ((( WHERE 'x", "WHERE lower(name) = 'x'"} {
		assert.NotPanics(t, func() { ExtractColumns(text) }, text)
	}
	assert.Empty(t, ExtractColumns("WHERE lower(name) = 'x'"))
}

func TestExtractJoins(t *testing.T) {
	joins := ExtractJoins([]string{"Users"}, "SELECT * FROM users u LEFT JOIN orders o ON o.user_id = u.id")
	assert.Equal(t, []JoinRef{{Left: "orders", Right: "users", JoinType: JoinLeft}}, joins)

	joins = ExtractJoins([]string{"a", "b", "c"}, "")
	assert.Equal(t, []JoinRef{
		{Left: "a", Right: "b", JoinType: JoinImplicit},
		{Left: "a", Right: "c", JoinType: JoinImplicit},
		{Left: "b", Right: "c", JoinType: JoinImplicit},
	}, joins)

	assert.Empty(t, ExtractJoins([]string{"only"}, "SELECT 1"))
}

func TestInspectCountsJoinsAndSort(t *testing.T) {
	in := Inspect("SELECT * FROM a JOIN b ON a.id = b.id JOIN c ON c.id = b.id GROUP BY a.x")
	assert.Equal(t, 2, in.JoinClauses)
	assert.True(t, in.HasSort)

	in = Inspect("SELECT * FROM a")
	assert.Zero(t, in.JoinClauses)
	assert.False(t, in.HasSort)
}

func TestBucketTime(t *testing.T) {
	// Sunday 2024-03-10 13:45 UTC
	ts := time.Date(2024, time.March, 10, 13, 45, 0, 0, time.UTC).UnixMilli()
	hour, day := BucketTime(ts)
	assert.Equal(t, 13, hour)
	assert.Equal(t, 0, day)

	hour, day = BucketTime(0)
	assert.Equal(t, 0, hour)
	assert.Equal(t, int(time.Thursday), day)
}

func TestMergeTables(t *testing.T) {
	assert.Equal(t, []string{"users", "orders"}, MergeTables([]string{"Users", " ", "users"}, []string{"orders", "USERS"}))
	assert.Empty(t, MergeTables(nil, nil))
}

func TestCostOf(t *testing.T) {
	c := CostOf(5, 1000, 0, false)
	assert.InDelta(t, 6.0, c.Total, 1e-9)
	assert.Equal(t, "low", c.Category)

	c = CostOf(50, 10000, 2, true)
	assert.InDelta(t, 10.0, c.RowScan, 1e-9)
	assert.InDelta(t, 30.0, c.Join, 1e-9)
	assert.InDelta(t, 20.0, c.Sort, 1e-9)
	assert.InDelta(t, 110.0, c.Total, 1e-9)
	assert.Equal(t, "high", c.Category)

	assert.Equal(t, "medium", CostCategory(10))
}
