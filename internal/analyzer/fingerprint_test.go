package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numeric literal", "SELECT * FROM users WHERE id = 1", "SELECT * FROM users WHERE id = ?"},
		{"case and whitespace", "select  *\n from Users   where ID=2", "SELECT * FROM users WHERE id = ?"},
		{"string literals", `SELECT name FROM users WHERE email = 'a@b.c' AND nick = "x"`, "SELECT name FROM users WHERE email = ? AND nick = ?"},
		{"escaped quote", `SELECT 1 FROM t WHERE s = 'it''s'`, "SELECT ? FROM t WHERE s = ?"},
		{"negative and float", "SELECT * FROM t WHERE a > -1.5 AND b < 2e10", "SELECT * FROM t WHERE a > ? AND b < ?"},
		{"hex", "SELECT * FROM t WHERE h = 0xFF", "SELECT * FROM t WHERE h = ?"},
		{"bind parameters", "SELECT * FROM t WHERE a = ? AND b = $1 AND c = :name", "SELECT * FROM t WHERE a = ? AND b = ? AND c = ?"},
		{"in list", "SELECT * FROM t WHERE id IN (1, 2, 3)", "SELECT * FROM t WHERE id IN (?+)"},
		{"comments dropped", "SELECT a /* hint */ FROM t -- trailing\nWHERE a = 1", "SELECT a FROM t WHERE a = ?"},
		{"function call", "SELECT COUNT(*) FROM t", "SELECT count(*) FROM t"},
		{"empty", "", Placeholder},
		{"blank", "   \n\t", Placeholder},
		{"comment only", "-- nothing here", Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fingerprint(tt.in))
		})
	}
}

func TestFingerprintIsStable(t *testing.T) {
	texts := []string{
		"SELECT * FROM users WHERE id = 1",
		"UPDATE orders SET status = 'paid' WHERE id = 42",
		"garbage ((( 'unterminated",
		"",
	}
	for _, text := range texts {
		first := Fingerprint(text)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Fingerprint(text))
		}
	}
	assert.Equal(t,
		Fingerprint("SELECT * FROM users WHERE id = 1"),
		Fingerprint("SELECT * FROM users WHERE id = 2"))
}

func TestFingerprintCollapsesListsAndTuples(t *testing.T) {
	assert.Equal(t,
		Fingerprint("SELECT * FROM t WHERE id IN (1)"),
		Fingerprint("SELECT * FROM t WHERE id IN (1, 2, 3, 4)"))
	assert.Equal(t,
		Fingerprint("INSERT INTO logs (level, msg) VALUES ('info', 'a')"),
		Fingerprint("INSERT INTO logs (level, msg) VALUES ('warn', 'b'), ('info', 'c')"))

	// a subquery is not a literal list
	assert.NotEqual(t,
		Fingerprint("SELECT * FROM t WHERE id IN (1)"),
		Fingerprint("SELECT * FROM t WHERE id IN (SELECT id FROM u)"))
}

func TestNormalizeCountsMasked(t *testing.T) {
	_, masked := Normalize("SELECT * FROM t WHERE a = 1 AND b IN ('x', 'y')")
	assert.Equal(t, 3, masked)

	_, masked = Normalize("SELECT * FROM t")
	assert.Zero(t, masked)
}

func TestGroupKey(t *testing.T) {
	key, fp := GroupKey("SELECT * FROM users WHERE id = 7")
	assert.Equal(t, "SELECT * FROM users WHERE id = ?", key)
	assert.Equal(t, key, fp)

	key, fp = GroupKey("select * from users")
	assert.Equal(t, entity.StatementSelect, key)
	assert.Equal(t, "SELECT * FROM users", fp)

	key, _ = GroupKey("VACUUM")
	assert.Equal(t, entity.StatementOther, key)

	key, fp = GroupKey("  ")
	assert.Equal(t, entity.UnknownPatternKey, key)
	assert.Equal(t, Placeholder, fp)
}
