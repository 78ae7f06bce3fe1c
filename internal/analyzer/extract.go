package analyzer

import (
	"sort"
	"strings"
	"time"
)

// Usage says how a column appeared in a query.
type Usage int

const (
	UsageEquality Usage = iota
	UsageRange
	UsageOrderBy
	UsageJoin
)

func (u Usage) String() string {
	switch u {
	case UsageEquality:
		return "equality"
	case UsageRange:
		return "range"
	case UsageOrderBy:
		return "order_by"
	case UsageJoin:
		return "join"
	}
	return "unknown"
}

// Join types reported for table pairs.
const (
	JoinInner    = "INNER"
	JoinLeft     = "LEFT"
	JoinRight    = "RIGHT"
	JoinFull     = "FULL"
	JoinCross    = "CROSS"
	JoinImplicit = "IMPLICIT"
)

// ColumnRef is a column referenced by a WHERE, ON or ORDER BY clause. Table is
// empty when it could not be resolved. Filter holds the comparison when the
// column is tested against a constant, such as "= 'active'" or "IS NULL".
type ColumnRef struct {
	Table  string
	Column string
	Usage  Usage
	Filter string
}

// JoinRef is an unordered table pair, Left < Right.
type JoinRef struct {
	Left     string
	Right    string
	JoinType string
}

// Inspection is everything the lexical scanners learn from one query text.
type Inspection struct {
	Fingerprint string
	Masked      int
	Tables      []string
	Columns     []ColumnRef
	JoinClauses int
	HasSort     bool
	HasOr       bool

	joinTypes map[string]string
}

// Inspect tokenizes text once and runs every extractor over the tokens.
func Inspect(text string) Inspection {
	tokens := tokenize(text)
	in := Inspection{joinTypes: map[string]string{}}
	in.Fingerprint, in.Masked = render(tokens)

	aliases := map[string]string{}
	in.Tables = scanTables(tokens, aliases, in.joinTypes)
	in.Columns = scanColumns(tokens, aliases, in.Tables)

	for i, t := range tokens {
		if t.is("JOIN") {
			in.JoinClauses++
		}
		if (t.is("ORDER") || t.is("GROUP")) && i+1 < len(tokens) && tokens[i+1].is("BY") {
			in.HasSort = true
		}
		if t.is("OR") {
			in.HasOr = true
		}
	}
	return in
}

// ExtractColumns returns the columns referenced in WHERE, ON and ORDER BY
// clauses of text. Unrecognised text yields no columns.
func ExtractColumns(text string) []ColumnRef {
	return Inspect(text).Columns
}

// ExtractTables returns FROM, JOIN, INTO and UPDATE targets in order of
// appearance.
func ExtractTables(text string) []string {
	return scanTables(tokenize(text), map[string]string{}, map[string]string{})
}

// ExtractJoins pairs every distinct table of a record, plus the tables its
// JOIN clauses name. Pairs joined by an explicit JOIN carry its type.
func ExtractJoins(tables []string, text string) []JoinRef {
	in := Inspect(text)
	return joinPairs(MergeTables(tables, in.Tables), in.joinTypes)
}

// BucketTime maps a millisecond Unix timestamp to its UTC hour of day and day
// of week, 0 being Sunday.
func BucketTime(timestampMs int64) (hour, day int) {
	t := time.UnixMilli(timestampMs).UTC()
	return t.Hour(), int(t.Weekday())
}

// MergeTables lower-cases and de-duplicates declared tables, then appends
// extracted ones that were not declared.
func MergeTables(declared, extracted []string) []string {
	seen := make(map[string]struct{}, len(declared)+len(extracted))
	out := make([]string, 0, len(declared)+len(extracted))
	for _, list := range [][]string{declared, extracted} {
		for _, t := range list {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func joinPairs(tables []string, joinTypes map[string]string) []JoinRef {
	if len(tables) < 2 {
		return nil
	}
	pairs := make([]JoinRef, 0, len(tables)*(len(tables)-1)/2)
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			a, b := tables[i], tables[j]
			joinType := joinTypes[b]
			if joinType == "" {
				joinType = joinTypes[a]
			}
			if joinType == "" {
				joinType = JoinImplicit
			}
			if b < a {
				a, b = b, a
			}
			pairs = append(pairs, JoinRef{Left: a, Right: b, JoinType: joinType})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Left != pairs[j].Left {
			return pairs[i].Left < pairs[j].Left
		}
		return pairs[i].Right < pairs[j].Right
	})
	return pairs
}

func scanTables(tokens []token, aliases, joinTypes map[string]string) []string {
	var tables []string
	seen := map[string]struct{}{}

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if !(t.is("FROM") || t.is("INTO") || t.is("UPDATE") || t.is("JOIN")) {
			continue
		}
		joinType := ""
		if t.is("JOIN") {
			joinType = joinTypeBefore(tokens, i)
		}
		list := t.is("FROM") || t.is("UPDATE")
		columnList := t.is("INTO")

		j := i + 1
		for {
			name, next, ok := tableName(tokens, j, columnList)
			if !ok {
				break
			}
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				tables = append(tables, name)
			}
			aliases[name] = name
			if _, set := joinTypes[name]; joinType != "" && !set {
				joinTypes[name] = joinType
			}

			j = next
			if j < len(tokens) && tokens[j].is("AS") {
				j++
			}
			if j < len(tokens) && tokens[j].isIdentifier() {
				aliases[tokens[j].name()] = name
				j++
			}
			if !list || j >= len(tokens) || !tokens[j].isPunct(",") {
				break
			}
			j++
		}
		i = j - 1
	}
	return tables
}

// tableName reads `name` or `schema.name` at tokens[i] and keeps the last part.
// A following parenthesis is a column list after INTO and a table function
// anywhere else.
func tableName(tokens []token, i int, columnList bool) (string, int, bool) {
	if i >= len(tokens) || !tokens[i].isIdentifier() {
		return "", i, false
	}
	name := tokens[i].name()
	i++
	for i+1 < len(tokens) && tokens[i].isPunct(".") && tokens[i+1].isIdentifier() {
		name = tokens[i+1].name()
		i += 2
	}
	if !columnList && i < len(tokens) && tokens[i].isPunct("(") {
		return "", i, false
	}
	return name, i, true
}

func joinTypeBefore(tokens []token, i int) string {
	for k := i - 1; k >= 0 && k >= i-2; k-- {
		switch {
		case tokens[k].is("OUTER"):
			continue
		case tokens[k].is("LEFT"):
			return JoinLeft
		case tokens[k].is("RIGHT"):
			return JoinRight
		case tokens[k].is("FULL"):
			return JoinFull
		case tokens[k].is("CROSS"):
			return JoinCross
		}
		break
	}
	return JoinInner
}

type clause int

const (
	clauseNone clause = iota
	clauseWhere
	clauseOn
	clauseOrderBy
)

func scanColumns(tokens []token, aliases map[string]string, tables []string) []ColumnRef {
	var refs []ColumnRef
	resolve := func(qualifier string) string {
		if qualifier != "" {
			if table, ok := aliases[qualifier]; ok {
				return table
			}
			return qualifier
		}
		if len(tables) == 1 {
			return tables[0]
		}
		return ""
	}

	state := clauseNone
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.kind == tokWord && isKeyword(t.text) {
			switch {
			case t.is("WHERE"):
				state = clauseWhere
			case t.is("ON"):
				state = clauseOn
			case t.is("ORDER") && i+1 < len(tokens) && tokens[i+1].is("BY"):
				state = clauseOrderBy
				i++
			case t.is("GROUP"), t.is("HAVING"), t.is("LIMIT"), t.is("OFFSET"), t.is("UNION"),
				t.is("SELECT"), t.is("FROM"), t.is("JOIN"), t.is("SET"), t.is("VALUES"),
				t.is("RETURNING"), t.is("FOR"), t.is("USING"):
				state = clauseNone
			}
			continue
		}
		if state == clauseNone {
			continue
		}

		qualifier, column, next, ok := columnRef(tokens, i)
		if !ok {
			continue
		}

		if state == clauseOrderBy {
			if prev := tokens[i-1]; prev.is("BY") || prev.isPunct(",") {
				refs = append(refs, ColumnRef{Table: resolve(qualifier), Column: column, Usage: UsageOrderBy})
			}
			i = next - 1
			continue
		}

		usage, rhs, matched := predicateUsage(tokens, next)
		if !matched {
			i = next - 1
			continue
		}
		if usage == UsageEquality {
			// column = column is a join condition on both sides
			if rq, rc, after, isCol := columnRef(tokens, rhs); isCol {
				refs = append(refs,
					ColumnRef{Table: resolve(qualifier), Column: column, Usage: UsageJoin},
					ColumnRef{Table: resolve(rq), Column: rc, Usage: UsageJoin},
				)
				i = after - 1
				continue
			}
		}
		ref := ColumnRef{Table: resolve(qualifier), Column: column, Usage: usage}
		if usage == UsageEquality {
			ref.Filter = constantFilter(tokens, next, rhs)
		}
		refs = append(refs, ref)
		i = next - 1
	}
	return refs
}

// constantFilter renders the comparison starting at tokens[op] when its right
// side is a single constant. Bind parameters, lists and expressions yield "".
func constantFilter(tokens []token, op, rhs int) string {
	if rhs >= len(tokens) {
		return ""
	}
	v := tokens[rhs]
	end := rhs + 1
	var out string
	switch {
	case tokens[op].is("IS"):
		switch {
		case v.is("NULL"), v.is("TRUE"), v.is("FALSE"):
			out = "IS " + strings.ToUpper(v.text)
		case v.is("NOT") && rhs+1 < len(tokens) && tokens[rhs+1].is("NULL"):
			out = "IS NOT NULL"
			end++
		default:
			return ""
		}
	case tokens[op].kind == tokOperator:
		switch {
		case v.kind == tokNumber, v.kind == tokString:
			out = "= " + v.text
		case v.is("TRUE"), v.is("FALSE"):
			out = "= " + strings.ToUpper(v.text)
		default:
			return ""
		}
	default:
		return ""
	}
	if end < len(tokens) {
		switch n := tokens[end]; {
		case n.kind == tokOperator && n.text == "||",
			n.isPunct("+"), n.isPunct("-"), n.isPunct("*"), n.isPunct("/"), n.isPunct("%"):
			return ""
		}
	}
	return out
}

// columnRef reads `column`, `table.column` or `schema.table.column` at
// tokens[i]. Function calls are not column references.
func columnRef(tokens []token, i int) (qualifier, column string, next int, ok bool) {
	if i >= len(tokens) || !tokens[i].isIdentifier() {
		return "", "", i, false
	}
	parts := []string{tokens[i].name()}
	j := i + 1
	for j+1 < len(tokens) && tokens[j].isPunct(".") && tokens[j+1].isIdentifier() {
		parts = append(parts, tokens[j+1].name())
		j += 2
	}
	if j < len(tokens) && tokens[j].isPunct("(") {
		return "", "", j, false
	}
	column = parts[len(parts)-1]
	if len(parts) > 1 {
		qualifier = parts[len(parts)-2]
	}
	return qualifier, column, j, true
}

// predicateUsage classifies the comparison starting at tokens[i] and returns
// the index of its right-hand side.
func predicateUsage(tokens []token, i int) (Usage, int, bool) {
	if i >= len(tokens) {
		return 0, i, false
	}
	t := tokens[i]
	if t.kind == tokOperator {
		switch t.text {
		case "=", "==", "<=>":
			return UsageEquality, i + 1, true
		case "<", ">", "<=", ">=", "<>", "!=":
			return UsageRange, i + 1, true
		}
		return 0, i, false
	}
	switch {
	case t.is("IN"), t.is("IS"):
		return UsageEquality, i + 1, true
	case t.is("BETWEEN"), t.is("LIKE"), t.is("ILIKE"), t.is("REGEXP"), t.is("RLIKE"):
		return UsageRange, i + 1, true
	case t.is("NOT") && i+1 < len(tokens):
		n := tokens[i+1]
		if n.is("IN") || n.is("LIKE") || n.is("ILIKE") || n.is("BETWEEN") || n.is("REGEXP") {
			return UsageRange, i + 2, true
		}
	}
	return 0, i, false
}
