// Package analyzer turns raw query records into patterns and the column, join
// and time statistics the recommender, detector and predictor consume.
package analyzer

import (
	"strings"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

// Placeholder replaces every masked literal in a fingerprint.
const Placeholder = "?"

// collapsedList replaces literal-only IN lists so their length does not matter.
const collapsedList = "(?+)"

// Fingerprint returns the canonical shape of text: literals masked, keywords
// upper case, identifiers lower case and whitespace collapsed. Empty or
// unparseable text yields the bare placeholder.
func Fingerprint(text string) string {
	fp, _ := Normalize(text)
	return fp
}

// Normalize is Fingerprint plus the number of literals that were masked.
func Normalize(text string) (string, int) {
	return render(tokenize(text))
}

// GroupKey returns the aggregation key for text along with its fingerprint.
// Queries with masked literals group by fingerprint; literal-free queries fall
// back to their statement type and empty text goes to the unknown pattern.
func GroupKey(text string) (key, fingerprint string) {
	fp, masked := Normalize(text)
	return groupKey(text, fp, masked)
}

func groupKey(text, fp string, masked int) (string, string) {
	if strings.TrimSpace(text) == "" {
		return entity.UnknownPatternKey, Placeholder
	}
	if masked == 0 {
		return entity.StatementTypeOf(text), fp
	}
	return fp, fp
}

func render(tokens []token) (string, int) {
	if len(tokens) == 0 {
		return Placeholder, 0
	}

	var b strings.Builder
	masked := 0
	var prev *token
	write := func(t token, s string) {
		if prev != nil && needsSpace(*prev, t) {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		tt := t
		prev = &tt
	}

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.kind {
		case tokNumber, tokString, tokParam:
			masked++
			write(t, Placeholder)
		case tokWord:
			if isKeyword(t.text) {
				write(t, strings.ToUpper(t.text))
				if t.is("IN") {
					if n, end := literalList(tokens, i+1); n > 0 {
						masked += n
						write(token{kind: tokParam, text: collapsedList}, collapsedList)
						i = end
					}
				}
				if t.is("VALUES") {
					i = skipRepeatedTuples(tokens, i+1, write, &masked)
				}
				continue
			}
			write(t, strings.ToLower(t.text))
		case tokIdent:
			write(t, strings.ToLower(t.text))
		default:
			write(t, t.text)
		}
	}
	return b.String(), masked
}

// literalList reports how many literals sit in a parenthesised literal-only
// list starting at tokens[start] and the index of its closing parenthesis.
func literalList(tokens []token, start int) (int, int) {
	if start >= len(tokens) || !tokens[start].isPunct("(") {
		return 0, start
	}
	n := 0
	expectLiteral := true
	for i := start + 1; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case expectLiteral && t.isLiteral():
			n++
			expectLiteral = false
		case !expectLiteral && t.isPunct(","):
			expectLiteral = true
		case !expectLiteral && t.isPunct(")"):
			return n, i
		default:
			return 0, start
		}
	}
	return 0, start
}

// skipRepeatedTuples writes the first VALUES tuple and drops further
// literal-only tuples, so multi-row inserts share a fingerprint. It returns
// the index of the last consumed token.
func skipRepeatedTuples(tokens []token, start int, write func(token, string), masked *int) int {
	n, end := literalList(tokens, start)
	if n == 0 {
		return start - 1
	}
	write(tokens[start], "(")
	for j := start + 1; j <= end; j++ {
		t := tokens[j]
		if t.isLiteral() {
			write(t, Placeholder)
			continue
		}
		write(t, t.text)
	}
	*masked += n

	i := end
	for i+1 < len(tokens) && tokens[i+1].isPunct(",") {
		more, next := literalList(tokens, i+2)
		if more == 0 {
			break
		}
		*masked += more
		i = next
	}
	return i
}

func needsSpace(prev, cur token) bool {
	switch {
	case cur.isPunct(","), cur.isPunct(")"), cur.isPunct("."), cur.isPunct(";"):
		return false
	case prev.isPunct("("), prev.isPunct("."):
		return false
	case cur.isPunct("(") && prev.kind == tokWord && !isKeyword(prev.text):
		return false
	}
	return true
}
