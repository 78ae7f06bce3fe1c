package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokParam
	tokOperator
	tokPunct
)

type token struct {
	kind tokenKind
	text string
}

func (t token) isLiteral() bool {
	return t.kind == tokNumber || t.kind == tokString || t.kind == tokParam
}

// is reports whether t is the keyword kw, ignoring case.
func (t token) is(kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (t token) isPunct(p string) bool {
	return t.kind == tokPunct && t.text == p
}

// name returns the identifier text of a word or quoted identifier, lower case.
func (t token) name() string {
	return strings.ToLower(t.text)
}

func (t token) isIdentifier() bool {
	switch t.kind {
	case tokIdent:
		return true
	case tokWord:
		return !isKeyword(t.text)
	}
	return false
}

var multiCharOperators = []string{"<=>", "<=", ">=", "<>", "!=", "==", "||", "::"}

// tokenize splits SQL text into tokens. It never fails: unterminated strings
// and comments run to the end of the input and unknown runes become
// punctuation.
func tokenize(text string) []token {
	tokens := make([]token, 0, len(text)/4)
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++
		case c == '-' && i+1 < len(text) && text[i+1] == '-', c == '#':
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				return tokens
			}
			i += end + 1
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return tokens
			}
			i += end + 4
		case c == '\'' || c == '"':
			end := scanQuoted(text, i, c)
			tokens = append(tokens, token{kind: tokString, text: text[i:end]})
			i = end
		case c == '`':
			end := scanQuoted(text, i, c)
			tokens = append(tokens, token{kind: tokIdent, text: strings.Trim(text[i:end], "`")})
			i = end
		case isDigit(c) || (c == '.' && i+1 < len(text) && isDigit(text[i+1])):
			end := scanNumber(text, i)
			tokens = append(tokens, token{kind: tokNumber, text: text[i:end]})
			i = end
		case (c == '-' || c == '+') && i+1 < len(text) && isDigit(text[i+1]) && signAllowed(tokens):
			end := scanNumber(text, i+1)
			tokens = append(tokens, token{kind: tokNumber, text: text[i:end]})
			i = end
		case c == '?':
			tokens = append(tokens, token{kind: tokParam, text: "?"})
			i++
		case (c == '$' || c == ':') && i+1 < len(text) && isWordByte(text[i+1]) && text[i+1] != '$':
			end := i + 1
			for end < len(text) && isWordByte(text[end]) {
				end++
			}
			tokens = append(tokens, token{kind: tokParam, text: text[i:end]})
			i = end
		case c < utf8.RuneSelf && (isWordByte(c) || c == '@'):
			end := i + 1
			for end < len(text) && (isWordByte(text[end]) || text[end] >= utf8.RuneSelf) {
				end++
			}
			tokens = append(tokens, token{kind: tokWord, text: text[i:end]})
			i = end
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(text[i:])
			if unicode.IsLetter(r) {
				end := i + size
				for end < len(text) && (isWordByte(text[end]) || text[end] >= utf8.RuneSelf) {
					end++
				}
				tokens = append(tokens, token{kind: tokWord, text: text[i:end]})
				i = end
				continue
			}
			tokens = append(tokens, token{kind: tokPunct, text: text[i : i+size]})
			i += size
		default:
			op := ""
			for _, candidate := range multiCharOperators {
				if strings.HasPrefix(text[i:], candidate) {
					op = candidate
					break
				}
			}
			if op == "" && (c == '=' || c == '<' || c == '>' || c == '!') {
				op = string(c)
			}
			if op != "" {
				tokens = append(tokens, token{kind: tokOperator, text: op})
				i += len(op)
				continue
			}
			tokens = append(tokens, token{kind: tokPunct, text: string(c)})
			i++
		}
	}
	return tokens
}

// scanQuoted returns the index just past the closing quote. Doubled quotes and
// backslash escapes stay inside the literal.
func scanQuoted(text string, start int, quote byte) int {
	i := start + 1
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case quote:
			if i+1 < len(text) && text[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(text)
}

func scanNumber(text string, start int) int {
	i := start
	if i+1 < len(text) && text[i] == '0' && (text[i+1] == 'x' || text[i+1] == 'X') {
		i += 2
		for i < len(text) && isHexDigit(text[i]) {
			i++
		}
		return i
	}
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			i = j
			for i < len(text) && isDigit(text[i]) {
				i++
			}
		}
	}
	return i
}

// signAllowed reports whether a leading +/- belongs to a number rather than
// being a binary operator.
func signAllowed(prev []token) bool {
	if len(prev) == 0 {
		return true
	}
	last := prev[len(prev)-1]
	switch last.kind {
	case tokOperator:
		return true
	case tokPunct:
		return last.text == "(" || last.text == ","
	case tokWord:
		return isKeyword(last.text)
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

var keywords = map[string]struct{}{}

func init() {
	for _, kw := range strings.Fields(`
		ALL AND ANY AS ASC BETWEEN BY CASE CROSS DELETE DESC DISTINCT ELSE END
		EXCEPT EXISTS FALSE FETCH FOR FROM FULL GROUP HAVING ILIKE IN INNER INSERT
		INTERSECT INTO IS JOIN LEFT LIKE LIMIT NATURAL NOT NULL OFFSET ON OR ORDER
		OUTER RETURNING RIGHT SELECT SET THEN TRUE UNION UPDATE USING VALUES WHEN
		WHERE WITH REPLACE IGNORE DUPLICATE LOCK NULLS INTERVAL OVER PARTITION
		UNBOUNDED PRECEDING FOLLOWING STRAIGHT_JOIN SQL_CALC_FOUND_ROWS
		HIGH_PRIORITY LOW_PRIORITY DELAYED REGEXP RLIKE SOME ESCAPE COLLATE`) {
		keywords[kw] = struct{}{}
	}
}

func isKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}
