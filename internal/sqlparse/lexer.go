// Package sqlparse recovers fragments of source text from stored CREATE
// statements: generated column expressions, virtual table module names, and
// view SELECT bodies. The catalog pragmas do not expose these, so the stored
// SQL is the only place they exist.
//
// This is not a SQL parser. It tokenizes just enough to track nesting and
// tell strings and quoted identifiers from keywords, and every entry point
// degrades to an empty result when the statement does not match the shape it
// expects.
package sqlparse

// ---------------------------------------------------------------------------
// Token types
// ---------------------------------------------------------------------------

type tokenType int

const (
	tokWord   tokenType = iota // bare word: identifier or keyword
	tokQuoted                  // quoted identifier: "x", [x], `x`
	tokString                  // string literal: 'x'
	tokNumber
	tokLParen
	tokRParen
	tokComma
	tokOther // any other punctuation or operator byte
)

type token struct {
	typ   tokenType
	value string // unescaped text for quoted identifiers, raw text otherwise
	pos   int    // byte offset of the token in the input
	end   int    // byte offset just past the token
}

// isKeyword reports whether the token is the given bare keyword. Quoted
// identifiers never match, so a column named "as" stays a column.
func (t token) isKeyword(word string) bool {
	return t.typ == tokWord && equalFold(t.value, word)
}

// equalFold is ASCII-only case-insensitive comparison. SQL keywords and
// identifier matching in SQLite fold ASCII only.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'a' && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if cb >= 'a' && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Tokenizer
// ---------------------------------------------------------------------------

// tokenize splits a CREATE statement into tokens. It never fails: an
// unterminated string or quote runs to the end of the input.
func tokenize(input string) []token {
	var tokens []token
	i := 0
	n := len(input)

	for i < n {
		ch := input[i]

		// Whitespace.
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v' {
			i++
			continue
		}

		// Line comment.
		if ch == '-' && i+1 < n && input[i+1] == '-' {
			for i < n && input[i] != '\n' {
				i++
			}
			continue
		}

		// Block comment.
		if ch == '/' && i+1 < n && input[i+1] == '*' {
			i += 2
			for i+1 < n && !(input[i] == '*' && input[i+1] == '/') {
				i++
			}
			if i+1 < n {
				i += 2
			} else {
				i = n
			}
			continue
		}

		switch ch {
		case '(':
			tokens = append(tokens, token{typ: tokLParen, value: "(", pos: i, end: i + 1})
			i++
			continue
		case ')':
			tokens = append(tokens, token{typ: tokRParen, value: ")", pos: i, end: i + 1})
			i++
			continue
		case ',':
			tokens = append(tokens, token{typ: tokComma, value: ",", pos: i, end: i + 1})
			i++
			continue
		}

		// String literal with '' escapes.
		if ch == '\'' {
			start := i
			i++
			for i < n {
				if input[i] == '\'' {
					if i+1 < n && input[i+1] == '\'' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			tokens = append(tokens, token{typ: tokString, value: input[start:i], pos: start, end: i})
			continue
		}

		// Quoted identifiers: "x" with "" escapes, [x], `x` with `` escapes.
		if ch == '"' || ch == '`' {
			start := i
			i++
			var val []byte
			for i < n {
				if input[i] == ch {
					if i+1 < n && input[i+1] == ch {
						val = append(val, ch)
						i += 2
						continue
					}
					i++
					break
				}
				val = append(val, input[i])
				i++
			}
			tokens = append(tokens, token{typ: tokQuoted, value: string(val), pos: start, end: i})
			continue
		}
		if ch == '[' {
			start := i
			i++
			for i < n && input[i] != ']' {
				i++
			}
			val := input[start+1 : i]
			if i < n {
				i++
			}
			tokens = append(tokens, token{typ: tokQuoted, value: val, pos: start, end: i})
			continue
		}

		// Number.
		if ch >= '0' && ch <= '9' {
			start := i
			for i < n && (input[i] >= '0' && input[i] <= '9' || input[i] == '.' ||
				input[i] == 'e' || input[i] == 'E' || input[i] == 'x' || input[i] == 'X' ||
				input[i] >= 'a' && input[i] <= 'f' || input[i] >= 'A' && input[i] <= 'F') {
				i++
			}
			tokens = append(tokens, token{typ: tokNumber, value: input[start:i], pos: start, end: i})
			continue
		}

		// Bare word. Bytes >= 0x80 keep multibyte identifiers together.
		if ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= 0x80 {
			start := i
			for i < n {
				c := input[i]
				if c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
					c >= '0' && c <= '9' || c >= 0x80 {
					i++
					continue
				}
				break
			}
			tokens = append(tokens, token{typ: tokWord, value: input[start:i], pos: start, end: i})
			continue
		}

		tokens = append(tokens, token{typ: tokOther, value: string(ch), pos: i, end: i + 1})
		i++
	}

	return tokens
}
