package sqlparse

import "strings"

// GeneratedExpr returns the source text of a generated column's expression:
// the text between AS ( and its matching ) in the column's definition.
// Returns "" when the statement or the column cannot be located.
func GeneratedExpr(createSQL, column string) string {
	tokens := tokenize(createSQL)

	body := tableBody(tokens)
	if body == nil {
		return ""
	}

	for _, def := range splitDefs(body) {
		if len(def) == 0 {
			continue
		}
		name := def[0]
		if name.typ != tokWord && name.typ != tokQuoted {
			continue
		}
		if !equalFold(name.value, column) {
			continue
		}

		// AS at definition depth 0; parenthesized type arguments like
		// NUMERIC(10,2) raise the depth and are skipped over.
		depth := 0
		for i, t := range def[1:] {
			switch {
			case t.typ == tokLParen:
				depth++
			case t.typ == tokRParen:
				depth--
			case depth == 0 && t.isKeyword("AS"):
				if expr, ok := parenText(createSQL, def[1+i+1:]); ok {
					return expr
				}
			}
		}
		// Matched the name but found no expression; a table constraint like
		// CHECK can shadow a column of the same name, so keep looking.
	}
	return ""
}

// VirtualModule returns the module name from a CREATE VIRTUAL TABLE
// statement, or "" for anything else.
func VirtualModule(createSQL string) string {
	tokens := tokenize(createSQL)
	if len(tokens) < 2 || !tokens[0].isKeyword("CREATE") || !tokens[1].isKeyword("VIRTUAL") {
		return ""
	}

	depth := 0
	for i, t := range tokens {
		switch {
		case t.typ == tokLParen:
			depth++
		case t.typ == tokRParen:
			depth--
		case depth == 0 && t.isKeyword("USING"):
			if i+1 < len(tokens) {
				next := tokens[i+1]
				if next.typ == tokWord || next.typ == tokQuoted {
					return next.value
				}
			}
			return ""
		}
	}
	return ""
}

// ViewSelect returns the SELECT body of a CREATE VIEW statement: everything
// after the top-level AS. Returns "" when there is no such clause.
func ViewSelect(createSQL string) string {
	tokens := tokenize(createSQL)
	if len(tokens) == 0 || !tokens[0].isKeyword("CREATE") {
		return ""
	}

	depth := 0
	for _, t := range tokens {
		switch {
		case t.typ == tokLParen:
			depth++
		case t.typ == tokRParen:
			depth--
		case depth == 0 && t.isKeyword("AS"):
			return strings.TrimSpace(createSQL[t.end:])
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Structure helpers
// ---------------------------------------------------------------------------

// tableBody returns the tokens inside the outermost parenthesized group,
// which for a CREATE TABLE statement is the column definition list.
func tableBody(tokens []token) []token {
	start := -1
	for i, t := range tokens {
		if t.typ == tokLParen {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	depth := 0
	for i := start; i < len(tokens); i++ {
		switch tokens[i].typ {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return tokens[start+1 : i]
			}
		}
	}
	// Unbalanced input: take what is there.
	return tokens[start+1:]
}

// splitDefs splits a column definition list on the commas between
// definitions. Commas nested in parens (type arguments, expressions) do
// not split.
func splitDefs(body []token) [][]token {
	var defs [][]token
	depth := 0
	start := 0
	for i, t := range body {
		switch t.typ {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
		case tokComma:
			if depth == 0 {
				defs = append(defs, body[start:i])
				start = i + 1
			}
		}
	}
	if start < len(body) {
		defs = append(defs, body[start:])
	}
	return defs
}

// parenText expects tokens to start with an opening paren and returns the
// raw input text up to its matching close, trimmed.
func parenText(input string, tokens []token) (string, bool) {
	if len(tokens) == 0 || tokens[0].typ != tokLParen {
		return "", false
	}
	depth := 0
	for _, t := range tokens {
		switch t.typ {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return strings.TrimSpace(input[tokens[0].end:t.pos]), true
			}
		}
	}
	return "", false
}
