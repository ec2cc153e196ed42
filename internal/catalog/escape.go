package catalog

import "strings"

// sqliteKeywords is the SQLite keyword list (https://sqlite.org/lang_keywords.html).
// A keyword used as an identifier must be quoted even when it looks bare-safe.
var sqliteKeywords = map[string]bool{
	"ABORT": true, "ACTION": true, "ADD": true, "AFTER": true,
	"ALL": true, "ALTER": true, "ALWAYS": true, "ANALYZE": true,
	"AND": true, "AS": true, "ASC": true, "ATTACH": true,
	"AUTOINCREMENT": true, "BEFORE": true, "BEGIN": true, "BETWEEN": true,
	"BY": true, "CASCADE": true, "CASE": true, "CAST": true,
	"CHECK": true, "COLLATE": true, "COLUMN": true, "COMMIT": true,
	"CONFLICT": true, "CONSTRAINT": true, "CREATE": true, "CROSS": true,
	"CURRENT": true, "CURRENT_DATE": true, "CURRENT_TIME": true, "CURRENT_TIMESTAMP": true,
	"DATABASE": true, "DEFAULT": true, "DEFERRABLE": true, "DEFERRED": true,
	"DELETE": true, "DESC": true, "DETACH": true, "DISTINCT": true,
	"DO": true, "DROP": true, "EACH": true, "ELSE": true,
	"END": true, "ESCAPE": true, "EXCEPT": true, "EXCLUDE": true,
	"EXCLUSIVE": true, "EXISTS": true, "EXPLAIN": true, "FAIL": true,
	"FILTER": true, "FIRST": true, "FOLLOWING": true, "FOR": true,
	"FOREIGN": true, "FROM": true, "FULL": true, "GENERATED": true,
	"GLOB": true, "GROUP": true, "GROUPS": true, "HAVING": true,
	"IF": true, "IGNORE": true, "IMMEDIATE": true, "IN": true,
	"INDEX": true, "INDEXED": true, "INITIALLY": true, "INNER": true,
	"INSERT": true, "INSTEAD": true, "INTERSECT": true, "INTO": true,
	"IS": true, "ISNULL": true, "JOIN": true, "KEY": true,
	"LAST": true, "LEFT": true, "LIKE": true, "LIMIT": true,
	"MATCH": true, "MATERIALIZED": true, "NATURAL": true, "NO": true,
	"NOT": true, "NOTHING": true, "NOTNULL": true, "NULL": true,
	"NULLS": true, "OF": true, "OFFSET": true, "ON": true,
	"OR": true, "ORDER": true, "OTHERS": true, "OUTER": true,
	"OVER": true, "PARTITION": true, "PLAN": true, "PRAGMA": true,
	"PRECEDING": true, "PRIMARY": true, "QUERY": true, "RAISE": true,
	"RANGE": true, "RECURSIVE": true, "REFERENCES": true, "REGEXP": true,
	"REINDEX": true, "RELEASE": true, "RENAME": true, "REPLACE": true,
	"RESTRICT": true, "RETURNING": true, "RIGHT": true, "ROLLBACK": true,
	"ROW": true, "ROWS": true, "SAVEPOINT": true, "SELECT": true,
	"SET": true, "TABLE": true, "TEMP": true, "TEMPORARY": true,
	"THEN": true, "TIES": true, "TO": true, "TRANSACTION": true,
	"TRIGGER": true, "UNBOUNDED": true, "UNION": true, "UNIQUE": true,
	"UPDATE": true, "USING": true, "VACUUM": true, "VALUES": true,
	"VIEW": true, "VIRTUAL": true, "WHEN": true, "WHERE": true,
	"WINDOW": true, "WITH": true, "WITHOUT": true,
}

// NeedsQuote reports whether an identifier cannot appear bare in SQL.
// Bare identifiers are ASCII [A-Za-z_][A-Za-z0-9_]* and not keywords.
func NeedsQuote(name string) bool {
	if name == "" {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return sqliteKeywords[strings.ToUpper(name)]
}

// QuoteIdent makes an identifier safe to interpolate into SQL: bare-safe
// names pass through unchanged, everything else is wrapped in double quotes
// with embedded double quotes doubled. This is the only way identifier text
// may reach a SQL string.
func QuoteIdent(name string) string {
	if !NeedsQuote(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
