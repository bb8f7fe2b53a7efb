package search

import (
	"strconv"
	"strings"
)

// OrderNewestFirst is the only listing order. id breaks ties between jobs
// posted in the same instant.
const OrderNewestFirst = "j.posted_at DESC, j.id DESC"

type Query struct {
	SQL  string
	Args []any
}

// Build appends the conjunctive WHERE clause for f and the fixed ordering to
// base, a SELECT over jobs aliased as j.
func Build(base string, f Filter) Query {
	n := f.Normalize()

	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if n.Keyword != "" {
		p := next(containsPattern(n.Keyword))
		conds = append(conds, "(j.title ILIKE "+p+" OR j.company ILIKE "+p+" OR j.description ILIKE "+p+")")
	}
	if n.Type != "" {
		conds = append(conds, "j.type = "+next(n.Type))
	}
	if n.Location != "" {
		conds = append(conds, "j.location ILIKE "+next(containsPattern(n.Location)))
	}

	b := strings.Builder{}
	b.WriteString(strings.TrimSpace(base))
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(OrderNewestFirst)

	if args == nil {
		args = []any{}
	}
	return Query{SQL: b.String(), Args: args}
}

// EscapeLike escapes the LIKE metacharacters so user input only ever matches
// literally. Backslash is the default escape character in PostgreSQL.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func containsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
