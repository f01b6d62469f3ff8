// Package sqlbuilder renders the small, fixed set of dynamic SQL fragments
// the repositories need: partial-update SET clauses and conjunctive WHERE
// bodies.
//
// Nothing here executes SQL. Values never reach the SQL text; every value is
// bound through a positional placeholder ($1, $2, ...) whose number is
// computed when the fragment list is rendered, and every column name is
// quoted through pgx.Identifier.
package sqlbuilder

import "strconv"

// Clause is a rendered SQL fragment plus the values bound to its placeholders.
//
// Args[i] is bound to placeholder $(i+1).
type Clause struct {
	SQL  string
	Args []any
}

// Empty reports whether the clause renders no SQL at all.
func (c Clause) Empty() bool {
	return c.SQL == ""
}

// NextPlaceholder returns the placeholder that follows the clause's own,
// for callers appending e.g. "WHERE id = $n" after a SET clause.
func (c Clause) NextPlaceholder() string {
	return placeholder(len(c.Args) + 1)
}

func placeholder(position int) string {
	return "$" + strconv.Itoa(position)
}
