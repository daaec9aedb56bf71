package dbx

import (
	"strconv"
	"strings"
)

// Where accumulates AND-ed predicates with PostgreSQL positional
// placeholders. Each clause uses "?" for its single argument:
//
//	w := dbx.NewWhere("user_id = ?", userID)
//	w.And("logged_at >= ?", from)
//	q := "SELECT ... WHERE " + w.SQL() + " LIMIT " + w.Arg(limit)
type Where struct {
	clauses []string
	args    []any
}

// NewWhere starts a predicate list with one clause.
func NewWhere(clause string, arg any) *Where {
	w := &Where{}
	w.And(clause, arg)
	return w
}

// And appends clause, binding arg to its "?" placeholder. A clause
// without "?" takes no argument and arg is ignored.
func (w *Where) And(clause string, arg any) *Where {
	if strings.Contains(clause, "?") {
		clause = strings.Replace(clause, "?", w.Arg(arg), 1)
	}
	w.clauses = append(w.clauses, clause)
	return w
}

// Arg registers arg and returns its placeholder, for use outside WHERE.
func (w *Where) Arg(arg any) string {
	w.args = append(w.args, arg)
	return "$" + strconv.Itoa(len(w.args))
}

// SQL renders the predicates joined with AND.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return "TRUE"
	}
	return strings.Join(w.clauses, " AND ")
}

// Args returns the bound arguments in placeholder order.
func (w *Where) Args() []any {
	return w.args
}
