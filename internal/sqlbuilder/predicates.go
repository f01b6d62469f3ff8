package sqlbuilder

import "strings"

type predicate struct {
	expr  string
	arg   any
	bound bool
}

// Predicates is an ordered list of SQL expressions, each binding at most one
// value. Placeholders are numbered only when the list is rendered, so adding,
// removing or reordering expressions can never leave a gap in $1..$n.
//
//	var p sqlbuilder.Predicates
//	p.Add("salary >= ", 50000)
//	p.AddRaw("equity > 0")
//	p.Render(" AND ") // "salary >= $1 AND equity > 0", [50000]
type Predicates struct {
	list []predicate
}

// Add appends expr followed by the next placeholder, bound to arg.
func (p *Predicates) Add(expr string, arg any) *Predicates {
	p.list = append(p.list, predicate{expr: expr, arg: arg, bound: true})
	return p
}

// AddRaw appends expr as is. It consumes no placeholder.
func (p *Predicates) AddRaw(expr string) *Predicates {
	p.list = append(p.list, predicate{expr: expr})
	return p
}

// Len returns the number of expressions added so far.
func (p *Predicates) Len() int {
	return len(p.list)
}

// Render joins the expressions with sep, numbering placeholders from $1.
// An empty list renders the zero Clause.
func (p *Predicates) Render(sep string) Clause {
	if len(p.list) == 0 {
		return Clause{}
	}

	var sb strings.Builder
	args := make([]any, 0, len(p.list))
	for i, pr := range p.list {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(pr.expr)
		if pr.bound {
			args = append(args, pr.arg)
			sb.WriteString(placeholder(len(args)))
		}
	}

	return Clause{SQL: sb.String(), Args: args}
}
