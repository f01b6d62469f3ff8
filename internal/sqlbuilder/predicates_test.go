package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicatesRender(t *testing.T) {
	for _, tc := range []struct {
		name     string
		build    func(p *Predicates)
		wantSQL  string
		wantArgs []any
	}{
		{
			name:  "empty",
			build: func(p *Predicates) {},
		},
		{
			name:     "single bound",
			build:    func(p *Predicates) { p.Add("title ILIKE ", "%net%") },
			wantSQL:  "title ILIKE $1",
			wantArgs: []any{"%net%"},
		},
		{
			name: "raw between bound keeps numbering contiguous",
			build: func(p *Predicates) {
				p.Add("a = ", 1).AddRaw("b IS NULL").Add("c = ", 3)
			},
			wantSQL:  "a = $1 AND b IS NULL AND c = $2",
			wantArgs: []any{1, 3},
		},
		{
			name:     "raw only",
			build:    func(p *Predicates) { p.AddRaw("equity > 0") },
			wantSQL:  "equity > 0",
			wantArgs: []any{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var p Predicates
			tc.build(&p)
			clause := p.Render(" AND ")

			assert.Equal(t, tc.wantSQL, clause.SQL)
			if tc.wantArgs == nil {
				assert.True(t, clause.Empty())
				assert.Empty(t, clause.Args)
				return
			}
			assert.Equal(t, tc.wantArgs, clause.Args)
		})
	}
}
