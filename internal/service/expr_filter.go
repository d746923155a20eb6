package service

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/user/moviecatalog/internal/model"
)

// ExprFilter compiled boolean expression over movie fields, e.g.
// `genre == "Horror" && icontains(author, "scott")`.
// The expr operators contains, startsWith and endsWith and builtins such as
// lower are available as usual.
type ExprFilter struct {
	program    *vm.Program
	expression string
}

// CompileExpr compiles expression against the movie environment
func CompileExpr(expression string) (*ExprFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(movieEnv(model.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &ExprFilter{
		program:    program,
		expression: expression,
	}, nil
}

// Match runs the filter; a runtime error counts as no match
func (f *ExprFilter) Match(m model.Movie) bool {
	result, err := expr.Run(f.program, movieEnv(m))
	if err != nil {
		return false
	}
	ok, _ := result.(bool)
	return ok
}

// String the source expression
func (f *ExprFilter) String() string {
	return f.expression
}

// FilterExpr movies matching f, keeping their order
func FilterExpr(movies []model.Movie, f *ExprFilter) []model.Movie {
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

func movieEnv(m model.Movie) map[string]any {
	return map[string]any{
		"id":         m.ID,
		"title":      m.Title,
		"author":     m.Author,
		"genre":      m.Genre,
		"synopsis":   m.Synopsis,
		"picture":    m.Picture,
		"hasPicture": m.Picture != "",
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"iequals": strings.EqualFold,
	}
}
