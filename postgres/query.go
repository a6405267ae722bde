package postgres

import (
	"fmt"
	"strings"

	"github.com/ec-win-24/nexuspoint/core"
)

// compileSpecification translates a domain specification into a postgres
// WHERE clause with positional arguments. Field names are translated through
// columnOf; an unknown field aborts the whole compilation with an error
// wrapping core.ErrFieldMapping.
//
// A nil specification compiles to a clause that matches every row.
func compileSpecification(
	spec core.Specification,
	columnOf func(string) (string, error),
) (string, []any, error) {
	compiler := &specCompiler{columnOf: columnOf}
	clause, err := compiler.compile(spec)
	if err != nil {
		return "", nil, err
	}
	return clause, compiler.args, nil
}

type specCompiler struct {
	columnOf func(string) (string, error)
	args     []any
}

func (c *specCompiler) compile(spec core.Specification) (string, error) {
	switch s := spec.(type) {
	case nil, core.AllSpec:
		return "TRUE", nil
	case core.EqualSpec:
		column, err := c.columnOf(s.Field)
		if err != nil {
			return "", err
		}
		c.args = append(c.args, s.Value)
		return fmt.Sprintf("%s = $%d", column, len(c.args)), nil
	case core.ContainsSpec:
		column, err := c.columnOf(s.Field)
		if err != nil {
			return "", err
		}
		c.args = append(c.args, s.Value)
		return fmt.Sprintf("%s LIKE '%%' || $%d || '%%'", column, len(c.args)), nil
	case core.AndSpec:
		if len(s.Specs) == 0 {
			return "TRUE", nil
		}
		return c.compileGroup(s.Specs, " AND ")
	case core.OrSpec:
		if len(s.Specs) == 0 {
			return "FALSE", nil
		}
		return c.compileGroup(s.Specs, " OR ")
	default:
		return "", fmt.Errorf("unsupported specification %T", spec)
	}
}

func (c *specCompiler) compileGroup(specs []core.Specification, op string) (string, error) {
	clauses := make([]string, len(specs))
	for i, spec := range specs {
		clause, err := c.compile(spec)
		if err != nil {
			return "", err
		}
		clauses[i] = clause
	}
	return "(" + strings.Join(clauses, op) + ")", nil
}
