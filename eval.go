/*
Copyright © 2024 the NCView authors.
This file is part of NCView.

NCView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

NCView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with NCView.  If not, see <http://www.gnu.org/licenses/>.
*/

package ncview

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/sparse"
)

// expressionChars are the characters whose presence makes a field string an
// arithmetic expression rather than a variable name.
const expressionChars = "+-*/%^()"

// IsExpression reports whether the field string is an arithmetic expression
// over variables rather than a plain variable name.
func IsExpression(field string) bool {
	return strings.ContainsAny(field, expressionChars)
}

// Evaluator resolves field strings against a dataset. A plain variable name
// is read directly; an expression is parsed and evaluated elementwise over
// the dataset's variables and coordinates, with a fixed set of elementary
// math functions available.
type Evaluator struct {
	funcs map[string]govaluate.ExpressionFunction
}

// NewEvaluator creates an Evaluator with the default math functions (abs,
// sqrt, sin, cos, tan, log, log10, exp, pow) plus any extra functions given.
func NewEvaluator(extraFuncs map[string]govaluate.ExpressionFunction) *Evaluator {
	funcs := map[string]govaluate.ExpressionFunction{
		"abs":   mathFunc1("abs", math.Abs),
		"sqrt":  mathFunc1("sqrt", math.Sqrt),
		"sin":   mathFunc1("sin", math.Sin),
		"cos":   mathFunc1("cos", math.Cos),
		"tan":   mathFunc1("tan", math.Tan),
		"log":   mathFunc1("log", math.Log),
		"log10": mathFunc1("log10", math.Log10),
		"exp":   mathFunc1("exp", math.Exp),
		"pow": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("ncview: got %d arguments for function 'pow', but needs 2", len(args))
			}
			x, xok := args[0].(float64)
			y, yok := args[1].(float64)
			if !xok || !yok {
				return nil, fmt.Errorf("ncview: non-numeric argument for function 'pow'")
			}
			return math.Pow(x, y), nil
		},
	}
	for name, f := range extraFuncs {
		funcs[name] = f
	}
	return &Evaluator{funcs: funcs}
}

func mathFunc1(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("ncview: got %d arguments for function '%s', but needs 1", len(args), name)
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("ncview: non-numeric argument for function '%s'", name)
		}
		return f(x), nil
	}
}

// Eval resolves the field string against ds, slicing any variable that
// carries the named time dimension at index t first. Unresolvable variable
// names yield an UnresolvableFieldError; malformed expressions yield a
// syntax error.
func (e *Evaluator) Eval(ds *Dataset, field, timeDim string, t int) (*sparse.DenseArray, error) {
	field = strings.TrimSpace(field)
	if !IsExpression(field) {
		if !ds.HasVariable(field) {
			return nil, &UnresolvableFieldError{Field: field, File: ds.Path()}
		}
		return ds.ReadVarAt(field, timeDim, t)
	}

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(field, e.funcs)
	if err != nil {
		return nil, fmt.Errorf("ncview: invalid expression %q: %v", field, err)
	}

	vars := removeDuplicates(expr.Vars())
	arrays := make(map[string]*sparse.DenseArray, len(vars))
	var shape []int
	for _, v := range vars {
		if !ds.HasVariable(v) {
			return nil, &UnresolvableFieldError{Field: field, File: ds.Path(),
				Err: fmt.Errorf("variable %q not found", v)}
		}
		arr, err := ds.ReadVarAt(v, timeDim, t)
		if err != nil {
			return nil, err
		}
		if shape == nil {
			shape = arr.Shape
		} else if len(arr.Elements) != product(shape) {
			return nil, fmt.Errorf("ncview: expression %q: variable %q has shape %v, want %v",
				field, v, arr.Shape, shape)
		}
		arrays[v] = arr
	}
	if shape == nil {
		return nil, &UnresolvableFieldError{Field: field, File: ds.Path(),
			Err: fmt.Errorf("expression references no variables")}
	}

	out := sparse.ZerosDense(shape...)
	params := make(map[string]interface{}, len(vars))
	for i := range out.Elements {
		for _, v := range vars {
			params[v] = arrays[v].Elements[i]
		}
		val, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("ncview: evaluating expression %q: %v", field, err)
		}
		f, ok := val.(float64)
		if !ok {
			return nil, fmt.Errorf("ncview: expression %q: non-numeric result %v", field, val)
		}
		out.Elements[i] = f
	}
	return out, nil
}

func product(shape []int) int {
	n := 1
	for _, l := range shape {
		n *= l
	}
	return n
}

func removeDuplicates(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	var out []string
	for _, v := range s {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
