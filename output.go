/*
Copyright © 2021 the oemoflex authors.
This file is part of oemoflex.

oemoflex is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oemoflex is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oemoflex.  If not, see <http://www.gnu.org/licenses/>.
*/

package oemoflex

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Outputter derives additional system-level output variables from the final
// result table.
//
// outputVariables maps the names of the variables to expressions that define
// how they are calculated. Expressions can reference the variable names of
// the final table, other user-defined output variables, and functions.
// Referenced table variables evaluate to the slice of all values carrying
// that variable name, so expressions aggregate them through functions before
// doing arithmetic, as in "sum(storage_losses) + sum(transmission_losses)".
type Outputter struct {
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	expressions     map[string]*govaluate.EvaluableExpression
}

// NewOutputter initializes a new Outputter and adds a set of default output
// functions. Default functions include:
//
// 'sum(x)' which sums a variable across all components carrying it.
//
// 'mean(x)' which averages a variable across all components carrying it.
//
// 'exp(x)' which applies the exponential function e^x.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"sum": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("oemoflex: got %d arguments for function 'sum', but needs 1", len(arg))
			}
			return floats.Sum(arg[0].([]float64)), nil
		},
		"mean": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("oemoflex: got %d arguments for function 'mean', but needs 1", len(arg))
			}
			return stat.Mean(arg[0].([]float64), nil), nil
		},
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("oemoflex: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}

	o := &Outputter{
		outputVariables: make(map[string]string, len(outputVariables)),
		outputFunctions: defaultOutputFuncs,
		expressions:     make(map[string]*govaluate.EvaluableExpression),
	}
	for key, val := range outputVariables {
		o.outputVariables[key] = val
	}
	if err := checkOutputNames(o.outputVariables); err != nil {
		return nil, err
	}
	if err := o.resolveDerivatives(); err != nil {
		return nil, err
	}
	for key, val := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(val, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("oemoflex: output variable %q: %v", key, err)
		}
		o.expressions[key] = expression
	}
	return o, nil
}

// resolveDerivatives replaces references to user-defined output variables
// within other output expressions by the parenthesized expression that
// defines them, repeating until no reference remains. Definitions that
// reference each other in a circle never settle and are an error.
func (o *Outputter) resolveDerivatives() error {
	for round := 0; ; round++ {
		if round > len(o.outputVariables) {
			return fmt.Errorf("oemoflex: circular definition in output variables")
		}
		replaced := false
		for name, def := range o.outputVariables {
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
			if err != nil {
				return err
			}
			for other, val := range o.outputVariables {
				if other == name || !re.MatchString(val) {
					continue
				}
				o.outputVariables[other] = re.ReplaceAllString(val, "("+def+")")
				replaced = true
			}
		}
		if !replaced {
			return nil
		}
	}
}

// checkOutputNames checks that output variable names are plain identifiers,
// since anything else cannot be referenced from other expressions.
func checkOutputNames(o map[string]string) error {
	re := regexp.MustCompile(`^[A-Za-z]\w*$`)
	for key := range o {
		if !re.MatchString(key) {
			return fmt.Errorf("oemoflex: output variable name %q includes unsupported characters", key)
		}
	}
	return nil
}

// Rows evaluates the output variables against the final table and returns
// one system-level row per variable. Referencing a variable name that does
// not occur in the table is an error.
func (o *Outputter) Rows(t NamedTable) (NamedTable, error) {
	vars := make(map[string]interface{})
	for _, r := range t {
		v, _ := vars[r.VarName].([]float64)
		vars[r.VarName] = append(v, r.Value)
	}

	names := make([]string, 0, len(o.expressions))
	for name := range o.expressions {
		names = append(names, name)
	}
	sort.Strings(names)

	var out NamedTable
	for _, name := range names {
		expression := o.expressions[name]
		for _, v := range expression.Vars() {
			if _, ok := vars[v]; !ok {
				return nil, fmt.Errorf("oemoflex: undefined variable name %q in output variable %q", v, name)
			}
		}
		result, err := expression.Evaluate(vars)
		if err != nil {
			return nil, fmt.Errorf("oemoflex: output variable %q: %v", name, err)
		}
		value, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("oemoflex: output variable %q does not evaluate to a number", name)
		}
		out = append(out, NamedRow{Name: "system", VarName: name, Value: value})
	}
	return out, nil
}
