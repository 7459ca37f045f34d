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
	"strings"
)

// Param is one declared constructor parameter of a calculation, with the
// default already applied. The declared order of parameters determines the
// canonical name, so Params implementations must return them in a fixed
// order.
type Param struct {
	Name  string
	Value interface{}
}

// Calculation is one named, parametrized unit of computation over the tables
// held by a Calculator.
//
// A calculation value doubles as a dependency descriptor: the prototype
// values returned by Dependencies identify the calculations this one reads,
// including any parameter overrides. The calculator resolves prototypes by
// canonical name, so a dependency declared here and the same calculation
// registered by another caller converge on one cached computation.
type Calculation interface {
	// Name identifies the computation kind. It is stable across the
	// codebase and forms the prefix of the canonical name.
	Name() string

	// Params returns the declared parameters in declaration order, with
	// defaults applied for values left at their zero value.
	Params() []Param

	// Dependencies maps local aliases to prototype values of the
	// calculations this one depends on. A nil map declares no
	// dependencies.
	Dependencies() map[string]Calculation

	// Calculate computes the result. It may fetch declared dependencies
	// through c.Dep and read the calculator's tables directly. It is
	// called at most once per canonical name and calculator.
	Calculate(c *Calculator) (Result, error)
}

// Result is the output of a calculation. Both table types implement it; the
// additive identity for absent data is an empty scalar table, never nil.
type Result interface {
	Empty() bool
}

// CanonicalName derives the cache key identifying a calculation: its name
// followed by one "_<param>=<value>" segment per declared parameter. Two
// differently parametrized values of the same type get distinct names, while
// two equal parametrizations collapse to one.
func CanonicalName(calc Calculation) string {
	var b strings.Builder
	b.WriteString(calc.Name())
	for _, p := range calc.Params() {
		b.WriteString("_")
		b.WriteString(p.Name)
		b.WriteString("=")
		b.WriteString(formatParamValue(p.Value))
	}
	return b.String()
}

func formatParamValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}
