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
	"sort"
)

// Calculator holds the four flattened input tables of one postprocessing run
// together with the registry of calculations computed on them. The input
// tables are immutable after construction; the registry grows as calculations
// are registered and is discarded with the calculator. A calculator serves
// one sequential run and is not safe for concurrent use.
type Calculator struct {
	cfg *Config

	// ScalarParams and SequenceParams hold the flattened model
	// parameters, Scalars and Sequences the flattened solver results.
	ScalarParams   *ScalarTable
	Scalars        *ScalarTable
	SequenceParams *SequenceTable
	Sequences      *SequenceTable

	busses  []string
	links   []string
	busSet  map[string]bool
	linkSet map[string]bool

	registry map[string]*registration
}

// registration is one entry in the calculator's cache, computed lazily and at
// most once.
type registration struct {
	calc   Calculation
	result Result
	done   bool
}

// NewCalculator flattens params and results into the four tables and derives
// the bus and link sets from the type attribute in the scalar parameters.
// A nil cfg uses DefaultConfig.
func NewCalculator(params, results Input, cfg *Config) (*Calculator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := &Calculator{
		cfg:          cfg,
		ScalarParams: buildScalarTable(params),
		Scalars:      buildScalarTable(results),
		busSet:       make(map[string]bool),
		linkSet:      make(map[string]bool),
		registry:     make(map[string]*registration),
	}
	var err error
	if c.SequenceParams, err = buildSequenceTable(params); err != nil {
		return nil, err
	}
	if c.Sequences, err = buildSequenceTable(results); err != nil {
		return nil, err
	}
	for _, k := range c.ScalarParams.Keys() {
		if !k.IsNode() || k.Var != typeAttr {
			continue
		}
		switch typ, _ := c.ScalarParams.Str(k); typ {
		case cfg.BusType:
			c.busSet[k.Node()] = true
			c.busses = append(c.busses, k.Node())
		case cfg.LinkType:
			c.linkSet[k.Node()] = true
			c.links = append(c.links, k.Node())
		}
	}
	sort.Strings(c.busses)
	sort.Strings(c.links)
	return c, nil
}

// Busses returns the sorted node identifiers whose type attribute equals the
// configured bus type. The returned slice is shared; callers must not modify
// it.
func (c *Calculator) Busses() []string { return c.busses }

// Links returns the sorted node identifiers whose type attribute equals the
// configured link type. The returned slice is shared; callers must not
// modify it.
func (c *Calculator) Links() []string { return c.links }

// IsBus reports whether node is a member of the bus set.
func (c *Calculator) IsBus(node string) bool { return c.busSet[node] }

// IsLink reports whether node is a member of the link set.
func (c *Calculator) IsLink(node string) bool { return c.linkSet[node] }

// Add registers calc under its canonical name, failing if a calculation of
// that name is already registered. Declared dependencies are registered
// recursively; dependencies already present are reused.
func (c *Calculator) Add(calc Calculation) error {
	name := CanonicalName(calc)
	if _, ok := c.registry[name]; ok {
		return fmt.Errorf("oemoflex: calculation %q already exists", name)
	}
	_, err := c.register(calc, nil)
	return err
}

// Require registers calc like Add but is a no-op when the canonical name is
// already registered, returning the name of the existing entry.
func (c *Calculator) Require(calc Calculation) (string, error) {
	return c.register(calc, nil)
}

// register stores calc and, depth first, its declared dependencies. stack
// holds the canonical names on the current registration path; finding a name
// already on it means the dependency declarations form a cycle, which is a
// programming error and fails fast.
func (c *Calculator) register(calc Calculation, stack []string) (string, error) {
	name := CanonicalName(calc)
	for _, s := range stack {
		if s == name {
			return "", fmt.Errorf("oemoflex: cyclic dependency involving calculation %q", name)
		}
	}
	if _, ok := c.registry[name]; ok {
		return name, nil
	}
	c.registry[name] = &registration{calc: calc}
	stack = append(stack, name)
	deps := calc.Dependencies()
	aliases := make([]string, 0, len(deps))
	for alias := range deps {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		if _, err := c.register(deps[alias], stack); err != nil {
			return "", err
		}
	}
	return name, nil
}

// GetResult returns the result registered under name, computing and caching
// it on first access. Asking for a name that was never registered is an
// error; registration always precedes lookup.
func (c *Calculator) GetResult(name string) (Result, error) {
	reg, ok := c.registry[name]
	if !ok {
		return nil, fmt.Errorf("oemoflex: no calculation named %q", name)
	}
	if !reg.done {
		result, err := reg.calc.Calculate(c)
		if err != nil {
			return nil, fmt.Errorf("oemoflex: calculation %q: %v", name, err)
		}
		if result == nil {
			result = NewScalarTable()
		}
		reg.result = result
		reg.done = true
	}
	return reg.result, nil
}

// Dep fetches the result of the dependency calc declared under alias,
// forcing its computation if necessary. Requesting an alias calc never
// declared is a programming error.
func (c *Calculator) Dep(calc Calculation, alias string) (Result, error) {
	proto, ok := calc.Dependencies()[alias]
	if !ok {
		return nil, fmt.Errorf("oemoflex: calculation %q has no dependency %q", CanonicalName(calc), alias)
	}
	return c.GetResult(CanonicalName(proto))
}

// depScalars fetches a dependency that is known to produce a scalar table.
func (c *Calculator) depScalars(calc Calculation, alias string) (*ScalarTable, error) {
	res, err := c.Dep(calc, alias)
	if err != nil {
		return nil, err
	}
	t, ok := res.(*ScalarTable)
	if !ok {
		return nil, fmt.Errorf("oemoflex: dependency %q of %q is not a scalar table", alias, CanonicalName(calc))
	}
	return t, nil
}
