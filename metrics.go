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
	"gonum.org/v1/gonum/floats"
)

// SummedFlows sums each flow sequence to one scalar per edge. With a
// resampling period set, sequences are first aggregated per period and the
// result is a sequence table on the coarser axis instead. Flows between two
// non-bus components carry no bus-relative meaning and are dropped.
type SummedFlows struct {
	// Period aggregates per resampling period instead of over the whole
	// horizon.
	Period Period

	// Nodes restricts the result to edges with at least one endpoint in
	// the given set. Empty means no restriction.
	Nodes []string
}

func (SummedFlows) Name() string { return "summed_flows" }

func (s SummedFlows) Params() []Param {
	return []Param{{"period", s.Period}, {"nodes", s.Nodes}}
}

func (SummedFlows) Dependencies() map[string]Calculation { return nil }

func (s SummedFlows) Calculate(c *Calculator) (Result, error) {
	nodes := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		nodes[n] = true
	}
	keep := func(k EdgeKey) bool {
		if k.Var != flowVar {
			return false
		}
		if !c.IsBus(k.Source) && !c.IsBus(k.Target) {
			return false
		}
		if len(nodes) > 0 && !nodes[k.Source] && !nodes[k.Target] {
			return false
		}
		return true
	}

	if s.Period == PeriodNone {
		out := NewScalarTable()
		for _, k := range c.Sequences.Keys() {
			if !keep(k) {
				continue
			}
			col, _ := c.Sequences.Column(k)
			out.Set(k, floats.Sum(col))
		}
		return out, nil
	}

	starts, ends, err := resampleBuckets(c.Sequences.Index, s.Period)
	if err != nil {
		return nil, err
	}
	out := NewSequenceTable(starts)
	for _, k := range c.Sequences.Keys() {
		if !keep(k) {
			continue
		}
		col, _ := c.Sequences.Column(k)
		if err := out.SetColumn(k, resampleSum(col, ends)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// filterByComponentAttr keeps the rows of t whose component carries the given
// value for a node attribute. Components without the attribute never match.
func filterByComponentAttr(t *ScalarTable, c *Calculator, attr, value string) *ScalarTable {
	return t.Filter(func(k EdgeKey) bool {
		comp := componentOf(k, c.IsBus)
		v, ok := c.ScalarParams.Str(NodeKey(comp, attr))
		return ok && v == value
	})
}

// losses reports the per-node difference of summed inflows and outflows for
// the components in flows, keyed as node-level rows tagged varName. Nodes
// missing one side contribute that side as zero.
func losses(flows *ScalarTable, c *Calculator, varName string) *ScalarTable {
	inflows := make(map[string]float64)
	outflows := make(map[string]float64)
	var order []string
	seen := make(map[string]bool)
	note := func(node string) {
		if !seen[node] {
			seen[node] = true
			order = append(order, node)
		}
	}
	for _, k := range flows.Keys() {
		v, ok := flows.Float(k)
		if !ok || k.IsNode() {
			continue
		}
		if c.IsBus(k.Source) {
			inflows[k.Target] += v
			note(k.Target)
		} else if c.IsBus(k.Target) {
			outflows[k.Source] += v
			note(k.Source)
		}
	}
	out := NewScalarTable()
	for _, node := range order {
		out.Set(NodeKey(node, varName), inflows[node]-outflows[node])
	}
	return out
}

// StorageLosses reports the difference of summed inflow and outflow per
// storage component as storage_losses.
type StorageLosses struct{}

func (StorageLosses) Name() string { return "storage_losses" }

func (StorageLosses) Params() []Param { return nil }

func (StorageLosses) Dependencies() map[string]Calculation {
	return map[string]Calculation{"summed_flows": SummedFlows{}}
}

func (sl StorageLosses) Calculate(c *Calculator) (Result, error) {
	flows, err := c.depScalars(sl, "summed_flows")
	if err != nil {
		return nil, err
	}
	flows = filterByComponentAttr(flows, c, typeAttr, "storage")
	return losses(flows, c, "storage_losses"), nil
}

// TransmissionLosses reports the difference of summed inflow and outflow per
// link component as transmission_losses.
type TransmissionLosses struct{}

func (TransmissionLosses) Name() string { return "transmission_losses" }

func (TransmissionLosses) Params() []Param { return nil }

func (TransmissionLosses) Dependencies() map[string]Calculation {
	return map[string]Calculation{"summed_flows": SummedFlows{}}
}

func (tl TransmissionLosses) Calculate(c *Calculator) (Result, error) {
	flows, err := c.depScalars(tl, "summed_flows")
	if err != nil {
		return nil, err
	}
	flows = filterByComponentAttr(flows, c, typeAttr, c.cfg.LinkType)
	return losses(flows, c, "transmission_losses"), nil
}

// Investment selects all scalar results named invest.
type Investment struct{}

func (Investment) Name() string { return "investment" }

func (Investment) Params() []Param { return nil }

func (Investment) Dependencies() map[string]Calculation { return nil }

func (Investment) Calculate(c *Calculator) (Result, error) {
	return c.Scalars.FilterVar(investVar), nil
}

// InvestedCapacity keeps the flow-capacity investments, which are the invest
// entries attached to a flow.
type InvestedCapacity struct{}

func (InvestedCapacity) Name() string { return "invested_capacity" }

func (InvestedCapacity) Params() []Param { return nil }

func (InvestedCapacity) Dependencies() map[string]Calculation {
	return map[string]Calculation{"invest": Investment{}}
}

func (ic InvestedCapacity) Calculate(c *Calculator) (Result, error) {
	invest, err := c.depScalars(ic, "invest")
	if err != nil {
		return nil, err
	}
	return invest.Filter(func(k EdgeKey) bool { return !k.IsNode() }), nil
}

// InvestedStorageCapacity keeps the storage-energy investments, which are the
// invest entries attached to a single node.
type InvestedStorageCapacity struct{}

func (InvestedStorageCapacity) Name() string { return "invested_storage_capacity" }

func (InvestedStorageCapacity) Params() []Param { return nil }

func (InvestedStorageCapacity) Dependencies() map[string]Calculation {
	return map[string]Calculation{"invest": Investment{}}
}

func (isc InvestedStorageCapacity) Calculate(c *Calculator) (Result, error) {
	invest, err := c.depScalars(isc, "invest")
	if err != nil {
		return nil, err
	}
	return invest.Filter(EdgeKey.IsNode), nil
}

// EPCosts selects the annualized unit investment costs from the scalar
// parameters.
type EPCosts struct{}

func (EPCosts) Name() string { return "ep_costs" }

func (EPCosts) Params() []Param { return nil }

func (EPCosts) Dependencies() map[string]Calculation { return nil }

func (EPCosts) Calculate(c *Calculator) (Result, error) {
	return c.ScalarParams.FilterVar(epCostsVar), nil
}

// multiplyWithParam multiplies each value of vars with the parameter attached
// to the same element in params, relabeled to the parameter's variable name.
// Elements without the parameter are dropped.
func multiplyWithParam(vars, params *ScalarTable) *ScalarTable {
	out := NewScalarTable()
	for _, k := range vars.Keys() {
		v, ok := vars.Float(k)
		if !ok {
			continue
		}
		p, ok := params.Float(k.WithVar(epCostsVar))
		if !ok {
			continue
		}
		out.Set(k.WithVar(k.Var+"_costs"), v*p)
	}
	return out
}

// InvestedCapacityCosts multiplies each flow-capacity investment with its
// annualized unit cost, relabeling the variable with a _costs suffix.
type InvestedCapacityCosts struct{}

func (InvestedCapacityCosts) Name() string { return "invested_capacity_costs" }

func (InvestedCapacityCosts) Params() []Param { return nil }

func (InvestedCapacityCosts) Dependencies() map[string]Calculation {
	return map[string]Calculation{
		"invested_capacity": InvestedCapacity{},
		"ep_costs":          EPCosts{},
	}
}

func (icc InvestedCapacityCosts) Calculate(c *Calculator) (Result, error) {
	capacity, err := c.depScalars(icc, "invested_capacity")
	if err != nil {
		return nil, err
	}
	epCosts, err := c.depScalars(icc, "ep_costs")
	if err != nil {
		return nil, err
	}
	return multiplyWithParam(capacity, epCosts), nil
}

// InvestedStorageCapacityCosts multiplies each storage-energy investment with
// its annualized unit cost, relabeling the variable with a _costs suffix.
type InvestedStorageCapacityCosts struct{}

func (InvestedStorageCapacityCosts) Name() string { return "invested_storage_capacity_costs" }

func (InvestedStorageCapacityCosts) Params() []Param { return nil }

func (InvestedStorageCapacityCosts) Dependencies() map[string]Calculation {
	return map[string]Calculation{
		"invested_storage_capacity": InvestedStorageCapacity{},
		"ep_costs":                  EPCosts{},
	}
}

func (iscc InvestedStorageCapacityCosts) Calculate(c *Calculator) (Result, error) {
	capacity, err := c.depScalars(iscc, "invested_storage_capacity")
	if err != nil {
		return nil, err
	}
	epCosts, err := c.depScalars(iscc, "ep_costs")
	if err != nil {
		return nil, err
	}
	return multiplyWithParam(capacity, epCosts), nil
}

// SummedVariableCosts multiplies each summed flow with the variable_costs
// parameter of its edge. Edges with zero cost are dropped.
type SummedVariableCosts struct{}

func (SummedVariableCosts) Name() string { return "summed_variable_costs" }

func (SummedVariableCosts) Params() []Param { return nil }

func (SummedVariableCosts) Dependencies() map[string]Calculation {
	return map[string]Calculation{"summed_flows": SummedFlows{}}
}

func (svc SummedVariableCosts) Calculate(c *Calculator) (Result, error) {
	flows, err := c.depScalars(svc, "summed_flows")
	if err != nil {
		return nil, err
	}
	out := NewScalarTable()
	for _, k := range c.ScalarParams.FilterVar(variableCostsVar).Keys() {
		cost, ok := c.ScalarParams.Float(k)
		if !ok || cost == 0 {
			continue
		}
		flow, ok := flows.Float(k.WithVar(flowVar))
		if !ok {
			continue
		}
		out.Set(k.WithVar("summed_variable_costs"), cost*flow)
	}
	return out, nil
}

// SummedCarrierCosts keeps the variable costs landing on flows into a
// component. By convention carrier costs are on inputs and marginal costs on
// outputs.
type SummedCarrierCosts struct{}

func (SummedCarrierCosts) Name() string { return "summed_carrier_costs" }

func (SummedCarrierCosts) Params() []Param { return nil }

func (SummedCarrierCosts) Dependencies() map[string]Calculation {
	return map[string]Calculation{"summed_var_costs": SummedVariableCosts{}}
}

func (scc SummedCarrierCosts) Calculate(c *Calculator) (Result, error) {
	costs, err := c.depScalars(scc, "summed_var_costs")
	if err != nil {
		return nil, err
	}
	return costs.Filter(func(k EdgeKey) bool { return !k.IsNode() && c.IsBus(k.Source) }), nil
}

// SummedMarginalCosts keeps the variable costs landing on flows out of a
// component.
type SummedMarginalCosts struct{}

func (SummedMarginalCosts) Name() string { return "summed_marginal_costs" }

func (SummedMarginalCosts) Params() []Param { return nil }

func (SummedMarginalCosts) Dependencies() map[string]Calculation {
	return map[string]Calculation{"summed_var_costs": SummedVariableCosts{}}
}

func (smc SummedMarginalCosts) Calculate(c *Calculator) (Result, error) {
	costs, err := c.depScalars(smc, "summed_var_costs")
	if err != nil {
		return nil, err
	}
	return costs.Filter(func(k EdgeKey) bool { return !k.IsNode() && c.IsBus(k.Target) }), nil
}

// TotalSystemCost sums the four cost components into the single
// system-level row. Empty components contribute zero, so the total is
// defined even for scenarios without investments or variable costs.
type TotalSystemCost struct{}

func (TotalSystemCost) Name() string { return "total_system_cost" }

func (TotalSystemCost) Params() []Param { return nil }

func (TotalSystemCost) Dependencies() map[string]Calculation {
	return map[string]Calculation{
		"icc":  InvestedCapacityCosts{},
		"iscc": InvestedStorageCapacityCosts{},
		"scc":  SummedCarrierCosts{},
		"smc":  SummedMarginalCosts{},
	}
}

func (tsc TotalSystemCost) Calculate(c *Calculator) (Result, error) {
	var total float64
	for _, alias := range []string{"icc", "iscc", "scc", "smc"} {
		t, err := c.depScalars(tsc, alias)
		if err != nil {
			return nil, err
		}
		for _, k := range t.Keys() {
			if v, ok := t.Float(k); ok {
				total += v
			}
		}
	}
	out := NewScalarTable()
	out.Set(NodeKey("system", "total_system_cost"), total)
	return out, nil
}
