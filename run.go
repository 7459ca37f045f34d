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

// standardCalculations are the scalar metrics concatenated into the final
// table, in concatenation order. TotalSystemCost is appended separately
// because its row already lives in (name, var_name) space.
var standardCalculations = []Calculation{
	SummedFlows{},
	StorageLosses{},
	TransmissionLosses{},
	InvestedCapacity{},
	InvestedStorageCapacity{},
	InvestedCapacityCosts{},
	InvestedStorageCapacityCosts{},
	SummedCarrierCosts{},
	SummedMarginalCosts{},
}

// Run performs one full postprocessing pass: it builds a calculator from the
// raw parameters and results, evaluates the standard metric catalogue,
// rewrites the edge keys into readable names with component annotations,
// appends the total system cost and any configured expression outputs, and
// returns the sorted final table.
func Run(params, results Input, cfg *Config) (NamedTable, error) {
	c, err := NewCalculator(params, results, cfg)
	if err != nil {
		return nil, err
	}

	combined := NewScalarTable()
	for _, calc := range standardCalculations {
		name, err := c.Require(calc)
		if err != nil {
			return nil, err
		}
		res, err := c.GetResult(name)
		if err != nil {
			return nil, err
		}
		t, ok := res.(*ScalarTable)
		if !ok {
			continue
		}
		for _, k := range t.Keys() {
			v, _ := t.Value(k)
			combined.Set(k, v)
		}
	}

	rows := c.MapVarNames(combined)
	rows = c.AddComponentInfo(rows)

	name, err := c.Require(TotalSystemCost{})
	if err != nil {
		return nil, err
	}
	res, err := c.GetResult(name)
	if err != nil {
		return nil, err
	}
	total, _ := res.(*ScalarTable)
	for _, k := range total.Keys() {
		if v, ok := total.Float(k); ok {
			rows = append(rows, NamedRow{Name: k.Node(), VarName: k.Var, Value: v})
		}
	}

	if len(c.cfg.OutputVariables) > 0 {
		o, err := NewOutputter(c.cfg.OutputVariables, nil)
		if err != nil {
			return nil, err
		}
		extra, err := o.Rows(rows)
		if err != nil {
			return nil, err
		}
		rows = append(rows, extra...)
	}

	return SortScalars(rows), nil
}
