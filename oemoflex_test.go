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
	"math"
	"testing"
	"time"
)

// testAxis is the shared time axis of the test scenario: three hourly steps.
func testAxis() []time.Time {
	t0 := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	return []time.Time{t0, t0.Add(time.Hour), t0.Add(2 * time.Hour)}
}

// testInput builds a small synthetic network: three buses, a storage, a
// dispatchable plant, and a link between the two electricity buses.
//
//	DE-electricity <-> DE-storage      (in [1,2,3], out [0,1,1])
//	DE-plant -> DE-electricity         ([2,2,2], variable costs 3)
//	DE-electricity -> DE-FR-link       ([1,1,1], variable costs 0.5)
//	DE-FR-link -> FR-electricity       ([1,1,0.8])
//
// The storage flow capacity is expanded by 100 units at 5 per unit, its
// storage capacity by 400 units at 10 per unit.
func testInput() (params, results Input) {
	axis := testAxis()
	seq := func(vals ...float64) Series { return Series{Times: axis, Values: vals} }

	params = Input{
		NodeOnly("DE-electricity"): {Scalars: map[string]interface{}{
			"type": "bus", "region": "DE", "carrier": "electricity",
		}},
		NodeOnly("FR-electricity"): {Scalars: map[string]interface{}{
			"type": "bus", "region": "FR", "carrier": "electricity",
		}},
		NodeOnly("DE-heat"): {Scalars: map[string]interface{}{
			"type": "bus", "region": "DE", "carrier": "heat",
		}},
		NodeOnly("DE-storage"): {Scalars: map[string]interface{}{
			"type": "storage", "region": "DE", "carrier": "electricity", "tech": "liion",
			"investment_ep_costs": 10.0,
		}},
		NodeOnly("DE-plant"): {Scalars: map[string]interface{}{
			"type": "dispatchable", "region": "DE", "carrier": "ch4", "tech": "gt",
		}},
		NodeOnly("DE-FR-link"): {Scalars: map[string]interface{}{
			"type": "link", "region": "DE", "carrier": "electricity", "tech": "line",
			"from_bus": "DE-electricity", "to_bus": "FR-electricity",
		}},
		Pair("DE-electricity", "DE-storage"): {Scalars: map[string]interface{}{
			"investment_ep_costs": 5.0, "variable_costs": 0.0,
		}},
		Pair("DE-plant", "DE-electricity"): {Scalars: map[string]interface{}{
			"variable_costs": 3.0,
		}},
		Pair("DE-electricity", "DE-FR-link"): {Scalars: map[string]interface{}{
			"variable_costs": 0.5,
		}},
	}

	results = Input{
		Pair("DE-electricity", "DE-storage"): {
			Scalars:   map[string]interface{}{"invest": 100.0},
			Sequences: map[string]Series{"flow": seq(1, 2, 3)},
		},
		Pair("DE-storage", "DE-electricity"): {
			Sequences: map[string]Series{"flow": seq(0, 1, 1)},
		},
		Pair("DE-plant", "DE-electricity"): {
			Sequences: map[string]Series{"flow": seq(2, 2, 2)},
		},
		Pair("DE-electricity", "DE-FR-link"): {
			Sequences: map[string]Series{"flow": seq(1, 1, 1)},
		},
		Pair("DE-FR-link", "FR-electricity"): {
			Sequences: map[string]Series{"flow": seq(1, 1, 0.8)},
		},
		NodeOnly("DE-storage"): {
			Scalars: map[string]interface{}{"invest": 400.0},
		},
	}
	return params, results
}

func testCalculator(t *testing.T) *Calculator {
	t.Helper()
	params, results := testInput()
	c, err := NewCalculator(params, results, nil)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// getScalars registers calc and returns its result as a scalar table.
func getScalars(t *testing.T, c *Calculator, calc Calculation) *ScalarTable {
	t.Helper()
	name, err := c.Require(calc)
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.GetResult(name)
	if err != nil {
		t.Fatal(err)
	}
	table, ok := res.(*ScalarTable)
	if !ok {
		t.Fatalf("result of %s is not a scalar table", name)
	}
	return table
}
