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
	"strings"
	"testing"

	"github.com/Knetic/govaluate"
)

func outputTestTable() NamedTable {
	return NamedTable{
		{Name: "DE-storage", VarName: "storage_losses", Value: 4},
		{Name: "AT-storage", VarName: "storage_losses", Value: 2},
		{Name: "DE-FR-link", VarName: "transmission_losses", Value: 0.2},
	}
}

func TestOutputterSumAndMean(t *testing.T) {
	o, err := NewOutputter(map[string]string{
		"total_storage_losses": "sum(storage_losses)",
		"mean_storage_losses":  "mean(storage_losses)",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := o.Rows(outputTestTable())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Rows come out sorted by variable name.
	if rows[0].VarName != "mean_storage_losses" || !almostEqual(rows[0].Value, 3) {
		t.Errorf("mean: got %v = %v", rows[0].VarName, rows[0].Value)
	}
	if rows[1].VarName != "total_storage_losses" || !almostEqual(rows[1].Value, 6) {
		t.Errorf("sum: got %v = %v", rows[1].VarName, rows[1].Value)
	}
	if rows[0].Name != "system" {
		t.Errorf("output rows belong to %q, want system", rows[0].Name)
	}
}

func TestOutputterDerivatives(t *testing.T) {
	o, err := NewOutputter(map[string]string{
		"total_storage_losses": "sum(storage_losses)",
		"all_losses":           "total_storage_losses + sum(transmission_losses)",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := o.Rows(outputTestTable())
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].VarName != "all_losses" || !almostEqual(rows[0].Value, 6.2) {
		t.Errorf("derivative: got %v = %v", rows[0].VarName, rows[0].Value)
	}
}

func TestOutputterCustomFunction(t *testing.T) {
	o, err := NewOutputter(map[string]string{
		"max_storage_losses": "max(storage_losses)",
	}, map[string]govaluate.ExpressionFunction{
		"max": func(arg ...interface{}) (interface{}, error) {
			vals := arg[0].([]float64)
			m := vals[0]
			for _, v := range vals[1:] {
				if v > m {
					m = v
				}
			}
			return m, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	rows, err := o.Rows(outputTestTable())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(rows[0].Value, 4) {
		t.Errorf("max: got %v", rows[0].Value)
	}
}

func TestOutputterCircularDefinition(t *testing.T) {
	_, err := NewOutputter(map[string]string{
		"a": "b + 1",
		"b": "a + 1",
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "circular") {
		t.Errorf("got %v, want circular definition error", err)
	}
}

func TestOutputterBadName(t *testing.T) {
	_, err := NewOutputter(map[string]string{
		"bad name": "sum(storage_losses)",
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported characters") {
		t.Errorf("got %v, want unsupported characters error", err)
	}
}

func TestOutputterUndefinedVariable(t *testing.T) {
	o, err := NewOutputter(map[string]string{
		"x": "sum(no_such_variable)",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Rows(outputTestTable()); err == nil || !strings.Contains(err.Error(), "undefined variable") {
		t.Errorf("got %v, want undefined variable error", err)
	}
}
