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
	"reflect"
	"testing"
)

func TestBusAndLinkSets(t *testing.T) {
	c := testCalculator(t)
	wantBusses := []string{"DE-electricity", "DE-heat", "FR-electricity"}
	if !reflect.DeepEqual(c.Busses(), wantBusses) {
		t.Errorf("busses: got %v, want %v", c.Busses(), wantBusses)
	}
	if !reflect.DeepEqual(c.Links(), []string{"DE-FR-link"}) {
		t.Errorf("links: got %v", c.Links())
	}
	if c.IsBus("DE-storage") || !c.IsBus("DE-heat") {
		t.Error("bus membership wrong")
	}
	if !c.IsLink("DE-FR-link") || c.IsLink("DE-plant") {
		t.Error("link membership wrong")
	}
}

func TestComponentSideAndBus(t *testing.T) {
	c := testCalculator(t)
	tests := []struct {
		key      EdgeKey
		side     int
		bus      string
		hasBus   bool
		inOut    string
		fromTo   string
		carrier  string
	}{
		{FlowKey("DE-electricity", "DE-storage", "flow"), 1, "DE-electricity", true, "in", "", "electricity"},
		{FlowKey("DE-storage", "DE-electricity", "flow"), 0, "DE-electricity", true, "out", "", "electricity"},
		{FlowKey("DE-electricity", "DE-FR-link", "flow"), 1, "DE-electricity", true, "in", "from_bus", "electricity"},
		{FlowKey("DE-FR-link", "FR-electricity", "flow"), 0, "FR-electricity", true, "out", "to_bus", "electricity"},
		{NodeKey("DE-storage", "invest"), 0, "", false, "", "", ""},
		{FlowKey("DE-plant", "DE-storage", "x"), 0, "", false, "out", "", ""},
	}
	for _, test := range tests {
		side := componentSide(test.key, c.IsBus)
		if side != test.side {
			t.Errorf("%v: side got %d, want %d", test.key, side, test.side)
		}
		bus, ok := busOf(test.key, c.IsBus)
		if bus != test.bus || ok != test.hasBus {
			t.Errorf("%v: bus got %q, %v", test.key, bus, ok)
		}
		if got := inOrOut(test.key, side); got != test.inOut {
			t.Errorf("%v: inOrOut got %q, want %q", test.key, got, test.inOut)
		}
		if got := fromOrToBus(test.key, side, c.IsBus, c.IsLink, c.ScalarParams); got != test.fromTo {
			t.Errorf("%v: fromOrToBus got %q, want %q", test.key, got, test.fromTo)
		}
		if got := carrierOf(test.key, c.IsBus, "-"); got != test.carrier {
			t.Errorf("%v: carrier got %q, want %q", test.key, got, test.carrier)
		}
	}
}

// Every edge key observed in the scenario must map to a readable variable
// name without failing, however sparse the topology information.
func TestMapVarNamesTotality(t *testing.T) {
	c := testCalculator(t)
	table := NewScalarTable()
	for _, k := range c.Sequences.Keys() {
		table.Set(k, 1.0)
	}
	for _, k := range c.Scalars.Keys() {
		table.Set(k, 1.0)
	}
	// An edge between two buses and one between two components are
	// ambiguous but must still produce a name.
	table.Set(FlowKey("DE-electricity", "DE-heat", "flow"), 1.0)
	table.Set(FlowKey("DE-plant", "DE-storage", "flow"), 1.0)

	rows := c.MapVarNames(table)
	if len(rows) != table.Len() {
		t.Fatalf("got %d rows for %d keys", len(rows), table.Len())
	}
	for _, r := range rows {
		if r.VarName == "" || r.Name == "" {
			t.Errorf("empty name or var name in row %+v", r)
		}
	}
}

func TestMapVarNamesLink(t *testing.T) {
	c := testCalculator(t)
	table := NewScalarTable()
	table.Set(FlowKey("DE-electricity", "DE-FR-link", "flow"), 3.0)
	table.Set(FlowKey("DE-FR-link", "FR-electricity", "flow"), 2.8)
	rows := c.MapVarNames(table)

	want := map[string]string{
		"flow_in_electricity_from_bus": "DE-FR-link",
		"flow_out_electricity_to_bus":  "DE-FR-link",
	}
	got := make(map[string]string)
	for _, r := range rows {
		got[r.VarName] = r.Name
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("link var names: got %v, want %v", got, want)
	}
}
