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
	"sort"
	"strings"
)

// NamedRow is one row of the final long-format result table: a readable
// variable name per component, the value, and the component's annotation
// attributes. Annotation fields are empty where a component does not carry
// the attribute.
type NamedRow struct {
	Name    string
	VarName string
	Value   float64
	Region  string
	Type    string
	Carrier string
	Tech    string
}

// NamedTable is the final long-format result table.
type NamedTable []NamedRow

// MapVarNames rewrites the edge keys of a scalar table into (name, var_name)
// rows. The variable name is assembled from the raw variable name, the flow
// direction relative to the component, the bus carrier and, for links, the
// from_bus/to_bus classification, dropping segments that do not apply. The
// mapping is total: every key yields a row, however sparse the topology
// information.
func (c *Calculator) MapVarNames(t *ScalarTable) NamedTable {
	out := make(NamedTable, 0, t.Len())
	for _, k := range t.Keys() {
		v, ok := t.Float(k)
		if !ok {
			continue
		}
		side := componentSide(k, c.IsBus)
		segments := []string{
			k.Var,
			inOrOut(k, side),
			carrierOf(k, c.IsBus, c.cfg.CarrierDelimiter),
			fromOrToBus(k, side, c.IsBus, c.IsLink, c.ScalarParams),
		}
		var kept []string
		for _, s := range segments {
			if s != "" {
				kept = append(kept, s)
			}
		}
		out = append(out, NamedRow{
			Name:    componentOf(k, c.IsBus),
			VarName: strings.Join(kept, "_"),
			Value:   v,
		})
	}
	return out
}

// AddComponentInfo fills the annotation columns of each row from the
// component's scalar parameters. Missing attributes are left empty.
func (c *Calculator) AddComponentInfo(rows NamedTable) NamedTable {
	attr := func(name, a string) string {
		v, _ := c.ScalarParams.Str(NodeKey(name, a))
		return v
	}
	for i := range rows {
		rows[i].Region = attr(rows[i].Name, "region")
		rows[i].Type = attr(rows[i].Name, "type")
		rows[i].Carrier = attr(rows[i].Name, "carrier")
		rows[i].Tech = attr(rows[i].Name, "tech")
	}
	return rows
}

// SortScalars orders the table by carrier, tech and variable name. Rows
// without carrier or tech, such as the system-level rows, sort last.
func SortScalars(rows NamedTable) NamedTable {
	missingLast := func(a, b string) (less, equal bool) {
		if (a == "") != (b == "") {
			return b == "", false
		}
		return a < b, a == b
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if less, equal := missingLast(rows[i].Carrier, rows[j].Carrier); !equal {
			return less
		}
		if less, equal := missingLast(rows[i].Tech, rows[j].Tech); !equal {
			return less
		}
		return rows[i].VarName < rows[j].VarName
	})
	return rows
}

// ElementRow is one pivoted row of an element table.
type ElementRow struct {
	Name   string
	Type   string
	Values map[string]float64
}

// ElementTable is the wide table of one carrier-tech pair, with variable
// names promoted to columns.
type ElementTable struct {
	Carrier  string
	Tech     string
	VarNames []string
	Rows     []ElementRow
}

// GroupByElement pivots the long table into one wide table per distinct
// carrier-tech pair, keyed "carrier-tech". Rows are ordered by component
// name, columns by variable name.
func GroupByElement(rows NamedTable) map[string]*ElementTable {
	elements := make(map[string]*ElementTable)
	for _, r := range rows {
		key := r.Carrier + "-" + r.Tech
		et, ok := elements[key]
		if !ok {
			et = &ElementTable{Carrier: r.Carrier, Tech: r.Tech}
			elements[key] = et
		}
		var er *ElementRow
		for i := range et.Rows {
			if et.Rows[i].Name == r.Name {
				er = &et.Rows[i]
				break
			}
		}
		if er == nil {
			et.Rows = append(et.Rows, ElementRow{Name: r.Name, Type: r.Type, Values: make(map[string]float64)})
			er = &et.Rows[len(et.Rows)-1]
		}
		er.Values[r.VarName] = r.Value
		found := false
		for _, v := range et.VarNames {
			if v == r.VarName {
				found = true
				break
			}
		}
		if !found {
			et.VarNames = append(et.VarNames, r.VarName)
		}
	}
	for _, et := range elements {
		sort.Strings(et.VarNames)
		sort.Slice(et.Rows, func(i, j int) bool { return et.Rows[i].Name < et.Rows[j].Name })
	}
	return elements
}

// Flatten concatenates pivoted element tables back into one long table,
// reattaching the carrier and tech of each group. The set of
// (name, var_name, value) triples round-trips through GroupByElement and
// Flatten.
func Flatten(elements map[string]*ElementTable) NamedTable {
	keys := make([]string, 0, len(elements))
	for k := range elements {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out NamedTable
	for _, key := range keys {
		et := elements[key]
		for _, er := range et.Rows {
			for _, varName := range et.VarNames {
				v, ok := er.Values[varName]
				if !ok {
					continue
				}
				out = append(out, NamedRow{
					Name:    er.Name,
					VarName: varName,
					Value:   v,
					Type:    er.Type,
					Carrier: et.Carrier,
					Tech:    et.Tech,
				})
			}
		}
	}
	return out
}
