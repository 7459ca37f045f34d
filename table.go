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
	"time"
)

// Series is one time-indexed sequence of values attached to a flow. Times may
// be nil for inputs without an explicit time axis; Values then still line up
// with the shared axis by position.
type Series struct {
	Times  []time.Time
	Values []float64
}

// ElementData holds the raw scalar and sequence entries attached to one node
// or flow, as produced by the optimization layer. Either collection may be
// empty or nil.
type ElementData struct {
	Scalars   map[string]interface{}
	Sequences map[string]Series
}

// Input is one of the two raw axes handed over by the optimization layer:
// the parameters of the solved model or its results, keyed by the element the
// entries are attached to.
type Input map[NodePair]*ElementData

// ScalarTable is a long-format table mapping edge keys to single values.
// Values are usually float64 but node attributes such as type or carrier are
// strings. The table keeps insertion order for deterministic output. A nil
// table is valid for read operations and holds zero rows.
type ScalarTable struct {
	keys []EdgeKey
	rows map[EdgeKey]interface{}
}

// NewScalarTable returns an empty scalar table.
func NewScalarTable() *ScalarTable {
	return &ScalarTable{rows: make(map[EdgeKey]interface{})}
}

// Set stores v under k, appending k to the key order if it is new.
func (t *ScalarTable) Set(k EdgeKey, v interface{}) {
	if _, ok := t.rows[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.rows[k] = v
}

// Value returns the raw value stored under k.
func (t *ScalarTable) Value(k EdgeKey) (interface{}, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.rows[k]
	return v, ok
}

// Float returns the value stored under k as a float64. Integer values are
// widened; non-numeric values report false.
func (t *ScalarTable) Float(k EdgeKey) (float64, bool) {
	v, ok := t.Value(k)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// Str returns the value stored under k as a string. Non-string values report
// false.
func (t *ScalarTable) Str(k EdgeKey) (string, bool) {
	v, ok := t.Value(k)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Keys returns the table's keys in insertion order. The returned slice is
// shared; callers must not modify it.
func (t *ScalarTable) Keys() []EdgeKey {
	if t == nil {
		return nil
	}
	return t.keys
}

// Len returns the number of rows.
func (t *ScalarTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Empty reports whether the table holds no rows.
func (t *ScalarTable) Empty() bool { return t.Len() == 0 }

// Filter returns a new table holding the rows for which keep returns true.
func (t *ScalarTable) Filter(keep func(EdgeKey) bool) *ScalarTable {
	out := NewScalarTable()
	for _, k := range t.Keys() {
		if keep(k) {
			out.Set(k, t.rows[k])
		}
	}
	return out
}

// FilterVar returns a new table holding the rows whose variable name equals
// varName.
func (t *ScalarTable) FilterVar(varName string) *ScalarTable {
	return t.Filter(func(k EdgeKey) bool { return k.Var == varName })
}

// SequenceTable is a table of sequences sharing one time axis. Each column is
// addressed by an edge key and has exactly as many values as the axis has
// timestamps. A table with zero columns is valid and addressable.
type SequenceTable struct {
	Index []time.Time
	keys  []EdgeKey
	cols  map[EdgeKey][]float64
}

// NewSequenceTable returns an empty sequence table with the given time axis.
func NewSequenceTable(index []time.Time) *SequenceTable {
	return &SequenceTable{Index: index, cols: make(map[EdgeKey][]float64)}
}

// SetColumn stores vals as the column for k. The column length must match the
// time axis; on an axis-less table the first column fixes the length.
func (t *SequenceTable) SetColumn(k EdgeKey, vals []float64) error {
	if t.Index != nil && len(vals) != len(t.Index) {
		return fmt.Errorf("oemoflex: sequence %v has %d values, want %d", k, len(vals), len(t.Index))
	}
	if t.Index == nil && len(t.keys) > 0 {
		if first := t.cols[t.keys[0]]; len(vals) != len(first) {
			return fmt.Errorf("oemoflex: sequence %v has %d values, want %d", k, len(vals), len(first))
		}
	}
	if _, ok := t.cols[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.cols[k] = vals
	return nil
}

// Column returns the column stored under k.
func (t *SequenceTable) Column(k EdgeKey) ([]float64, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.cols[k]
	return v, ok
}

// Keys returns the column keys in insertion order. The returned slice is
// shared; callers must not modify it.
func (t *SequenceTable) Keys() []EdgeKey {
	if t == nil {
		return nil
	}
	return t.keys
}

// Len returns the number of columns.
func (t *SequenceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Empty reports whether the table holds no columns.
func (t *SequenceTable) Empty() bool { return t.Len() == 0 }

// sortedPairs returns the element keys of in in a stable order so that the
// flattened tables do not depend on map iteration order.
func sortedPairs(in Input) []NodePair {
	pairs := make([]NodePair, 0, len(in))
	for p := range in {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		if pairs[i].node != pairs[j].node {
			return pairs[j].node
		}
		return pairs[i].Target < pairs[j].Target
	})
	return pairs
}

func sortedAttrs(m map[string]interface{}) []string {
	attrs := make([]string, 0, len(m))
	for a := range m {
		attrs = append(attrs, a)
	}
	sort.Strings(attrs)
	return attrs
}

func sortedSeqAttrs(m map[string]Series) []string {
	attrs := make([]string, 0, len(m))
	for a := range m {
		attrs = append(attrs, a)
	}
	sort.Strings(attrs)
	return attrs
}

// buildScalarTable flattens the scalar entries of in into one long table with
// one row per (element, attribute). Elements without scalar entries are
// skipped.
func buildScalarTable(in Input) *ScalarTable {
	t := NewScalarTable()
	for _, pair := range sortedPairs(in) {
		data := in[pair]
		if data == nil || len(data.Scalars) == 0 {
			continue
		}
		for _, attr := range sortedAttrs(data.Scalars) {
			t.Set(KeyFor(pair, attr), data.Scalars[attr])
		}
	}
	return t
}

// buildSequenceTable flattens the sequence entries of in into one table with
// one column per (element, attribute). The time axis is taken from the first
// sequence that carries timestamps; all columns must have the same length.
func buildSequenceTable(in Input) (*SequenceTable, error) {
	var index []time.Time
	for _, pair := range sortedPairs(in) {
		data := in[pair]
		if data == nil {
			continue
		}
		for _, attr := range sortedSeqAttrs(data.Sequences) {
			if s := data.Sequences[attr]; len(s.Times) > 0 {
				index = s.Times
				break
			}
		}
		if index != nil {
			break
		}
	}
	t := NewSequenceTable(index)
	for _, pair := range sortedPairs(in) {
		data := in[pair]
		if data == nil || len(data.Sequences) == 0 {
			continue
		}
		for _, attr := range sortedSeqAttrs(data.Sequences) {
			if err := t.SetColumn(KeyFor(pair, attr), data.Sequences[attr].Values); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
