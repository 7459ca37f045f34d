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

package oemoflexutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rl-institut/oemoflex"
)

// The CSV datapackage of one optimization run:
//
//	<data>/params/scalars.csv    source,target,var_name,var_value
//	<data>/params/sequences.csv  timeindex,<source>-><target>.<var>,...
//	<data>/results/scalars.csv
//	<data>/results/sequences.csv
//
// An empty target column marks a node-level scalar. Missing files are
// treated as empty axes.

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ReadInput reads the params and results axes of the datapackage in dir.
func ReadInput(dir string) (params, results oemoflex.Input, err error) {
	params, err = readAxis(filepath.Join(dir, "params"))
	if err != nil {
		return nil, nil, err
	}
	results, err = readAxis(filepath.Join(dir, "results"))
	if err != nil {
		return nil, nil, err
	}
	return params, results, nil
}

func readAxis(dir string) (oemoflex.Input, error) {
	in := make(oemoflex.Input)
	if err := readScalars(filepath.Join(dir, "scalars.csv"), in); err != nil {
		return nil, err
	}
	if err := readSequences(filepath.Join(dir, "sequences.csv"), in); err != nil {
		return nil, err
	}
	return in, nil
}

// elementFor returns the data record for pair, creating it on first use.
func elementFor(in oemoflex.Input, pair oemoflex.NodePair) *oemoflex.ElementData {
	data, ok := in[pair]
	if !ok {
		data = &oemoflex.ElementData{
			Scalars:   make(map[string]interface{}),
			Sequences: make(map[string]oemoflex.Series),
		}
		in[pair] = data
	}
	return data
}

func readScalars(filename string, in oemoflex.Input) error {
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("oemoflex: problem opening scalars file: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("oemoflex: problem reading %s: %v", filename, err)
	}
	for i, rec := range records {
		if i == 0 { // Skip the header line.
			continue
		}
		if len(rec) != 4 {
			return fmt.Errorf("oemoflex: %s line %d: want 4 fields, got %d", filename, i+1, len(rec))
		}
		var pair oemoflex.NodePair
		if rec[1] == "" {
			pair = oemoflex.NodeOnly(rec[0])
		} else {
			pair = oemoflex.Pair(rec[0], rec[1])
		}
		var value interface{} = rec[3]
		if v, err := strconv.ParseFloat(rec[3], 64); err == nil {
			value = v
		}
		elementFor(in, pair).Scalars[rec[2]] = value
	}
	return nil
}

func readSequences(filename string, in oemoflex.Input) error {
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("oemoflex: problem opening sequences file: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("oemoflex: problem reading %s: %v", filename, err)
	}
	if len(records) == 0 {
		return nil
	}
	header := records[0]
	if len(header) < 1 || header[0] != "timeindex" {
		return fmt.Errorf("oemoflex: %s: first column must be timeindex", filename)
	}
	times := make([]time.Time, 0, len(records)-1)
	columns := make([][]float64, len(header)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return fmt.Errorf("oemoflex: %s line %d: want %d fields, got %d", filename, i+2, len(header), len(rec))
		}
		t, err := parseTime(rec[0])
		if err != nil {
			return fmt.Errorf("oemoflex: %s line %d: %v", filename, i+2, err)
		}
		times = append(times, t)
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf("oemoflex: %s line %d: %v", filename, i+2, err)
			}
			columns[j] = append(columns[j], v)
		}
	}
	for j, col := range header[1:] {
		pair, varName, err := parseEdgeColumn(col)
		if err != nil {
			return fmt.Errorf("oemoflex: %s: %v", filename, err)
		}
		elementFor(in, pair).Sequences[varName] = oemoflex.Series{Times: times, Values: columns[j]}
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// parseEdgeColumn splits a sequence column label of the form
// "source->target.var_name".
func parseEdgeColumn(col string) (oemoflex.NodePair, string, error) {
	arrow := strings.Index(col, "->")
	if arrow < 0 {
		return oemoflex.NodePair{}, "", fmt.Errorf("column %q is not of the form source->target.var_name", col)
	}
	rest := col[arrow+2:]
	dot := strings.LastIndex(rest, ".")
	if dot < 0 {
		return oemoflex.NodePair{}, "", fmt.Errorf("column %q is not of the form source->target.var_name", col)
	}
	return oemoflex.Pair(col[:arrow], rest[:dot]), rest[dot+1:], nil
}

// WriteScalars writes the final long-format table as a CSV file.
func WriteScalars(filename string, rows oemoflex.NamedTable) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("oemoflex: problem creating output file: %v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "var_name", "var_value", "region", "type", "carrier", "tech"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Name,
			r.VarName,
			strconv.FormatFloat(r.Value, 'g', -1, 64),
			r.Region,
			r.Type,
			r.Carrier,
			r.Tech,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteElement writes one pivoted carrier-tech table as a CSV file. Cells
// without a value are left empty.
func WriteElement(filename string, et *oemoflex.ElementTable) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("oemoflex: problem creating output file: %v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	header := append([]string{"name", "type", "carrier", "tech"}, et.VarNames...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, er := range et.Rows {
		rec := []string{er.Name, er.Type, et.Carrier, et.Tech}
		for _, varName := range et.VarNames {
			if v, ok := er.Values[varName]; ok {
				rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
