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
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestGetStringMapString(t *testing.T) {
	cfg := viper.New()
	cfg.Set("fromJSON", `{"total_losses": "sum(storage_losses)"}`)
	cfg.Set("fromMap", map[string]interface{}{"a": "b"})
	want := map[string]string{"total_losses": "sum(storage_losses)"}
	if got := GetStringMapString("fromJSON", cfg); !reflect.DeepEqual(got, want) {
		t.Errorf("fromJSON: got %v, want %v", got, want)
	}
	if got := GetStringMapString("fromMap", cfg); !reflect.DeepEqual(got, map[string]string{"a": "b"}) {
		t.Errorf("fromMap: got %v", got)
	}
}

func TestConfigFromViper(t *testing.T) {
	cfg := configFromViper(Cfg)
	if cfg.BusType != "bus" || cfg.LinkType != "link" || cfg.CarrierDelimiter != "-" {
		t.Errorf("defaults: got %+v", cfg)
	}
	if len(cfg.OutputVariables) != 0 {
		t.Errorf("output variables: got %v, want empty", cfg.OutputVariables)
	}
}

// writeTestData lays out a minimal datapackage for the run command.
func writeTestData(t *testing.T, dir string) {
	t.Helper()
	writeTestFile(t, filepath.Join(dir, "params", "scalars.csv"),
		"source,target,var_name,var_value\n"+
			"DE-electricity,,type,bus\n"+
			"DE-electricity,,carrier,electricity\n"+
			"DE-storage,,type,storage\n"+
			"DE-storage,,carrier,electricity\n"+
			"DE-storage,,tech,liion\n")
	writeTestFile(t, filepath.Join(dir, "results", "sequences.csv"),
		"timeindex,DE-electricity->DE-storage.flow,DE-storage->DE-electricity.flow\n"+
			"2017-01-01 00:00:00,1,0\n"+
			"2017-01-01 01:00:00,2,1\n"+
			"2017-01-01 02:00:00,3,1\n")
}

func TestRunCmd(t *testing.T) {
	dir := t.TempDir()
	writeTestData(t, dir)
	outFile := filepath.Join(dir, "scalars.csv")
	Cfg.Set("data", dir)
	Cfg.Set("output", outFile)

	if err := runCmd.RunE(runCmd, nil); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(outFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, rec := range records[1:] {
		if rec[0] == "DE-storage" && rec[1] == "storage_losses" {
			found = true
			if rec[2] != "4" {
				t.Errorf("storage losses: got %s, want 4", rec[2])
			}
		}
	}
	if !found {
		t.Error("no storage_losses row in output")
	}
}

func TestGroupCmd(t *testing.T) {
	dir := t.TempDir()
	writeTestData(t, dir)
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		t.Fatal(err)
	}
	Cfg.Set("data", dir)
	Cfg.Set("output", outDir)

	if err := groupCmd.RunE(groupCmd, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "electricity-liion.csv")); err != nil {
		t.Errorf("missing per-element file: %v", err)
	}
}
