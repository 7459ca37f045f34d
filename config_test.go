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
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	f := filepath.Join(t.TempDir(), "oemoflex.toml")
	data := `
LinkType = "line"

[OutputVariables]
total_losses = "sum(storage_losses) + sum(transmission_losses)"
`
	if err := os.WriteFile(f, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LinkType != "line" {
		t.Errorf("LinkType: got %q, want line", cfg.LinkType)
	}
	// Unset fields keep their defaults.
	if cfg.BusType != "bus" || cfg.CarrierDelimiter != "-" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
	if cfg.OutputVariables["total_losses"] == "" {
		t.Error("output variables not read")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("want error for missing file")
	}
}

// A custom type scheme flows through bus and link detection.
func TestConfigCustomTypes(t *testing.T) {
	params := Input{
		NodeOnly("el/DE"): {Scalars: map[string]interface{}{"type": "hub"}},
		NodeOnly("conv"):  {Scalars: map[string]interface{}{"type": "line"}},
	}
	cfg := &Config{BusType: "hub", LinkType: "line", CarrierDelimiter: "/"}
	c, err := NewCalculator(params, Input{}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsBus("el/DE") || c.IsBus("conv") {
		t.Error("bus detection ignores configured type")
	}
	if !c.IsLink("conv") {
		t.Error("link detection ignores configured type")
	}
	if got := carrierOf(FlowKey("el/DE", "conv", "flow"), c.IsBus, cfg.CarrierDelimiter); got != "DE" {
		t.Errorf("carrier: got %q, want DE", got)
	}
}
