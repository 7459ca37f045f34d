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

	"github.com/BurntSushi/toml"
)

// Variable and attribute names used by the optimization layer.
const (
	flowVar          = "flow"
	investVar        = "invest"
	epCostsVar       = "investment_ep_costs"
	variableCostsVar = "variable_costs"

	typeAttr    = "type"
	fromBusAttr = "from_bus"
	toBusAttr   = "to_bus"
)

// componentAttrs are the node attributes attached to every row of the final
// table.
var componentAttrs = []string{"region", "type", "carrier", "tech"}

// Config holds the settings of one postprocessing run. It is passed to
// NewCalculator explicitly; there is no package-level state.
type Config struct {
	// BusType is the value of the type attribute marking bus nodes.
	BusType string

	// LinkType is the value of the type attribute marking link nodes.
	LinkType string

	// CarrierDelimiter separates the region and carrier segments of a bus
	// identifier, as in "DE-electricity".
	CarrierDelimiter string

	// OutputVariables maps names of additional system-level output
	// variables to expressions over the variable names of the final
	// table, for example "total_losses": "sum(storage_losses) +
	// sum(transmission_losses)". Empty means no additional outputs.
	OutputVariables map[string]string
}

// DefaultConfig returns the configuration matching the conventions of the
// optimization layer.
func DefaultConfig() *Config {
	return &Config{
		BusType:          "bus",
		LinkType:         "link",
		CarrierDelimiter: "-",
	}
}

// LoadConfig reads a TOML configuration file, filling unset fields with
// defaults.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return nil, fmt.Errorf("oemoflex: problem reading configuration file: %v", err)
	}
	return cfg, nil
}
