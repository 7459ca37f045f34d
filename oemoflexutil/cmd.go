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

// Package oemoflexutil provides the command-line interface and the CSV
// datapackage plumbing around the oemoflex postprocessing core.
package oemoflexutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/rl-institut/oemoflex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to oemoflex.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "data",
			usage: `
              data specifies the directory holding the params and results
              CSV datapackage of one optimization run.`,
			shorthand:  "d",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), groupCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies where results are written: the scalars CSV
              file for 'run', the directory of per-element CSV files for
              'group'.`,
			shorthand:  "o",
			defaultVal: "scalars.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), groupCmd.Flags()},
		},
		{
			name: "BusType",
			usage: `
              BusType is the value of the type attribute marking bus nodes.`,
			defaultVal: "bus",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LinkType",
			usage: `
              LinkType is the value of the type attribute marking link nodes.`,
			defaultVal: "link",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "CarrierDelimiter",
			usage: `
              CarrierDelimiter separates the region and carrier segments of
              a bus identifier, as in "DE-electricity".`,
			defaultVal: "-",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables maps names of additional system-level output
              variables to expressions over the variable names of the final
              table, for example
              {"total_losses": "sum(storage_losses) + sum(transmission_losses)"}.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("OEMOFLEX")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(groupCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("oemoflex: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// configFromViper assembles the postprocessing configuration from the merged
// flag and configuration file settings.
func configFromViper(cfg *viper.Viper) *oemoflex.Config {
	c := oemoflex.DefaultConfig()
	c.BusType = cfg.GetString("BusType")
	c.LinkType = cfg.GetString("LinkType")
	c.CarrierDelimiter = cfg.GetString("CarrierDelimiter")
	if cfg.Get("OutputVariables") != nil {
		c.OutputVariables = GetStringMapString("OutputVariables", cfg)
	}
	return c
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "oemoflex",
	Short: "Postprocessing for energy-system optimization results.",
	Long: `oemoflex derives named metrics from the raw output of an energy-system
optimization: summed flows, storage and transmission losses, invested
capacities and their costs, variable costs, and the total system cost.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'OEMOFLEX_var'
where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of oemoflex.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("oemoflex v%s\n", oemoflex.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Postprocess one optimization run.",
	Long: `run reads the params and results CSV datapackage from the data
directory, derives the standard metric catalogue, and writes the final
scalars table to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := Cfg.GetString("data")
		params, results, err := ReadInput(dataDir)
		if err != nil {
			return err
		}
		rows, err := oemoflex.Run(params, results, configFromViper(Cfg))
		if err != nil {
			return err
		}
		outFile := Cfg.GetString("output")
		log.Printf("oemoflex: writing %d rows to %s", len(rows), outFile)
		return WriteScalars(outFile, rows)
	},
	DisableAutoGenTag: true,
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Postprocess and pivot per carrier-tech element.",
	Long: `group runs the same postprocessing as 'run' but pivots the final
table into one wide CSV file per distinct carrier-tech pair, written to the
output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := Cfg.GetString("data")
		params, results, err := ReadInput(dataDir)
		if err != nil {
			return err
		}
		rows, err := oemoflex.Run(params, results, configFromViper(Cfg))
		if err != nil {
			return err
		}
		outDir := Cfg.GetString("output")
		elements := oemoflex.GroupByElement(rows)
		for name, et := range elements {
			f := filepath.Join(outDir, name+".csv")
			if err := WriteElement(f, et); err != nil {
				return err
			}
			log.Printf("oemoflex: wrote %s", f)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
