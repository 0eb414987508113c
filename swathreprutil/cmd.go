/*
Copyright © 2019 the SwathRepr authors.
This file is part of SwathRepr.

SwathRepr is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SwathRepr is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SwathRepr.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package swathreprutil holds the command-line interface of the swathrepr
// reprojection tool.
package swathreprutil

import (
	"fmt"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/swathrepr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})

	// Options are the configuration options available to swathrepr.
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
			name: "message",
			usage: `
              message is a JSON reprojection request. Grid parameters given
              in the message take precedence over the equivalent
              command-line options.`,
			shorthand:  "m",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile is the path of the NetCDF granule whose science
              variables are to be reprojected.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the merged reprojection output. If
              empty, the output is written next to the input file with a
              '_repr' suffix.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "CRS",
			usage: `
              CRS is the proj4 string of the target projection. The default
              is geographic WGS84.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "Interpolation",
			usage: `
              Interpolation selects the resampling method: 'bilinear',
              'ewa', 'ewa-nn', or 'near'. The default is 'ewa-nn'.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "ScaleExtent",
			usage: `
              ScaleExtent is the target grid extent as
              'xmin,ymin,xmax,ymax' in projected coordinates. If empty, the
              extent is derived from the swath perimeter.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "XRes",
			usage: `
              XRes is the target cell width in projected units. Zero means
              unspecified. Cannot be combined with Width/Height.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "YRes",
			usage: `
              YRes is the target cell height in projected units, normally
              negative. Zero means unspecified.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "Width",
			usage: `
              Width is the target grid width in pixels. Zero means
              unspecified. Cannot be combined with XRes/YRes.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "Height",
			usage: `
              Height is the target grid height in pixels. Zero means
              unspecified.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
		{
			name: "WriteGridShp",
			usage: `
              WriteGridShp writes the resolved target grid geometry to a
              shapefile next to the output file, for inspection.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{reprojectCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("SWATHREPR")

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
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
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
	Root.AddCommand(reprojectCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("swathrepr: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "swathrepr",
	Short: "A swath-to-grid reprojection tool.",
	Long: `swathrepr resamples irregularly gridded satellite swath data onto a
regular target grid. Use the subcommands specified below to access the
tool functionality.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'SWATHREPR_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of swathrepr.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("swathrepr v%s\n", swathrepr.Version)
	},
	DisableAutoGenTag: true,
}

var reprojectCmd = &cobra.Command{
	Use:   "reproject",
	Short: "Reproject the science variables of a granule.",
	Long: `reproject resamples every science variable in the input granule onto
the requested target grid and merges the results into a single output
file. Variables that cannot be resampled are logged and omitted; the
command fails only if no variable can be resampled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Reproject(Cfg)
	},
	DisableAutoGenTag: true,
}
