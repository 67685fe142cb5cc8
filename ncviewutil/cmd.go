/*
Copyright © 2024 the NCView authors.
This file is part of NCView.

NCView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

NCView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with NCView.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package ncviewutil holds the command-line interface of the ncview tool.
package ncviewutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/scigrid/ncview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// log routes progress and diagnostic messages to standard error, keeping
// standard output clean for reports.
var log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	log.Out = os.Stderr

	// Options are the configuration options available to ncview.
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
			name: "norm",
			usage: `
              norm specifies the error norm: '1', '2' or 'inf'.`,
			shorthand:  "n",
			defaultVal: "1",
			flagsets:   []*pflag.FlagSet{diffCmd.Flags(), orderCmd.Flags()},
		},
		{
			name: "time",
			usage: `
              time specifies the time index to analyze. The default is -1,
              which selects the last time step.`,
			shorthand:  "t",
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{diffCmd.Flags(), orderCmd.Flags(), snap1dCmd.Flags()},
		},
		{
			name: "var",
			usage: `
              var specifies the variables or expressions to analyze. When
              empty, all stored variables of the reference file are used.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{diffCmd.Flags(), orderCmd.Flags()},
		},
		{
			name: "ref",
			usage: `
              ref specifies the reference (finest grid) file for the
              convergence order analysis.`,
			shorthand:  "r",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{orderCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies the plot output file. The image format
              follows the file extension. When empty, a name is derived
              from the input file.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{snap1dCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NCVIEW")

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
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
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
	Root.AddCommand(infoCmd)
	Root.AddCommand(dimsCmd)
	Root.AddCommand(varsCmd)
	Root.AddCommand(summaryCmd)
	Root.AddCommand(diffCmd)
	Root.AddCommand(orderCmd)
	Root.AddCommand(snap1dCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("ncview: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// newAnalyzer creates an analyzer wired to the CLI logger.
func newAnalyzer() *ncview.Analyzer {
	a := ncview.NewAnalyzer(ncview.DefaultConfig())
	a.Log = log
	return a
}

// timeIndex returns the 'time' option. Values from a configuration file may
// arrive as strings, so the conversion goes through cast.
func timeIndex() int {
	return cast.ToInt(Cfg.Get("time"))
}

// fieldList converts the 'var' option to the field list expected by the
// analyzer, where nil means "all stored variables".
func fieldList() []string {
	fields := Cfg.GetStringSlice("var")
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "ncview",
	Short: "A command-line explorer for gridded NetCDF simulation output.",
	Long: `ncview inspects the structure of NetCDF files, summarizes and plots their
variables, compares two solutions, and estimates the empirical order of
convergence of a numerical scheme across a family of grid refinements.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'NCVIEW_var' where 'var' is
the name of the variable to be set.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ncview.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ncview v%s\n", ncview.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Display NetCDF file structure",
	Long: `info prints the dimensions, variables and global attributes of a
NetCDF file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := ncview.OpenDataset(args[0])
		if err != nil {
			return err
		}
		defer ds.Close()
		fmt.Print(ncview.Info(ds))
		return nil
	},
	DisableAutoGenTag: true,
}

var dimsCmd = &cobra.Command{
	Use:   "dims FILE",
	Short: "Display dimensions and their sizes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := ncview.OpenDataset(args[0])
		if err != nil {
			return err
		}
		defer ds.Close()
		fmt.Print(ncview.Dims(ds))
		return nil
	},
	DisableAutoGenTag: true,
}

var varsCmd = &cobra.Command{
	Use:   "vars FILE",
	Short: "List variables with their attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := ncview.OpenDataset(args[0])
		if err != nil {
			return err
		}
		defer ds.Close()
		fmt.Print(ncview.Vars(ds))
		return nil
	},
	DisableAutoGenTag: true,
}

var summaryCmd = &cobra.Command{
	Use:   "summary FILE [VAR]",
	Short: "Show a statistical summary of variable(s)",
	Long: `summary prints count, minimum, maximum, mean and standard deviation
for one variable, or for every stored variable if none is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := ncview.OpenDataset(args[0])
		if err != nil {
			return err
		}
		defer ds.Close()
		varName := ""
		if len(args) > 1 {
			varName = args[1]
		}
		s, err := ncview.Summary(ds, varName)
		if err != nil {
			return err
		}
		fmt.Print(s)
		return nil
	},
	DisableAutoGenTag: true,
}

var diffCmd = &cobra.Command{
	Use:   "diff FILE1 FILE2",
	Short: "Compute the error between two same-resolution files",
	Long: `diff compares two NetCDF files of identical spatial resolution and
prints the error between their fields under the chosen norm. Use the
convergence analysis ('order') for files of different resolutions.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := newAnalyzer().CompareFiles(args[0], args[1],
			fieldList(), timeIndex(), ncview.Norm(Cfg.GetString("norm")))
		if err != nil {
			return err
		}
		if report.TimeDim != "" {
			fmt.Printf("\nError in norm %s at %s index %d:\n\n", report.Norm, report.TimeDim, report.TimeIndex)
		} else {
			fmt.Printf("\nError in norm %s:\n\n", report.Norm)
		}
		fmt.Print(report.Render())
		return nil
	},
	DisableAutoGenTag: true,
}

var orderCmd = &cobra.Command{
	Use:   "order SAMPLE...",
	Short: "Estimate the empirical convergence order of a scheme",
	Long: `order projects the reference solution (--ref, the finest grid) onto
each coarser sample grid by conservative block averaging, computes the error
of each sample under the chosen norm, and estimates the pairwise empirical
order of convergence between consecutive samples. Samples should be supplied
in refinement-monotonic order, and every sample grid must be an exact integer
subdivision of the reference grid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := Cfg.GetString("ref")
		if ref == "" {
			return fmt.Errorf("ncview: a reference file must be specified with --ref")
		}
		table, err := newAnalyzer().ComputeTable(args, ref,
			fieldList(), timeIndex(), ncview.Norm(Cfg.GetString("norm")))
		if err != nil {
			return err
		}
		if table.TimeDim != "" {
			fmt.Printf("\nOrder table in norm %s at %s=%.3e:\n\n", table.Norm, table.TimeDim, table.TimeValue)
		} else {
			fmt.Printf("\nOrder table in norm %s:\n\n", table.Norm)
		}
		fmt.Print(table.Render())
		return nil
	},
	DisableAutoGenTag: true,
}

var snap1dCmd = &cobra.Command{
	Use:   "snap1d FILE VAR...",
	Short: "Plot a 1-D snapshot at a specific time",
	Long: `snap1d renders one or more variables or expressions of a 1-D dataset
at one time index as a line plot.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		output := Cfg.GetString("output")
		if output == "" {
			output = fmt.Sprintf("%s_snap1d.png", args[0])
		}
		if err := newAnalyzer().Snapshot1D(args[0], args[1:], timeIndex(), output); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"output": output}).Info("✓ snapshot saved")
		return nil
	},
	DisableAutoGenTag: true,
}
