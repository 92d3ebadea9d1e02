// Command curveinfo prints gain and directional filter curves as tables.
//
// Usage:
//
//	curveinfo [flags] [model-name ...]
//
// Without arguments it prints every gain model, or every filter model with
// -filter.
//
// Examples:
//
//	curveinfo realistic linear
//	curveinfo -max 50 -steps 11 -db exponential logarithmic
//	curveinfo -filter -width 0.18 head
//	curveinfo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/spatial/filter"
	"github.com/cwbudde/algo-spatial/spatial/gain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	filter bool
	list   bool
	db     bool
	steps  int
	max    float64
	power  float64
	width  float64
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("curveinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.BoolVar(&o.filter, "filter", false, "print directional filter models instead of gain models")
	fs.BoolVar(&o.list, "list", false, "list available model names")
	fs.BoolVar(&o.db, "db", false, "print gain in dB instead of linear")
	fs.IntVar(&o.steps, "steps", 9, "number of rows")
	fs.Float64Var(&o.max, "max", 100, "largest distance in meters (gain models)")
	fs.Float64Var(&o.power, "power", math.NaN(), "override the curve power")
	fs.Float64Var(&o.width, "width", math.NaN(), "override the head width in meters (head filter)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: curveinfo [flags] [model-name ...]\n\n")
		fmt.Fprintf(stderr, "Prints gain-over-distance or cutoff-over-direction curves.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if o.steps < 2 {
		fmt.Fprintf(stderr, "error: -steps must be >= 2\n")
		return 2
	}

	if o.list {
		printList(stdout, o.filter)
		return 0
	}

	var err error
	if o.filter {
		err = printFilters(stdout, stderr, fs.Args(), o)
	} else {
		err = printGains(stdout, stderr, fs.Args(), o)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

func printList(w io.Writer, filters bool) {
	if filters {
		for _, k := range filter.Kinds() {
			fmt.Fprintln(w, k)
		}
		return
	}
	for _, k := range gain.Kinds() {
		fmt.Fprintln(w, k)
	}
}

func gainModels(names []string, o options, stderr io.Writer) []gain.Model {
	if len(names) == 0 {
		for _, k := range gain.Kinds() {
			names = append(names, string(k))
		}
	}

	var opts []gain.Option
	if !math.IsNaN(o.power) {
		opts = append(opts, gain.WithPower(o.power))
	}

	var models []gain.Model
	for _, name := range names {
		kind, err := gain.Parse(strings.TrimSpace(name))
		if err != nil {
			fmt.Fprintf(stderr, "warning: %v (use -list to see available)\n", err)
			continue
		}
		m, err := gain.New(kind, opts...)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %s: %v\n", name, err)
			continue
		}
		models = append(models, m)
	}
	return models
}

func printGains(stdout, stderr io.Writer, names []string, o options) error {
	models := gainModels(names, o, stderr)
	if len(models) == 0 {
		return errors.New("no matching gain models")
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)

	header, rule := "Distance [m]", "------------"
	for _, m := range models {
		header += "\t" + string(m.Kind())
		rule += "\t" + strings.Repeat("-", len(m.Kind()))
	}
	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range o.steps {
		d := o.max * float64(i) / float64(o.steps-1)

		row := fmt.Sprintf("%.2f", d)
		for _, m := range models {
			g := m.Calculate(d)
			if o.db {
				row += fmt.Sprintf("\t%.2f", core.LinearToDB(g))
			} else {
				row += fmt.Sprintf("\t%.6f", g)
			}
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}

func printFilters(stdout, stderr io.Writer, names []string, o options) error {
	if len(names) == 0 {
		for _, k := range filter.Kinds() {
			names = append(names, string(k))
		}
	}

	var opts []filter.Option
	if !math.IsNaN(o.power) {
		opts = append(opts, filter.WithPower(o.power))
	}
	if !math.IsNaN(o.width) {
		opts = append(opts, filter.WithWidth(o.width))
	}

	var models []filter.Model
	for _, name := range names {
		kind, err := filter.Parse(strings.TrimSpace(name))
		if err != nil {
			fmt.Fprintf(stderr, "warning: %v (use -list -filter to see available)\n", err)
			continue
		}
		m, err := filter.New(kind, opts...)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %s: %v\n", name, err)
			continue
		}
		models = append(models, m)
	}
	if len(models) == 0 {
		return errors.New("no matching filter models")
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)

	header, rule := "Dot\tAngle [deg]", "---\t-----------"
	for _, m := range models {
		header += "\t" + string(m.Kind()) + " [Hz]"
		rule += "\t" + strings.Repeat("-", len(m.Kind())+5)
	}
	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range o.steps {
		dot := 1 - 2*float64(i)/float64(o.steps-1)

		row := fmt.Sprintf("%+.3f\t%.1f", dot, math.Acos(dot)*180/math.Pi)
		for _, m := range models {
			row += fmt.Sprintf("\t%.1f", m.Calculate(dot))
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}
