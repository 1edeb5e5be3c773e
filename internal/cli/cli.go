// Package cli implements the railgeom command-line interface.
package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"honnef.co/go/railgeom"
	"honnef.co/go/railgeom/internal/planfile"
	"honnef.co/go/railgeom/validate"
)

// Version is the version of railgeom.
const Version = "0.1.0"

// Cfg holds configuration information and the command tree that uses it.
type Cfg struct {
	*viper.Viper

	Root *cobra.Command

	validateCmd, boundsCmd, sampleCmd, versionCmd *cobra.Command
}

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// InitializeConfig builds a fresh command tree bound to a fresh
// configuration.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "railgeom",
		Short: "Inspect railway alignment geometry.",
		Long: `railgeom reads railway design plans described in TOML and validates,
samples and bounds their alignments.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RAILGEOM_var' where 'var' is
the name of the variable to be set.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.setConfig(); err != nil {
				return err
			}
			return cfg.setLogger(cmd.ErrOrStderr())
		},
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of this version of railgeom.",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "railgeom v%s\n", Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.validateCmd = &cobra.Command{
		Use:   "validate plan.toml",
		Short: "Validate a plan.",
		Long: `validate checks the geometry, profiles and cant of every alignment
in the plan and prints the issues it finds, one per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planfile.Load(args[0])
			if err != nil {
				return fmt.Errorf("railgeom: while loading plan: %v", err)
			}
			return Validate(cmd.OutOrStdout(), plan, validate.Options{Gauge: cfg.GetFloat64("Gauge")})
		},
		DisableAutoGenTag: true,
	}

	cfg.boundsCmd = &cobra.Command{
		Use:   "bounds plan.toml",
		Short: "Print the bounding polygon of a plan.",
		Long: `bounds prints the convex hull of a plan's geometry as a GeoJSON
polygon, transformed from SourceProj to TargetProj.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planfile.Load(args[0])
			if err != nil {
				return fmt.Errorf("railgeom: while loading plan: %v", err)
			}
			tf, err := railgeom.NewProjTransform(cfg.GetString("SourceProj"), cfg.GetString("TargetProj"))
			if err != nil {
				return err
			}
			return Bounds(cmd.OutOrStdout(), plan, tf)
		},
		DisableAutoGenTag: true,
	}

	cfg.sampleCmd = &cobra.Command{
		Use:   "sample plan.toml",
		Short: "Sample the alignments of a plan.",
		Long: `sample prints the position, height and cant of every alignment in the
plan every Step metres, and at each alignment's end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planfile.Load(args[0])
			if err != nil {
				return fmt.Errorf("railgeom: while loading plan: %v", err)
			}
			return Sample(cmd.OutOrStdout(), plan, cfg.GetFloat64("Step"))
		},
		DisableAutoGenTag: true,
	}

	cfg.Root.AddCommand(cfg.versionCmd, cfg.validateCmd, cfg.boundsCmd, cfg.sampleCmd)

	// Set the prefix for configuration environment variables.
	cfg.SetEnvPrefix("RAILGEOM")
	cfg.AutomaticEnv()

	for _, option := range cfg.options() {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

// options returns the configuration options available to railgeom.
func (cfg *Cfg) options() []option {
	return []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the level of the messages logged to standard
              error: panic, fatal, error, warn, info, debug or trace.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "SourceProj",
			usage: `
              SourceProj is the proj4 definition of the plan coordinate
              system. The default is ETRS-TM35FIN.`,
			defaultVal: "+proj=utm +zone=35 +ellps=GRS80 +units=m +no_defs",
			flagsets:   []*pflag.FlagSet{cfg.boundsCmd.Flags()},
		},
		{
			name: "TargetProj",
			usage: `
              TargetProj is the proj4 definition of the coordinate system
              the bounding polygon is written in.`,
			defaultVal: "+proj=longlat +datum=WGS84 +no_defs",
			flagsets:   []*pflag.FlagSet{cfg.boundsCmd.Flags()},
		},
		{
			name: "Step",
			usage: `
              Step is the distance in metres between samples.`,
			shorthand:  "s",
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{cfg.sampleCmd.Flags()},
		},
		{
			name: "Gauge",
			usage: `
              Gauge is the expected track gauge in metres.`,
			defaultVal: validate.DefaultOptions.Gauge,
			flagsets:   []*pflag.FlagSet{cfg.validateCmd.Flags()},
		},
	}
}

// setConfig finds and reads in the configuration file, if there is one.
func (cfg *Cfg) setConfig() error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("railgeom: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// setLogger routes the library's diagnostics to w at the configured level.
func (cfg *Cfg) setLogger(w io.Writer) error {
	lvl, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("railgeom: %v", err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	railgeom.Logger = log
	return nil
}

// Validate writes the validation issues of plan to w.
func Validate(w io.Writer, plan *railgeom.Plan, opts validate.Options) error {
	issues := validate.Plan(plan, opts)
	for _, is := range issues {
		if _, err := fmt.Fprintln(w, is); err != nil {
			return err
		}
	}
	railgeom.Logger.WithFields(logrus.Fields{
		"plan":   plan.Name,
		"issues": len(issues),
	}).Info("validated plan")
	return nil
}

// Bounds writes the bounding polygon of plan, mapped through tf, to w as
// GeoJSON.
func Bounds(w io.Writer, plan *railgeom.Plan, tf railgeom.Transform) error {
	pts := railgeom.BoundingPolygon(plan, tf)
	if pts == nil {
		return fmt.Errorf("railgeom: bounding polygon of plan %q is unavailable", plan.Name)
	}
	b, err := railgeom.GeoJSON(pts)
	if err != nil {
		return fmt.Errorf("railgeom: while encoding bounding polygon: %v", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// Sample writes tab-separated samples of every alignment of plan to w, one
// every step metres. Missing heights and cants are written as "-".
func Sample(w io.Writer, plan *railgeom.Plan, step float64) error {
	if !(step > 0) {
		return fmt.Errorf("railgeom: invalid step %g", step)
	}
	if _, err := fmt.Fprintln(w, "alignment\tm\tx\ty\theight\tcant"); err != nil {
		return err
	}
	for _, a := range plan.Alignments {
		length := a.Length()
		n := int(math.Ceil(length / step))
		for i := 0; i <= n; i++ {
			m := math.Min(float64(i)*step, length)
			pt, ok := a.PositionAt(m)
			if !ok {
				continue
			}
			h, hok := a.HeightAt(m)
			c, cok := a.CantAt(m)
			_, err := fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%s\t%s\n",
				a.Name, m, pt.X, pt.Y, optional(h, hok), optional(c, cok))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func optional(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}
