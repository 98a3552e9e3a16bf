package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/metalagman/pourover/internal/brew"
	"github.com/metalagman/pourover/internal/config"
	"github.com/metalagman/pourover/internal/logging"
	"github.com/metalagman/pourover/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	debug   bool
)

// brewFlags holds the quantities given on the command line. Presence is
// decided by the flag's Changed state, not by the value.
type brewFlags struct {
	water  int
	coffee int
	ratio  float64
}

func (f brewFlags) inputs(cmd *cobra.Command) brew.Inputs {
	var in brew.Inputs
	flags := cmd.Flags()
	if flags.Changed("water") {
		water := f.water
		in.Water = &water
	}
	if flags.Changed("coffee") {
		coffee := f.coffee
		in.Coffee = &coffee
	}
	if flags.Changed("ratio") {
		ratio := f.ratio
		in.Ratio = &ratio
	}
	return in
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var flags brewFlags
	cmd := &cobra.Command{
		Use:   "pourover",
		Short: "Calculate pour-over brewing times",
		Long: "Calculate a pour-over schedule from any two of water, coffee and ratio.\n" +
			"The ratio may be given as coffee:water (eg 0.07) or water:coffee (eg 14).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(cmd.ErrOrStderr(), debug)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, cfg, err := buildReport(cmd, flags)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), format, report)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file path (default ./pourover.yaml, then the user config dir)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.IntVarP(&flags.water, "water", "w", 0, "Desired amount of water to use (g/ml)")
	pf.IntVarP(&flags.coffee, "coffee", "c", 0, "Desired grams of coffee to use")
	pf.Float64VarP(&flags.ratio, "ratio", "r", 0, "Desired coffee:water (eg 0.07) or water:coffee (eg 14) ratio")
	pf.StringP(config.KeyPourTime, "p", brew.FormatTime(brew.DefaultPourTime), "Time until the last pour of the kettle (M:SS)")
	pf.IntP(config.KeyBloomTime, "b", brew.DefaultBloomTime, "How many seconds for initial bloom")
	pf.IntP(config.KeySecondIncrements, "s", brew.DefaultIncrement, "Increments to show (eg every 10 seconds)")
	pf.StringP(config.KeyFormat, "o", string(render.FormatText), fmt.Sprintf("Output format %v", render.Formats()))

	cmd.AddCommand(brewCmd(&flags))
	cmd.AddCommand(initCmd())
	return cmd
}

func bindFlags(cmd *cobra.Command) error {
	for _, key := range []string{config.KeyPourTime, config.KeyBloomTime, config.KeySecondIncrements, config.KeyFormat} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return fmt.Errorf("bind %s flag: %w", key, err)
		}
	}
	return nil
}

// buildReport resolves the plan and schedule. Nothing is written until it
// succeeds, so a failed run produces no partial output.
func buildReport(cmd *cobra.Command, flags brewFlags) (render.Report, config.Config, error) {
	in := flags.inputs(cmd)
	if err := in.Validate(); err != nil {
		return render.Report{}, config.Config{}, err
	}
	if err := bindFlags(cmd); err != nil {
		return render.Report{}, config.Config{}, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return render.Report{}, config.Config{}, err
	}

	plan, err := brew.NormalizeWith(in, cfg.Plan())
	if err != nil {
		return render.Report{}, config.Config{}, err
	}
	if !in.Paired() && (in.Water != nil || in.Coffee != nil || in.Ratio != nil) {
		log.Warn().
			Int("water", plan.Water).
			Int("coffee", plan.Coffee).
			Msg("water, coffee and ratio are used in pairs, falling back to the default brew")
	}

	timing := cfg.Timing()
	steps, err := brew.GenerateSchedule(plan, timing)
	if err != nil {
		return render.Report{}, config.Config{}, err
	}
	if len(steps) == 1 {
		log.Warn().
			Int("bloom", steps[0].Water).
			Int("water", plan.Water).
			Msg("bloom water meets the target, nothing to pour after bloom")
	}
	log.Debug().
		Int("water", plan.Water).
		Int("coffee", plan.Coffee).
		Int("pour_time", timing.PourTime).
		Int("bloom_time", timing.BloomTime).
		Int("increment", timing.Increment).
		Int("steps", len(steps)).
		Msg("schedule generated")
	if logging.DebugEnabled() {
		for i, step := range steps {
			log.Debug().
				Int("step", i).
				Str("at", brew.FormatTime(step.At)).
				Int("water", step.Water).
				Msg("schedule step")
		}
	}

	return render.Report{Plan: plan, Timing: timing, Steps: steps}, cfg, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
