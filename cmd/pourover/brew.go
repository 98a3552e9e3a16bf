package main

import (
	"github.com/metalagman/pourover/internal/guide"
	"github.com/spf13/cobra"
)

func brewCmd(flags *brewFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "brew",
		Short: "Walk through the pour schedule with a live timer",
		Long: "Start a terminal timer that shows how much water should be in the brewer at each moment.\n" +
			"Takes the same flags as the root command.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, _, err := buildReport(cmd, *flags)
			if err != nil {
				return err
			}
			m := guide.New(report.Plan, report.Timing, report.Steps)
			return guide.Run(cmd.Context(), m, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
