package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rxStatsCmd = LeafCommand{
	Use:   "stats",
	Short: "Show the dose status distribution across all prescriptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *appEnv) error {
			return runRxStats(cmd, env)
		})
	},
}.Build()

func runRxStats(cmd *cobra.Command, env *appEnv) error {
	stats, err := env.svc.Stats(ctxOf(cmd), env.user)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n", Info("Prescription Status"))
	if stats.Total == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", Silent("no doses scheduled"))
		return nil
	}

	for _, c := range stats.Counts {
		label := padRight(string(c.Status), 14)
		_, _ = fmt.Fprintf(out, "  %s %4d  %5.1f%%\n", StatusColor(c.Status, label), c.Count, c.Percent)
	}
	_, _ = fmt.Fprintf(out, "  %s %4d\n", Silent(padRight("total", 14)), stats.Total)
	return nil
}

// padRight pads s with spaces to width, truncating when longer.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + fmt.Sprintf("%*s", width-len(s), "")
}
