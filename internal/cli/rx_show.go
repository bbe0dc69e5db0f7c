package cli

import (
	"fmt"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/spf13/cobra"
)

var rxShowCmd = LeafCommand{
	Use:   "show NAME",
	Short: "Show a prescription and every scheduled dose",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *appEnv) error {
			return runRxShow(cmd, env, args[0])
		})
	},
}.Build()

func runRxShow(cmd *cobra.Command, env *appEnv, identifier string) error {
	rx, err := env.svc.Resolve(ctxOf(cmd), env.user, identifier)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n", rxHeading(rx))
	writeInfo(cmd, rx)
	_, _ = fmt.Fprintln(out)

	if len(rx.Schedule) == 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Silent("no doses scheduled"))
		return nil
	}
	for _, e := range rx.Schedule {
		_, _ = fmt.Fprintf(out, "  %s\n", StatusColor(e.EffectiveStatus(), e.String()))
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", Silent(rx.Progress().String()))
	return nil
}

func writeInfo(cmd *cobra.Command, rx prescription.Prescription) {
	out := cmd.OutOrStdout()
	if rx.Info.Description != "" {
		_, _ = fmt.Fprintf(out, "  %s %s\n", Silent("description:"), Text(rx.Info.Description))
	}
	_, _ = fmt.Fprintf(out, "  %s %s\n", Silent("with food:  "), Text(rx.Info.TakenWithFood))
	_, _ = fmt.Fprintf(out, "  %s %s\n", Silent("schedule:   "), Text(schedule.Describe(rx.Pattern, rx.Schedule)))
}

// rxHeading renders the name, followed by the ID when the record has one.
func rxHeading(rx prescription.Prescription) string {
	if rx.ID == "" {
		return Primary(rx.Name)
	}
	return Primary(rx.Name) + " " + Silent("("+rx.ID+")")
}
