package cli

import (
	"fmt"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/spf13/cobra"
)

var rxListCmd = LeafCommand{
	Use:   "list",
	Short: "List prescriptions with their pattern and progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *appEnv) error {
			return runRxList(cmd, env)
		})
	},
}.Build()

func runRxList(cmd *cobra.Command, env *appEnv) error {
	list, err := env.svc.List(ctxOf(cmd), env.user)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Silent(fmt.Sprintf("no prescriptions for '%s'", env.user)))
		return nil
	}

	for _, rx := range list {
		_, _ = fmt.Fprintf(out, "%s\n", rxHeading(rx))
		_, _ = fmt.Fprintf(out, "  %s\n", Text(schedule.Describe(rx.Pattern, rx.Schedule)))
		_, _ = fmt.Fprintf(out, "  %s\n", Silent(rx.Progress().String()))
	}
	return nil
}
