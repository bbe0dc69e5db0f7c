package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rxRemoveCmd = LeafCommand{
	Use:   "remove NAME",
	Short: "Remove a prescription and its schedule",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		confirm := NewConfirmFunc()
		if yes {
			confirm = AlwaysYes()
		}
		return withEnv(cmd, func(env *appEnv) error {
			return runRxRemove(cmd, env, args[0], confirm)
		})
	},
}.Build()

func runRxRemove(cmd *cobra.Command, env *appEnv, identifier string, confirm ConfirmFunc) error {
	rx, err := env.svc.Resolve(ctxOf(cmd), env.user, identifier)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Remove prescription '%s' and its %d doses?", rx.Name, len(rx.Schedule)))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Silent("aborted"))
		return nil
	}

	if _, err := env.svc.Delete(ctxOf(cmd), env.user, rx.Name); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("removed prescription '%s'", Primary(rx.Name))))
	return nil
}
