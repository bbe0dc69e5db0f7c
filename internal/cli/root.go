package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellnest",
		Short: "Track prescriptions and dose adherence",
		Long: `WellNest keeps a per-user list of prescriptions. Each prescription gets a
dated schedule of doses generated from a start date, a set of weekdays and a
number of weeks, and every dose can be marked as taken on time or missed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringP("user", "u", "", "profile to act on (defaults to the configured user)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")
	cmd.SetHelpFunc(colorizedHelpFunc())

	cmd.AddCommand(rxCmd)
	cmd.AddCommand(remindCmd)
	cmd.AddCommand(configCmd)
	cmd.AddCommand(completionCmd)
	cmd.AddCommand(versionCmd)
	return cmd
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln(Error("error: " + err.Error()))
	}
	return err
}

// Root returns the top-level command, for tools that walk the command tree.
func Root() *cobra.Command {
	return rootCmd
}
