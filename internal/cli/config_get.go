package cli

import (
	"fmt"

	"github.com/Flyrell/wellnest/internal/config"
	"github.com/spf13/cobra"
)

var configGetCmd = LeafCommand{
	Use:       "get KEY",
	Short:     "Print one setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := config.ResolveHome()
		if err != nil {
			return err
		}
		return runConfigGet(cmd, homeDir, args[0])
	},
}.Build()

func runConfigGet(cmd *cobra.Command, homeDir, key string) error {
	cfg, err := config.Read(homeDir)
	if err != nil {
		return err
	}
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
