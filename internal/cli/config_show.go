package cli

import (
	"fmt"

	"github.com/Flyrell/wellnest/internal/config"
	"github.com/spf13/cobra"
)

var configShowCmd = LeafCommand{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := config.ResolveHome()
		if err != nil {
			return err
		}
		return runConfigShow(cmd, homeDir)
	},
}.Build()

func runConfigShow(cmd *cobra.Command, homeDir string) error {
	cfg, err := config.Read(homeDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n", Silent(config.Path(homeDir)))
	for _, key := range config.Keys() {
		value, _ := cfg.Get(key)
		if value == "" {
			value = Silent("(unset)")
		}
		_, _ = fmt.Fprintf(out, "  %s %s\n", Primary(padRight(key, 15)), Text(value))
	}
	return nil
}
