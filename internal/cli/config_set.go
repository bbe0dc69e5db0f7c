package cli

import (
	"fmt"
	"strings"

	"github.com/Flyrell/wellnest/internal/config"
	"github.com/Flyrell/wellnest/internal/remind"
	"github.com/spf13/cobra"
)

var configSetCmd = LeafCommand{
	Use:       "set KEY VALUE",
	Short:     "Change one setting",
	Example:   "  wellnest config set storage.driver sqlite\n  wellnest config set remind.spec \"0 9 * * *\"",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := config.ResolveHome()
		if err != nil {
			return err
		}
		return runConfigSet(cmd, homeDir, args[0], args[1])
	},
}.Build()

func runConfigSet(cmd *cobra.Command, homeDir, key, value string) error {
	cfg, err := config.Read(homeDir)
	if err != nil {
		return err
	}

	if strings.EqualFold(key, "remind.spec") {
		if err := remind.ValidateSpec(value); err != nil {
			return err
		}
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Write(homeDir, cfg); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("%s = %s", Primary(strings.ToLower(key)), stored)))
	return nil
}
