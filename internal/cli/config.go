package cli

import "github.com/spf13/cobra"

var configCmd = GroupCommand{
	Use:   "config",
	Short: "Read and change settings in ~/.wellnest/config.yaml",
	Subcommands: []*cobra.Command{
		configGetCmd,
		configSetCmd,
		configShowCmd,
	},
}.Build()
