package cli

import "github.com/spf13/cobra"

var rxCmd = GroupCommand{
	Use:     "rx",
	Short:   "Manage prescriptions and their dose schedules",
	Aliases: []string{"prescription"},
	Subcommands: []*cobra.Command{
		rxAddCmd,
		rxListCmd,
		rxShowCmd,
		rxStatusCmd,
		rxTrackCmd,
		rxNextCmd,
		rxStatsCmd,
		rxExportCmd,
		rxRemoveCmd,
	},
}.Build()
