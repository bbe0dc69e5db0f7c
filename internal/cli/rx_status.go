package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/spf13/cobra"
)

var rxStatusCmd = LeafCommand{
	Use:     "status NAME",
	Short:   "Set the status of one scheduled dose",
	Example: `  wellnest rx status Aspirin --date 2025-01-06 --status "taken on time"`,
	Args:    cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "date", Usage: "dose date (YYYY-MM-DD, defaults to today)"},
		{Name: "status", Usage: "scheduled, taken on time or missed"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dateFlag, _ := cmd.Flags().GetString("date")
		statusFlag, _ := cmd.Flags().GetString("status")
		return withEnv(cmd, func(env *appEnv) error {
			return runRxStatus(cmd, env, args[0], dateFlag, statusFlag, NewPromptKit(), time.Now())
		})
	},
}.Build()

func runRxStatus(cmd *cobra.Command, env *appEnv, identifier, dateFlag, statusFlag string, kit PromptKit, now time.Time) error {
	date := now
	if strings.TrimSpace(dateFlag) != "" {
		d, err := schedule.ParseDate(dateFlag)
		if err != nil {
			return err
		}
		date = d
	}

	var status schedule.Status
	if strings.TrimSpace(statusFlag) == "" {
		options := schedule.Statuses()
		labels := make([]string, len(options))
		for i, s := range options {
			labels[i] = string(s)
		}
		idx, err := kit.Select(fmt.Sprintf("Status for %s", schedule.FormatDate(date)), labels)
		if err != nil {
			return err
		}
		status = options[idx]
	} else {
		s, err := schedule.ParseStatus(statusFlag)
		if err != nil {
			return err
		}
		status = s
	}

	found, err := env.svc.UpdateStatus(ctxOf(cmd), env.user, identifier, date, status)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !found {
		_, _ = fmt.Fprintf(out, "%s\n", Warning("No matching date in schedule."))
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("%s on %s marked %s",
		Primary(identifier), schedule.FormatDate(date), StatusColor(status, string(status)))))
	return nil
}
