package cli

import (
	"fmt"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/spf13/cobra"
)

var rxNextCmd = LeafCommand{
	Use:   "next NAME",
	Short: "List the next doses of a prescription",
	Args:  cobra.ExactArgs(1),
	IntFlags: []IntFlag{
		{Name: "count", Usage: "number of doses to show", Default: 5},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return withEnv(cmd, func(env *appEnv) error {
			return runRxNext(cmd, env, args[0], count, time.Now())
		})
	},
}.Build()

func runRxNext(cmd *cobra.Command, env *appEnv, identifier string, count int, now time.Time) error {
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	rx, err := env.svc.Resolve(ctxOf(cmd), env.user, identifier)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rx.Schedule) == 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Silent(fmt.Sprintf("'%s' has no scheduled doses", rx.Name)))
		return nil
	}

	var dates []time.Time
	if rx.Pattern == "" {
		dates = schedule.UpcomingEntries(rx.Schedule, now, count)
	} else if dates, err = schedule.Upcoming(rx.Pattern, now, count); err != nil {
		return err
	}
	if len(dates) == 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Silent(fmt.Sprintf("no upcoming doses for '%s'", rx.Name)))
		return nil
	}

	_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("next doses of '%s':", Primary(rx.Name))))
	for _, d := range dates {
		_, _ = fmt.Fprintf(out, "  %s %s\n", schedule.FormatDate(d), Silent(d.Weekday().String()))
	}
	return nil
}
