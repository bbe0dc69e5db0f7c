package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Flyrell/wellnest/internal/remind"
	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/spf13/cobra"
)

var remindCmd = LeafCommand{
	Use:   "remind",
	Short: "Show doses due today and recent doses still unmarked",
	Long: `Show doses due today and doses from the last three days that were never
marked as taken or missed. With --watch the check repeats on the schedule in
the remind.spec config key until interrupted.`,
	Args: cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "watch", Usage: "keep running and repeat the check on schedule"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		return withEnv(cmd, func(env *appEnv) error {
			if !watch {
				return runRemind(cmd, env, time.Now())
			}
			ctx, stop := signal.NotifyContext(ctxOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRemindWatch(ctx, cmd, env, time.Now)
		})
	},
}.Build()

func runRemind(cmd *cobra.Command, env *appEnv, now time.Time) error {
	report, err := remind.Check(ctxOf(cmd), env.svc, env.user, now)
	if err != nil {
		return err
	}
	printReport(cmd, report)
	return nil
}

func runRemindWatch(ctx context.Context, cmd *cobra.Command, env *appEnv, now func() time.Time) error {
	return remind.Run(ctx, env.cfg.Remind.Spec, env.log, func(ctx context.Context) {
		report, err := remind.Check(ctx, env.svc, env.user, now())
		if err != nil {
			env.log.Error().Err(err).Msg("reminder check failed")
			return
		}
		printReport(cmd, report)
	})
}

func printReport(cmd *cobra.Command, r remind.Report) {
	out := cmd.OutOrStdout()
	if r.Empty() {
		_, _ = fmt.Fprintf(out, "%s\n", Silent(r.Lines()[0]))
		return
	}
	if len(r.Due) > 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Info(fmt.Sprintf("Due today (%s):", schedule.FormatDate(r.Date))))
		for _, d := range r.Due {
			_, _ = fmt.Fprintf(out, "  %s\n", Primary(d.Prescription))
		}
	}
	if len(r.Overdue) > 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Warning(fmt.Sprintf("%d dose(s) from the last %d days still unmarked:", len(r.Overdue), remind.LookbackDays)))
		for _, d := range r.Overdue {
			_, _ = fmt.Fprintf(out, "  %s %s\n", Primary(d.Prescription), Silent("on "+schedule.FormatDate(d.Entry.Date())))
		}
	}
}
