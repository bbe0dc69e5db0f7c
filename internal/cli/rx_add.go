package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/spf13/cobra"
)

var rxAddCmd = LeafCommand{
	Use:   "add [NAME]",
	Short: "Add a prescription and generate its dose schedule",
	Long: `Add a prescription and generate its dose schedule.

Doses are placed on the chosen weekdays of each of the given number of
seven-day blocks, starting with the Monday-to-Sunday week that contains the
start date. Values not passed as flags are asked for interactively.`,
	Example: "  wellnest rx add Aspirin --start 2025-01-01 --days Mon,Wed,Fri --weeks 4 --food yes",
	Args:    cobra.MaximumNArgs(1),
	StrFlags: []StringFlag{
		{Name: "start", Usage: "start date (YYYY-MM-DD)"},
		{Name: "days", Usage: "comma-separated weekdays, e.g. Mon,Wed,Fri"},
		{Name: "weeks", Usage: "number of weeks"},
		{Name: "description", Usage: "dosage notes"},
		{Name: "food", Usage: "taken with food (yes/no)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		in := prescription.NewPrescription{}
		if len(args) > 0 {
			in.Name = args[0]
		}
		in.StartDate, _ = cmd.Flags().GetString("start")
		in.Weekdays, _ = cmd.Flags().GetString("days")
		in.Weeks, _ = cmd.Flags().GetString("weeks")
		in.Description, _ = cmd.Flags().GetString("description")
		in.TakenWithFood, _ = cmd.Flags().GetString("food")

		return withEnv(cmd, func(env *appEnv) error {
			return runRxAdd(cmd, env, in, NewPromptKit(), time.Now())
		})
	},
}.Build()

var weekdayLabels = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func runRxAdd(cmd *cobra.Command, env *appEnv, in prescription.NewPrescription, kit PromptKit, now time.Time) error {
	in, err := promptMissing(in, kit, now)
	if err != nil {
		return err
	}

	rx, err := env.svc.Create(ctxOf(cmd), env.user, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("created prescription '%s' (%s)", Primary(rx.Name), Silent(rx.ID))))
	if len(rx.Schedule) == 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Warning(fmt.Sprintf("no doses scheduled: no recognised weekdays in %q", in.Weekdays)))
		return nil
	}
	_, _ = fmt.Fprintf(out, "  %s\n", Text(schedule.FormatPattern(rx.Pattern)))
	_, _ = fmt.Fprintf(out, "  %s\n", Silent(fmt.Sprintf("%d doses, first on %s", len(rx.Schedule), schedule.FormatDate(rx.Schedule[0].Date()))))
	return nil
}

// promptMissing asks for every required value that was not given as a flag.
func promptMissing(in prescription.NewPrescription, kit PromptKit, now time.Time) (prescription.NewPrescription, error) {
	var err error
	if strings.TrimSpace(in.Name) == "" {
		if in.Name, err = kit.Prompt("Prescription name", ""); err != nil {
			return in, err
		}
	}
	if strings.TrimSpace(in.StartDate) == "" {
		if in.StartDate, err = kit.Prompt("Start date (YYYY-MM-DD)", schedule.FormatDate(now)); err != nil {
			return in, err
		}
	}
	if strings.TrimSpace(in.Weekdays) == "" {
		picked, err := kit.MultiSelect("Weekdays", weekdayLabels)
		if err != nil {
			return in, err
		}
		tokens := make([]string, 0, len(picked))
		for _, i := range picked {
			if i >= 0 && i < len(schedule.WeekdayTokens) {
				tokens = append(tokens, schedule.WeekdayTokens[i])
			}
		}
		in.Weekdays = strings.Join(tokens, ",")
	}
	if strings.TrimSpace(in.Weeks) == "" {
		if in.Weeks, err = kit.Prompt("Number of weeks", "4"); err != nil {
			return in, err
		}
	}
	if strings.TrimSpace(in.TakenWithFood) == "" {
		choice, err := kit.Select("Taken with food?", []string{"Yes", "No"})
		if err != nil {
			return in, err
		}
		in.TakenWithFood = []string{"Yes", "No"}[choice]
	}
	return in, nil
}
