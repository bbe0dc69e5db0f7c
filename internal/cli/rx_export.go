package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/Flyrell/wellnest/internal/stringutil"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/spf13/cobra"
)

var rxExportCmd = LeafCommand{
	Use:   "export NAME",
	Short: "Export a prescription's schedule as a PDF medication sheet",
	Args:  cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "output", Usage: "output file (defaults to <name>-schedule.pdf)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return withEnv(cmd, func(env *appEnv) error {
			return runRxExport(cmd, env, args[0], output, time.Now())
		})
	},
}.Build()

func runRxExport(cmd *cobra.Command, env *appEnv, identifier, output string, now time.Time) error {
	rx, err := env.svc.Resolve(ctxOf(cmd), env.user, identifier)
	if err != nil {
		return err
	}

	if strings.TrimSpace(output) == "" {
		output = stringutil.Slugify(rx.Name) + "-schedule.pdf"
	}

	if err := renderPrescriptionPDF(rx, env.user, output, now); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("exported '%s' to %s", Primary(rx.Name), output)))
	return nil
}

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfTakenColor  = props.Color{Red: 46, Green: 125, Blue: 50}
	pdfMissedColor = props.Color{Red: 198, Green: 40, Blue: 40}
)

func pdfStatusColor(status schedule.Status) *props.Color {
	switch status {
	case schedule.StatusTakenOnTime:
		return &pdfTakenColor
	case schedule.StatusMissed:
		return &pdfMissedColor
	}
	return &pdfMutedColor
}

// renderPrescriptionPDF writes a one-prescription medication sheet listing
// every dose with its status.
func renderPrescriptionPDF(rx prescription.Prescription, user, outputPath string, generated time.Time) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, rx.Name, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(7,
		text.NewCol(6, "Patient: "+user, props.Text{Size: 10, Color: &pdfMutedColor}),
		text.NewCol(6, "Generated "+generated.Format("2006-01-02 15:04"), props.Text{
			Size:  10,
			Align: align.Right,
			Color: &pdfMutedColor,
		}),
	)
	if rx.Info.Description != "" {
		m.AddRow(7, text.NewCol(12, rx.Info.Description, props.Text{Size: 10}))
	}
	m.AddRow(7,
		text.NewCol(6, "Taken with food: "+rx.Info.TakenWithFood, props.Text{Size: 10}),
		text.NewCol(6, schedule.Describe(rx.Pattern, rx.Schedule), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	m.AddRow(7,
		text.NewCol(4, "Date", props.Text{Style: fontstyle.Bold, Size: 10, Color: &pdfHeaderColor}),
		text.NewCol(3, "Day", props.Text{Style: fontstyle.Bold, Size: 10, Color: &pdfHeaderColor}),
		text.NewCol(5, "Status", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: &pdfHeaderColor}),
	)

	if len(rx.Schedule) == 0 {
		m.AddRow(6, text.NewCol(12, "No doses scheduled", props.Text{Size: 9, Color: &pdfMutedColor}))
	}
	for _, e := range rx.Schedule {
		status := e.EffectiveStatus()
		m.AddRow(6,
			text.NewCol(4, schedule.FormatDate(e.Date()), props.Text{Size: 9}),
			text.NewCol(3, e.Date().Weekday().String(), props.Text{Size: 9, Color: &pdfMutedColor}),
			text.NewCol(5, string(status), props.Text{Size: 9, Align: align.Right, Color: pdfStatusColor(status)}),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(8, "Adherence", props.Text{Style: fontstyle.Bold, Size: 12, Color: &pdfHeaderColor}),
		text.NewCol(4, rx.Progress().String(), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
