package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var rxTrackCmd = LeafCommand{
	Use:   "track NAME",
	Short: "Interactively mark doses as taken or missed",
	Long: `Open an interactive table of every dose of a prescription.

Keys: up/down (or k/j) move, t marks taken on time, m marks missed,
s resets to scheduled, w saves, q quits. Without a terminal the schedule
is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *appEnv) error {
			return runRxTrack(cmd, env, args[0], time.Now())
		})
	},
}.Build()

func runRxTrack(cmd *cobra.Command, env *appEnv, identifier string, now time.Time) error {
	ctx := ctxOf(cmd)
	rx, err := env.svc.Resolve(ctx, env.user, identifier)
	if err != nil {
		return err
	}

	m := newTrackModel(rx.Name, rx.Schedule, now, func(entries []schedule.Entry) error {
		return env.svc.SaveSchedule(ctx, env.user, rx.Name, entries)
	})

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return printStaticTrackTable(out, m)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out)).Run()
	if err != nil {
		return err
	}
	if tm, ok := final.(trackModel); ok && tm.saves > 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("saved '%s': %s", Primary(rx.Name), schedule.Summarize(tm.entries))))
	}
	return nil
}

func printStaticTrackTable(w io.Writer, m trackModel) error {
	m.cursor = -1
	_, err := fmt.Fprint(w, m.render(0, len(m.entries)))
	return err
}

type trackModel struct {
	name       string
	entries    []schedule.Entry
	today      time.Time
	cursor     int
	scrollY    int
	termHeight int
	dirty      bool
	quitArmed  bool
	saves      int
	footerMsg  string
	save       func([]schedule.Entry) error
}

func newTrackModel(name string, entries []schedule.Entry, now time.Time, save func([]schedule.Entry) error) trackModel {
	m := trackModel{
		name:       name,
		entries:    append([]schedule.Entry(nil), entries...),
		today:      now,
		termHeight: 24,
		save:       save,
	}
	// Start on the first dose not in the past, else on the last one.
	for i, e := range m.entries {
		if !e.Date().Before(truncateDay(now)) {
			m.cursor = i
			break
		}
		m.cursor = i
	}
	return m.ensureCursorVisible()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (m trackModel) Init() tea.Cmd {
	return nil
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termHeight = msg.Height
		m = m.ensureCursorVisible()
	case tea.KeyMsg:
		key := msg.String()
		if key != "q" && key != "esc" {
			m.quitArmed = false
		}
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			if m.dirty && !m.quitArmed {
				m.quitArmed = true
				m.footerMsg = "unsaved changes: press q again to discard, w to save"
				return m, nil
			}
			return m, tea.Quit
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.entries) - 1
		case "t":
			m = m.setStatus(schedule.StatusTakenOnTime)
		case "m":
			m = m.setStatus(schedule.StatusMissed)
		case "s":
			m = m.setStatus(schedule.StatusScheduled)
		case "w":
			m = m.write()
		}
		m = m.ensureCursorVisible()
	}
	return m, nil
}

func (m trackModel) setStatus(status schedule.Status) trackModel {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return m
	}
	if m.entries[m.cursor].EffectiveStatus() == status {
		return m
	}
	// Copy before writing so earlier model values keep their own view.
	entries := append([]schedule.Entry(nil), m.entries...)
	entries[m.cursor].Status = status
	m.entries = entries
	m.dirty = true
	m.footerMsg = ""
	return m
}

func (m trackModel) write() trackModel {
	if !m.dirty {
		m.footerMsg = "nothing to save"
		return m
	}
	if err := m.save(m.entries); err != nil {
		m.footerMsg = "save failed: " + err.Error()
		return m
	}
	m.dirty = false
	m.saves++
	m.footerMsg = "saved"
	return m
}

func (m trackModel) visibleRows() int {
	// title, progress, blank, blank, footer, message
	available := m.termHeight - 6
	if available < 1 {
		available = 1
	}
	if available > len(m.entries) {
		return len(m.entries)
	}
	return available
}

func (m trackModel) ensureCursorVisible() trackModel {
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	}
	if rows := m.visibleRows(); rows > 0 && m.cursor >= m.scrollY+rows {
		m.scrollY = m.cursor - rows + 1
	}
	maxScroll := len(m.entries) - m.visibleRows()
	if m.scrollY > maxScroll {
		m.scrollY = maxScroll
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
	return m
}
