// Package ui is the terminal timer frontend. It hosts the four study
// timer slots behind a one-second tick and records finished sessions
// straight into the local database.
package ui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
	"gatedesk/internal/notify"
	"gatedesk/internal/timer"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputLabel
)

var modeTitles = map[timer.Mode]string{
	timer.ModeFocus:     "Focus",
	timer.ModeShort:     "Short Break",
	timer.ModeLong:      "Long Break",
	timer.ModeStopwatch: "Stopwatch",
}

// pendingRecord is a session whose write failed. It survives on the
// model so the consumed time is not lost with the reset slot.
type pendingRecord struct {
	mode    timer.Mode
	seconds int
	label   string
	notes   string
}

type Model struct {
	width, height int

	tm    *timer.Manager
	input inputMode
	label textinput.Model
	notes string
	retry *pendingRecord

	loc *time.Location
	now time.Time

	summary    db.Summary
	summaryErr error

	status string
	st     Theme

	dbh *sql.DB
	cfg config.Config
}

func newModel(dbh *sql.DB, cfg config.Config) Model {
	li := textinput.New()
	li.Placeholder = "What are you studying?"
	li.CharLimit = 120
	li.Width = 40

	loc := cfg.Location()
	return Model{
		tm: timer.New(timer.Config{
			FocusSeconds: cfg.Timer.FocusMinutes * 60,
			ShortSeconds: cfg.Timer.ShortMinutes * 60,
			LongSeconds:  cfg.Timer.LongMinutes * 60,
			MinSeconds:   cfg.Timer.MinSeconds,
		}),
		label: li,
		loc:   loc,
		now:   time.Now().In(loc),
		st:    DefaultTheme,
		dbh:   dbh,
		cfg:   cfg,
	}
}

// Run loads config, opens the database and drives the timer UI until
// the user quits.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbh, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(dbh, cfg), tea.WithAltScreen())
	_, runErr := p.Run()
	_ = dbh.Close()
	return runErr
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.loadSummaryCmd())
}

// ---------- messages & commands ----------

type tickMsg struct{ now time.Time }

type summaryMsg struct {
	summary db.Summary
	err     error
}

type recordedMsg struct {
	rec pendingRecord
	err error
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

func (m Model) loadSummaryCmd() tea.Cmd {
	dbh, loc := m.dbh, m.loc
	return func() tea.Msg {
		s, err := db.Summarize(dbh, loc, time.Now())
		return summaryMsg{summary: s, err: err}
	}
}

func (m Model) recordCmd(rec pendingRecord) tea.Cmd {
	dbh, loc := m.dbh, m.loc
	return func() tea.Msg {
		_, err := db.RecordSession(dbh, loc, time.Now(), db.NewSession{
			Duration: rec.seconds,
			Mode:     string(rec.mode),
			Label:    rec.label,
			Notes:    rec.notes,
		})
		return recordedMsg{rec: rec, err: err}
	}
}

func (m Model) pending(mode timer.Mode, seconds int) pendingRecord {
	return pendingRecord{mode: mode, seconds: seconds, label: m.label.Value(), notes: m.notes}
}

func notifyCompletion(mode timer.Mode, seconds int) tea.Cmd {
	return func() tea.Msg {
		title, body := notify.FormatCompletion(string(mode), seconds/60)
		_ = notify.Info(title, body)
		return nil
	}
}

// ---------- update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		m.now = msg.now.In(m.loc)
		res := m.tm.Tick()
		if res.Completed {
			return m, tea.Batch(
				tick(),
				m.recordCmd(m.pending(res.Mode, res.Seconds)),
				notifyCompletion(res.Mode, res.Seconds),
			)
		}
		return m, tick()

	case recordedMsg:
		if msg.err != nil {
			m.retry = &msg.rec
			m.status = m.st.Error.Render(fmt.Sprintf("save failed (%s kept): %s · y to retry", fmtClock(msg.rec.seconds), msg.err.Error()))
			return m, nil
		}
		m.retry = nil
		m.status = m.st.Success.Render(fmt.Sprintf("Logged %s of %s", fmtClock(msg.rec.seconds), modeTitles[msg.rec.mode]))
		return m, m.loadSummaryCmd()

	case summaryMsg:
		m.summary, m.summaryErr = msg.summary, msg.err
		return m, nil

	case tea.KeyMsg:
		if m.input == inputLabel {
			return m.updateLabelInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateLabelInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.input = inputNone
		m.label.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.label, cmd = m.label.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ", "enter":
		m.tm.Toggle()
		m.status = ""
		return m, nil

	case "s":
		res := m.tm.Stop()
		switch {
		case res.Recorded:
			return m, m.recordCmd(m.pending(res.Mode, res.Seconds))
		case res.TooShort:
			m.status = m.st.Hint.Render(fmt.Sprintf("Discarded %s: too short to log", fmtClock(res.Seconds)))
		}
		return m, nil

	case "y":
		if m.retry != nil {
			return m, m.recordCmd(*m.retry)
		}
		return m, nil

	case "r":
		m.tm.Reset(m.tm.Visible())
		m.status = ""
		return m, nil

	case "tab":
		m.tm.SwitchMode(nextMode(m.tm.Visible()))
		m.status = ""
		return m, nil

	case "1", "2", "3", "4":
		idx := int(msg.Runes[0] - '1')
		m.tm.SwitchMode(timer.Modes[idx])
		m.status = ""
		return m, nil

	case "l":
		m.input = inputLabel
		m.label.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func nextMode(cur timer.Mode) timer.Mode {
	for i, mode := range timer.Modes {
		if mode == cur {
			return timer.Modes[(i+1)%len(timer.Modes)]
		}
	}
	return timer.ModeFocus
}

// ---------- view ----------

func fmtClock(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func fmtMinutes(seconds int64) string {
	return fmt.Sprintf("%dm", seconds/60)
}

func (m Model) View() string {
	var b strings.Builder

	tabs := make([]string, 0, len(timer.Modes))
	for _, mode := range timer.Modes {
		if mode == m.tm.Visible() {
			tabs = append(tabs, m.st.TabOn.Render(modeTitles[mode]))
		} else {
			tabs = append(tabs, m.st.TabOff.Render(modeTitles[mode]))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	slot := m.tm.Slot(m.tm.Visible())
	state := m.st.Paused.Render("paused")
	if slot.Running {
		state = m.st.Running.Render("running")
	}
	clock := m.st.Clock.Render(fmtClock(slot.Seconds))
	b.WriteString(m.st.Border.Render(clock+"\n"+state) + "\n")

	if v := m.label.Value(); v != "" || m.input == inputLabel {
		b.WriteString(m.st.Label.Render("label ") + m.label.View() + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString("\n")

	if m.summaryErr == nil {
		b.WriteString(m.st.Label.Render("today ") + m.st.Value.Render(fmtMinutes(m.summary.Daily)))
		b.WriteString(m.st.Label.Render("  week ") + m.st.Value.Render(fmtMinutes(m.summary.Weekly)))
		b.WriteString(m.st.Label.Render("  month ") + m.st.Value.Render(fmtMinutes(m.summary.Monthly)))
		b.WriteString(m.st.Label.Render("  total ") + m.st.Value.Render(fmtMinutes(m.summary.Total)))
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.st.Hint.Render("space start/pause · s stop & log · r reset · tab/1-4 switch · l label · q quit"))
	return b.String()
}
