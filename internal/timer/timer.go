// Package timer holds the four independent pomodoro slots behind the
// study timer: focus, short break, long break, and a stopwatch. One
// slot is visible at a time; switching away pauses a slot without
// resetting it, so each mode resumes where it left off.
package timer

type Mode string

const (
	ModeFocus     Mode = "focus"
	ModeShort     Mode = "short"
	ModeLong      Mode = "long"
	ModeStopwatch Mode = "stopwatch"
)

// Modes lists all slots in display order.
var Modes = []Mode{ModeFocus, ModeShort, ModeLong, ModeStopwatch}

type Config struct {
	FocusSeconds int
	ShortSeconds int
	LongSeconds  int
	// MinSeconds is the recording threshold; a stop at or below it is
	// discarded as too short.
	MinSeconds int
}

// Slot is the counter state of one mode. Seconds counts down for the
// countdown modes and up for the stopwatch.
type Slot struct {
	Seconds int
	Running bool
}

type Manager struct {
	cfg     Config
	slots   map[Mode]*Slot
	visible Mode
}

func New(cfg Config) *Manager {
	if cfg.MinSeconds <= 0 {
		cfg.MinSeconds = 60
	}
	m := &Manager{
		cfg:     cfg,
		visible: ModeFocus,
		slots: map[Mode]*Slot{
			ModeFocus:     {Seconds: cfg.FocusSeconds},
			ModeShort:     {Seconds: cfg.ShortSeconds},
			ModeLong:      {Seconds: cfg.LongSeconds},
			ModeStopwatch: {Seconds: 0},
		},
	}
	return m
}

func (m *Manager) Visible() Mode { return m.visible }

// Slot returns a copy of one slot's state.
func (m *Manager) Slot(mode Mode) Slot { return *m.slots[mode] }

// Configured returns a mode's full duration in seconds (zero for the
// stopwatch).
func (m *Manager) Configured(mode Mode) int {
	switch mode {
	case ModeFocus:
		return m.cfg.FocusSeconds
	case ModeShort:
		return m.cfg.ShortSeconds
	case ModeLong:
		return m.cfg.LongSeconds
	default:
		return 0
	}
}

// TickResult reports what a tick did. Completed is set when a
// countdown just hit zero; Seconds then carries the full configured
// duration to record.
type TickResult struct {
	Completed bool
	Mode      Mode
	Seconds   int
}

// Tick advances the visible slot by one second. Only the visible slot
// moves, and only while it is running. A countdown reaching zero
// auto-stops, resets to its configured duration and reports
// completion; recording the interval is the caller's job.
func (m *Manager) Tick() TickResult {
	s := m.slots[m.visible]
	if !s.Running {
		return TickResult{}
	}
	if m.visible == ModeStopwatch {
		s.Seconds++
		return TickResult{}
	}
	if s.Seconds > 0 {
		s.Seconds--
	}
	if s.Seconds > 0 {
		return TickResult{}
	}
	s.Running = false
	s.Seconds = m.Configured(m.visible)
	return TickResult{Completed: true, Mode: m.visible, Seconds: m.Configured(m.visible)}
}

// Start sets the visible slot running.
func (m *Manager) Start() { m.slots[m.visible].Running = true }

// Pause stops the visible slot's ticks without touching its counter.
func (m *Manager) Pause() { m.slots[m.visible].Running = false }

// Toggle flips the visible slot between running and paused.
func (m *Manager) Toggle() {
	s := m.slots[m.visible]
	s.Running = !s.Running
}

// SwitchMode changes which slot is visible, pausing the one being
// left so its counter survives until the user comes back.
func (m *Manager) SwitchMode(mode Mode) {
	if _, ok := m.slots[mode]; !ok || mode == m.visible {
		return
	}
	m.slots[m.visible].Running = false
	m.visible = mode
}

// Reset stops a slot and restores its configured duration.
func (m *Manager) Reset(mode Mode) {
	s, ok := m.slots[mode]
	if !ok {
		return
	}
	s.Running = false
	s.Seconds = m.Configured(mode)
}

// StopResult reports the outcome of a manual stop.
type StopResult struct {
	// Recorded means Seconds of Mode time should be persisted.
	Recorded bool
	// TooShort means time was consumed but fell at or under the
	// recording threshold and was discarded.
	TooShort bool
	Mode     Mode
	Seconds  int
}

// Stop pauses the visible slot and computes the consumed duration:
// configured minus remaining for countdowns, elapsed for the
// stopwatch. The slot resets either way. Stopping a pristine idle
// slot is a no-op.
func (m *Manager) Stop() StopResult {
	mode := m.visible
	s := m.slots[mode]
	wasRunning := s.Running
	s.Running = false

	var consumed int
	if mode == ModeStopwatch {
		consumed = s.Seconds
	} else {
		consumed = m.Configured(mode) - s.Seconds
	}
	if consumed == 0 && !wasRunning {
		return StopResult{Mode: mode}
	}

	m.Reset(mode)
	if consumed <= m.cfg.MinSeconds {
		return StopResult{TooShort: true, Mode: mode, Seconds: consumed}
	}
	return StopResult{Recorded: true, Mode: mode, Seconds: consumed}
}
