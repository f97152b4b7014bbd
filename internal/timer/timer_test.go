package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		FocusSeconds: 25 * 60,
		ShortSeconds: 5 * 60,
		LongSeconds:  15 * 60,
		MinSeconds:   60,
	}
}

func tickN(m *Manager, n int) []TickResult {
	var completions []TickResult
	for i := 0; i < n; i++ {
		if res := m.Tick(); res.Completed {
			completions = append(completions, res)
		}
	}
	return completions
}

func TestTickOnlyMovesRunningVisibleSlot(t *testing.T) {
	m := New(testConfig())

	// not running: nothing moves
	tickN(m, 10)
	assert.Equal(t, 25*60, m.Slot(ModeFocus).Seconds)

	m.Start()
	tickN(m, 10)
	assert.Equal(t, 25*60-10, m.Slot(ModeFocus).Seconds)

	// other slots untouched
	assert.Equal(t, 5*60, m.Slot(ModeShort).Seconds)
	assert.Equal(t, 0, m.Slot(ModeStopwatch).Seconds)
}

func TestSwitchModePreservesState(t *testing.T) {
	m := New(testConfig())
	m.Start()
	tickN(m, 120)

	m.SwitchMode(ModeShort)
	require.Equal(t, ModeShort, m.Visible())

	// previous slot paused, not reset
	focus := m.Slot(ModeFocus)
	assert.False(t, focus.Running)
	assert.Equal(t, 25*60-120, focus.Seconds)

	// run the break for a bit, then come back and resume
	m.Start()
	tickN(m, 30)
	m.SwitchMode(ModeFocus)
	m.Start()
	tickN(m, 60)

	assert.Equal(t, 25*60-180, m.Slot(ModeFocus).Seconds)
	assert.Equal(t, 5*60-30, m.Slot(ModeShort).Seconds)
}

func TestStopwatchCountsUp(t *testing.T) {
	m := New(testConfig())
	m.SwitchMode(ModeStopwatch)
	m.Start()
	tickN(m, 3700)
	assert.Equal(t, 3700, m.Slot(ModeStopwatch).Seconds)
}

func TestCountdownCompletionAutoStopsAndResets(t *testing.T) {
	cfg := testConfig()
	cfg.ShortSeconds = 3
	m := New(cfg)
	m.SwitchMode(ModeShort)
	m.Start()

	completions := tickN(m, 3)
	require.Len(t, completions, 1)
	assert.Equal(t, ModeShort, completions[0].Mode)
	assert.Equal(t, 3, completions[0].Seconds)

	s := m.Slot(ModeShort)
	assert.False(t, s.Running)
	assert.Equal(t, 3, s.Seconds)

	// further ticks after auto-stop do nothing
	assert.Empty(t, tickN(m, 5))
	assert.Equal(t, 3, m.Slot(ModeShort).Seconds)
}

func TestStopRecordsAboveThreshold(t *testing.T) {
	m := New(testConfig())
	m.Start()
	tickN(m, 61)

	res := m.Stop()
	assert.True(t, res.Recorded)
	assert.False(t, res.TooShort)
	assert.Equal(t, ModeFocus, res.Mode)
	assert.Equal(t, 61, res.Seconds)

	// slot reset after stop
	s := m.Slot(ModeFocus)
	assert.False(t, s.Running)
	assert.Equal(t, 25*60, s.Seconds)
}

func TestStopDiscardsShortSession(t *testing.T) {
	m := New(testConfig())
	m.Start()
	tickN(m, 59)

	res := m.Stop()
	assert.False(t, res.Recorded)
	assert.True(t, res.TooShort)
	assert.Equal(t, 59, res.Seconds)
	assert.Equal(t, 25*60, m.Slot(ModeFocus).Seconds)
}

func TestStopAtExactThresholdIsTooShort(t *testing.T) {
	m := New(testConfig())
	m.Start()
	tickN(m, 60)

	res := m.Stop()
	assert.False(t, res.Recorded)
	assert.True(t, res.TooShort)
}

func TestStopOnPristineSlotIsNoOp(t *testing.T) {
	m := New(testConfig())

	res := m.Stop()
	assert.False(t, res.Recorded)
	assert.False(t, res.TooShort)
	assert.Zero(t, res.Seconds)

	m.SwitchMode(ModeStopwatch)
	res = m.Stop()
	assert.False(t, res.Recorded)
	assert.False(t, res.TooShort)
}

func TestStopStopwatchUsesElapsed(t *testing.T) {
	m := New(testConfig())
	m.SwitchMode(ModeStopwatch)
	m.Start()
	tickN(m, 300)

	res := m.Stop()
	assert.True(t, res.Recorded)
	assert.Equal(t, ModeStopwatch, res.Mode)
	assert.Equal(t, 300, res.Seconds)
	assert.Equal(t, 0, m.Slot(ModeStopwatch).Seconds)
}

func TestCountdownNeverGoesNegative(t *testing.T) {
	cfg := testConfig()
	cfg.LongSeconds = 2
	m := New(cfg)
	m.SwitchMode(ModeLong)
	m.Start()
	tickN(m, 50)
	assert.GreaterOrEqual(t, m.Slot(ModeLong).Seconds, 0)
}

func TestResetRestoresConfiguredDuration(t *testing.T) {
	m := New(testConfig())
	m.Start()
	tickN(m, 100)
	m.Reset(ModeFocus)

	s := m.Slot(ModeFocus)
	assert.False(t, s.Running)
	assert.Equal(t, 25*60, s.Seconds)

	m.SwitchMode(ModeStopwatch)
	m.Start()
	tickN(m, 10)
	m.Reset(ModeStopwatch)
	assert.Equal(t, 0, m.Slot(ModeStopwatch).Seconds)
}

func TestElapsedMatchesSimulationAcrossSwitches(t *testing.T) {
	m := New(testConfig())

	// interleave runs across modes and verify per-slot deltas add up
	m.Start()
	tickN(m, 40)
	m.SwitchMode(ModeShort)
	m.Start()
	tickN(m, 25)
	m.SwitchMode(ModeFocus)
	m.Start()
	tickN(m, 35)
	m.SwitchMode(ModeLong)
	tickN(m, 99) // never started, must not move

	assert.Equal(t, 75, 25*60-m.Slot(ModeFocus).Seconds)
	assert.Equal(t, 25, 5*60-m.Slot(ModeShort).Seconds)
	assert.Equal(t, 0, 15*60-m.Slot(ModeLong).Seconds)
}
