package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerPhases(t *testing.T) {
	clock := NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := NewTimer("explore", clock)

	stopLoad := timer.Start("load")
	clock.Advance(40 * time.Millisecond)
	assert.Equal(t, 40*time.Millisecond, stopLoad())

	stopWalk := timer.Start("walk")
	clock.Advance(10 * time.Millisecond)
	stopWalk()

	assert.Equal(t, 40*time.Millisecond, timer.Duration("load"))
	assert.Equal(t, 10*time.Millisecond, timer.Duration("walk"))
	assert.Equal(t, 50*time.Millisecond, timer.Total())
}

func TestTimerAccumulatesRepeatedPhase(t *testing.T) {
	clock := NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := NewTimer("explore", clock)

	stop := timer.Start("fetch")
	clock.Advance(5 * time.Millisecond)
	stop()

	stop = timer.Start("fetch")
	clock.Advance(7 * time.Millisecond)
	got := stop()

	assert.Equal(t, 12*time.Millisecond, got)
	assert.Equal(t, 12*time.Millisecond, timer.Duration("fetch"))
}

func TestTimerSummaryOrder(t *testing.T) {
	clock := NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := NewTimer("compare", clock)

	timer.Start("load")()
	timer.Start("diff")()

	summary := timer.Summary()
	assert.Contains(t, summary, "compare:")
	assert.Less(t, strings.Index(summary, "load"), strings.Index(summary, "diff"))
}

func TestTimerTotalBeforeAnyPhase(t *testing.T) {
	timer := NewTimer("idle", NewMockClock(time.Now()))
	assert.Equal(t, time.Duration(0), timer.Total())
}
