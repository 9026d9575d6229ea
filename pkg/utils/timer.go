package utils

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer records named phase durations for one analysis invocation.
type Timer struct {
	mu         sync.Mutex
	name       string
	clock      Clock
	startTime  time.Time
	phases     map[string]time.Duration
	phaseOrder []string
	started    map[string]time.Time
}

// NewTimer creates a Timer. A nil clock uses the real clock.
func NewTimer(name string, clock Clock) *Timer {
	if clock == nil {
		clock = NewRealClock()
	}
	return &Timer{
		name:    name,
		clock:   clock,
		phases:  make(map[string]time.Duration),
		started: make(map[string]time.Time),
	}
}

// Start begins timing a phase. The returned function stops it.
func (t *Timer) Start(phase string) func() time.Duration {
	t.mu.Lock()
	if _, seen := t.phases[phase]; !seen {
		t.phaseOrder = append(t.phaseOrder, phase)
		t.phases[phase] = 0
	}
	if t.startTime.IsZero() {
		t.startTime = t.clock.Now()
	}
	t.started[phase] = t.clock.Now()
	t.mu.Unlock()

	return func() time.Duration { return t.stop(phase) }
}

func (t *Timer) stop(phase string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	start, ok := t.started[phase]
	if !ok {
		return t.phases[phase]
	}
	delete(t.started, phase)
	t.phases[phase] += t.clock.Since(start)
	return t.phases[phase]
}

// Duration returns the recorded duration of a phase.
func (t *Timer) Duration(phase string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phases[phase]
}

// Total returns the duration since the first phase started.
func (t *Timer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.startTime.IsZero() {
		return 0
	}
	return t.clock.Since(t.startTime)
}

// Summary returns a one-line-per-phase summary.
func (t *Timer) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:", t.name)
	for _, phase := range t.phaseOrder {
		fmt.Fprintf(&sb, " %s=%v", phase, t.phases[phase])
	}
	return sb.String()
}
