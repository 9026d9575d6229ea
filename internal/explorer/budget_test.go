package explorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heapscope/pkg/utils"
)

func TestBudgetAdmitCountsOnlyAdmissions(t *testing.T) {
	clock := utils.NewMockClock(time.Unix(0, 0))
	budget := NewBudget(clock, time.Minute, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, AdmitOK, budget.Admit())
	}
	assert.Equal(t, 3, budget.Visited())

	// Refusals do not consume budget.
	assert.Equal(t, AdmitNodeLimit, budget.Admit())
	assert.Equal(t, AdmitNodeLimit, budget.Admit())
	assert.Equal(t, 3, budget.Visited())
}

func TestBudgetTimeCheckedBeforeNodeCount(t *testing.T) {
	clock := utils.NewMockClock(time.Unix(0, 0))
	budget := NewBudget(clock, 50*time.Millisecond, 1)

	assert.Equal(t, AdmitOK, budget.Admit())
	assert.Equal(t, AdmitNodeLimit, budget.Admit())

	clock.Advance(time.Second)
	assert.Equal(t, AdmitTimeExceeded, budget.Admit())
	assert.Equal(t, 1, budget.Visited())
}

func TestBudgetElapsed(t *testing.T) {
	clock := utils.NewMockClock(time.Unix(0, 0))
	budget := NewBudget(clock, time.Minute, 10)

	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, budget.Elapsed())
}

func TestBudgetExactBoundaryNotExceeded(t *testing.T) {
	clock := utils.NewMockClock(time.Unix(0, 0))
	budget := NewBudget(clock, 100*time.Millisecond, 10)

	// Exactly at the budget is still admitted; only strictly over is refused.
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, AdmitOK, budget.Admit())

	clock.Advance(time.Nanosecond)
	assert.Equal(t, AdmitTimeExceeded, budget.Admit())
}
