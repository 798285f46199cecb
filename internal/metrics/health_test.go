package metrics

import (
	"testing"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyHealth_OverCapacityFiresFirst(t *testing.T) {
	// Also far behind schedule; the capacity rule must win.
	s := SprintSummary{
		Capacity:            20,
		CommittedPoints:     25,
		IsOverCapacity:      true,
		PercentageCompleted: 0,
		TotalDays:           10,
		DaysRemaining:       1,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthAtRisk, h.Level)
	assert.Contains(t, h.Reason, "over capacity by 5 points")
}

func TestClassifyHealth_ScopeCreep(t *testing.T) {
	s := SprintSummary{
		Capacity:            30,
		CommittedPoints:     20,
		ScopeCreep:          11,
		PercentageCompleted: 50,
		TotalDays:           10,
		DaysRemaining:       5,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthAtRisk, h.Level)
	assert.Contains(t, h.Reason, "scope creep")
}

func TestClassifyHealth_ScopeCreepAtThresholdDoesNotFire(t *testing.T) {
	s := SprintSummary{
		Capacity:            30,
		CommittedPoints:     20,
		ScopeCreep:          10,
		PercentageCompleted: 50,
		TotalDays:           10,
		DaysRemaining:       5,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthOnTrack, h.Level)
}

func TestClassifyHealth_Behind(t *testing.T) {
	// 2 of 10 days elapsed, expected 20%, actual 5% → deviation -15.
	s := SprintSummary{
		Capacity:            30,
		CommittedPoints:     20,
		PercentageCompleted: 5,
		TotalDays:           10,
		DaysRemaining:       8,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthBehind, h.Level)
}

func TestClassifyHealth_BehindAtExactBoundary(t *testing.T) {
	// 1 of 4 days elapsed, expected exactly 25%, actual 10% → deviation
	// exactly -15, with no float rounding in expectedProgress.
	s := SprintSummary{
		Capacity:            30,
		CommittedPoints:     20,
		PercentageCompleted: 10,
		TotalDays:           4,
		DaysRemaining:       3,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthBehind, h.Level)
}

func TestClassifyHealth_ModerateDeviationIsAtRisk(t *testing.T) {
	// Expected 50%, actual 40% → deviation -10, inside [-15, -5).
	s := SprintSummary{
		Capacity:            30,
		CommittedPoints:     20,
		PercentageCompleted: 40,
		TotalDays:           10,
		DaysRemaining:       5,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthAtRisk, h.Level)
}

func TestClassifyHealth_EndgameRule(t *testing.T) {
	// On pace by deviation (expected 80, actual 79) but 2 days left
	// with under 80% completed.
	s := SprintSummary{
		Capacity:            30,
		CommittedPoints:     20,
		PercentageCompleted: 79,
		TotalDays:           10,
		DaysRemaining:       2,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthAtRisk, h.Level)
	assert.Contains(t, h.Reason, "2 days left")
}

func TestClassifyHealth_OnTrack(t *testing.T) {
	s := SprintSummary{
		Capacity:            30,
		CommittedPoints:     20,
		PercentageCompleted: 60,
		TotalDays:           10,
		DaysRemaining:       5,
	}
	h := ClassifyHealth(s)
	assert.Equal(t, domain.HealthOnTrack, h.Level)
}
