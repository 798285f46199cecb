package metrics

import (
	"fmt"
	"testing"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSprints(points ...int) []*domain.Sprint {
	// Most recent first, matching repository order.
	sprints := make([]*domain.Sprint, len(points))
	for i, p := range points {
		sprints[i] = &domain.Sprint{
			Name:            fmt.Sprintf("Sprint %d", len(points)-i),
			Status:          domain.SprintCompleted,
			CommittedPoints: p + 2,
			CompletedPoints: p,
		}
	}
	return sprints
}

func TestVelocity_AverageOverCompletedSprints(t *testing.T) {
	report := Velocity(completedSprints(20, 22, 18))
	require.Len(t, report.Sprints, 3)
	assert.Equal(t, 20, report.AverageVelocity)

	// Oldest first for charting.
	assert.Equal(t, "Sprint 1", report.Sprints[0].SprintName)
	assert.Equal(t, 18, report.Sprints[0].CompletedPoints)
	assert.Equal(t, 20, report.Sprints[2].CompletedPoints)
}

func TestVelocity_PercentagePerSprint(t *testing.T) {
	report := Velocity([]*domain.Sprint{
		{Name: "S", CommittedPoints: 20, CompletedPoints: 15},
	})
	require.Len(t, report.Sprints, 1)
	assert.Equal(t, 75, report.Sprints[0].PercentageCompleted)
}

func TestVelocity_ZeroCommitted(t *testing.T) {
	report := Velocity([]*domain.Sprint{
		{Name: "S", CommittedPoints: 0, CompletedPoints: 0},
	})
	assert.Equal(t, 0, report.Sprints[0].PercentageCompleted)
}

func TestVelocity_EmptyInput(t *testing.T) {
	report := Velocity(nil)
	assert.Empty(t, report.Sprints)
	assert.Equal(t, 0, report.AverageVelocity)
}

func TestVelocity_RoundsAverage(t *testing.T) {
	report := Velocity(completedSprints(10, 11))
	assert.Equal(t, 11, report.AverageVelocity, "10.5 rounds to 11")
}
