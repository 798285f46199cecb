package metrics

import (
	"fmt"

	"github.com/danielbarros/scrumcore/internal/domain"
)

// Health is a single classification per sprint with the reason the first
// matching rule fired.
type Health struct {
	Level  domain.HealthLevel
	Reason string
}

// Thresholds for the ordered health rules.
const (
	scopeCreepLimit = 10
	behindDeviation = -15
	atRiskDeviation = -5
	endgameDaysLeft = 2
	endgameMinPct   = 80
)

// ClassifyHealth evaluates the health rules in order and returns the first
// match. Capacity and scope-creep checks deliberately run before the
// schedule-deviation checks, so a sprint that is both over capacity and
// behind schedule reports as over-capacity.
func ClassifyHealth(s SprintSummary) Health {
	if s.IsOverCapacity {
		return Health{
			Level:  domain.HealthAtRisk,
			Reason: fmt.Sprintf("over capacity by %d points", s.CommittedPoints-s.Capacity),
		}
	}

	if s.ScopeCreep > scopeCreepLimit {
		return Health{
			Level:  domain.HealthAtRisk,
			Reason: fmt.Sprintf("high scope creep: %d points added after start", s.ScopeCreep),
		}
	}

	if s.TotalDays > 0 {
		expectedProgress := float64(s.TotalDays-s.DaysRemaining) / float64(s.TotalDays) * 100
		deviation := float64(s.PercentageCompleted) - expectedProgress
		// Behind includes the -15 boundary itself, so the classification
		// does not depend on float rounding of expectedProgress.
		if deviation <= behindDeviation {
			return Health{
				Level:  domain.HealthBehind,
				Reason: fmt.Sprintf("%.0f%% behind expected progress", -deviation),
			}
		}
		if deviation < atRiskDeviation {
			return Health{
				Level:  domain.HealthAtRisk,
				Reason: fmt.Sprintf("%.0f%% behind expected progress", -deviation),
			}
		}
	}

	if s.DaysRemaining <= endgameDaysLeft && s.PercentageCompleted < endgameMinPct {
		return Health{
			Level:  domain.HealthAtRisk,
			Reason: fmt.Sprintf("%d days left with only %d%% completed", s.DaysRemaining, s.PercentageCompleted),
		}
	}

	return Health{Level: domain.HealthOnTrack, Reason: "on pace"}
}
