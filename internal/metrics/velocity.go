package metrics

import "github.com/danielbarros/scrumcore/internal/domain"

// VelocityPoint is one completed sprint on the velocity chart.
type VelocityPoint struct {
	SprintName          string
	CommittedPoints     int
	CompletedPoints     int
	PercentageCompleted int
}

// VelocityReport covers the last N completed sprints.
type VelocityReport struct {
	Sprints         []VelocityPoint
	AverageVelocity int
}

// Velocity builds the velocity series from completed sprints ordered most
// recent first (as the repository returns them); the series is emitted
// oldest first for charting. No completed sprints yields an empty series
// and average 0.
func Velocity(completed []*domain.Sprint) VelocityReport {
	if len(completed) == 0 {
		return VelocityReport{}
	}

	points := make([]VelocityPoint, 0, len(completed))
	total := 0
	for i := len(completed) - 1; i >= 0; i-- {
		s := completed[i]
		pct := 0
		if s.CommittedPoints > 0 {
			pct = roundPct(float64(s.CompletedPoints) / float64(s.CommittedPoints) * 100)
		}
		points = append(points, VelocityPoint{
			SprintName:          s.Name,
			CommittedPoints:     s.CommittedPoints,
			CompletedPoints:     s.CompletedPoints,
			PercentageCompleted: pct,
		})
		total += s.CompletedPoints
	}

	return VelocityReport{
		Sprints:         points,
		AverageVelocity: roundPct(float64(total) / float64(len(completed))),
	}
}
