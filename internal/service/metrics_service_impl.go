package service

import (
	"context"
	"time"

	"github.com/danielbarros/scrumcore/internal/metrics"
	"github.com/danielbarros/scrumcore/internal/repository"
)

// metricsService loads persisted state and delegates every computation to
// the pure functions in the metrics package.
type metricsService struct {
	sprints repository.SprintRepo
	tasks   repository.TaskRepo
}

func NewMetricsService(sprints repository.SprintRepo, tasks repository.TaskRepo) MetricsService {
	return &metricsService{sprints: sprints, tasks: tasks}
}

func (s *metricsService) SprintReport(ctx context.Context, sprintID string, now time.Time) (*SprintReport, error) {
	sprint, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	summary := metrics.Summarize(sprint, tasks, now)
	return &SprintReport{
		Summary: summary,
		Health:  metrics.ClassifyHealth(summary),
	}, nil
}

func (s *metricsService) Burndown(ctx context.Context, sprintID string) ([]metrics.BurndownPoint, error) {
	sprint, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	return metrics.Burndown(sprint, tasks), nil
}

func (s *metricsService) Velocity(ctx context.Context, projectID string, window int) (*metrics.VelocityReport, error) {
	completed, err := s.sprints.ListCompleted(ctx, projectID, window)
	if err != nil {
		return nil, err
	}
	report := metrics.Velocity(completed)
	return &report, nil
}

func (s *metricsService) Workload(ctx context.Context, projectID string) ([]metrics.AssigneeWorkload, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID, false)
	if err != nil {
		return nil, err
	}
	return metrics.Workload(tasks), nil
}
