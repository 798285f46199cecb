package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/db"
	"github.com/danielbarros/scrumcore/internal/domain"
)

// sprintColumns is the canonical SELECT column list for sprints.
const sprintColumns = `id, project_id, name, goal, start_date, end_date,
		capacity, committed_points, completed_points, status, created_at, updated_at`

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

// NewSQLiteSprintRepo creates a new SQLiteSprintRepo.
func NewSQLiteSprintRepo(dbtx db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: dbtx}
}

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	query := `INSERT INTO sprints (` + sprintColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.Name,
		s.Goal,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		s.Capacity,
		s.CommittedPoints,
		s.CompletedPoints,
		string(s.Status),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanSprint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("sprint", id)
	}
	return s, err
}

func (r *SQLiteSprintRepo) ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE project_id = ?`
	if !includeArchived {
		query += ` AND status != 'archived'`
	}
	query += ` ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing sprints by project: %w", err)
	}
	defer rows.Close()
	return scanSprints(rows)
}

func (r *SQLiteSprintRepo) ListCompleted(ctx context.Context, projectID string, limit int) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints
		WHERE project_id = ? AND status = 'completed'
		ORDER BY end_date DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing completed sprints: %w", err)
	}
	defer rows.Close()
	return scanSprints(rows)
}

func (r *SQLiteSprintRepo) Update(ctx context.Context, s *domain.Sprint) error {
	query := `UPDATE sprints SET
		name = ?, goal = ?, start_date = ?, end_date = ?, capacity = ?,
		committed_points = ?, completed_points = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Goal,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		s.Capacity,
		s.CommittedPoints,
		s.CompletedPoints,
		string(s.Status),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking sprint update: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("sprint", s.ID)
	}
	return nil
}

func (r *SQLiteSprintRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sprints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sprint: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking sprint delete: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("sprint", id)
	}
	return nil
}

func scanSprint(row rowScanner) (*domain.Sprint, error) {
	var s domain.Sprint
	var startDate, endDate, createdAt, updatedAt string

	err := row.Scan(
		&s.ID, &s.ProjectID, &s.Name, &s.Goal, &startDate, &endDate,
		&s.Capacity, &s.CommittedPoints, &s.CompletedPoints, &s.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if s.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return nil, fmt.Errorf("parsing sprint start_date: %w", err)
	}
	if s.EndDate, err = time.Parse(dateLayout, endDate); err != nil {
		return nil, fmt.Errorf("parsing sprint end_date: %w", err)
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing sprint created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing sprint updated_at: %w", err)
	}
	return &s, nil
}

func scanSprints(rows *sql.Rows) ([]*domain.Sprint, error) {
	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := scanSprint(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sprint row: %w", err)
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprint rows: %w", err)
	}
	return sprints, nil
}
