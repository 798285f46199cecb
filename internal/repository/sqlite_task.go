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

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, title, description, type, priority, status,
		story_points, reporter_id, sprint_id, parent_id, assignees, tags,
		acceptance_criteria, due_date, estimated_hours, actual_hours,
		created_at, updated_at, started_at, completed_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	assignees, err := marshalJSON(t.Assignees)
	if err != nil {
		return err
	}
	tags, err := marshalJSON(t.Tags)
	if err != nil {
		return err
	}
	criteria, err := marshalJSON(t.AcceptanceCriteria)
	if err != nil {
		return err
	}

	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		t.Description,
		string(t.Type),
		string(t.Priority),
		string(t.Status),
		nullableIntToValue(t.StoryPoints),
		t.ReporterID,
		nullableStrToValue(t.SprintID),
		nullableStrToValue(t.ParentID),
		assignees,
		tags,
		criteria,
		nullableTimeToString(t.DueDate, dateLayout),
		nullableFloatToValue(t.EstimatedHours),
		nullableFloatToValue(t.ActualHours),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
		nullableTimeToString(t.StartedAt, time.RFC3339),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("task", id)
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ?`
	if !includeArchived {
		query += ` AND status != 'archived'`
	}
	query += ` ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE sprint_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, sprintID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by sprint: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListBacklog(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = ? AND sprint_id IS NULL AND status != 'archived'
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing backlog tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	assignees, err := marshalJSON(t.Assignees)
	if err != nil {
		return err
	}
	tags, err := marshalJSON(t.Tags)
	if err != nil {
		return err
	}
	criteria, err := marshalJSON(t.AcceptanceCriteria)
	if err != nil {
		return err
	}

	query := `UPDATE tasks SET
		title = ?, description = ?, type = ?, priority = ?, status = ?,
		story_points = ?, reporter_id = ?, sprint_id = ?, parent_id = ?,
		assignees = ?, tags = ?, acceptance_criteria = ?, due_date = ?,
		estimated_hours = ?, actual_hours = ?, updated_at = ?,
		started_at = ?, completed_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Type),
		string(t.Priority),
		string(t.Status),
		nullableIntToValue(t.StoryPoints),
		t.ReporterID,
		nullableStrToValue(t.SprintID),
		nullableStrToValue(t.ParentID),
		assignees,
		tags,
		criteria,
		nullableTimeToString(t.DueDate, dateLayout),
		nullableFloatToValue(t.EstimatedHours),
		nullableFloatToValue(t.ActualHours),
		t.UpdatedAt.Format(time.RFC3339),
		nullableTimeToString(t.StartedAt, time.RFC3339),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking task update: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("task", t.ID)
	}
	return nil
}

func (r *SQLiteTaskRepo) ClearSprint(ctx context.Context, sprintID string, now time.Time) (int, error) {
	query := `UPDATE tasks SET sprint_id = NULL, updated_at = ? WHERE sprint_id = ?`
	res, err := r.db.ExecContext(ctx, query, now.Format(time.RFC3339), sprintID)
	if err != nil {
		return 0, fmt.Errorf("clearing sprint from tasks: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking cleared tasks: %w", err)
	}
	return int(affected), nil
}

// rowScanner abstracts over *sql.Row and *sql.Rows for scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var storyPoints sql.NullInt64
	var sprintID, parentID sql.NullString
	var assignees, tags, criteria string
	var dueDate, startedAt, completedAt sql.NullString
	var estimatedHours, actualHours sql.NullFloat64
	var createdAt, updatedAt string

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Type, &t.Priority, &t.Status,
		&storyPoints, &t.ReporterID, &sprintID, &parentID, &assignees, &tags,
		&criteria, &dueDate, &estimatedHours, &actualHours,
		&createdAt, &updatedAt, &startedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if storyPoints.Valid {
		v := int(storyPoints.Int64)
		t.StoryPoints = &v
	}
	t.SprintID = nullStringToPtr(sprintID)
	t.ParentID = nullStringToPtr(parentID)
	if estimatedHours.Valid {
		t.EstimatedHours = &estimatedHours.Float64
	}
	if actualHours.Valid {
		t.ActualHours = &actualHours.Float64
	}
	if err := unmarshalJSON(assignees, &t.Assignees); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(tags, &t.Tags); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(criteria, &t.AcceptanceCriteria); err != nil {
		return nil, err
	}
	t.DueDate = parseNullableTime(dueDate, dateLayout)
	t.StartedAt = parseNullableTime(startedAt, time.RFC3339)
	t.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing task created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing task updated_at: %w", err)
	}
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}
	return tasks, nil
}
