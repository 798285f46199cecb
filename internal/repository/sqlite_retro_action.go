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

// retroActionColumns is the canonical SELECT column list for retro_actions.
const retroActionColumns = `id, session_id, title, description, assignee_id,
		status, due_date, card_ids, created_at, updated_at`

// SQLiteRetroActionRepo implements RetroActionRepo using a SQLite database.
type SQLiteRetroActionRepo struct {
	db db.DBTX
}

// NewSQLiteRetroActionRepo creates a new SQLiteRetroActionRepo.
func NewSQLiteRetroActionRepo(dbtx db.DBTX) *SQLiteRetroActionRepo {
	return &SQLiteRetroActionRepo{db: dbtx}
}

func (r *SQLiteRetroActionRepo) Create(ctx context.Context, a *domain.RetroActionItem) error {
	cardIDs, err := marshalJSON(a.CardIDs)
	if err != nil {
		return err
	}
	query := `INSERT INTO retro_actions (` + retroActionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.SessionID,
		a.Title,
		a.Description,
		nullableStrToValue(a.AssigneeID),
		string(a.Status),
		nullableTimeToString(a.DueDate, dateLayout),
		cardIDs,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting retro action: %w", err)
	}
	return nil
}

func (r *SQLiteRetroActionRepo) GetByID(ctx context.Context, id string) (*domain.RetroActionItem, error) {
	query := `SELECT ` + retroActionColumns + ` FROM retro_actions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	a, err := scanRetroAction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("retro action", id)
	}
	return a, err
}

func (r *SQLiteRetroActionRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.RetroActionItem, error) {
	query := `SELECT ` + retroActionColumns + ` FROM retro_actions
		WHERE session_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing retro actions: %w", err)
	}
	defer rows.Close()

	var actions []*domain.RetroActionItem
	for rows.Next() {
		a, err := scanRetroAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning retro action row: %w", err)
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating retro action rows: %w", err)
	}
	return actions, nil
}

func (r *SQLiteRetroActionRepo) Update(ctx context.Context, a *domain.RetroActionItem) error {
	cardIDs, err := marshalJSON(a.CardIDs)
	if err != nil {
		return err
	}
	query := `UPDATE retro_actions SET
		title = ?, description = ?, assignee_id = ?, status = ?,
		due_date = ?, card_ids = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Title,
		a.Description,
		nullableStrToValue(a.AssigneeID),
		string(a.Status),
		nullableTimeToString(a.DueDate, dateLayout),
		cardIDs,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating retro action: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking retro action update: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("retro action", a.ID)
	}
	return nil
}

func (r *SQLiteRetroActionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM retro_actions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting retro action: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking retro action delete: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("retro action", id)
	}
	return nil
}

func scanRetroAction(row rowScanner) (*domain.RetroActionItem, error) {
	var a domain.RetroActionItem
	var assigneeID sql.NullString
	var dueDate sql.NullString
	var cardIDs string
	var createdAt, updatedAt string

	err := row.Scan(
		&a.ID, &a.SessionID, &a.Title, &a.Description, &assigneeID,
		&a.Status, &dueDate, &cardIDs, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.AssigneeID = nullStringToPtr(assigneeID)
	a.DueDate = parseNullableTime(dueDate, dateLayout)
	if err := unmarshalJSON(cardIDs, &a.CardIDs); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing retro action created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing retro action updated_at: %w", err)
	}
	return &a, nil
}
