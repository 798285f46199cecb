package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/db"
	"github.com/danielbarros/scrumcore/internal/domain"
)

// retroSessionColumns is the canonical SELECT column list for retro_sessions.
const retroSessionColumns = `id, sprint_id, format, phase, facilitator_id,
		allow_anonymous, votes_per_person, timer_minutes, created_at, updated_at`

// SQLiteRetroSessionRepo implements RetroSessionRepo using a SQLite database.
type SQLiteRetroSessionRepo struct {
	db db.DBTX
}

// NewSQLiteRetroSessionRepo creates a new SQLiteRetroSessionRepo.
func NewSQLiteRetroSessionRepo(dbtx db.DBTX) *SQLiteRetroSessionRepo {
	return &SQLiteRetroSessionRepo{db: dbtx}
}

func (r *SQLiteRetroSessionRepo) Create(ctx context.Context, s *domain.RetroSession) error {
	query := `INSERT INTO retro_sessions (` + retroSessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.SprintID,
		string(s.Format),
		string(s.Phase),
		s.FacilitatorID,
		boolToInt(s.Settings.AllowAnonymous),
		s.Settings.VotesPerPerson,
		nullableIntToValue(s.Settings.TimerMinutes),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		// The sprint_id UNIQUE constraint enforces the 1:1 mapping.
		if strings.Contains(err.Error(), "UNIQUE constraint failed: retro_sessions.sprint_id") {
			return apperr.Conflict("retrospective already exists for sprint %s", s.SprintID)
		}
		return fmt.Errorf("inserting retro session: %w", err)
	}
	return nil
}

func (r *SQLiteRetroSessionRepo) GetByID(ctx context.Context, id string) (*domain.RetroSession, error) {
	query := `SELECT ` + retroSessionColumns + ` FROM retro_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanRetroSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("retro session", id)
	}
	return s, err
}

func (r *SQLiteRetroSessionRepo) GetBySprint(ctx context.Context, sprintID string) (*domain.RetroSession, error) {
	query := `SELECT ` + retroSessionColumns + ` FROM retro_sessions WHERE sprint_id = ?`
	row := r.db.QueryRowContext(ctx, query, sprintID)
	s, err := scanRetroSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("retro session for sprint", sprintID)
	}
	return s, err
}

func (r *SQLiteRetroSessionRepo) Update(ctx context.Context, s *domain.RetroSession) error {
	query := `UPDATE retro_sessions SET
		format = ?, phase = ?, facilitator_id = ?,
		allow_anonymous = ?, votes_per_person = ?, timer_minutes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Format),
		string(s.Phase),
		s.FacilitatorID,
		boolToInt(s.Settings.AllowAnonymous),
		s.Settings.VotesPerPerson,
		nullableIntToValue(s.Settings.TimerMinutes),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating retro session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking retro session update: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("retro session", s.ID)
	}
	return nil
}

// Delete removes the session; cards, votes and actions go with it via
// ON DELETE CASCADE.
func (r *SQLiteRetroSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM retro_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting retro session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking retro session delete: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("retro session", id)
	}
	return nil
}

func scanRetroSession(row rowScanner) (*domain.RetroSession, error) {
	var s domain.RetroSession
	var allowAnonymous int
	var timerMinutes sql.NullInt64
	var createdAt, updatedAt string

	err := row.Scan(
		&s.ID, &s.SprintID, &s.Format, &s.Phase, &s.FacilitatorID,
		&allowAnonymous, &s.Settings.VotesPerPerson, &timerMinutes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Settings.AllowAnonymous = intToBool(allowAnonymous)
	if timerMinutes.Valid {
		v := int(timerMinutes.Int64)
		s.Settings.TimerMinutes = &v
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing retro session created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing retro session updated_at: %w", err)
	}
	return &s, nil
}
