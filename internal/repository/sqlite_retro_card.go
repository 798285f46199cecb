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

// retroCardColumns is the canonical SELECT column list for retro_cards.
const retroCardColumns = `id, session_id, column_name, content, author_id,
		is_anonymous, card_order, created_at, updated_at`

// SQLiteRetroCardRepo implements RetroCardRepo using a SQLite database.
// Votes live in the retro_card_votes table keyed by (card_id, user_id),
// which makes a user's vote on a card naturally binary.
type SQLiteRetroCardRepo struct {
	db db.DBTX
}

// NewSQLiteRetroCardRepo creates a new SQLiteRetroCardRepo.
func NewSQLiteRetroCardRepo(dbtx db.DBTX) *SQLiteRetroCardRepo {
	return &SQLiteRetroCardRepo{db: dbtx}
}

func (r *SQLiteRetroCardRepo) Create(ctx context.Context, c *domain.RetroCard) error {
	query := `INSERT INTO retro_cards (` + retroCardColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.SessionID,
		c.Column,
		c.Content,
		c.AuthorID,
		boolToInt(c.IsAnonymous),
		c.Order,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting retro card: %w", err)
	}
	return nil
}

func (r *SQLiteRetroCardRepo) GetByID(ctx context.Context, id string) (*domain.RetroCard, error) {
	query := `SELECT ` + retroCardColumns + ` FROM retro_cards WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanRetroCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("retro card", id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadVotes(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteRetroCardRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.RetroCard, error) {
	query := `SELECT ` + retroCardColumns + ` FROM retro_cards
		WHERE session_id = ? ORDER BY column_name, card_order`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing retro cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.RetroCard
	byID := make(map[string]*domain.RetroCard)
	for rows.Next() {
		c, err := scanRetroCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning retro card row: %w", err)
		}
		cards = append(cards, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating retro card rows: %w", err)
	}

	voteRows, err := r.db.QueryContext(ctx, `SELECT v.card_id, v.user_id
		FROM retro_card_votes v
		JOIN retro_cards c ON v.card_id = c.id
		WHERE c.session_id = ?
		ORDER BY v.created_at`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing retro card votes: %w", err)
	}
	defer voteRows.Close()
	for voteRows.Next() {
		var cardID, userID string
		if err := voteRows.Scan(&cardID, &userID); err != nil {
			return nil, fmt.Errorf("scanning vote row: %w", err)
		}
		if c, ok := byID[cardID]; ok {
			c.Votes = append(c.Votes, userID)
		}
	}
	if err := voteRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vote rows: %w", err)
	}
	return cards, nil
}

func (r *SQLiteRetroCardRepo) Update(ctx context.Context, c *domain.RetroCard) error {
	query := `UPDATE retro_cards SET
		column_name = ?, content = ?, is_anonymous = ?, card_order = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Column,
		c.Content,
		boolToInt(c.IsAnonymous),
		c.Order,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating retro card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking retro card update: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("retro card", c.ID)
	}
	return nil
}

func (r *SQLiteRetroCardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM retro_cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting retro card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking retro card delete: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("retro card", id)
	}
	return nil
}

func (r *SQLiteRetroCardRepo) AddVote(ctx context.Context, cardID, userID string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO retro_card_votes (card_id, user_id, created_at) VALUES (?, ?, ?)`,
		cardID, userID, now.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("inserting vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking vote insert: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLiteRetroCardRepo) RemoveVote(ctx context.Context, cardID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM retro_card_votes WHERE card_id = ? AND user_id = ?`,
		cardID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing vote: %w", err)
	}
	return nil
}

func (r *SQLiteRetroCardRepo) CountVotesByUser(ctx context.Context, sessionID, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)
		FROM retro_card_votes v
		JOIN retro_cards c ON v.card_id = c.id
		WHERE c.session_id = ? AND v.user_id = ?`, sessionID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting user votes: %w", err)
	}
	return count, nil
}

func (r *SQLiteRetroCardRepo) MaxOrder(ctx context.Context, sessionID, column string) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(card_order), -1)
		FROM retro_cards WHERE session_id = ? AND column_name = ?`, sessionID, column).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("finding max card order: %w", err)
	}
	return max, nil
}

func (r *SQLiteRetroCardRepo) loadVotes(ctx context.Context, c *domain.RetroCard) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM retro_card_votes WHERE card_id = ? ORDER BY created_at`, c.ID)
	if err != nil {
		return fmt.Errorf("loading card votes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("scanning vote row: %w", err)
		}
		c.Votes = append(c.Votes, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating vote rows: %w", err)
	}
	return nil
}

func scanRetroCard(row rowScanner) (*domain.RetroCard, error) {
	var c domain.RetroCard
	var isAnonymous int
	var createdAt, updatedAt string

	err := row.Scan(
		&c.ID, &c.SessionID, &c.Column, &c.Content, &c.AuthorID,
		&isAnonymous, &c.Order, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.IsAnonymous = intToBool(isAnonymous)
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing retro card created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing retro card updated_at: %w", err)
	}
	return &c, nil
}
