package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const defaultArchiveLimit = 20

var ErrArchivedMatchNotFound = fmt.Errorf("archived match %w", apperror.ErrNotFound)

type ArchiveRepository interface {
	Save(ctx context.Context, match *entity.ArchivedMatch) error
	GetByID(ctx context.Context, id string) (*entity.ArchivedMatch, error)
	List(ctx context.Context, limit int) ([]*entity.ArchivedMatch, error)
}

type archiveRepository struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &archiveRepository{
		conn: conn,
	}
}

// Save - archives the match; saving the same id again replaces the row.
func (that *archiveRepository) Save(ctx context.Context, match *entity.ArchivedMatch) error {
	snapshot, err := json.Marshal(match.State)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `INSERT OR REPLACE INTO matches (id, match_type, rules, result, turns, snapshot, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		match.ID,
		match.Type,
		match.Rules.String(),
		match.Result,
		match.Turns,
		string(snapshot),
		match.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save archived match: %w", err)
	}

	return nil
}

func (that *archiveRepository) GetByID(ctx context.Context, id string) (*entity.ArchivedMatch, error) {
	query := `SELECT id, match_type, rules, result, turns, snapshot, finished_at FROM matches WHERE id = ?`

	match, err := scanArchivedMatch(that.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArchivedMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get archived match: %w", err)
	}

	return match, nil
}

// List - newest matches first. A non-positive limit falls back to the default page size.
func (that *archiveRepository) List(ctx context.Context, limit int) ([]*entity.ArchivedMatch, error) {
	if limit <= 0 {
		limit = defaultArchiveLimit
	}

	query := `SELECT id, match_type, rules, result, turns, snapshot, finished_at FROM matches
		ORDER BY finished_at DESC, id LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*entity.ArchivedMatch, 0, limit)
	for rows.Next() {
		match, err := scanArchivedMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archived match: %w", err)
		}

		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived matches: %w", err)
	}

	return matches, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArchivedMatch(row rowScanner) (*entity.ArchivedMatch, error) {
	var (
		match      entity.ArchivedMatch
		rules      string
		snapshot   string
		finishedAt int64
	)

	if err := row.Scan(&match.ID, &match.Type, &rules, &match.Result, &match.Turns, &snapshot, &finishedAt); err != nil {
		return nil, err
	}

	parsedRules, err := tictactoe.ParseRules(rules)
	if err != nil {
		return nil, err
	}
	match.Rules = parsedRules

	if err = json.Unmarshal([]byte(snapshot), &match.State); err != nil {
		return nil, err
	}

	match.FinishedAt = time.UnixMilli(finishedAt).UTC()

	return &match, nil
}
