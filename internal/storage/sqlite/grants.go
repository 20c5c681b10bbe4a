package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/chatpruner/internal/core"
)

var _ core.GrantsRepository = (*GrantsRepo)(nil)

type GrantsRepo struct {
	db *sql.DB
}

func NewGrantsRepo(db *sql.DB) *GrantsRepo {
	return &GrantsRepo{db: db}
}

func (r *GrantsRepo) SetGrant(ctx context.Context, messageID, userID string, canDelete bool) error {
	query := `
		INSERT INTO message_grants (message_id, user_id, can_delete) VALUES (?, ?, ?)
		ON CONFLICT (message_id, user_id) DO UPDATE SET can_delete = excluded.can_delete`
	if _, err := r.db.ExecContext(ctx, query, messageID, userID, canDelete); err != nil {
		return fmt.Errorf("failed to save grant: %w", err)
	}
	return nil
}

func (r *GrantsRepo) CanUserDelete(ctx context.Context, messageID, userID string) (bool, bool, error) {
	var allowed bool
	err := r.db.QueryRowContext(ctx,
		`SELECT can_delete FROM message_grants WHERE message_id = ? AND user_id = ?`,
		messageID, userID,
	).Scan(&allowed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to query grant: %w", err)
	}
	return allowed, true, nil
}
