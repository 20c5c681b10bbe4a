package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/log"
)

// deleteChunkSize keeps IN lists well below SQLITE_MAX_VARIABLE_NUMBER.
const deleteChunkSize = 500

const messageColumns = `id, timestamp, author, speaker, content, flavor, owner_id, whisper, roll, kind`

var _ core.MessagesRepository = (*MessagesRepo)(nil)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) AddMessage(ctx context.Context, msg core.MessageRecord) error {
	if msg.ID == "" {
		return errors.New("message id is required")
	}
	query := `INSERT INTO messages (` + messageColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, insertArgs(msg)...); err != nil {
		return fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
	}
	return nil
}

// AddMessages inserts msgs in order within one transaction. Ids that are
// already stored are skipped, so the same batch can be applied twice. It
// returns the number of rows inserted.
func (r *MessagesRepo) AddMessages(ctx context.Context, msgs []core.MessageRecord) (int, error) {
	for i, msg := range msgs {
		if msg.ID == "" {
			return 0, fmt.Errorf("message %d: id is required", i)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, msg := range msgs {
		res, err := stmt.ExecContext(ctx, insertArgs(msg)...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert: %w", err)
	}
	return added, nil
}

func insertArgs(msg core.MessageRecord) []any {
	kind := msg.Kind
	if kind == "" {
		kind = core.KindOther
	}
	return []any{
		msg.ID, msg.Timestamp, msg.Author, msg.Speaker, msg.Content, msg.Flavor,
		msg.OwnerID, msg.Whisper, msg.Roll, string(kind),
	}
}

// ListRecent returns the newest limit messages in creation order (oldest first).
func (r *MessagesRepo) ListRecent(ctx context.Context, limit int) ([]core.MessageRecord, error) {
	// Fetch the LAST 'limit' messages by ordering DESC
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY seq DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.MessageRecord
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest -> Oldest back to creation order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Int("limit", limit).Msg("loaded recent messages")
	return messages, nil
}

func (r *MessagesRepo) Get(ctx context.Context, id string) (core.MessageRecord, bool, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = ?`
	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.MessageRecord{}, false, nil
	}
	if err != nil {
		return core.MessageRecord{}, false, err
	}
	return msg, true, nil
}

func (r *MessagesRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}

// DeleteMany removes ids in one transaction. Ids that no longer exist are
// skipped; the returned count covers only rows actually removed.
func (r *MessagesRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	deleted := 0
	for start := 0; start < len(ids); start += deleteChunkSize {
		end := min(start+deleteChunkSize, len(ids))
		chunk := ids[start:end]

		query := fmt.Sprintf("DELETE FROM messages WHERE id IN (%s)", placeholders(len(chunk)))
		res, err := tx.ExecContext(ctx, query, toArgs(chunk)...)
		if err != nil {
			return 0, fmt.Errorf("failed to delete messages: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		deleted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return deleted, nil
}

func (r *MessagesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrMessageNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(s scanner) (core.MessageRecord, error) {
	var msg core.MessageRecord
	var kind string
	err := s.Scan(
		&msg.ID, &msg.Timestamp, &msg.Author, &msg.Speaker, &msg.Content, &msg.Flavor,
		&msg.OwnerID, &msg.Whisper, &msg.Roll, &kind,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return msg, err
		}
		return msg, fmt.Errorf("failed to scan message: %w", err)
	}
	msg.Kind = core.MessageKind(kind)
	return msg, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
