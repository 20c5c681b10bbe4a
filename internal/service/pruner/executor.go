package pruner

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/log"
)

const (
	deleteFailedText = "Some messages could not be deleted. See log for details."
	loadFailedText   = "Could not read chat messages. See log for details."
)

// Result describes one Execute call.
type Result struct {
	Requested int
	Deleted   int
	Err       error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// DeleteFunc adapts a plain function to core.BulkDeleter.
type DeleteFunc func(ctx context.Context, ids []string) (int, error)

func (f DeleteFunc) DeleteMany(ctx context.Context, ids []string) (int, error) {
	return f(ctx, ids)
}

// Execute issues one delete for ids and reports the outcome. It must only be
// called after the operator confirmed. Failures are logged in full while the
// operator sees a generic message; nothing is retried. The delete is not
// cancellable once started.
func Execute(ctx context.Context, ids []string, deleter core.BulkDeleter, notifier core.Notifier) Result {
	res := Result{Requested: len(ids)}
	if len(ids) == 0 {
		res.Err = core.ErrNoCandidates
		return res
	}

	logger := log.FromCtx(ctx)
	deleted, err := deleter.DeleteMany(context.WithoutCancel(ctx), ids)
	res.Deleted = deleted
	if err != nil {
		logger.Error().Err(err).
			Int("requested", len(ids)).
			Int("deleted", deleted).
			Msg("delete failed")
		notifier.Notify(core.NoticeError, deleteFailedText)
		res.Err = fmt.Errorf("%w: %w", core.ErrDeleteFailed, err)
		return res
	}

	logger.Info().Int("requested", len(ids)).Int("deleted", deleted).Msg("messages deleted")
	notifier.Notify(core.NoticeInfo, fmt.Sprintf("Deleted %d message(s).", deleted))
	return res
}

// Sequential turns a per-message deleter into a bulk one. It keeps going past
// individual failures and treats already-deleted messages as done.
type Sequential struct {
	deleter core.SingleDeleter
}

func NewSequential(deleter core.SingleDeleter) *Sequential {
	return &Sequential{deleter: deleter}
}

func (s *Sequential) DeleteMany(ctx context.Context, ids []string) (int, error) {
	var errs []error
	deleted := 0
	for _, id := range ids {
		err := s.deleter.Delete(ctx, id)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, core.ErrMessageNotFound):
			// someone else got there first
		default:
			errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
		}
	}
	return deleted, errors.Join(errs...)
}

// SequentialStore serves reads from repo but deletes one message at a time.
func SequentialStore(repo core.MessagesRepository) core.MessageStore {
	return sequentialStore{MessageStore: repo, seq: NewSequential(repo)}
}

type sequentialStore struct {
	core.MessageStore
	seq *Sequential
}

func (s sequentialStore) DeleteMany(ctx context.Context, ids []string) (int, error) {
	return s.seq.DeleteMany(ctx, ids)
}
