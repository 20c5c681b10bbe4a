package pruner

import (
	"context"
	"errors"
	"slices"

	"github.com/sandevgo/chatpruner/internal/core"
)

// memStore is an in-memory core.MessageStore in creation order.
type memStore struct {
	records   []core.MessageRecord
	deleteErr error
	listErr   error
	getErr    error
	calls     [][]string
}

func newMemStore(records ...core.MessageRecord) *memStore {
	return &memStore{records: slices.Clone(records)}
}

func (s *memStore) ListRecent(_ context.Context, limit int) ([]core.MessageRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	recs := s.records
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	return slices.Clone(recs), nil
}

func (s *memStore) Get(_ context.Context, id string) (core.MessageRecord, bool, error) {
	if s.getErr != nil {
		return core.MessageRecord{}, false, s.getErr
	}
	for _, m := range s.records {
		if m.ID == id {
			return m, true, nil
		}
	}
	return core.MessageRecord{}, false, nil
}

func (s *memStore) DeleteMany(_ context.Context, ids []string) (int, error) {
	s.calls = append(s.calls, slices.Clone(ids))
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	n := 0
	s.records = slices.DeleteFunc(s.records, func(m core.MessageRecord) bool {
		if slices.Contains(ids, m.ID) {
			n++
			return true
		}
		return false
	})
	return n, nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	n, err := s.DeleteMany(ctx, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrMessageNotFound
	}
	return nil
}

func (s *memStore) ids() []string {
	out := make([]string, len(s.records))
	for i, m := range s.records {
		out[i] = m.ID
	}
	return out
}

// ownerOracle allows GMs everything and everybody else their own messages.
type ownerOracle struct{}

func (ownerOracle) CanDelete(_ context.Context, m core.MessageRecord, u core.User) bool {
	return u.IsGM() || (m.OwnerID != "" && m.OwnerID == u.ID)
}

type panicOracle struct{}

func (panicOracle) CanDelete(context.Context, core.MessageRecord, core.User) bool {
	panic("oracle exploded")
}

type notice struct {
	kind core.NoticeKind
	text string
}

type recordingNotifier struct {
	notices []notice
}

func (n *recordingNotifier) Notify(kind core.NoticeKind, text string) {
	n.notices = append(n.notices, notice{kind, text})
}

func (n *recordingNotifier) last() notice {
	if len(n.notices) == 0 {
		return notice{}
	}
	return n.notices[len(n.notices)-1]
}

type scriptedConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (c *scriptedConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, c.err
}

var errBoom = errors.New("boom")

func rec(id string, ts int64) core.MessageRecord {
	return core.MessageRecord{ID: id, Timestamp: ts, CanDelete: true}
}

func recordIDs(records []core.MessageRecord) []string {
	out := make([]string, len(records))
	for i, m := range records {
		out[i] = m.ID
	}
	return out
}

func (s *memStore) AddMessage(_ context.Context, m core.MessageRecord) error {
	s.records = append(s.records, m)
	return nil
}

func (s *memStore) AddMessages(ctx context.Context, msgs []core.MessageRecord) (int, error) {
	for _, m := range msgs {
		if err := s.AddMessage(ctx, m); err != nil {
			return 0, err
		}
	}
	return len(msgs), nil
}

func (s *memStore) Count(context.Context) (int, error) {
	return len(s.records), nil
}
