package pruner

import (
	"context"
	"fmt"
	"slices"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/conv"
)

// Snapshot is a point-in-time, timestamp-ascending copy of the visible
// message window. Anchor arithmetic is done against this order only.
type Snapshot struct {
	records []core.MessageRecord
}

// NewSnapshot keeps the last limit records of a creation-ordered slice and
// stable-sorts them oldest to newest, so equal timestamps keep creation order.
// A limit <= 0 keeps everything. The input slice is not modified.
func NewSnapshot(records []core.MessageRecord, limit int) Snapshot {
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b core.MessageRecord) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		}
		return 0
	})
	return Snapshot{records: out}
}

// LoadSnapshot reads the newest limit messages and computes the plain-text
// projection and delete permission of each one for user.
func LoadSnapshot(
	ctx context.Context,
	store core.MessageStore,
	oracle core.PermissionOracle,
	user core.User,
	limit int,
) (Snapshot, error) {
	records, err := store.ListRecent(ctx, limit)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load messages: %w", err)
	}
	for i := range records {
		records[i].Text = conv.PlainText(firstNonEmpty(records[i].Flavor, records[i].Content))
		records[i].CanDelete = oracle.CanDelete(ctx, records[i], user)
	}
	return NewSnapshot(records, limit), nil
}

func (s Snapshot) Len() int {
	return len(s.records)
}

// Records returns a copy; callers cannot reorder the snapshot.
func (s Snapshot) Records() []core.MessageRecord {
	return slices.Clone(s.records)
}

// IndexOf returns the position of id, or -1.
func (s Snapshot) IndexOf(id string) int {
	return slices.IndexFunc(s.records, func(m core.MessageRecord) bool {
		return m.ID == id
	})
}

func (s Snapshot) Get(id string) (core.MessageRecord, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return core.MessageRecord{}, false
	}
	return s.records[i], true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
