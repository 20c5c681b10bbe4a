package pruner

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/conv"
)

// SelectByAnchor returns the records strictly newer or strictly older than
// the anchor, in snapshot order. The anchor itself is never included.
func SelectByAnchor(snap Snapshot, anchorID string, dir core.Direction) ([]core.MessageRecord, error) {
	i := snap.IndexOf(anchorID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrAnchorNotFound, anchorID)
	}

	switch dir {
	case core.DirectionNewer:
		return slices.Clone(snap.records[i+1:]), nil
	case core.DirectionOlder:
		return slices.Clone(snap.records[:i]), nil
	default:
		return nil, core.ErrInvalidDirection
	}
}

// PartitionByPermission splits candidates into the ids that may be deleted,
// in candidate order, and the number blocked by permission.
func PartitionByPermission(candidates []core.MessageRecord) ([]string, int) {
	deletable := make([]string, 0, len(candidates))
	blocked := 0
	for _, m := range candidates {
		if m.CanDelete {
			deletable = append(deletable, m.ID)
		} else {
			blocked++
		}
	}
	return deletable, blocked
}

// PruneSelected validates operator-selected ids against the live store.
// Ids that no longer resolve are dropped silently; duplicates collapse to the
// first occurrence. When allow is non-nil, resolved records it rejects are
// dropped and counted as blocked.
func PruneSelected(
	ctx context.Context,
	selection []string,
	lookup core.MessageLookup,
	allow func(core.MessageRecord) bool,
) ([]string, int, error) {
	seen := make(map[string]struct{}, len(selection))
	ids := make([]string, 0, len(selection))
	blocked := 0

	for _, id := range selection {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		rec, found, err := lookup.Get(ctx, id)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to look up message %s: %w", id, err)
		}
		if !found {
			continue
		}
		if allow != nil && !allow(rec) {
			blocked++
			continue
		}
		ids = append(ids, id)
	}
	return ids, blocked, nil
}

// Filter narrows anchor candidates by message type and text.
type Filter struct {
	ExcludeWhispers bool
	ExcludeRolls    bool
	ExcludeSystem   bool
	Query           string
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

func (f Filter) Match(m core.MessageRecord) bool {
	if f.ExcludeWhispers && m.Whisper {
		return false
	}
	if f.ExcludeRolls && m.Roll {
		return false
	}
	if f.ExcludeSystem && m.IsSystem() {
		return false
	}
	if f.Query == "" {
		return true
	}
	// Matched against the message body only; flavor text is not searched.
	text := conv.PlainText(m.Content)
	return strings.Contains(strings.ToLower(text), strings.ToLower(f.Query))
}

// ApplyFilter keeps the matching records, preserving order.
func ApplyFilter(records []core.MessageRecord, f Filter) []core.MessageRecord {
	if f.IsZero() {
		return records
	}
	out := make([]core.MessageRecord, 0, len(records))
	for _, m := range records {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}
