package pruner

import (
	"context"
	"fmt"
	"testing"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_SortsStably(t *testing.T) {
	input := []core.MessageRecord{
		rec("late", 30), rec("tie-1", 10), rec("early", 5), rec("tie-2", 10),
	}

	snap := NewSnapshot(input, 0)
	assert.Equal(t, []string{"early", "tie-1", "tie-2", "late"}, recordIDs(snap.Records()))

	// input untouched
	assert.Equal(t, "late", input[0].ID)
}

func TestNewSnapshot_CapsBeforeSorting(t *testing.T) {
	// The cap keeps the newest by creation order, not by timestamp.
	input := []core.MessageRecord{
		rec("old-but-late-ts", 99), rec("m1", 1), rec("m2", 2), rec("m3", 3),
	}

	snap := NewSnapshot(input, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, recordIDs(snap.Records()))
}

func TestSnapshot_Accessors(t *testing.T) {
	snap := abcd()

	assert.Equal(t, 4, snap.Len())
	assert.Equal(t, 2, snap.IndexOf("c"))
	assert.Equal(t, -1, snap.IndexOf("nope"))

	m, ok := snap.Get("d")
	assert.True(t, ok)
	assert.Equal(t, int64(4), m.Timestamp)

	_, ok = snap.Get("nope")
	assert.False(t, ok)

	records := snap.Records()
	records[0].ID = "changed"
	assert.Equal(t, 0, snap.IndexOf("a"))
}

func TestLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(
		core.MessageRecord{ID: "m1", Timestamp: 1, Content: "<p>Hello  <b>there</b></p>", OwnerID: "u1"},
		core.MessageRecord{ID: "m2", Timestamp: 2, Content: "ignored", Flavor: "<i>Attack roll</i>", OwnerID: "u2"},
	)
	user := core.User{ID: "u1", Role: core.RolePlayer}

	snap, err := LoadSnapshot(ctx, store, ownerOracle{}, user, 10)
	require.NoError(t, err)

	records := snap.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Hello there", records[0].Text)
	assert.True(t, records[0].CanDelete)
	assert.Equal(t, "Attack roll", records[1].Text)
	assert.False(t, records[1].CanDelete)
}

func TestLoadSnapshot_Limit(t *testing.T) {
	var records []core.MessageRecord
	for i := 0; i < 30; i++ {
		records = append(records, rec(fmt.Sprintf("m%02d", i), int64(i)))
	}
	store := newMemStore(records...)

	snap, err := LoadSnapshot(context.Background(), store, ownerOracle{}, core.User{Role: core.RoleGamemaster}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, snap.Len())
	assert.Equal(t, 0, snap.IndexOf("m20"))
}

func TestLoadSnapshot_StoreError(t *testing.T) {
	store := newMemStore()
	store.listErr = errBoom

	_, err := LoadSnapshot(context.Background(), store, ownerOracle{}, core.User{}, 10)
	assert.ErrorIs(t, err, errBoom)
}
