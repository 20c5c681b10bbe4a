package pruner

import (
	"context"
	"fmt"
	"testing"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gm     = core.User{ID: "gm", Name: "GM", Role: core.RoleGamemaster}
	player = core.User{ID: "u1", Name: "Alice", Role: core.RolePlayer}
)

type harness struct {
	store     *memStore
	notifier  *recordingNotifier
	confirmer *scriptedConfirmer
	session   *Session
}

func newHarness(t *testing.T, user core.User, records ...core.MessageRecord) *harness {
	t.Helper()
	h := &harness{
		store:     newMemStore(records...),
		notifier:  &recordingNotifier{},
		confirmer: &scriptedConfirmer{answer: true},
	}
	h.session = NewSession(SessionConfig{
		Store:     h.store,
		Oracle:    ownerOracle{},
		Confirmer: h.confirmer,
		Notifier:  h.notifier,
		User:      user,
		Limit:     50,
	})
	require.NoError(t, h.session.Refresh(context.Background()))
	return h
}

func owned(id string, ts int64, owner string) core.MessageRecord {
	return core.MessageRecord{ID: id, Timestamp: ts, OwnerID: owner}
}

func TestSession_StateMachine(t *testing.T) {
	s := NewSession(SessionConfig{Store: newMemStore(rec("a", 1)), Oracle: ownerOracle{}, User: gm})
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, StateSnapshotLoaded, s.State())

	s.Toggle("a")
	assert.Equal(t, StateItemsSelected, s.State())

	s.SetAnchor("a")
	assert.Equal(t, StateAnchorChosen, s.State())

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, StateSnapshotLoaded, s.State())
	assert.Empty(t, s.Anchor())
	assert.Empty(t, s.Selected())
}

func TestSession_DeleteNewer(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2), rec("c", 3), rec("d", 4))
	h.session.SetAnchor("b")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Equal(t, [][]string{{"c", "d"}}, h.store.calls)
	assert.Equal(t, []string{"a", "b"}, h.store.ids())
	assert.Equal(t, []string{
		"Delete 2 newer message(s) than the selected anchor? This cannot be undone.",
	}, h.confirmer.prompts)

	// refreshed and cleared
	assert.Equal(t, StateSnapshotLoaded, h.session.State())
	assert.Equal(t, 2, h.session.Snapshot().Len())
}

func TestSession_DeleteOlder(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2), rec("c", 3), rec("d", 4))
	h.session.SetAnchor("b")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionOlder)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Equal(t, [][]string{{"a"}}, h.store.calls)
}

func TestSession_NoCandidates(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2), rec("c", 3), rec("d", 4))
	h.session.SetAnchor("a")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionOlder)

	assert.ErrorIs(t, err, core.ErrNoCandidates)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, h.store.calls, "no delete call issued")
	assert.Empty(t, h.confirmer.prompts)
	assert.Equal(t, core.NoticeInfo, h.notifier.last().kind)
}

func TestSession_NoAnchor(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1))

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	assert.ErrorIs(t, err, core.ErrNoAnchor)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Equal(t, core.NoticeWarn, h.notifier.last().kind)
}

func TestSession_AnchorNotFound(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2))
	h.session.SetAnchor("vanished")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	assert.ErrorIs(t, err, core.ErrAnchorNotFound)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Equal(t, core.NoticeWarn, h.notifier.last().kind)
	assert.Empty(t, h.session.Anchor(), "stale anchor must be re-picked")
	assert.Empty(t, h.store.calls)
}

func TestSession_InvalidDirection(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2))
	h.session.SetAnchor("a")

	_, err := h.session.DeleteByAnchor(context.Background(), core.Direction("up"))
	assert.ErrorIs(t, err, core.ErrInvalidDirection)
	assert.Empty(t, h.store.calls)
}

func TestSession_PartialPermissionCaveat(t *testing.T) {
	h := newHarness(t, player,
		owned("a", 1, "u1"), owned("b", 2, "u1"), owned("c", 3, "u1"), owned("d", 4, "u2"),
	)
	h.session.SetAnchor("b")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Equal(t, [][]string{{"c"}}, h.store.calls)
	require.Len(t, h.confirmer.prompts, 1)
	assert.Contains(t, h.confirmer.prompts[0], "(1 not deletable due to permissions)")
}

func TestSession_AllBlocked(t *testing.T) {
	h := newHarness(t, player, owned("a", 1, "u1"), owned("b", 2, "u2"), owned("c", 3, "u2"))
	h.session.SetAnchor("a")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	assert.ErrorIs(t, err, core.ErrPermissionDenied)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Equal(t, core.NoticeError, h.notifier.last().kind)
	assert.Empty(t, h.confirmer.prompts)
	assert.Empty(t, h.store.calls)
}

func TestSession_Cancelled(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2))
	h.confirmer.answer = false
	h.session.SetAnchor("a")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Empty(t, h.store.calls)
	assert.Equal(t, StateAnchorChosen, h.session.State(), "cancel returns to the previous state")
	assert.Equal(t, "a", h.session.Anchor())
}

func TestSession_ConfirmError(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2))
	h.confirmer.err = errBoom
	h.session.SetAnchor("a")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Empty(t, h.store.calls)
}

func TestSession_DeleteFailedKeepsSnapshot(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2), rec("c", 3))
	h.store.deleteErr = errBoom
	h.session.SetAnchor("a")

	outcome, err := h.session.DeleteByAnchor(context.Background(), core.DirectionNewer)

	assert.ErrorIs(t, err, core.ErrDeleteFailed)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, StateSnapshotLoaded, h.session.State())
	assert.Equal(t, 3, h.session.Snapshot().Len())
	assert.Equal(t, core.NoticeError, h.notifier.last().kind)
}

func TestSession_FilterAppliesAfterAnchor(t *testing.T) {
	whisper := rec("w", 3)
	whisper.Whisper = true
	store := newMemStore(rec("a", 1), rec("b", 2), whisper, rec("d", 4))
	confirmer := &scriptedConfirmer{answer: true}
	s := NewSession(SessionConfig{
		Store:     store,
		Oracle:    ownerOracle{},
		Confirmer: confirmer,
		Notifier:  &recordingNotifier{},
		User:      gm,
		Filter:    Filter{ExcludeWhispers: true},
	})
	s.SetAnchor("a")

	// Not refreshed yet: the action loads the snapshot and keeps the anchor.
	outcome, err := s.DeleteByAnchor(context.Background(), core.DirectionNewer)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Equal(t, [][]string{{"b", "d"}}, store.calls)
}

func TestSession_DeleteSelected(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2), rec("c", 3))
	h.session.Toggle("c")
	h.session.Toggle("a")
	h.session.Toggle("b")
	h.session.Toggle("b")

	outcome, err := h.session.DeleteSelected(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Equal(t, [][]string{{"c", "a"}}, h.store.calls)
	assert.Equal(t, []string{"Delete 2 selected message(s)? This cannot be undone."}, h.confirmer.prompts)
	assert.Empty(t, h.session.Selected())
}

func TestSession_DeleteSelected_ValidatesAgainstLiveStore(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1), rec("b", 2), rec("c", 3))
	h.session.Select("a", "b")

	// Another operator removes "a" after the snapshot was taken.
	_, err := h.store.DeleteMany(context.Background(), []string{"a"})
	require.NoError(t, err)
	h.store.calls = nil

	outcome, err := h.session.DeleteSelected(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Equal(t, [][]string{{"b"}}, h.store.calls)
}

func TestSession_DeleteSelected_NothingSelected(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1))

	outcome, err := h.session.DeleteSelected(context.Background())

	assert.ErrorIs(t, err, core.ErrNothingSelected)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Equal(t, core.NoticeWarn, h.notifier.last().kind)
}

func TestSession_DeleteSelected_AllGone(t *testing.T) {
	h := newHarness(t, gm, rec("a", 1))
	h.session.Select("ghost")

	outcome, err := h.session.DeleteSelected(context.Background())

	assert.ErrorIs(t, err, core.ErrNoCandidates)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, h.store.calls)
}

func TestSession_DeleteSelected_PermissionDenied(t *testing.T) {
	h := newHarness(t, player, owned("a", 1, "u2"))
	h.session.Select("a")

	outcome, err := h.session.DeleteSelected(context.Background())

	assert.ErrorIs(t, err, core.ErrPermissionDenied)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Equal(t, core.NoticeError, h.notifier.last().kind)
}

func TestSession_SelectAllSkipsBlocked(t *testing.T) {
	h := newHarness(t, player, owned("a", 1, "u1"), owned("b", 2, "u2"), owned("c", 3, "u1"))

	h.session.SelectAll()
	assert.Equal(t, []string{"a", "c"}, h.session.Selected())

	h.session.SelectNone()
	assert.Empty(t, h.session.Selected())
}

func TestSession_RecoversPanics(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSession(SessionConfig{
		Store:     newMemStore(rec("a", 1)),
		Oracle:    panicOracle{},
		Confirmer: &scriptedConfirmer{answer: true},
		Notifier:  notifier,
		User:      gm,
	})
	s.Select("a")

	outcome, err := s.DeleteSelected(context.Background())

	assert.Equal(t, OutcomeFailed, outcome)
	assert.ErrorIs(t, err, core.ErrDeleteFailed)
	assert.Equal(t, core.NoticeError, notifier.last().kind)
}

func TestSession_LoadFailure(t *testing.T) {
	store := newMemStore()
	store.listErr = errBoom
	notifier := &recordingNotifier{}
	s := NewSession(SessionConfig{Store: store, Oracle: ownerOracle{}, Notifier: notifier, User: gm})
	s.SetAnchor("a")

	outcome, err := s.DeleteByAnchor(context.Background(), core.DirectionNewer)

	assert.Equal(t, OutcomeFailed, outcome)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, core.NoticeError, notifier.last().kind)
}

func TestSession_DeleteSelected_IgnoresMessagesOutsideWindow(t *testing.T) {
	records := make([]core.MessageRecord, 0, 60)
	for i := range 60 {
		records = append(records, rec(fmt.Sprintf("m%02d", i), int64(i)))
	}
	h := newHarness(t, gm, records...)
	require.Equal(t, 50, h.session.Snapshot().Len())
	require.Equal(t, -1, h.session.Snapshot().IndexOf("m00"))

	h.session.Select("m00")
	outcome, err := h.session.DeleteSelected(context.Background())

	assert.ErrorIs(t, err, core.ErrNoCandidates)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, h.store.calls)
	assert.Contains(t, h.store.ids(), "m00")

	h.session.Select("m05", "m59")
	outcome, err = h.session.DeleteSelected(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.Equal(t, [][]string{{"m59"}}, h.store.calls, "only the in-window id is deleted")
	assert.Contains(t, h.store.ids(), "m05")
}
