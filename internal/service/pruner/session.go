package pruner

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/log"
)

type State int

const (
	StateIdle State = iota
	StateSnapshotLoaded
	StateAnchorChosen
	StateItemsSelected
	StateConfirmPending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSnapshotLoaded:
		return "snapshot-loaded"
	case StateAnchorChosen:
		return "anchor-chosen"
	case StateItemsSelected:
		return "items-selected"
	case StateConfirmPending:
		return "confirm-pending"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Outcome int

const (
	// OutcomeSkipped means nothing was asked or deleted; a notice explains why.
	OutcomeSkipped Outcome = iota
	OutcomeCancelled
	OutcomeDeleted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

type SessionConfig struct {
	Store     core.MessageStore
	Oracle    core.PermissionOracle
	Confirmer core.Confirmer
	Notifier  core.Notifier
	User      core.User
	Limit     int
	Filter    Filter
}

// Session holds the snapshot, anchor and selection of one operator run.
// It is not safe for concurrent use.
type Session struct {
	store     core.MessageStore
	oracle    core.PermissionOracle
	confirmer core.Confirmer
	notifier  core.Notifier
	user      core.User
	limit     int
	filter    Filter

	snapshot   Snapshot
	loaded     bool
	anchorID   string
	selected   []string
	confirming bool
}

func NewSession(cfg SessionConfig) *Session {
	limit := cfg.Limit
	if limit <= 0 {
		limit = core.DefaultMessageLimit
	}
	return &Session{
		store:     cfg.Store,
		oracle:    cfg.Oracle,
		confirmer: cfg.Confirmer,
		notifier:  cfg.Notifier,
		user:      cfg.User,
		limit:     limit,
		filter:    cfg.Filter,
	}
}

func (s *Session) State() State {
	switch {
	case s.confirming:
		return StateConfirmPending
	case !s.loaded:
		return StateIdle
	case s.anchorID != "":
		return StateAnchorChosen
	case len(s.selected) > 0:
		return StateItemsSelected
	}
	return StateSnapshotLoaded
}

func (s *Session) Snapshot() Snapshot {
	return s.snapshot
}

func (s *Session) Anchor() string {
	return s.anchorID
}

// Selected returns the selected ids in the order they were picked.
func (s *Session) Selected() []string {
	return slices.Clone(s.selected)
}

// Refresh takes a new snapshot and clears anchor and selection.
func (s *Session) Refresh(ctx context.Context) error {
	snap, err := LoadSnapshot(ctx, s.store, s.oracle, s.user, s.limit)
	if err != nil {
		return err
	}
	s.snapshot = snap
	s.loaded = true
	s.reset()
	log.FromCtx(ctx).Debug().Int("messages", snap.Len()).Msg("snapshot refreshed")
	return nil
}

// SetAnchor records the anchor by id. It is resolved again on every delete.
func (s *Session) SetAnchor(id string) {
	s.anchorID = id
}

func (s *Session) ClearAnchor() {
	s.anchorID = ""
}

func (s *Session) Toggle(id string) {
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return
	}
	s.selected = append(s.selected, id)
}

func (s *Session) Select(ids ...string) {
	for _, id := range ids {
		if !slices.Contains(s.selected, id) {
			s.selected = append(s.selected, id)
		}
	}
}

// SelectAll selects every deletable message in the snapshot.
func (s *Session) SelectAll() {
	for _, m := range s.snapshot.records {
		if m.CanDelete {
			s.Select(m.ID)
		}
	}
}

func (s *Session) SelectNone() {
	s.selected = nil
}

// DeleteByAnchor deletes the deletable messages strictly newer or older than
// the anchor after asking the operator.
func (s *Session) DeleteByAnchor(ctx context.Context, dir core.Direction) (outcome Outcome, err error) {
	defer s.guard(ctx, &outcome, &err)

	if _, err := core.ParseDirection(string(dir)); err != nil {
		s.notifier.Notify(core.NoticeWarn, err.Error())
		return OutcomeSkipped, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return s.fail(ctx, err, loadFailedText)
	}
	if s.anchorID == "" {
		s.notifier.Notify(core.NoticeWarn, "Choose an anchor message first.")
		return OutcomeSkipped, core.ErrNoAnchor
	}

	candidates, err := SelectByAnchor(s.snapshot, s.anchorID, dir)
	if err != nil {
		if errors.Is(err, core.ErrAnchorNotFound) {
			s.ClearAnchor()
			s.notifier.Notify(core.NoticeWarn, "Anchor message not found. Refresh and choose it again.")
		}
		return OutcomeSkipped, err
	}
	candidates = ApplyFilter(candidates, s.filter)

	ids, blocked := PartitionByPermission(candidates)
	if len(candidates) == 0 {
		s.notifier.Notify(core.NoticeInfo, fmt.Sprintf("No deletable messages %s than the selected anchor.", dir))
		return OutcomeSkipped, core.ErrNoCandidates
	}
	if len(ids) == 0 {
		s.notifier.Notify(core.NoticeError, fmt.Sprintf("You don't have permission to delete the messages %s than the anchor.", dir))
		return OutcomeSkipped, core.ErrPermissionDenied
	}

	return s.confirmAndExecute(ctx, ConfirmPrompt(anchorSubject(dir), len(ids), blocked), ids)
}

// DeleteSelected deletes the selected messages that still exist and are
// deletable, after asking the operator.
func (s *Session) DeleteSelected(ctx context.Context) (outcome Outcome, err error) {
	defer s.guard(ctx, &outcome, &err)

	if len(s.selected) == 0 {
		s.notifier.Notify(core.NoticeWarn, "No messages selected.")
		return OutcomeSkipped, core.ErrNothingSelected
	}

	if err := s.ensureLoaded(ctx); err != nil {
		return s.fail(ctx, err, loadFailedText)
	}

	// Messages outside the snapshot window are never touched.
	visible := make([]string, 0, len(s.selected))
	for _, id := range s.selected {
		if s.snapshot.IndexOf(id) >= 0 {
			visible = append(visible, id)
		}
	}

	allow := func(m core.MessageRecord) bool {
		return s.oracle.CanDelete(ctx, m, s.user)
	}
	ids, blocked, err := PruneSelected(ctx, visible, s.store, allow)
	if err != nil {
		return s.fail(ctx, err, loadFailedText)
	}
	if len(ids) == 0 {
		if blocked > 0 {
			s.notifier.Notify(core.NoticeError, "You don't have permission to delete the selected messages.")
			return OutcomeSkipped, core.ErrPermissionDenied
		}
		s.selected = nil
		s.notifier.Notify(core.NoticeInfo, "The selected messages no longer exist or are outside the loaded window.")
		return OutcomeSkipped, core.ErrNoCandidates
	}

	return s.confirmAndExecute(ctx, ConfirmPrompt(selectedSubject, len(ids), blocked), ids)
}

func (s *Session) confirmAndExecute(ctx context.Context, prompt string, ids []string) (Outcome, error) {
	s.confirming = true
	ok, err := s.confirmer.Confirm(ctx, prompt)
	s.confirming = false
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("confirmation failed")
		s.notifier.Notify(core.NoticeError, "Could not ask for confirmation; nothing was deleted.")
		return OutcomeCancelled, err
	}
	if !ok {
		return OutcomeCancelled, nil
	}

	res := Execute(ctx, ids, s.store, s.notifier)
	if !res.OK() {
		s.reset()
		return OutcomeFailed, res.Err
	}

	if err := s.Refresh(ctx); err != nil {
		// The delete went through; only the follow-up read failed.
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to refresh after delete")
		s.loaded = false
		s.reset()
	}
	return OutcomeDeleted, nil
}

func (s *Session) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	anchor, selected := s.anchorID, s.selected
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.anchorID, s.selected = anchor, selected
	return nil
}

func (s *Session) fail(ctx context.Context, err error, text string) (Outcome, error) {
	log.FromCtx(ctx).Error().Err(err).Msg("prune action failed")
	s.notifier.Notify(core.NoticeError, text)
	return OutcomeFailed, err
}

// guard keeps collaborator panics from escaping the action boundary.
func (s *Session) guard(ctx context.Context, outcome *Outcome, err *error) {
	r := recover()
	if r == nil {
		return
	}
	s.confirming = false
	log.FromCtx(ctx).Error().Interface("panic", r).Msg("prune action panicked")
	func() {
		defer func() { _ = recover() }()
		s.notifier.Notify(core.NoticeError, deleteFailedText)
	}()
	*outcome = OutcomeFailed
	*err = fmt.Errorf("%w: %v", core.ErrDeleteFailed, r)
}

func (s *Session) reset() {
	s.ClearAnchor()
	s.selected = nil
}
