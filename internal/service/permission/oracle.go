package permission

import (
	"context"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/log"
)

// Oracle answers delete permission with the first matching rule:
// GM role, then an explicit per-message grant, then ownership.
type Oracle struct {
	grants core.CapabilityChecker
}

// NewOracle accepts a nil checker; grants are then never consulted.
func NewOracle(grants core.CapabilityChecker) *Oracle {
	return &Oracle{grants: grants}
}

func (o *Oracle) CanDelete(ctx context.Context, msg core.MessageRecord, user core.User) (allowed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.FromCtx(ctx).Debug().Interface("panic", r).Str("message", msg.ID).Msg("permission check panicked")
			allowed = false
		}
	}()

	if user.IsGM() {
		return true
	}

	if o.grants != nil {
		ok, found, err := o.grants.CanUserDelete(ctx, msg.ID, user.ID)
		if err != nil {
			log.FromCtx(ctx).Debug().Err(err).Str("message", msg.ID).Msg("grant lookup failed")
			return false
		}
		if found {
			return ok
		}
	}

	if msg.OwnerID != "" && user.ID != "" {
		return msg.OwnerID == user.ID
	}
	return false
}
