package core

import "context"

type PermissionOracle interface {
	// CanDelete never fails; any internal error degrades to false.
	CanDelete(ctx context.Context, msg MessageRecord, user User) bool
}

type CapabilityChecker interface {
	// CanUserDelete reports found=false when there is no explicit rule for the pair.
	CanUserDelete(ctx context.Context, messageID, userID string) (allowed bool, found bool, err error)
}
