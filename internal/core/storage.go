package core

import "context"

type MessageLookup interface {
	// Get returns found=false, with a nil error, when the id does not resolve.
	Get(ctx context.Context, id string) (MessageRecord, bool, error)
}

type BulkDeleter interface {
	// DeleteMany removes the given ids. Ids that are already gone are skipped
	// without error. It returns the number of messages actually removed.
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

type SingleDeleter interface {
	// Delete returns ErrMessageNotFound when the id does not resolve.
	Delete(ctx context.Context, id string) error
}

type MessageStore interface {
	MessageLookup
	BulkDeleter
	// ListRecent returns at most limit of the newest messages, in creation order.
	ListRecent(ctx context.Context, limit int) ([]MessageRecord, error)
}

type MessagesRepository interface {
	MessageStore
	SingleDeleter
	AddMessage(ctx context.Context, msg MessageRecord) error
	// AddMessages inserts a batch atomically, skipping ids already stored.
	AddMessages(ctx context.Context, msgs []MessageRecord) (int, error)
	Count(ctx context.Context) (int, error)
}

type GrantsRepository interface {
	CapabilityChecker
	SetGrant(ctx context.Context, messageID, userID string, canDelete bool) error
}
