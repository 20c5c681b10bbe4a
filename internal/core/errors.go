package core

import "errors"

var (
	ErrAnchorNotFound   = errors.New("anchor message not found")
	ErrNoCandidates     = errors.New("no deletable messages")
	ErrPermissionDenied = errors.New("permission denied for all candidate messages")
	ErrDeleteFailed     = errors.New("some messages could not be deleted")
	ErrMessageNotFound  = errors.New("message not found")
	ErrInvalidDirection = errors.New("direction must be \"older\" or \"newer\"")
	ErrNoAnchor         = errors.New("no anchor message chosen")
	ErrNothingSelected  = errors.New("no messages selected")
)
