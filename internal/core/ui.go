package core

import "context"

type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeWarn  NoticeKind = "warn"
	NoticeError NoticeKind = "error"
)

type Notifier interface {
	Notify(kind NoticeKind, text string)
}

type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}
