package release_hold

import "context"

type HoldService interface {
	Release(ctx context.Context, holdID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
