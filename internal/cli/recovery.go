package cli

import (
	"context"
	"fmt"
	"runtime/debug"

	apperrors "bankdesk/internal/errors"
	"bankdesk/internal/session"
)

// guard runs a menu action and turns a panic into a system error notice so
// the menu keeps running.
func (a *App) guard(ctx context.Context, action string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			sessionID := session.IDFromContext(ctx)

			a.logger.ErrorContext(ctx, "panic recovered",
				"action", action,
				"session_id", sessionID,
				"panic", fmt.Sprintf("%v", r),
				"stack_trace", string(debug.Stack()),
			)

			a.render.notice(apperrors.NewNotice(apperrors.SystemInternalError, apperrors.WithSessionID(sessionID)))
			err = nil
		}
	}()

	return fn()
}
