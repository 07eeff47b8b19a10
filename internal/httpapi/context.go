package httpapi

import (
	"context"
)

// serverBaseCtx is canceled on shutdown so in-flight estimates stop with the
// process. Background until SetBaseContext is called.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
// nil resets it to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// joinContexts derives from req, keeping its values, and also cancels when
// base is done. cancel must be called once the handler returns.
func joinContexts(base, req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(req)
	stop := context.AfterFunc(base, func() { cancel(context.Cause(base)) })
	return ctx, func() {
		stop()
		cancel(context.Canceled)
	}
}
