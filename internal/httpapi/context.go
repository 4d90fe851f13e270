package httpapi

import (
	"context"
)

// baseCtx is cancelled at shutdown so streaming handlers stop in-flight
// generations even when their clients stay connected. Background until the
// server wires one in.
var baseCtx = context.Background()

// SetBaseContext installs the shutdown context handlers derive from.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		baseCtx = context.Background()
		return
	}
	baseCtx = ctx
}

// eitherDone ties a fresh context to two parents: it ends when the request
// disconnects or the server shuts down, whichever comes first. Callers must
// invoke cancel once the handler returns so the watcher goroutine exits.
func eitherDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		select {
		case <-a.Done():
		case <-b.Done():
		}
	}()
	return ctx, cancel
}
