package context

import (
	"context"
	"testing"
	"time"
)

// WithTest derives a context ending 1 second before the test deadline.
//
// Without a deadline, the context ends in 30 seconds.
// The context is canceled on test cleanup.
func WithTest(ctx context.Context, t *testing.T) context.Context {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	if dl, ok := t.Deadline(); ok {
		deadline = dl.Add(-time.Second)
	}
	dctx, cancel := context.WithDeadline(ctx, deadline)
	t.Cleanup(cancel)
	return dctx
}
