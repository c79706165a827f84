// Package limiter bounds the number of site builds running at once.
package limiter

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/opennext-tools/nextdeploy-cli/internal/ctxlog"
)

// Limiter is a bounded counting semaphore shared by all builds in the
// process. The label passed to Acquire is diagnostic only; builds of the same
// site are not serialized against each other.
type Limiter struct {
	sem *semaphore.Weighted
}

// New creates a limiter allowing at most capacity concurrent holders.
func New(capacity int64) *Limiter {
	return &Limiter{sem: semaphore.NewWeighted(capacity)}
}

// Acquire blocks until a slot is free and returns a release handle. The
// handle is safe to call more than once; only the first call releases the
// slot. Callers must defer the release so it runs on every exit path.
func (l *Limiter) Acquire(ctx context.Context, label string) (func(), error) {
	log := ctxlog.FromContext(ctx)
	log.Debug("waiting for build slot", "label", label)

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	log.Debug("acquired build slot", "label", label)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.sem.Release(1)
			log.Debug("released build slot", "label", label)
		})
	}, nil
}
