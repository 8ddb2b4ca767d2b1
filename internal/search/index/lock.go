package index

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const (
	defaultLockTimeout = 10 * time.Second
	lockRetryDelay     = 200 * time.Millisecond
)

// acquireBuildLock takes the advisory lock guarding output. The returned
// release func is always safe to call.
func acquireBuildLock(ctx context.Context, output string, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	l := flock.New(output + ".lock")
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("%w: cannot acquire build lock: %w", ErrPersistence, err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("%w: another build is in progress (lock: %s)", ErrPersistence, l.Path())
		}
		select {
		case <-ctx.Done():
			return func() {}, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
}
