// Package lockfile provides the advisory mutex serializing the
// read/decide/mark-active critical section across processes. It relies on
// the atomic create-or-fail semantics of directory creation rather than
// flock-style locks, which silently no-op across processes that don't
// cooperate.
//
// The lock favors liveness over strict exclusion: when the bounded wait
// expires, the holder is presumed dead, the lock is force-cleared, and one
// more acquisition attempt is made. The worst case of a rare double-pick is
// a harmless duplicate ledger line, not data corruption.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const pollInterval = 100 * time.Millisecond

// DefaultWait is the bounded wait before a stale lock is taken over.
const DefaultWait = 30 * time.Second

// Lock is a directory-based advisory lock at a fixed path.
type Lock struct {
	path  string
	owner string
	held  bool
}

// New creates an unheld lock handle for path.
func New(path string) *Lock {
	return &Lock{path: path, owner: uuid.New().String()}
}

// Path returns the lock location.
func (l *Lock) Path() string { return l.path }

// Acquire blocks until the lock directory can be created, polling up to
// wait. On timeout the stale lock is force-cleared and one more attempt is
// made before giving up.
func (l *Lock) Acquire(wait time.Duration) error {
	if l.held {
		return fmt.Errorf("lock %s already held by this process", l.path)
	}

	deadline := time.Now().Add(wait)
	for {
		err := os.Mkdir(l.path, 0755)
		if err == nil {
			l.held = true
			l.writeOwner()
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("failed to create lock %s: %w", l.path, err)
		}
		if !time.Now().Before(deadline) {
			break
		}
		time.Sleep(pollInterval)
	}

	// Presume the holder is dead and take over.
	if err := os.RemoveAll(l.path); err != nil {
		return fmt.Errorf("failed to clear stale lock %s: %w", l.path, err)
	}
	if err := os.Mkdir(l.path, 0755); err != nil {
		return fmt.Errorf("failed to acquire lock %s after takeover: %w", l.path, err)
	}
	l.held = true
	l.writeOwner()
	return nil
}

// Release removes the lock if held. Safe to call multiple times.
func (l *Lock) Release() {
	if !l.held {
		return
	}
	os.RemoveAll(l.path)
	l.held = false
}

// Held reports whether this handle currently holds the lock.
func (l *Lock) Held() bool { return l.held }

// writeOwner records owner metadata inside the lock directory for
// diagnostics. Best effort; the lock works without it.
func (l *Lock) writeOwner() {
	info := fmt.Sprintf("%s %d %s\n", l.owner, os.Getpid(), time.Now().Format(time.RFC3339))
	os.WriteFile(filepath.Join(l.path, "owner"), []byte(info), 0644)
}
