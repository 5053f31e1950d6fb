package cli

import (
	"os"
	"time"

	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/config"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/lockfile"
	"github.com/cheddarwhizzy/cursor-autopilot-sub000/internal/store"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolveStore locates the document pair per the configured file names and
// the CURSOR_ITER_DIR / cwd / parent-directory precedence.
func resolveStore(cfg *config.Config) (*store.FileStore, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	tasksPath, progressPath := store.Resolve(cwd, cfg.Paths.TasksFile, cfg.Paths.ProgressFile)
	return store.NewFileStore(tasksPath, progressPath), nil
}

func documentLock(st *store.FileStore) *lockfile.Lock {
	return lockfile.New(store.LockPath(st.TasksPath()))
}

func lockWait(cfg *config.Config) time.Duration {
	if cfg.Loop.LockWaitSeconds > 0 {
		return time.Duration(cfg.Loop.LockWaitSeconds) * time.Second
	}
	return lockfile.DefaultWait
}
