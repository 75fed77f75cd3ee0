// Package staging owns the transient directory generated source passes
// through on its way to the loader. The directory is per-process, created on
// first use, and removed exactly once at shutdown; the cleanup hook can
// never be registered twice.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Options configures the staging area.
type Options struct {
	// Dir overrides the staging root. Empty means
	// <user cache dir>/graphlower/staging.
	Dir string

	// KeepFiles disables removal at Shutdown (debugging aid).
	KeepFiles bool
}

var (
	mu       sync.Mutex
	initOnce sync.Once
	initErr  error

	dir       string
	keepFiles bool
	cleaned   bool
	seq       int
)

// Init creates the per-process staging directory. Repeated calls are no-ops
// returning the first outcome; the initialize-once gate doubles as the
// "cleanup already registered" flag of the lifecycle.
func Init(opts Options) error {
	initOnce.Do(func() {
		root := opts.Dir
		if root == "" {
			cache, err := os.UserCacheDir()
			if err != nil {
				initErr = fmt.Errorf("staging: resolve cache dir: %w", err)
				return
			}
			root = filepath.Join(cache, "graphlower", "staging")
		}
		// pid + uuid keeps concurrent processes and pid reuse apart.
		d := filepath.Join(root, fmt.Sprintf("%d-%s", os.Getpid(), uuid.NewString()))
		if err := os.MkdirAll(d, 0o755); err != nil {
			initErr = fmt.Errorf("staging: create %s: %w", d, err)
			return
		}
		mu.Lock()
		dir = d
		keepFiles = opts.KeepFiles
		mu.Unlock()
	})
	return initErr
}

// Dir returns the staging directory, or "" before Init.
func Dir() string {
	mu.Lock()
	defer mu.Unlock()
	return dir
}

// Stage writes source to a fresh file named after prefix and returns its
// path. Init must have succeeded first.
func Stage(prefix, source string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if dir == "" || cleaned {
		return "", fmt.Errorf("staging: not initialized")
	}
	seq++
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.gl", prefix, seq))
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("staging: write %s: %w", path, err)
	}
	return path, nil
}

// Shutdown removes the staging directory. It is idempotent and safe on every
// exit path; callers typically defer it from main.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	if dir == "" || cleaned {
		return nil
	}
	cleaned = true
	if keepFiles {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("staging: remove %s: %w", dir, err)
	}
	return nil
}
