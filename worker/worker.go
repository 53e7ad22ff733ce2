package worker

import (
	"context"
	"os"
	"time"

	"fomezero/services"
	"fomezero/utils"
)

// PrepareFunc builds a snapshot from the dataset file at path.
type PrepareFunc func(path string) (*services.Snapshot, error)

type fileState struct {
	modTime time.Time
	size    int64
}

func stat(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}, err
	}
	return fileState{modTime: info.ModTime(), size: info.Size()}, nil
}

func (f fileState) same(o fileState) bool {
	return f.size == o.size && f.modTime.Equal(o.modTime)
}

// StartReloadWorker polls the dataset file every interval and, when its
// modification time or size changes, prepares it again and swaps the new
// snapshot into holder. A failed reload keeps the snapshot being served.
// An interval of 0 disables the worker. It stops when ctx is done; the
// returned channel is closed once it has.
func StartReloadWorker(ctx context.Context, holder *services.Holder, prepare PrepareFunc, path string, interval time.Duration, logger *utils.Logger) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		logger.Info("Reload worker disabled")
		close(done)
		return done
	}

	last, err := stat(path)
	if err != nil {
		logger.Warn("Reload worker cannot stat %s: %v", path, err)
	}

	logger.Info("Starting reload worker (file: %s, interval: %v)", path, interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Reload worker stopped")
				return
			case <-ticker.C:
				last = checkAndReload(holder, prepare, path, last, logger)
			}
		}
	}()
	return done
}

// checkAndReload runs one poll and returns the file state to compare against next time.
func checkAndReload(holder *services.Holder, prepare PrepareFunc, path string, last fileState, logger *utils.Logger) fileState {
	current, err := stat(path)
	if err != nil {
		logger.Warn("Reload check failed for %s: %v", path, err)
		return last
	}
	if current.same(last) {
		return last
	}

	logger.Info("Dataset %s changed, reloading", path)
	snap, err := prepare(path)
	if err != nil {
		logger.Error("Reload failed, keeping previous snapshot: %v", err)
		// remember the state so a broken file is not re-prepared every tick
		return current
	}
	holder.Set(snap)
	logger.Info("Reloaded snapshot: %s", snap.Describe())
	return current
}
