package storagestate

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nineking424/kafka-dist/shared/errors"
	"github.com/sirupsen/logrus"
)

const (
	// LockFileName is the marker Kafka's log manager holds while running and
	// removes on clean shutdown. Finding one before start means the previous
	// pod was terminated uncleanly.
	LockFileName = ".lock"

	// MetaPropertiesFileName identifies which cluster a formatted log
	// directory belongs to.
	MetaPropertiesFileName = "meta.properties"
)

// ErrStorageUnavailable indicates the log directory itself is inaccessible,
// which points at a volume-mount problem the node cannot recover from on its
// own. Surfaced to the orchestrator; never retried internally.
var ErrStorageUnavailable = errors.NewSentinelError("storage unavailable")

// ErrClusterIDMismatch indicates the log directory was formatted for a
// different cluster. Starting Kafka against it would crash-loop, so the
// mismatch is surfaced before the process is ever launched.
var ErrClusterIDMismatch = errors.NewSentinelError("log directory belongs to a different cluster")

type ReconcileResult struct {
	Cleared bool
}

// Reconcile leaves the node's durable log directory in a startable state. It
// runs strictly before the Kafka process is (re)started for the current pod
// lifecycle, so a lock marker found here has no live owner and is removed.
// Removing the marker is idempotent and safe to retry.
//
// When expectedClusterID is non-empty and the directory already carries a
// meta.properties, the recorded cluster id must match.
//
// The filesystem operations are bounded by the context deadline; exceeding
// it is treated as ErrStorageUnavailable.
func Reconcile(ctx context.Context, logDir string, expectedClusterID string) (ReconcileResult, error) {
	type outcome struct {
		result ReconcileResult
		err    error
	}

	if err := ctx.Err(); err != nil {
		return ReconcileResult{}, errors.Errorf("%w: %s: %w", ErrStorageUnavailable, logDir, err)
	}

	done := make(chan outcome, 1)
	go func() {
		result, err := reconcile(logDir, expectedClusterID)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return ReconcileResult{}, errors.Errorf("%w: timed out accessing %s: %w", ErrStorageUnavailable, logDir, ctx.Err())
	case out := <-done:
		return out.result, out.err
	}
}

func reconcile(logDir string, expectedClusterID string) (ReconcileResult, error) {
	info, err := os.Stat(logDir)
	if err != nil {
		return ReconcileResult{}, errors.Errorf("%w: %s: %w", ErrStorageUnavailable, logDir, err)
	}
	if !info.IsDir() {
		return ReconcileResult{}, errors.Errorf("%w: %s is not a directory", ErrStorageUnavailable, logDir)
	}

	if expectedClusterID != "" {
		if err := checkMetaProperties(logDir, expectedClusterID); err != nil {
			return ReconcileResult{}, errors.Wrap(err)
		}
	}

	lockPath := filepath.Join(logDir, LockFileName)
	if err := os.Remove(lockPath); err != nil {
		if os.IsNotExist(err) {
			return ReconcileResult{Cleared: false}, nil
		}
		return ReconcileResult{}, errors.Errorf("%w: failed removing stale lock %s: %w", ErrStorageUnavailable, lockPath, err)
	}

	logrus.WithField("path", lockPath).Info("removed stale lock left by unclean shutdown")
	return ReconcileResult{Cleared: true}, nil
}

func checkMetaProperties(logDir string, expectedClusterID string) error {
	metaPath := filepath.Join(logDir, MetaPropertiesFileName)
	file, err := os.Open(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Unformatted directory, Kafka formats it on first start.
			return nil
		}
		return errors.Errorf("%w: %s: %w", ErrStorageUnavailable, metaPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) != "cluster.id" {
			continue
		}
		if recorded := strings.TrimSpace(value); recorded != expectedClusterID {
			return errors.Errorf("%w: %s records cluster id %q, expected %q", ErrClusterIDMismatch, metaPath, recorded, expectedClusterID)
		}
		return nil
	}
	if err := scanner.Err(); err != nil {
		return errors.Errorf("%w: reading %s: %w", ErrStorageUnavailable, metaPath, err)
	}

	return nil
}
