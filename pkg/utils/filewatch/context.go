// Package filewatch cancels contexts on file updates.
package filewatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	xe "github.com/opst/confusionflow/pkg/errors"
)

// UntilModifyContext returns a context that is canceled
// when one of target files is modified (= written, created, removed, renamed or chmod-ed).
//
// Each target is watched through its parent directory,
// so replacing the file by rename (as many editors do) is also detected.
// Other files in the directory are ignored.
//
// # Returns
//
// - context.Context: context canceled on modification. context.Cause tells which file is updated.
//
// - func(): cancel function. It stops watching.
//
// - error: error caused when it fails to start watching files.
// If error is not nil, both of the context and the cancel function are nil.
func UntilModifyContext(ctx context.Context, targetFilePath ...string) (context.Context, func(), error) {
	targets := map[string]struct{}{}
	dirs := map[string]struct{}{}
	for _, f := range targetFilePath {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, nil, xe.Wrap(err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, xe.Wrap(err)
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return nil, nil, xe.WrapWithNote("can not watch "+d, err)
		}
	}

	cctx, cancel := context.WithCancelCause(ctx)
	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(fmt.Errorf("watching files: %w", err))
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if _, hit := targets[filepath.Clean(event.Name)]; !hit {
					continue
				}
				cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
			}
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
