package filewatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext returns a context that is canceled
// when one of target files is modified (= written, created, removed, or renamed).
//
// # Args
//
// - ctx: context.Context
//
// - targetFilePath ...string: file pathes to be watched.
// When any of the files is modified, the context is canceled.
//
// # Returns
//
// - context.Context: context that is canceled when one of target files is modified.
//
// - func(): cancel function.
//
// - error: error caused when it fails to start watching files.
//
// If error is not nil, both of the the context and the cancel function are nil.
func UntilModifyContext(ctx context.Context, targetFilePath ...string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}

	go func() {
		defer w.Close()
		untilModify(cctx, cancel, w.Events, w.Errors)
	}()

	for _, f := range targetFilePath {
		if err = w.Add(f); err != nil {
			cancel(err)
			return nil, nil, err
		}
	}
	return cctx, func() { cancel(nil) }, nil
}

// untilModify cancels ctx on the first event. Errors are drained so that events keep coming.
func untilModify(ctx context.Context, cancel context.CancelCauseFunc, events <-chan fsnotify.Event, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-errs:
			if !ok {
				return
			}
		case event, ok := <-events:
			if !ok {
				return
			}
			cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
		}
	}
}

// Watch calls onModify each time the file is modified, until ctx is done.
//
// The directory containing the file is watched instead of the file itself,
// so replacing the file (like kubelet updating secret volumes, or editors saving by rename)
// is also detected. Events of other files in the directory are ignored.
//
// # Returns
//
// - error: error caused when it fails to start watching.
// After it returns nil, watching goes on in background.
func Watch(ctx context.Context, file string, onModify func()) error {
	target, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if name, err := filepath.Abs(event.Name); err != nil || name != target {
					continue
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				onModify()
			}
		}
	}()
	return nil
}
