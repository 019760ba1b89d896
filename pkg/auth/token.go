package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/opst/cloudconsole/pkg/utils/filewatch"
)

var ErrUnauthenticated = errors.New("not authenticated")

// TokenSource provides bearer tokens for the backend.
//
// Token is called for each request, so implementations should be cheap.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource which always returns itself.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: no token is given", ErrUnauthenticated)
	}
	return string(s), nil
}

// FileToken is a TokenSource reading a token from a file.
//
// The file is reread each time it is modified, so a sidecar (or a user) can refresh the token
// while commands are running.
type FileToken struct {
	path   string
	logger *log.Logger

	mu    sync.RWMutex
	token string
	err   error
}

// NewFileToken reads a token from path, and keeps it fresh until ctx is done.
//
// # Returns
//
// - *FileToken
//
// - error: when the file cannot be read or watched.
func NewFileToken(ctx context.Context, path string, logger *log.Logger) (*FileToken, error) {
	ft := &FileToken{path: path, logger: logger}
	if err := ft.reload(); err != nil {
		return nil, err
	}
	if err := filewatch.Watch(ctx, path, func() {
		if err := ft.reload(); err != nil {
			ft.logger.Printf("failed to reload token from %s: %s", path, err)
		}
	}); err != nil {
		return nil, err
	}
	return ft, nil
}

func (ft *FileToken) reload() error {
	buf, err := os.ReadFile(ft.path)
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if err != nil {
		ft.token, ft.err = "", err
		return err
	}
	ft.token, ft.err = strings.TrimSpace(string(buf)), nil
	return nil
}

func (ft *FileToken) Token(context.Context) (string, error) {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	if ft.err != nil {
		return "", fmt.Errorf("%w: cannot read token file %s: %w", ErrUnauthenticated, ft.path, ft.err)
	}
	if ft.token == "" {
		return "", fmt.Errorf("%w: token file %s is empty", ErrUnauthenticated, ft.path)
	}
	return ft.token, nil
}
