// Package file reads a reference table from disk and watches it for changes.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
	"github.com/custodia-labs/netreach/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ReferenceSource = (*Source)(nil)

var (
	// ErrClosed is returned when a closed source is watched.
	ErrClosed = errors.New("reference source closed")

	// ErrAlreadyWatching is returned when Watch is called while a watch is active.
	ErrAlreadyWatching = errors.New("reference source already watched")
)

// Source loads a user reference table from a file.
// The file is read once and cached until a watcher reports a change.
type Source struct {
	path string

	mu      sync.Mutex
	content []byte
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a source for the file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the watched file path.
func (s *Source) Path() string {
	return s.path
}

// Load returns the file contents, reading the file on first use.
func (s *Source) Load(ctx context.Context) (*domain.ReferenceData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.content == nil {
		content, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("reading reference file: %w", err)
		}
		s.content = content
	}

	content := make([]byte, len(s.content))
	copy(content, s.content)
	return &domain.ReferenceData{
		Name:    filepath.Base(s.path),
		Content: content,
	}, nil
}

// Watch reports changes to the file until ctx is cancelled.
// Each change drops the cached contents, so the next Load re-reads the file.
// The parent directory is watched so editors that replace the file are seen.
// Only one watch may be active at a time.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.watcher != nil {
		return nil, ErrAlreadyWatching
	}
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("reference path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}
	s.watcher = watcher

	changes := make(chan struct{}, 1)
	go s.watch(ctx, watcher, changes)
	return changes, nil
}

func (s *Source) watch(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer func() {
		_ = watcher.Close()
		s.mu.Lock()
		if s.watcher == watcher {
			s.watcher = nil
		}
		s.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !s.handleFsEvent(event) {
				continue
			}
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("reference watcher: %v", err)
		}
	}
}

// handleFsEvent drops the cache when event concerns the reference file.
// It reports whether the event was a change to that file.
func (s *Source) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.path) {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	s.mu.Lock()
	s.content = nil
	s.mu.Unlock()

	logger.Debug("Reference file changed: %s (%s)", s.path, event.Op)
	return true
}

// Close stops watching. It is safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
