package in

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"inkwell/internal/modules/goals/dto"
	goalsin "inkwell/internal/modules/goals/port/in"
	manuscriptin "inkwell/internal/modules/manuscript/port/in"
	apperrors "inkwell/internal/platform/errors"
)

const DefaultDebounce = 750 * time.Millisecond

// ManuscriptWatcher turns saves under the manuscript directory into
// TrackDocumentChange calls. Bursts of writes to one file collapse into a
// single call after the debounce window.
type ManuscriptWatcher struct {
	root        string
	debounce    time.Duration
	goals       goalsin.Usecase
	manuscripts manuscriptin.Usecase
	logger      *zap.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
	// OnTracked, when set, receives the result of every tracked save.
	OnTracked func(path string, out dto.TrackOutput)
}

func NewManuscriptWatcher(root string, debounce time.Duration, goals goalsin.Usecase, manuscripts manuscriptin.Usecase, logger *zap.Logger) *ManuscriptWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManuscriptWatcher{
		root:        root,
		debounce:    debounce,
		goals:       goals,
		manuscripts: manuscripts,
		logger:      logger,
		pending:     map[string]*time.Timer{},
		ready:       make(chan string, 64),
	}
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *ManuscriptWatcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("create manuscript dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	defer w.stopPending()

	if err := w.addTree(watcher, w.root); err != nil {
		return err
	}
	w.logger.Info("watching manuscripts", zap.String("root", w.root), zap.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, watcher, event)
		case path := <-w.ready:
			w.track(ctx, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("manuscript watcher error", zap.Error(err))
		}
	}
}

func (w *ManuscriptWatcher) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(watcher, event.Name); err != nil {
				w.logger.Warn("watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			return
		}
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !isManuscriptPath(event.Name) {
		return
	}
	w.schedule(ctx, event.Name)
}

func (w *ManuscriptWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok && timer.Stop() {
		timer.Reset(w.debounce)
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		if w.pending[path] == timer {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
	w.pending[path] = timer
}

func (w *ManuscriptWatcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *ManuscriptWatcher) track(ctx context.Context, path string) {
	doc, err := w.manuscripts.GetDocumentByPath(ctx, path)
	if err != nil {
		// The file may be gone by the time the debounce fires.
		level := zap.WarnLevel
		if errors.Is(err, apperrors.ErrDocumentMissing) {
			level = zap.DebugLevel
		}
		w.logger.Check(level, "skip manuscript save").Write(zap.String("path", path), zap.Error(err))
		return
	}
	out, err := w.goals.TrackDocumentChange(ctx, dto.TrackInput{
		DocumentID: doc.ID,
		ProjectID:  doc.ProjectID,
		WordCount:  doc.WordCount,
		CharCount:  doc.CharCount,
	})
	if err != nil {
		w.logger.Warn("track manuscript save", zap.String("document", doc.ID), zap.Error(err))
		return
	}
	w.logger.Debug("tracked manuscript save",
		zap.String("document", doc.ID),
		zap.Int("words_delta", out.WordsDelta),
		zap.Int("day_words", out.DayWords),
	)
	if w.OnTracked != nil {
		w.OnTracked(path, out)
	}
}

func (w *ManuscriptWatcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isManuscriptPath(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".md")
}
