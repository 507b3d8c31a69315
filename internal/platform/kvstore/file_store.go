package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "inkwell/internal/platform/errors"
)

const fileSuffix = ".json"

// FileStore keeps one <key>.json file per key inside dir. All access from this
// process goes through a single mutex; other processes writing the same
// directory are not coordinated and the last rename wins. Changed reports
// when one of them did.
type FileStore struct {
	dir string
	mu  sync.Mutex
	// seen holds the mtime of each key file as this process last read or
	// wrote it.
	seen map[string]time.Time
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, seen: map[string]time.Time{}}
}

func (s *FileStore) Load(_ context.Context, key string, dst any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(key, dst)
}

func (s *FileStore) Save(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(key, value)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.seen[key] = time.Time{}
	return nil
}

// Changed reports whether any key file this process has read or written was
// created, modified or removed by someone else since. Each change is
// reported once.
func (s *FileStore) Changed(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for key, known := range s.seen {
		info, err := os.Stat(s.path(key))
		if err != nil {
			if !os.IsNotExist(err) {
				return changed, fmt.Errorf("stat %s: %w", key, err)
			}
			if !known.IsZero() {
				s.seen[key] = time.Time{}
				changed = true
			}
			continue
		}
		if !info.ModTime().Equal(known) {
			s.seen[key] = info.ModTime()
			changed = true
		}
	}
	return changed, nil
}

func (s *FileStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list kv dir: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		key := strings.TrimSuffix(name, fileSuffix)
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+fileSuffix)
}

func (s *FileStore) loadLocked(key string, dst any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.remember(key)
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return apperrors.ErrNotFound
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) saveLocked(key string, value any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create kv dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	s.remember(key)
	return nil
}

// remember records key's current mtime. A missing file is recorded as the
// zero time so its later creation counts as a change.
func (s *FileStore) remember(key string) {
	info, err := os.Stat(s.path(key))
	switch {
	case err == nil:
		s.seen[key] = info.ModTime()
	case os.IsNotExist(err):
		s.seen[key] = time.Time{}
	}
}
