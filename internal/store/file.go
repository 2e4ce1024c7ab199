package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// envelope is the on-disk record. Writer identifies the store instance that
// wrote it so the instance can ignore its own writes when the watch fires.
type envelope struct {
	Writer string          `json:"writer"`
	Value  json.RawMessage `json:"value"`
}

// FileStore keeps one file per key in a shared directory and watches the
// directory for writes made by other processes.
type FileStore struct {
	dir       string
	namespace string
	writer    string
	logger    *slog.Logger

	mu   sync.Mutex
	seen map[Key][]byte

	observers observers
	watcher   *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// OpenFileStore opens (creating if needed) the store directory and starts
// watching it. logger may be nil.
func OpenFileStore(dir, namespace string, logger *slog.Logger) (*FileStore, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.StoreError{Op: "open", Key: dir, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &domain.StoreError{Op: "watch", Key: dir, Err: err}
	}
	// Watching the directory rather than the files catches atomic renames,
	// which replace the inode a file-level watch would be attached to.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, &domain.StoreError{Op: "watch", Key: dir, Err: err}
	}

	s := &FileStore{
		dir:       dir,
		namespace: namespace,
		writer:    uuid.NewString(),
		logger:    logger.With("component", "store"),
		seen:      make(map[Key][]byte),
		watcher:   watcher,
		done:      make(chan struct{}),
	}
	for _, key := range Keys {
		if env, err := s.read(key); err == nil && env != nil {
			s.seen[key] = env.Value
		}
	}

	s.wg.Add(1)
	go s.watchLoop()
	return s, nil
}

// Writer returns the id stamped on this instance's writes
func (s *FileStore) Writer() string {
	return s.writer
}

// Path returns the file backing key
func (s *FileStore) Path(key Key) string {
	return filepath.Join(s.dir, s.fileName(key))
}

// Get implements Store
func (s *FileStore) Get(key Key) ([]byte, error) {
	env, err := s.read(key)
	if err != nil {
		return nil, &domain.StoreError{Op: "get", Key: string(key), Err: err}
	}
	if env == nil {
		return nil, nil
	}
	return []byte(env.Value), nil
}

// Put implements Store. The file is replaced atomically so readers never
// observe a partial record.
func (s *FileStore) Put(key Key, value []byte) error {
	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return &domain.StoreError{Op: "put", Key: string(key), Err: fmt.Errorf("value is not valid JSON: %w", err)}
	}
	value = compact.Bytes()
	data, err := json.Marshal(envelope{Writer: s.writer, Value: value})
	if err != nil {
		return &domain.StoreError{Op: "put", Key: string(key), Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+s.fileName(key)+".*.tmp")
	if err != nil {
		return &domain.StoreError{Op: "put", Key: string(key), Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.StoreError{Op: "put", Key: string(key), Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.StoreError{Op: "put", Key: string(key), Err: err}
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		os.Remove(tmpName)
		return &domain.StoreError{Op: "put", Key: string(key), Err: err}
	}

	s.seen[key] = bytes.Clone(value)
	return nil
}

// Subscribe implements Store
func (s *FileStore) Subscribe(buffer int) <-chan Change {
	return s.observers.subscribe(buffer)
}

// Close stops the watch and closes every subscription
func (s *FileStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.watcher.Close()
		s.wg.Wait()
		s.observers.close()
	})
	return err
}

func (s *FileStore) watchLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			key, ok := s.keyFor(filepath.Base(event.Name))
			if !ok {
				continue
			}
			s.reload(key)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("store watch error", "error", err)
		}
	}
}

// reload re-reads key after a filesystem event and publishes it when
// another instance changed it.
func (s *FileStore) reload(key Key) {
	env, err := s.read(key)
	if err != nil {
		// Mid-write or briefly absent; the completing event will retry.
		s.logger.Debug("store reload skipped", "key", key, "error", err)
		return
	}
	if env == nil || env.Writer == s.writer {
		return
	}

	s.mu.Lock()
	if bytes.Equal(s.seen[key], env.Value) {
		s.mu.Unlock()
		return
	}
	s.seen[key] = bytes.Clone(env.Value)
	s.mu.Unlock()

	if superseded := s.observers.emit(Change{Key: key, Value: []byte(env.Value)}); superseded > 0 {
		s.logger.Debug("slow subscriber coalesced", "key", key, "superseded", superseded)
	}
}

func (s *FileStore) read(key Key) (*envelope, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.fileName(key), err)
	}
	return &env, nil
}

func (s *FileStore) fileName(key Key) string {
	return s.namespace + "_" + string(key) + ".json"
}

func (s *FileStore) keyFor(name string) (Key, bool) {
	prefix := s.namespace + "_"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	key := Key(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json"))
	for _, known := range Keys {
		if key == known {
			return key, true
		}
	}
	return "", false
}
