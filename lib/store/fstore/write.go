package fstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
)

// --------------------------------------------------------------------------
// Loading
// --------------------------------------------------------------------------

// load creates the data file if it is missing or reads and parses it otherwise.
func (s *Store) load() (map[string]json.RawMessage, error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return nil, store.WrapError(store.KindConfigStore, "failed to load config file", err)
	}

	if !exists {
		if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, store.WrapError(store.KindConfigStore, "failed to create config directory", err)
		}
		if err := s.writeFile([]byte("{}")); err != nil {
			return nil, store.WrapError(store.KindConfigStore, "failed to create config file", err)
		}
		s.fileSize.Store(2)
		log.Infof("created config file %s", s.path)
		return map[string]json.RawMessage{}, nil
	}

	content, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, store.WrapError(store.KindConfigStore, "failed to load config file", err)
	}
	s.fileSize.Store(uint64(len(content)))
	data := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(content)) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, store.WrapError(store.KindConfigStore, "failed to load config file", err)
	}
	if data == nil {
		// the file contained a literal null
		data = map[string]json.RawMessage{}
	}
	return data, nil
}

// --------------------------------------------------------------------------
// Writer
// --------------------------------------------------------------------------

// runWriter persists jobs one at a time until the queue is closed and drained.
func (s *Store) runWriter() {
	defer close(s.writerDone)
	for job := range s.queue.Recv() {
		if err := s.persist(); err != nil {
			s.writeErrors.Inc()
			log.Errorf("failed to persist config file %s: %v", s.path, err)
			if s.onWriteError != nil {
				s.onWriteError(err)
			}
		}
		s.markCompleted(job.seq)
	}
}

// persist writes the current state of the mirror to the data file.
func (s *Store) persist() error {
	start := time.Now()

	s.mu.RLock()
	content, err := s.snapshot()
	s.mu.RUnlock()
	if err != nil {
		return store.WrapError(store.KindSerialization, "failed to encode config file", err)
	}

	if err := s.writeFile(content); err != nil {
		return store.WrapError(store.KindConfigStore, "failed to write config file", err)
	}

	s.writes.Inc()
	s.writeDuration.UpdateDuration(start)
	s.fileSize.Store(uint64(len(content)))
	return nil
}

// snapshot encodes the mirror. The caller must hold mu.
func (s *Store) snapshot() ([]byte, error) {
	if s.pretty {
		return json.MarshalIndent(s.data, "", "  ")
	}
	return json.Marshal(s.data)
}

// writeFile atomically replaces the data file with content: it writes a temp
// file in the same directory, syncs it and renames it over the target.
func (s *Store) writeFile(content []byte) (err error) {
	tmp := s.path + ".tmp." + ulid.Make().String()

	f, err := s.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	// best-effort cleanup if anything fails before the rename
	defer func() {
		if err != nil {
			if rmErr := s.fs.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				log.Warningf("failed to remove temp file %s: %v", tmp, rmErr)
			}
		}
	}()

	if _, err = f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return s.fs.Rename(tmp, s.path)
}
