// Package file implements the storage contract with one gob file per record.
//
// Layout on disk: <root>/<entity>/<id>.gob, each file a full serialized
// snapshot of one record. There is no index file; every full scan lists the
// entity directory and decodes each file in turn. The strategy trades
// per-call latency for restart durability without any database engine.
//
// Entity directories are created lazily on the first write. Concurrent
// writers to the same id interleave with last-writer-wins; no cross-process
// locking exists.
package file

import (
	"encoding/gob"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
)

const extension = ".gob"

// Store is the file-backed Backend for one entity type.
type Store[E any] struct {
	dir  string
	name string
	idOf func(E) uuid.UUID
}

func NewStore[E any](root, name string, idOf func(E) uuid.UUID) *Store[E] {
	return &Store[E]{
		dir:  filepath.Join(root, name),
		name: name,
		idOf: idOf,
	}
}

func (s *Store[E]) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+extension)
}

func (s *Store[E]) Save(e E) (E, error) {
	var zero E
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return zero, infrastructure.StorageFailure(err, "creating %s directory", s.name)
	}
	f, err := os.Create(s.path(s.idOf(e)))
	if err != nil {
		return zero, infrastructure.StorageFailure(err, "creating %s record file", s.name)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(e); err != nil {
		return zero, infrastructure.StorageFailure(err, "encoding %s record", s.name)
	}
	return e, nil
}

func (s *Store[E]) FindByID(id uuid.UUID) (E, error) {
	var zero E
	f, err := os.Open(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, infrastructure.NotFound("%s not found: %s", s.name, id)
		}
		return zero, infrastructure.StorageFailure(err, "opening %s record file", s.name)
	}
	defer f.Close()

	var e E
	if err := gob.NewDecoder(f).Decode(&e); err != nil {
		return zero, infrastructure.StorageFailure(err, "decoding %s record %s", s.name, id)
	}
	return e, nil
}

func (s *Store[E]) FindAll() ([]E, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		// A directory that was never written to holds no records.
		if errors.Is(err, fs.ErrNotExist) {
			return []E{}, nil
		}
		return nil, infrastructure.StorageFailure(err, "listing %s directory", s.name)
	}

	all := make([]E, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), extension))
		if err != nil {
			continue
		}
		e, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		all = append(all, e)
	}
	return all, nil
}

func (s *Store[E]) ExistsByID(id uuid.UUID) (bool, error) {
	_, err := os.Stat(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, infrastructure.StorageFailure(err, "checking %s record file", s.name)
	}
	return true, nil
}

func (s *Store[E]) DeleteByID(id uuid.UUID) error {
	err := os.Remove(s.path(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return infrastructure.StorageFailure(err, "removing %s record file", s.name)
	}
	return nil
}

// NewContainer builds a storage container rooted at dir. Two containers over
// the same directory see the same records, which is exactly how the process
// finds its data again after a restart.
func NewContainer(dir string) *storage.Container {
	return storage.NewContainer(
		NewStore(dir, "user", func(u entity.User) uuid.UUID { return u.ID }),
		NewStore(dir, "channel", func(c entity.Channel) uuid.UUID { return c.ID }),
		NewStore(dir, "message", func(m entity.Message) uuid.UUID { return m.ID }),
		NewStore(dir, "readstatus", func(s entity.ReadStatus) uuid.UUID { return s.ID }),
		NewStore(dir, "userstatus", func(s entity.UserStatus) uuid.UUID { return s.ID }),
		NewStore(dir, "binarycontent", func(b entity.BinaryContent) uuid.UUID { return b.ID }),
		nil,
	)
}
