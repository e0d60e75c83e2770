// Package badgerstore implements the storage contract on an embedded Badger
// database. One database is shared by every entity type; records are gob
// snapshots stored under "<entity>/<id>" keys, so a full scan is a prefix
// iteration instead of a directory listing.
//
// It satisfies the same contract and the same tests as the memory and file
// strategies; the durability profile sits between them (write-ahead log,
// single process).
package badgerstore

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
)

// Store is the Badger-backed Backend for one entity type.
type Store[E any] struct {
	db     *badger.DB
	name   string
	prefix []byte
	idOf   func(E) uuid.UUID
}

func NewStore[E any](db *badger.DB, name string, idOf func(E) uuid.UUID) *Store[E] {
	return &Store[E]{
		db:     db,
		name:   name,
		prefix: []byte(name + "/"),
		idOf:   idOf,
	}
}

func (s *Store[E]) key(id uuid.UUID) []byte {
	return append(append([]byte(nil), s.prefix...), id.String()...)
}

func (s *Store[E]) Save(e E) (E, error) {
	var zero E
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return zero, infrastructure.StorageFailure(err, "encoding %s record", s.name)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(s.idOf(e)), buf.Bytes())
	})
	if err != nil {
		return zero, infrastructure.StorageFailure(err, "writing %s record", s.name)
	}
	return e, nil
}

func (s *Store[E]) FindByID(id uuid.UUID) (E, error) {
	var e E
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&e)
		})
	})
	if err != nil {
		var zero E
		if errors.Is(err, badger.ErrKeyNotFound) {
			return zero, infrastructure.NotFound("%s not found: %s", s.name, id)
		}
		return zero, infrastructure.StorageFailure(err, "reading %s record", s.name)
	}
	return e, nil
}

func (s *Store[E]) FindAll() ([]E, error) {
	all := []E{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var e E
			err := it.Item().Value(func(val []byte) error {
				return gob.NewDecoder(bytes.NewReader(val)).Decode(&e)
			})
			if err != nil {
				return err
			}
			all = append(all, e)
		}
		return nil
	})
	if err != nil {
		return nil, infrastructure.StorageFailure(err, "scanning %s records", s.name)
	}
	return all, nil
}

func (s *Store[E]) ExistsByID(id uuid.UUID) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(s.key(id))
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, infrastructure.StorageFailure(err, "checking %s record", s.name)
	}
	return true, nil
}

func (s *Store[E]) DeleteByID(id uuid.UUID) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(id))
	})
	if err != nil {
		return infrastructure.StorageFailure(err, "deleting %s record", s.name)
	}
	return nil
}

// badgerLogger adapts slog to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// NewContainer opens the database at dir and builds a storage container over
// it. The container's Close shuts the database down.
func NewContainer(dir string, logger *slog.Logger) (*storage.Container, error) {
	opts := badger.DefaultOptions(dir)
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, infrastructure.StorageFailure(err, "opening badger database at %s", dir)
	}

	return storage.NewContainer(
		NewStore(db, "user", func(u entity.User) uuid.UUID { return u.ID }),
		NewStore(db, "channel", func(c entity.Channel) uuid.UUID { return c.ID }),
		NewStore(db, "message", func(m entity.Message) uuid.UUID { return m.ID }),
		NewStore(db, "readstatus", func(s entity.ReadStatus) uuid.UUID { return s.ID }),
		NewStore(db, "userstatus", func(s entity.UserStatus) uuid.UUID { return s.ID }),
		NewStore(db, "binarycontent", func(b entity.BinaryContent) uuid.UUID { return b.ID }),
		db.Close,
	), nil
}
