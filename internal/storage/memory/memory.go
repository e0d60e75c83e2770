// Package memory implements the storage contract with plain in-memory maps.
//
// Records live only as long as the process; nothing survives a restart.
// The maps are deliberately unsynchronized: the core's documented contract
// is single-writer, and adding a mutex here would suggest a guarantee the
// file strategy cannot match anyway.
package memory

import (
	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
)

// Store is the map-backed Backend for one entity type.
type Store[E any] struct {
	name    string
	records map[uuid.UUID]E
	idOf    func(E) uuid.UUID
}

func NewStore[E any](name string, idOf func(E) uuid.UUID) *Store[E] {
	return &Store[E]{
		name:    name,
		records: make(map[uuid.UUID]E),
		idOf:    idOf,
	}
}

func (s *Store[E]) Save(e E) (E, error) {
	s.records[s.idOf(e)] = e
	return e, nil
}

func (s *Store[E]) FindByID(id uuid.UUID) (E, error) {
	e, ok := s.records[id]
	if !ok {
		var zero E
		return zero, infrastructure.NotFound("%s not found: %s", s.name, id)
	}
	return e, nil
}

func (s *Store[E]) FindAll() ([]E, error) {
	all := make([]E, 0, len(s.records))
	for _, e := range s.records {
		all = append(all, e)
	}
	return all, nil
}

func (s *Store[E]) ExistsByID(id uuid.UUID) (bool, error) {
	_, ok := s.records[id]
	return ok, nil
}

func (s *Store[E]) DeleteByID(id uuid.UUID) error {
	delete(s.records, id)
	return nil
}

// NewContainer builds a fresh, empty storage container. Tests lean on this
// to get an isolated storage context per test.
func NewContainer() *storage.Container {
	return storage.NewContainer(
		NewStore("user", func(u entity.User) uuid.UUID { return u.ID }),
		NewStore("channel", func(c entity.Channel) uuid.UUID { return c.ID }),
		NewStore("message", func(m entity.Message) uuid.UUID { return m.ID }),
		NewStore("read status", func(s entity.ReadStatus) uuid.UUID { return s.ID }),
		NewStore("user status", func(s entity.UserStatus) uuid.UUID { return s.ID }),
		NewStore("binary content", func(b entity.BinaryContent) uuid.UUID { return b.ID }),
		nil,
	)
}
