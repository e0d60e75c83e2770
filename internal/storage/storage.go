// Package storage defines the uniform persistence contract of the core and
// the per-entity repositories built on top of it.
//
// A Backend is the CRUD contract one storage strategy implements for one
// entity type. Three interchangeable strategies exist: volatile in-memory
// maps (memory), one serialized file per record (file), and an embedded
// Badger database (badgerstore). The choice is made once at startup from
// configuration; the repositories and everything above them never see which
// strategy is underneath.
//
// Entity-specific finders are a full scan plus a predicate, O(n) per call.
// None of the backends maintain a secondary index.
package storage

import (
	"github.com/google/uuid"

	"parley/internal/entity"
)

// Backend is the per-entity CRUD contract every storage strategy satisfies.
//
//   - Save is insert-or-replace by id and always succeeds on a healthy
//     backend; there is no optimistic-lock check.
//   - FindByID reports a missing record as a KindNotFound error.
//   - FindAll is a full scan in unspecified order.
//   - DeleteByID is idempotent; deleting a missing id is a no-op.
//
// Backends are not safe for concurrent writers. Single-writer use is the
// documented contract; I/O failures surface as KindStorageFailure and are
// fatal to the call.
type Backend[E any] interface {
	Save(e E) (E, error)
	FindByID(id uuid.UUID) (E, error)
	FindAll() ([]E, error)
	ExistsByID(id uuid.UUID) (bool, error)
	DeleteByID(id uuid.UUID) error
}

// filter runs a full scan and keeps the records matching pred.
func filter[E any](b Backend[E], pred func(E) bool) ([]E, error) {
	all, err := b.FindAll()
	if err != nil {
		return nil, err
	}
	matched := make([]E, 0, len(all))
	for _, e := range all {
		if pred(e) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// first runs a full scan and returns the first record matching pred, or the
// miss error when nothing matches.
func first[E any](b Backend[E], pred func(E) bool, miss func() error) (E, error) {
	var zero E
	all, err := b.FindAll()
	if err != nil {
		return zero, err
	}
	for _, e := range all {
		if pred(e) {
			return e, nil
		}
	}
	return zero, miss()
}

func exists[E any](b Backend[E], pred func(E) bool) (bool, error) {
	all, err := b.FindAll()
	if err != nil {
		return false, err
	}
	for _, e := range all {
		if pred(e) {
			return true, nil
		}
	}
	return false, nil
}

// Container owns one repository per entity type, all built over the same
// storage strategy. It is constructed once at startup and handed to the
// services; nothing in the core reaches for storage any other way.
type Container struct {
	Users        UserRepository
	Channels     ChannelRepository
	Messages     MessageRepository
	ReadStatuses ReadStatusRepository
	UserStatuses UserStatusRepository
	Contents     BinaryContentRepository

	closer func() error
}

// NewContainer assembles a Container from one backend per entity type.
// closer may be nil; when set it is invoked by Close (the Badger strategy
// uses it to close the shared database).
func NewContainer(
	users Backend[entity.User],
	channels Backend[entity.Channel],
	messages Backend[entity.Message],
	readStatuses Backend[entity.ReadStatus],
	userStatuses Backend[entity.UserStatus],
	contents Backend[entity.BinaryContent],
	closer func() error,
) *Container {
	return &Container{
		Users:        UserRepository{backend: users},
		Channels:     ChannelRepository{backend: channels},
		Messages:     MessageRepository{backend: messages},
		ReadStatuses: ReadStatusRepository{backend: readStatuses},
		UserStatuses: UserStatusRepository{backend: userStatuses},
		Contents:     BinaryContentRepository{backend: contents},
		closer:       closer,
	}
}

func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
