package storage

import (
	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/entity"
)

// UserRepository adds the user-specific finders to the uniform contract.
type UserRepository struct {
	backend Backend[entity.User]
}

func (r UserRepository) Save(u entity.User) (entity.User, error) { return r.backend.Save(u) }

func (r UserRepository) FindByID(id uuid.UUID) (entity.User, error) { return r.backend.FindByID(id) }

func (r UserRepository) FindAll() ([]entity.User, error) { return r.backend.FindAll() }

func (r UserRepository) ExistsByID(id uuid.UUID) (bool, error) { return r.backend.ExistsByID(id) }

func (r UserRepository) DeleteByID(id uuid.UUID) error { return r.backend.DeleteByID(id) }

func (r UserRepository) FindByUsername(username string) (entity.User, error) {
	return first(r.backend,
		func(u entity.User) bool { return u.Username == username },
		func() error { return infrastructure.NotFound("user not found: username %s", username) })
}

func (r UserRepository) FindByEmail(email string) (entity.User, error) {
	return first(r.backend,
		func(u entity.User) bool { return u.Email == email },
		func() error { return infrastructure.NotFound("user not found: email %s", email) })
}

func (r UserRepository) ExistsByUsername(username string) (bool, error) {
	return exists(r.backend, func(u entity.User) bool { return u.Username == username })
}

func (r UserRepository) ExistsByEmail(email string) (bool, error) {
	return exists(r.backend, func(u entity.User) bool { return u.Email == email })
}

// ChannelRepository carries no extra finders; channels are only reached by
// id or by the full scan the service layer filters itself.
type ChannelRepository struct {
	backend Backend[entity.Channel]
}

func (r ChannelRepository) Save(c entity.Channel) (entity.Channel, error) { return r.backend.Save(c) }

func (r ChannelRepository) FindByID(id uuid.UUID) (entity.Channel, error) {
	return r.backend.FindByID(id)
}

func (r ChannelRepository) FindAll() ([]entity.Channel, error) { return r.backend.FindAll() }

func (r ChannelRepository) ExistsByID(id uuid.UUID) (bool, error) { return r.backend.ExistsByID(id) }

func (r ChannelRepository) DeleteByID(id uuid.UUID) error { return r.backend.DeleteByID(id) }

type MessageRepository struct {
	backend Backend[entity.Message]
}

func (r MessageRepository) Save(m entity.Message) (entity.Message, error) { return r.backend.Save(m) }

func (r MessageRepository) FindByID(id uuid.UUID) (entity.Message, error) {
	return r.backend.FindByID(id)
}

func (r MessageRepository) FindAll() ([]entity.Message, error) { return r.backend.FindAll() }

func (r MessageRepository) ExistsByID(id uuid.UUID) (bool, error) { return r.backend.ExistsByID(id) }

func (r MessageRepository) DeleteByID(id uuid.UUID) error { return r.backend.DeleteByID(id) }

func (r MessageRepository) FindAllByChannelID(channelID uuid.UUID) ([]entity.Message, error) {
	return filter(r.backend, func(m entity.Message) bool { return m.ChannelID == channelID })
}

// DeleteAllByChannelID removes every message in the channel, one delete per
// record. There is no transaction around the sequence.
func (r MessageRepository) DeleteAllByChannelID(channelID uuid.UUID) error {
	messages, err := r.FindAllByChannelID(channelID)
	if err != nil {
		return err
	}
	for _, m := range messages {
		if err := r.backend.DeleteByID(m.ID); err != nil {
			return err
		}
	}
	return nil
}

type ReadStatusRepository struct {
	backend Backend[entity.ReadStatus]
}

func (r ReadStatusRepository) Save(s entity.ReadStatus) (entity.ReadStatus, error) {
	return r.backend.Save(s)
}

func (r ReadStatusRepository) FindByID(id uuid.UUID) (entity.ReadStatus, error) {
	return r.backend.FindByID(id)
}

func (r ReadStatusRepository) FindAll() ([]entity.ReadStatus, error) { return r.backend.FindAll() }

func (r ReadStatusRepository) ExistsByID(id uuid.UUID) (bool, error) {
	return r.backend.ExistsByID(id)
}

func (r ReadStatusRepository) DeleteByID(id uuid.UUID) error { return r.backend.DeleteByID(id) }

func (r ReadStatusRepository) FindAllByUserID(userID uuid.UUID) ([]entity.ReadStatus, error) {
	return filter(r.backend, func(s entity.ReadStatus) bool { return s.UserID == userID })
}

func (r ReadStatusRepository) FindAllByChannelID(channelID uuid.UUID) ([]entity.ReadStatus, error) {
	return filter(r.backend, func(s entity.ReadStatus) bool { return s.ChannelID == channelID })
}

func (r ReadStatusRepository) FindByUserIDAndChannelID(userID, channelID uuid.UUID) (entity.ReadStatus, error) {
	return first(r.backend,
		func(s entity.ReadStatus) bool { return s.UserID == userID && s.ChannelID == channelID },
		func() error {
			return infrastructure.NotFound("read status not found: user %s channel %s", userID, channelID)
		})
}

func (r ReadStatusRepository) ExistsByUserIDAndChannelID(userID, channelID uuid.UUID) (bool, error) {
	return exists(r.backend, func(s entity.ReadStatus) bool {
		return s.UserID == userID && s.ChannelID == channelID
	})
}

func (r ReadStatusRepository) DeleteAllByChannelID(channelID uuid.UUID) error {
	statuses, err := r.FindAllByChannelID(channelID)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		if err := r.backend.DeleteByID(s.ID); err != nil {
			return err
		}
	}
	return nil
}

type UserStatusRepository struct {
	backend Backend[entity.UserStatus]
}

func (r UserStatusRepository) Save(s entity.UserStatus) (entity.UserStatus, error) {
	return r.backend.Save(s)
}

func (r UserStatusRepository) FindByID(id uuid.UUID) (entity.UserStatus, error) {
	return r.backend.FindByID(id)
}

func (r UserStatusRepository) FindAll() ([]entity.UserStatus, error) { return r.backend.FindAll() }

func (r UserStatusRepository) ExistsByID(id uuid.UUID) (bool, error) {
	return r.backend.ExistsByID(id)
}

func (r UserStatusRepository) DeleteByID(id uuid.UUID) error { return r.backend.DeleteByID(id) }

func (r UserStatusRepository) FindByUserID(userID uuid.UUID) (entity.UserStatus, error) {
	return first(r.backend,
		func(s entity.UserStatus) bool { return s.UserID == userID },
		func() error { return infrastructure.NotFound("user status not found: user %s", userID) })
}

func (r UserStatusRepository) ExistsByUserID(userID uuid.UUID) (bool, error) {
	return exists(r.backend, func(s entity.UserStatus) bool { return s.UserID == userID })
}

// DeleteByUserID is a no-op when the user has no status row, mirroring
// DeleteByID semantics.
func (r UserStatusRepository) DeleteByUserID(userID uuid.UUID) error {
	status, err := r.FindByUserID(userID)
	if err != nil {
		if infrastructure.IsKind(err, infrastructure.KindNotFound) {
			return nil
		}
		return err
	}
	return r.backend.DeleteByID(status.ID)
}

type BinaryContentRepository struct {
	backend Backend[entity.BinaryContent]
}

func (r BinaryContentRepository) Save(b entity.BinaryContent) (entity.BinaryContent, error) {
	return r.backend.Save(b)
}

func (r BinaryContentRepository) FindByID(id uuid.UUID) (entity.BinaryContent, error) {
	return r.backend.FindByID(id)
}

func (r BinaryContentRepository) FindAll() ([]entity.BinaryContent, error) {
	return r.backend.FindAll()
}

func (r BinaryContentRepository) ExistsByID(id uuid.UUID) (bool, error) {
	return r.backend.ExistsByID(id)
}

func (r BinaryContentRepository) DeleteByID(id uuid.UUID) error { return r.backend.DeleteByID(id) }

// FindAllByIDIn resolves a batch of attachment ids. Ids that no longer
// resolve are skipped rather than failing the batch.
func (r BinaryContentRepository) FindAllByIDIn(ids []uuid.UUID) ([]entity.BinaryContent, error) {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return filter(r.backend, func(b entity.BinaryContent) bool {
		_, ok := wanted[b.ID]
		return ok
	})
}
