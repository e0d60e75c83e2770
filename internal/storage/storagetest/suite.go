// Package storagetest holds the contract suite every storage strategy must
// pass. Each backend package runs the same suite against its own container,
// which is what keeps the three strategies interchangeable in practice and
// not just by interface.
package storagetest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
)

// Run exercises the full repository contract. open must return a fresh,
// empty container each time it is called.
func Run(t *testing.T, open func(t *testing.T) *storage.Container) {
	t.Run("user save and find roundtrip", func(t *testing.T) {
		c := open(t)
		u := entity.NewUser("leia", "leia@alderaan.gov", "secret", nil)

		saved, err := c.Users.Save(u)
		require.NoError(t, err)
		assert.Equal(t, u.ID, saved.ID)

		found, err := c.Users.FindByID(u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, found.Username)
		assert.Equal(t, u.Email, found.Email)
		assert.WithinDuration(t, u.CreatedAt, found.CreatedAt, time.Second)
	})

	t.Run("find missing id is not found", func(t *testing.T) {
		c := open(t)

		_, err := c.Users.FindByID(uuid.New())
		require.Error(t, err)
		assert.True(t, infrastructure.IsKind(err, infrastructure.KindNotFound))
	})

	t.Run("save replaces by id", func(t *testing.T) {
		c := open(t)
		u := entity.NewUser("leia", "leia@alderaan.gov", "secret", nil)
		_, err := c.Users.Save(u)
		require.NoError(t, err)

		email := "leia@rebellion.org"
		_, err = c.Users.Save(u.Update(nil, &email, nil, false, nil))
		require.NoError(t, err)

		found, err := c.Users.FindByID(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "leia@rebellion.org", found.Email)

		all, err := c.Users.FindAll()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("exists by id", func(t *testing.T) {
		c := open(t)
		u := entity.NewUser("leia", "leia@alderaan.gov", "secret", nil)
		_, err := c.Users.Save(u)
		require.NoError(t, err)

		ok, err := c.Users.ExistsByID(u.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Users.ExistsByID(uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		c := open(t)
		u := entity.NewUser("leia", "leia@alderaan.gov", "secret", nil)
		_, err := c.Users.Save(u)
		require.NoError(t, err)

		require.NoError(t, c.Users.DeleteByID(u.ID))
		require.NoError(t, c.Users.DeleteByID(u.ID), "second delete of the same id is a no-op")
		require.NoError(t, c.Users.DeleteByID(uuid.New()), "deleting an unknown id is a no-op")

		ok, err := c.Users.ExistsByID(u.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("find all on empty store", func(t *testing.T) {
		c := open(t)

		all, err := c.Messages.FindAll()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("user finders scan by field", func(t *testing.T) {
		c := open(t)
		u1 := entity.NewUser("leia", "leia@alderaan.gov", "secret", nil)
		u2 := entity.NewUser("luke", "luke@tatooine.net", "secret", nil)
		for _, u := range []entity.User{u1, u2} {
			_, err := c.Users.Save(u)
			require.NoError(t, err)
		}

		byName, err := c.Users.FindByUsername("luke")
		require.NoError(t, err)
		assert.Equal(t, u2.ID, byName.ID)

		byEmail, err := c.Users.FindByEmail("leia@alderaan.gov")
		require.NoError(t, err)
		assert.Equal(t, u1.ID, byEmail.ID)

		_, err = c.Users.FindByUsername("vader")
		assert.True(t, infrastructure.IsKind(err, infrastructure.KindNotFound))

		ok, err := c.Users.ExistsByUsername("leia")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Users.ExistsByEmail("nobody@nowhere.io")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("messages scoped to channel", func(t *testing.T) {
		c := open(t)
		chanA, chanB := uuid.New(), uuid.New()
		author := uuid.New()
		m1 := entity.NewMessage("one", chanA, author, nil)
		m2 := entity.NewMessage("two", chanA, author, nil)
		m3 := entity.NewMessage("three", chanB, author, nil)
		for _, m := range []entity.Message{m1, m2, m3} {
			_, err := c.Messages.Save(m)
			require.NoError(t, err)
		}

		inA, err := c.Messages.FindAllByChannelID(chanA)
		require.NoError(t, err)
		assert.Len(t, inA, 2)

		require.NoError(t, c.Messages.DeleteAllByChannelID(chanA))

		inA, err = c.Messages.FindAllByChannelID(chanA)
		require.NoError(t, err)
		assert.Empty(t, inA)

		inB, err := c.Messages.FindAllByChannelID(chanB)
		require.NoError(t, err)
		assert.Len(t, inB, 1, "other channels untouched")
	})

	t.Run("read status pair lookup", func(t *testing.T) {
		c := open(t)
		user, channel := uuid.New(), uuid.New()
		rs := entity.NewReadStatus(user, channel, time.Now())
		_, err := c.ReadStatuses.Save(rs)
		require.NoError(t, err)

		found, err := c.ReadStatuses.FindByUserIDAndChannelID(user, channel)
		require.NoError(t, err)
		assert.Equal(t, rs.ID, found.ID)

		ok, err := c.ReadStatuses.ExistsByUserIDAndChannelID(user, channel)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = c.ReadStatuses.FindByUserIDAndChannelID(user, uuid.New())
		assert.True(t, infrastructure.IsKind(err, infrastructure.KindNotFound))

		byUser, err := c.ReadStatuses.FindAllByUserID(user)
		require.NoError(t, err)
		assert.Len(t, byUser, 1)
	})

	t.Run("user status by user", func(t *testing.T) {
		c := open(t)
		user := uuid.New()
		st := entity.NewUserStatus(user, time.Now())
		_, err := c.UserStatuses.Save(st)
		require.NoError(t, err)

		found, err := c.UserStatuses.FindByUserID(user)
		require.NoError(t, err)
		assert.Equal(t, st.ID, found.ID)

		require.NoError(t, c.UserStatuses.DeleteByUserID(user))
		require.NoError(t, c.UserStatuses.DeleteByUserID(user), "no status row is a no-op")

		ok, err := c.UserStatuses.ExistsByUserID(user)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("binary content batch lookup", func(t *testing.T) {
		c := open(t)
		b1 := entity.NewBinaryContent("a.png", "image/png", []byte{0x89, 0x50})
		b2 := entity.NewBinaryContent("b.pdf", "application/pdf", []byte{0x25, 0x50})
		for _, b := range []entity.BinaryContent{b1, b2} {
			_, err := c.Contents.Save(b)
			require.NoError(t, err)
		}

		batch, err := c.Contents.FindAllByIDIn([]uuid.UUID{b1.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, batch, 1, "unresolvable ids are skipped")
		assert.Equal(t, b1.ID, batch[0].ID)
		assert.Equal(t, []byte{0x89, 0x50}, batch[0].Data)
	})

	t.Run("binary content preserves raw bytes", func(t *testing.T) {
		c := open(t)
		data := make([]byte, 256)
		for i := range data {
			data[i] = byte(i)
		}
		b := entity.NewBinaryContent("blob.bin", "application/octet-stream", data)
		_, err := c.Contents.Save(b)
		require.NoError(t, err)

		found, err := c.Contents.FindByID(b.ID)
		require.NoError(t, err)
		assert.Equal(t, data, found.Data)
		assert.Equal(t, "application/octet-stream", found.ContentType)
	})
}
