package badgerstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/entity"
	"parley/internal/storage"
	"parley/internal/storage/badgerstore"
	"parley/internal/storage/storagetest"
)

func TestContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) *storage.Container {
		c, err := badgerstore.NewContainer(t.TempDir(), nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		return c
	})
}

func TestRecordsSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	c, err := badgerstore.NewContainer(dir, nil)
	require.NoError(t, err)
	u := entity.NewUser("lando", "lando@bespin.gov", "sabacc", nil)
	_, err = c.Users.Save(u)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	reopened, err := badgerstore.NewContainer(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.Users.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "lando", found.Username)
}
