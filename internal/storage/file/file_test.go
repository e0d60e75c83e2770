package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/entity"
	"parley/internal/storage"
	"parley/internal/storage/file"
	"parley/internal/storage/storagetest"
)

func TestContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) *storage.Container {
		return file.NewContainer(t.TempDir())
	})
}

func TestRecordsSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	c := file.NewContainer(dir)
	u := entity.NewUser("chewie", "chewie@kashyyyk.net", "rrraaargh", nil)
	_, err := c.Users.Save(u)
	require.NoError(t, err)

	// A new container over the same directory stands in for a process
	// restart.
	reopened := file.NewContainer(dir)
	found, err := reopened.Users.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "chewie", found.Username)
	assert.Equal(t, u.CreatedAt.Unix(), found.CreatedAt.Unix())
}

func TestOneFilePerRecordLayout(t *testing.T) {
	dir := t.TempDir()

	c := file.NewContainer(dir)
	u := entity.NewUser("chewie", "chewie@kashyyyk.net", "rrraaargh", nil)
	_, err := c.Users.Save(u)
	require.NoError(t, err)

	path := filepath.Join(dir, "user", u.ID.String()+".gob")
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "record stored as <entity>/<id>.gob")
}

func TestEntityDirectoryCreatedLazily(t *testing.T) {
	dir := t.TempDir()
	c := file.NewContainer(dir)

	// No write yet: the entity directory must not exist, and scans must
	// treat that as an empty store rather than an error.
	_, err := os.Stat(filepath.Join(dir, "channel"))
	assert.True(t, os.IsNotExist(err))

	all, err := c.Channels.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = c.Channels.Save(entity.NewPublicChannel("general", ""))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "channel"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestForeignFilesIgnoredOnScan(t *testing.T) {
	dir := t.TempDir()
	c := file.NewContainer(dir)
	_, err := c.Users.Save(entity.NewUser("chewie", "chewie@kashyyyk.net", "rrraaargh", nil))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user", "README.txt"), []byte("not a record"), 0o644))

	all, err := c.Users.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
