package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/infrastructure"
	"parley/internal/content"
	"parley/internal/entity"
	"parley/internal/storage"
	"parley/internal/storage/memory"
)

const testPassword = "c0rrect-horse-battery!"

func newTestService(t *testing.T) (*Service, *storage.Container) {
	t.Helper()
	store := memory.NewContainer()
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func TestCreateAndFind(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Username: "alice",
		Email:    "alice@parley.dev",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.Online, "a fresh user is online at creation time")

	found, err := svc.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, "alice@parley.dev", found.Email)
	assert.True(t, found.Online)
}

func TestCreateWritesInitialStatus(t *testing.T) {
	svc, store := newTestService(t)

	created, err := svc.Create(context.Background(), CreateRequest{
		Username: "alice", Email: "alice@parley.dev", Password: testPassword,
	})
	require.NoError(t, err)

	status, err := store.UserStatuses.FindByUserID(created.ID)
	require.NoError(t, err)
	assert.False(t, status.LastActiveAt.IsZero())
}

func TestCreateWithProfileStoresBlobFirst(t *testing.T) {
	svc, store := newTestService(t)

	created, err := svc.Create(context.Background(), CreateRequest{
		Username: "alice",
		Email:    "alice@parley.dev",
		Password: testPassword,
		Profile: &content.CreateRequest{
			FileName:    "alice.png",
			ContentType: "image/png",
			Data:        []byte{1, 2, 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created.ProfileID)

	blob, err := store.Contents.FindByID(*created.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "alice.png", blob.FileName)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Username: "alice", Email: "alice@parley.dev", Password: testPassword})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Username: "alice", Email: "other@parley.dev", Password: testPassword})
	require.Error(t, err)
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindAlreadyExists))

	all, err := store.Users.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 1, "no partial record persisted")
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Username: "alice", Email: "alice@parley.dev", Password: testPassword})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Username: "bob", Email: "alice@parley.dev", Password: testPassword})
	require.Error(t, err)
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindAlreadyExists))

	statuses, err := store.UserStatuses.FindAll()
	require.NoError(t, err)
	assert.Len(t, statuses, 1, "no stray status record for the rejected user")
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Username: "alice", Email: "not-an-email", Password: testPassword})
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindInvalidOperation))

	_, err = svc.Create(ctx, CreateRequest{Username: "alice", Email: "alice@parley.dev", Password: "aaa"})
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindInvalidOperation), "weak password rejected")
}

func TestFindMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Find(context.Background(), uuid.New())
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindNotFound))
}

func TestUpdateReplacesProfile(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Username: "alice", Email: "alice@parley.dev", Password: testPassword,
		Profile: &content.CreateRequest{FileName: "old.png", ContentType: "image/png", Data: []byte{1}},
	})
	require.NoError(t, err)
	oldProfileID := *created.ProfileID

	updated, err := svc.Update(ctx, created.ID, UpdateRequest{
		Profile: &content.CreateRequest{FileName: "new.png", ContentType: "image/png", Data: []byte{2}},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ProfileID)
	assert.NotEqual(t, oldProfileID, *updated.ProfileID)

	ok, err := store.Contents.ExistsByID(oldProfileID)
	require.NoError(t, err)
	assert.False(t, ok, "replaced blob deleted")
}

func TestUpdateConflictingUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Username: "alice", Email: "alice@parley.dev", Password: testPassword})
	require.NoError(t, err)
	bob, err := svc.Create(ctx, CreateRequest{Username: "bob", Email: "bob@parley.dev", Password: testPassword})
	require.NoError(t, err)

	name := "alice"
	_, err = svc.Update(ctx, bob.ID, UpdateRequest{Username: &name})
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindAlreadyExists))
}

func TestDeleteCascadesStatusAndProfileOnly(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Username: "alice", Email: "alice@parley.dev", Password: testPassword,
		Profile: &content.CreateRequest{FileName: "alice.png", ContentType: "image/png", Data: []byte{1}},
	})
	require.NoError(t, err)

	// A message authored by the user, stored directly: user deletion must
	// not touch it.
	ch := entity.NewPublicChannel("general", "")
	_, err = store.Channels.Save(ch)
	require.NoError(t, err)
	msg := entity.NewMessage("hello", ch.ID, created.ID, nil)
	_, err = store.Messages.Save(msg)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	ok, err := store.UserStatuses.ExistsByUserID(created.ID)
	require.NoError(t, err)
	assert.False(t, ok, "user status removed")

	ok, err = store.Contents.ExistsByID(*created.ProfileID)
	require.NoError(t, err)
	assert.False(t, ok, "profile blob removed")

	remaining, err := store.Messages.FindByID(msg.ID)
	require.NoError(t, err, "authored message survives with a dangling author id")
	assert.Equal(t, created.ID, remaining.AuthorID)
}

func TestDeleteMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, infrastructure.IsKind(err, infrastructure.KindNotFound))
}
