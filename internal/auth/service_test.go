package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
	"parley/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *storage.Container) {
	t.Helper()
	store := memory.NewContainer()
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func seedUser(t *testing.T, store *storage.Container, lastActiveAt time.Time) entity.User {
	t.Helper()
	u, err := store.Users.Save(entity.NewUser("alice", "alice@parley.dev", "s3cret-passphrase", nil))
	require.NoError(t, err)
	if !lastActiveAt.IsZero() {
		_, err = store.UserStatuses.Save(entity.NewUserStatus(u.ID, lastActiveAt))
		require.NoError(t, err)
	}
	return u
}

func TestLogin(t *testing.T) {
	svc, store := newTestService(t)
	alice := seedUser(t, store, time.Now())

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "alice", Password: "s3cret-passphrase",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.ID)
	assert.True(t, resp.Online)
}

func TestLoginStaleActivity(t *testing.T) {
	svc, store := newTestService(t)
	seedUser(t, store, time.Now().Add(-2*entity.OnlineWindow))

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "alice", Password: "s3cret-passphrase",
	})
	require.NoError(t, err)
	assert.False(t, resp.Online)
}

func TestLoginNoStatusRecord(t *testing.T) {
	svc, store := newTestService(t)
	seedUser(t, store, time.Time{})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "alice", Password: "s3cret-passphrase",
	})
	require.NoError(t, err)
	assert.False(t, resp.Online, "no activity record means offline")
}

// A failed login must not reveal whether the username or the password was
// wrong: both paths return the same kind and the same message.
func TestLoginFailureIsUniform(t *testing.T) {
	svc, store := newTestService(t)
	seedUser(t, store, time.Now())
	ctx := context.Background()

	_, badPassword := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, badPassword)
	assert.True(t, infrastructure.IsKind(badPassword, infrastructure.KindInvalidOperation))

	_, badUsername := svc.Login(ctx, LoginRequest{Username: "mallory", Password: "s3cret-passphrase"})
	require.Error(t, badUsername)
	assert.True(t, infrastructure.IsKind(badUsername, infrastructure.KindInvalidOperation))

	assert.Equal(t, badPassword.Error(), badUsername.Error())
	assert.NotContains(t, badUsername.Error(), "mallory")
}
