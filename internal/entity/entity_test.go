package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u := NewUser("han", "han@falcon.io", "secret", nil)

	require.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "han", u.Username)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
	assert.Nil(t, u.ProfileID)
}

func TestUserUpdateReturnsNewSnapshot(t *testing.T) {
	u := NewUser("han", "han@falcon.io", "secret", nil)
	email := "solo@falcon.io"

	updated := u.Update(nil, &email, nil, false, nil)

	assert.Equal(t, "solo@falcon.io", updated.Email)
	assert.Equal(t, "han", updated.Username, "nil fields are kept")
	assert.Equal(t, "han@falcon.io", u.Email, "original snapshot untouched")
	assert.False(t, updated.UpdatedAt.Before(u.UpdatedAt))
	assert.Equal(t, u.ID, updated.ID)
}

func TestUserUpdateProfileReplacement(t *testing.T) {
	profileID := uuid.New()
	u := NewUser("han", "han@falcon.io", "secret", &profileID)

	kept := u.Update(nil, nil, nil, false, nil)
	require.NotNil(t, kept.ProfileID)
	assert.Equal(t, profileID, *kept.ProfileID)

	cleared := u.Update(nil, nil, nil, true, nil)
	assert.Nil(t, cleared.ProfileID)
}

func TestNewPrivateChannelCopiesParticipants(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	c := NewPrivateChannel(ids)

	ids[0] = uuid.New()
	assert.NotEqual(t, ids[0], c.Participants[0], "participant list is a copy")
	assert.Equal(t, ChannelPrivate, c.Type)
	assert.Empty(t, c.Name)
}

func TestChannelUpdate(t *testing.T) {
	c := NewPublicChannel("general", "all hands")
	name := "announcements"

	updated := c.Update(&name, nil)

	assert.Equal(t, "announcements", updated.Name)
	assert.Equal(t, "all hands", updated.Description)
	assert.Equal(t, "general", c.Name)
}

func TestMessageUpdateContent(t *testing.T) {
	m := NewMessage("hi", uuid.New(), uuid.New(), nil)

	updated := m.UpdateContent("hello")

	assert.Equal(t, "hello", updated.Content)
	assert.Equal(t, m.ChannelID, updated.ChannelID)
	assert.Equal(t, "hi", m.Content)
}

func TestUserStatusOnlineAt(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewUserStatus(uuid.New(), base)

	tests := []struct {
		name   string
		at     time.Time
		online bool
	}{
		{"immediately after activity", base, true},
		{"just under the window", base.Add(OnlineWindow - time.Second), true},
		{"exactly at the window boundary", base.Add(OnlineWindow), false},
		{"well past the window", base.Add(time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.online, s.OnlineAt(tt.at))
		})
	}
}

func TestUserStatusNoActivityIsOffline(t *testing.T) {
	s := UserStatus{ID: uuid.New(), UserID: uuid.New()}

	assert.False(t, s.OnlineAt(time.Now()))
	assert.False(t, s.Online())
}
