package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReadStatus records when a user last read a channel. At most one exists per
// (user, channel) pair; for private channels it doubles as the membership
// record.
type ReadStatus struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ChannelID  uuid.UUID
	LastReadAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewReadStatus(userID, channelID uuid.UUID, lastReadAt time.Time) ReadStatus {
	ts := now()
	return ReadStatus{
		ID:         newID(),
		UserID:     userID,
		ChannelID:  channelID,
		LastReadAt: lastReadAt,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

func (r ReadStatus) UpdateLastReadAt(lastReadAt time.Time) ReadStatus {
	r.LastReadAt = lastReadAt
	r.UpdatedAt = now()
	return r
}
