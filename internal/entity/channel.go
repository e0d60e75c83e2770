package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChannelType is fixed at construction and never transitions. Whether a
// channel accepts updates is a property of this initial choice.
type ChannelType string

const (
	ChannelPublic  ChannelType = "PUBLIC"
	ChannelPrivate ChannelType = "PRIVATE"
)

// Channel is a conversation room. Public channels carry a mutable name and
// description; private channels carry an immutable participant list and no
// name or description.
type Channel struct {
	ID           uuid.UUID
	Type         ChannelType
	Name         string
	Description  string
	Participants []uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewPublicChannel(name, description string) Channel {
	ts := now()
	return Channel{
		ID:          newID(),
		Type:        ChannelPublic,
		Name:        name,
		Description: description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func NewPrivateChannel(participants []uuid.UUID) Channel {
	ts := now()
	return Channel{
		ID:           newID(),
		Type:         ChannelPrivate,
		Participants: append([]uuid.UUID(nil), participants...),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

// Update returns a copy with the non-nil fields replaced and UpdatedAt
// advanced. The service layer rejects updates on private channels before
// this is ever reached.
func (c Channel) Update(name, description *string) Channel {
	if name != nil {
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	c.UpdatedAt = now()
	return c
}
