package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message belongs to a channel and an author by id only; neither reference
// is resolved or guarded here. AttachmentIDs point at BinaryContent records
// owned by the message.
type Message struct {
	ID            uuid.UUID
	Content       string
	ChannelID     uuid.UUID
	AuthorID      uuid.UUID
	AttachmentIDs []uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewMessage(content string, channelID, authorID uuid.UUID, attachmentIDs []uuid.UUID) Message {
	ts := now()
	return Message{
		ID:            newID(),
		Content:       content,
		ChannelID:     channelID,
		AuthorID:      authorID,
		AttachmentIDs: append([]uuid.UUID(nil), attachmentIDs...),
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

// UpdateContent returns a copy with new content and UpdatedAt advanced.
// ChannelID and AuthorID are immutable.
func (m Message) UpdateContent(content string) Message {
	m.Content = content
	m.UpdatedAt = now()
	return m
}
