package entity

import (
	"time"

	"github.com/google/uuid"
)

// BinaryContent is an immutable blob owned by exactly one user (profile
// image) or one message (attachment). It is only ever deleted through a
// cascade from its owner, so it carries no UpdatedAt.
type BinaryContent struct {
	ID          uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
	CreatedAt   time.Time
}

func NewBinaryContent(fileName, contentType string, data []byte) BinaryContent {
	return BinaryContent{
		ID:          newID(),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
		CreatedAt:   now(),
	}
}
