// Package message manages channel messages and their attachment blobs.
package message

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/content"
	"parley/internal/entity"
	"parley/internal/storage"
)

var validate = validator.New()

type CreateRequest struct {
	Content     string    `validate:"required"`
	ChannelID   uuid.UUID `validate:"required"`
	AuthorID    uuid.UUID `validate:"required"`
	Attachments []content.CreateRequest
}

type UpdateRequest struct {
	Content string `validate:"required"`
}

type Response struct {
	ID            uuid.UUID
	Content       string
	ChannelID     uuid.UUID
	AuthorID      uuid.UUID
	AttachmentIDs []uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Service struct {
	messages storage.MessageRepository
	contents storage.BinaryContentRepository
	channels storage.ChannelRepository
	users    storage.UserRepository
	logger   *slog.Logger
}

func NewService(store *storage.Container, logger *slog.Logger) *Service {
	return &Service{
		messages: store.Messages,
		contents: store.Contents,
		channels: store.Channels,
		users:    store.Users,
		logger:   logger,
	}
}

// Create validates both foreign references before touching storage, then
// saves the attachment blobs and finally the message recording their ids.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Response, error) {
	if err := validate.Struct(req); err != nil {
		return Response{}, infrastructure.InvalidOperation("invalid message: %v", err)
	}

	ok, err := s.channels.ExistsByID(req.ChannelID)
	if err != nil {
		return Response{}, err
	}
	if !ok {
		return Response{}, infrastructure.NotFound("channel not found: %s", req.ChannelID)
	}

	ok, err = s.users.ExistsByID(req.AuthorID)
	if err != nil {
		return Response{}, err
	}
	if !ok {
		return Response{}, infrastructure.NotFound("user not found: %s", req.AuthorID)
	}

	attachmentIDs := make([]uuid.UUID, 0, len(req.Attachments))
	for _, attachment := range req.Attachments {
		blob, err := s.contents.Save(entity.NewBinaryContent(
			attachment.FileName, attachment.ContentType, attachment.Data))
		if err != nil {
			return Response{}, err
		}
		attachmentIDs = append(attachmentIDs, blob.ID)
	}

	saved, err := s.messages.Save(entity.NewMessage(req.Content, req.ChannelID, req.AuthorID, attachmentIDs))
	if err != nil {
		return Response{}, err
	}

	s.logger.InfoContext(ctx, "message created",
		"message_id", saved.ID, "channel_id", saved.ChannelID, "attachments", len(attachmentIDs))
	return toResponse(saved), nil
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (Response, error) {
	msg, err := s.messages.FindByID(id)
	if err != nil {
		return Response{}, err
	}
	return toResponse(msg), nil
}

func (s *Service) FindAllByChannelID(ctx context.Context, channelID uuid.UUID) ([]Response, error) {
	messages, err := s.messages.FindAllByChannelID(channelID)
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, toResponse(m))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Response, error) {
	if err := validate.Struct(req); err != nil {
		return Response{}, infrastructure.InvalidOperation("invalid message update: %v", err)
	}
	msg, err := s.messages.FindByID(id)
	if err != nil {
		return Response{}, err
	}
	saved, err := s.messages.Save(msg.UpdateContent(req.Content))
	if err != nil {
		return Response{}, err
	}
	return toResponse(saved), nil
}

// Delete removes the message's attachment blobs first, then the message.
// The sequence is not transactional; a crash in between leaves the message
// with dangling attachment ids.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	msg, err := s.messages.FindByID(id)
	if err != nil {
		return err
	}
	for _, attachmentID := range msg.AttachmentIDs {
		if err := s.contents.DeleteByID(attachmentID); err != nil {
			return err
		}
	}
	if err := s.messages.DeleteByID(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "message deleted", "message_id", id)
	return nil
}

func toResponse(m entity.Message) Response {
	return Response{
		ID:            m.ID,
		Content:       m.Content,
		ChannelID:     m.ChannelID,
		AuthorID:      m.AuthorID,
		AttachmentIDs: m.AttachmentIDs,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
