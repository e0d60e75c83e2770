// Package channel manages public and private channels and the cascades
// hanging off them. Channel type is fixed at creation: public channels are
// editable, private channels are not, and deletion always takes the
// channel's messages (with their attachments) and read statuses with it.
package channel

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
)

var validate = validator.New()

type CreatePublicRequest struct {
	Name        string `validate:"required"`
	Description string
}

type CreatePrivateRequest struct {
	ParticipantIDs []uuid.UUID `validate:"required,min=1"`
}

type UpdateRequest struct {
	Name        *string
	Description *string
}

// Response is the projection returned for every channel read.
// ParticipantIDs is only populated for private channels; LastMessageAt is
// nil while the channel has no messages.
type Response struct {
	ID             uuid.UUID
	Type           entity.ChannelType
	Name           string
	Description    string
	ParticipantIDs []uuid.UUID
	LastMessageAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Service struct {
	channels     storage.ChannelRepository
	messages     storage.MessageRepository
	readStatuses storage.ReadStatusRepository
	contents     storage.BinaryContentRepository
	users        storage.UserRepository
	logger       *slog.Logger
}

func NewService(store *storage.Container, logger *slog.Logger) *Service {
	return &Service{
		channels:     store.Channels,
		messages:     store.Messages,
		readStatuses: store.ReadStatuses,
		contents:     store.Contents,
		users:        store.Users,
		logger:       logger,
	}
}

func (s *Service) CreatePublic(ctx context.Context, req CreatePublicRequest) (Response, error) {
	if err := validate.Struct(req); err != nil {
		return Response{}, infrastructure.InvalidOperation("invalid channel: %v", err)
	}
	saved, err := s.channels.Save(entity.NewPublicChannel(req.Name, req.Description))
	if err != nil {
		return Response{}, err
	}
	s.logger.InfoContext(ctx, "public channel created", "channel_id", saved.ID, "name", saved.Name)
	return s.toResponse(saved)
}

// CreatePrivate validates every participant id before anything is written:
// one unknown participant fails the whole creation with no channel and no
// read statuses left behind. On success one ReadStatus per participant is
// created with lastReadAt set to the creation time.
func (s *Service) CreatePrivate(ctx context.Context, req CreatePrivateRequest) (Response, error) {
	if err := validate.Struct(req); err != nil {
		return Response{}, infrastructure.InvalidOperation("invalid channel: %v", err)
	}
	for _, participantID := range req.ParticipantIDs {
		ok, err := s.users.ExistsByID(participantID)
		if err != nil {
			return Response{}, err
		}
		if !ok {
			return Response{}, infrastructure.NotFound("user not found: %s", participantID)
		}
	}

	saved, err := s.channels.Save(entity.NewPrivateChannel(req.ParticipantIDs))
	if err != nil {
		return Response{}, err
	}

	now := time.Now()
	for _, participantID := range req.ParticipantIDs {
		if _, err := s.readStatuses.Save(entity.NewReadStatus(participantID, saved.ID, now)); err != nil {
			return Response{}, err
		}
	}

	s.logger.InfoContext(ctx, "private channel created",
		"channel_id", saved.ID, "participants", len(req.ParticipantIDs))
	return s.toResponse(saved)
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (Response, error) {
	channel, err := s.channels.FindByID(id)
	if err != nil {
		return Response{}, err
	}
	return s.toResponse(channel)
}

// FindAllByUserID lists the channels visible to a user: every public
// channel, plus the private channels the user holds a read status for.
func (s *Service) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]Response, error) {
	channels, err := s.channels.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(channels))
	for _, ch := range channels {
		if ch.Type == entity.ChannelPrivate {
			member, err := s.readStatuses.ExistsByUserIDAndChannelID(userID, ch.ID)
			if err != nil {
				return nil, err
			}
			if !member {
				continue
			}
		}
		resp, err := s.toResponse(ch)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Update edits name and description. Private channels have neither, and the
// rejection here is the business rule, not a missing feature: it must be
// observable as an InvalidOperation error.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Response, error) {
	channel, err := s.channels.FindByID(id)
	if err != nil {
		return Response{}, err
	}
	if channel.Type == entity.ChannelPrivate {
		return Response{}, infrastructure.InvalidOperation("private channel cannot be updated: %s", id)
	}

	saved, err := s.channels.Save(channel.Update(req.Name, req.Description))
	if err != nil {
		return Response{}, err
	}
	return s.toResponse(saved)
}

// Delete cascades children before the parent: attachments of the channel's
// messages, the messages, the read statuses, then the channel itself. The
// steps are independent storage calls; a crash mid-way leaves a partially
// cascaded state.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	channel, err := s.channels.FindByID(id)
	if err != nil {
		return err
	}

	messages, err := s.messages.FindAllByChannelID(id)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		for _, attachmentID := range msg.AttachmentIDs {
			if err := s.contents.DeleteByID(attachmentID); err != nil {
				return err
			}
		}
	}
	if err := s.messages.DeleteAllByChannelID(id); err != nil {
		return err
	}
	if err := s.readStatuses.DeleteAllByChannelID(id); err != nil {
		return err
	}
	if err := s.channels.DeleteByID(id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "channel deleted",
		"channel_id", id, "type", channel.Type, "messages_removed", len(messages))
	return nil
}

func (s *Service) toResponse(ch entity.Channel) (Response, error) {
	messages, err := s.messages.FindAllByChannelID(ch.ID)
	if err != nil {
		return Response{}, err
	}
	var lastMessageAt *time.Time
	for _, m := range messages {
		if lastMessageAt == nil || m.CreatedAt.After(*lastMessageAt) {
			at := m.CreatedAt
			lastMessageAt = &at
		}
	}

	resp := Response{
		ID:            ch.ID,
		Type:          ch.Type,
		Name:          ch.Name,
		Description:   ch.Description,
		LastMessageAt: lastMessageAt,
		CreatedAt:     ch.CreatedAt,
		UpdatedAt:     ch.UpdatedAt,
	}
	if ch.Type == entity.ChannelPrivate {
		resp.ParticipantIDs = ch.Participants
	}
	return resp, nil
}
