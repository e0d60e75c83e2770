// Package readstatus manages per-(user, channel) read markers. At most one
// exists per pair; a duplicate is a conflict, a dangling user or channel
// reference is rejected up front.
package readstatus

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
)

type CreateRequest struct {
	UserID     uuid.UUID
	ChannelID  uuid.UUID
	LastReadAt time.Time
}

type UpdateRequest struct {
	LastReadAt time.Time
}

type Service struct {
	readStatuses storage.ReadStatusRepository
	users        storage.UserRepository
	channels     storage.ChannelRepository
	logger       *slog.Logger
}

func NewService(store *storage.Container, logger *slog.Logger) *Service {
	return &Service{
		readStatuses: store.ReadStatuses,
		users:        store.Users,
		channels:     store.Channels,
		logger:       logger,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (entity.ReadStatus, error) {
	ok, err := s.users.ExistsByID(req.UserID)
	if err != nil {
		return entity.ReadStatus{}, err
	}
	if !ok {
		return entity.ReadStatus{}, infrastructure.NotFound("user not found: %s", req.UserID)
	}

	ok, err = s.channels.ExistsByID(req.ChannelID)
	if err != nil {
		return entity.ReadStatus{}, err
	}
	if !ok {
		return entity.ReadStatus{}, infrastructure.NotFound("channel not found: %s", req.ChannelID)
	}

	ok, err = s.readStatuses.ExistsByUserIDAndChannelID(req.UserID, req.ChannelID)
	if err != nil {
		return entity.ReadStatus{}, err
	}
	if ok {
		return entity.ReadStatus{}, infrastructure.AlreadyExists(
			"read status already exists: user %s channel %s", req.UserID, req.ChannelID)
	}

	return s.readStatuses.Save(entity.NewReadStatus(req.UserID, req.ChannelID, req.LastReadAt))
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (entity.ReadStatus, error) {
	return s.readStatuses.FindByID(id)
}

func (s *Service) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]entity.ReadStatus, error) {
	return s.readStatuses.FindAllByUserID(userID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (entity.ReadStatus, error) {
	status, err := s.readStatuses.FindByID(id)
	if err != nil {
		return entity.ReadStatus{}, err
	}
	return s.readStatuses.Save(status.UpdateLastReadAt(req.LastReadAt))
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.readStatuses.DeleteByID(id)
}
