// Package userstatus manages the one-per-user activity record that online
// status is derived from. The one-to-one constraint is enforced here, not in
// storage.
package userstatus

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
	UserID       uuid.UUID
	LastActiveAt time.Time
}

type UpdateRequest struct {
	LastActiveAt time.Time
}

type Service struct {
	statuses storage.UserStatusRepository
	users    storage.UserRepository
	logger   *slog.Logger
}

func NewService(store *storage.Container, logger *slog.Logger) *Service {
	return &Service{statuses: store.UserStatuses, users: store.Users, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (entity.UserStatus, error) {
	ok, err := s.users.ExistsByID(req.UserID)
	if err != nil {
		return entity.UserStatus{}, err
	}
	if !ok {
		return entity.UserStatus{}, infrastructure.NotFound("user not found: %s", req.UserID)
	}

	ok, err = s.statuses.ExistsByUserID(req.UserID)
	if err != nil {
		return entity.UserStatus{}, err
	}
	if ok {
		return entity.UserStatus{}, infrastructure.AlreadyExists("user status already exists for user: %s", req.UserID)
	}

	return s.statuses.Save(entity.NewUserStatus(req.UserID, req.LastActiveAt))
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (entity.UserStatus, error) {
	return s.statuses.FindByID(id)
}

func (s *Service) FindByUserID(ctx context.Context, userID uuid.UUID) (entity.UserStatus, error) {
	return s.statuses.FindByUserID(userID)
}

func (s *Service) FindAll(ctx context.Context) ([]entity.UserStatus, error) {
	return s.statuses.FindAll()
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (entity.UserStatus, error) {
	status, err := s.statuses.FindByID(id)
	if err != nil {
		return entity.UserStatus{}, err
	}
	return s.statuses.Save(status.UpdateLastActiveAt(req.LastActiveAt))
}

// UpdateByUserID touches the user's activity record; this is what external
// callers invoke on every authenticated request to keep the user online.
func (s *Service) UpdateByUserID(ctx context.Context, userID uuid.UUID, req UpdateRequest) (entity.UserStatus, error) {
	status, err := s.statuses.FindByUserID(userID)
	if err != nil {
		return entity.UserStatus{}, err
	}
	return s.statuses.Save(status.UpdateLastActiveAt(req.LastActiveAt))
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.statuses.DeleteByID(id)
}
