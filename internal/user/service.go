// Package user manages accounts, their profile blobs and their activity
// records. Username and email are unique across the platform; the checks
// run before anything is written so a conflict never leaves a partial
// record behind.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	passwordvalidator "github.com/wagslane/go-password-validator"

	"parley/infrastructure"
	"parley/internal/content"
	"parley/internal/entity"
	"parley/internal/storage"
)

// minPasswordEntropy is the bar a new password must clear, in bits.
const minPasswordEntropy = 50

var validate = validator.New()

type CreateRequest struct {
	Username string `validate:"required,min=3,max=60"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	// Profile optionally attaches a profile image stored before the user
	// record that references it.
	Profile *content.CreateRequest
}

type UpdateRequest struct {
	Username *string `validate:"omitempty,min=3,max=60"`
	Email    *string `validate:"omitempty,email"`
	Password *string
	// Profile, when set, replaces the current profile image; the old blob
	// is deleted.
	Profile *content.CreateRequest
}

// Response is the projection returned for every user read. Online is derived
// from the user's activity record at response time and never stored.
type Response struct {
	ID        uuid.UUID
	Username  string
	Email     string
	ProfileID *uuid.UUID
	Online    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewResponse projects a user snapshot with the given derived online flag.
func NewResponse(u entity.User, online bool) Response {
	return Response{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		ProfileID: u.ProfileID,
		Online:    online,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type Service struct {
	users    storage.UserRepository
	statuses storage.UserStatusRepository
	contents storage.BinaryContentRepository
	logger   *slog.Logger
}

func NewService(store *storage.Container, logger *slog.Logger) *Service {
	return &Service{
		users:    store.Users,
		statuses: store.UserStatuses,
		contents: store.Contents,
		logger:   logger,
	}
}

// Create stores, in order: the optional profile blob, the user referencing
// it, and an initial activity record that marks the user online as of now.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Response, error) {
	if err := validate.Struct(req); err != nil {
		return Response{}, infrastructure.InvalidOperation("invalid user: %v", err)
	}
	if err := passwordvalidator.Validate(req.Password, minPasswordEntropy); err != nil {
		return Response{}, infrastructure.InvalidOperation("weak password: %v", err)
	}

	taken, err := s.users.ExistsByUsername(req.Username)
	if err != nil {
		return Response{}, err
	}
	if taken {
		return Response{}, infrastructure.AlreadyExists("username already exists: %s", req.Username)
	}

	taken, err = s.users.ExistsByEmail(req.Email)
	if err != nil {
		return Response{}, err
	}
	if taken {
		return Response{}, infrastructure.AlreadyExists("email already exists: %s", req.Email)
	}

	var profileID *uuid.UUID
	if req.Profile != nil {
		blob, err := s.contents.Save(entity.NewBinaryContent(
			req.Profile.FileName, req.Profile.ContentType, req.Profile.Data))
		if err != nil {
			return Response{}, err
		}
		profileID = &blob.ID
	}

	saved, err := s.users.Save(entity.NewUser(req.Username, req.Email, req.Password, profileID))
	if err != nil {
		return Response{}, err
	}

	status, err := s.statuses.Save(entity.NewUserStatus(saved.ID, time.Now()))
	if err != nil {
		return Response{}, err
	}

	s.logger.InfoContext(ctx, "user created", "user_id", saved.ID, "username", saved.Username)
	return NewResponse(saved, status.Online()), nil
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (Response, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return Response{}, err
	}
	return NewResponse(u, s.online(u.ID)), nil
}

func (s *Service) FindAll(ctx context.Context) ([]Response, error) {
	users, err := s.users.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, NewResponse(u, s.online(u.ID)))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Response, error) {
	if err := validate.Struct(req); err != nil {
		return Response{}, infrastructure.InvalidOperation("invalid user update: %v", err)
	}

	u, err := s.users.FindByID(id)
	if err != nil {
		return Response{}, err
	}

	if req.Username != nil && *req.Username != u.Username {
		taken, err := s.users.ExistsByUsername(*req.Username)
		if err != nil {
			return Response{}, err
		}
		if taken {
			return Response{}, infrastructure.AlreadyExists("username already exists: %s", *req.Username)
		}
	}
	if req.Email != nil && *req.Email != u.Email {
		taken, err := s.users.ExistsByEmail(*req.Email)
		if err != nil {
			return Response{}, err
		}
		if taken {
			return Response{}, infrastructure.AlreadyExists("email already exists: %s", *req.Email)
		}
	}
	if req.Password != nil {
		if err := passwordvalidator.Validate(*req.Password, minPasswordEntropy); err != nil {
			return Response{}, infrastructure.InvalidOperation("weak password: %v", err)
		}
	}

	replaceProfile := false
	var profileID *uuid.UUID
	if req.Profile != nil {
		if u.ProfileID != nil {
			if err := s.contents.DeleteByID(*u.ProfileID); err != nil {
				return Response{}, err
			}
		}
		blob, err := s.contents.Save(entity.NewBinaryContent(
			req.Profile.FileName, req.Profile.ContentType, req.Profile.Data))
		if err != nil {
			return Response{}, err
		}
		replaceProfile = true
		profileID = &blob.ID
	}

	saved, err := s.users.Save(u.Update(req.Username, req.Email, req.Password, replaceProfile, profileID))
	if err != nil {
		return Response{}, err
	}
	return NewResponse(saved, s.online(saved.ID)), nil
}

// Delete cascades to the user's activity record and profile blob. Messages
// the user authored and channels they participate in are left alone; their
// author and participant ids simply dangle from here on.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.statuses.DeleteByUserID(id); err != nil {
		return err
	}
	if u.ProfileID != nil {
		if err := s.contents.DeleteByID(*u.ProfileID); err != nil {
			return err
		}
	}
	if err := s.users.DeleteByID(id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "username", u.Username)
	return nil
}

// online derives the flag at read time; a user with no activity record is
// offline.
func (s *Service) online(userID uuid.UUID) bool {
	status, err := s.statuses.FindByUserID(userID)
	if err != nil {
		return false
	}
	return status.Online()
}
