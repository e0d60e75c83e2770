// Package auth implements login. The credential check is a plain equality
// test against the stored password; sessions, tokens and hashing are the
// caller's problem, not the core's.
package auth

import (
	"context"
	"log/slog"

	"parley/infrastructure"
	"parley/internal/storage"
	"parley/internal/user"
)

type LoginRequest struct {
	Username string
	Password string
}

type Service struct {
	users    storage.UserRepository
	statuses storage.UserStatusRepository
	logger   *slog.Logger
}

func NewService(store *storage.Container, logger *slog.Logger) *Service {
	return &Service{users: store.Users, statuses: store.UserStatuses, logger: logger}
}

// errInvalidCredentials is returned for both an unknown username and a wrong
// password. The single message is deliberate: the response must not reveal
// which half of the credentials was wrong.
func errInvalidCredentials() error {
	return infrastructure.InvalidOperation("invalid username or password")
}

// Login authenticates by exact password match and returns the user projected
// with their online flag re-derived at response time.
func (s *Service) Login(ctx context.Context, req LoginRequest) (user.Response, error) {
	u, err := s.users.FindByUsername(req.Username)
	if err != nil {
		if infrastructure.IsKind(err, infrastructure.KindNotFound) {
			return user.Response{}, errInvalidCredentials()
		}
		return user.Response{}, err
	}
	if u.Password != req.Password {
		return user.Response{}, errInvalidCredentials()
	}

	online := false
	if status, err := s.statuses.FindByUserID(u.ID); err == nil {
		online = status.Online()
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", u.ID)
	return user.NewResponse(u, online), nil
}
