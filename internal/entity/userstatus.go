package entity

import (
	"time"

	"github.com/google/uuid"
)

// OnlineWindow is how recent the last activity must be for a user to count
// as online.
const OnlineWindow = 5 * time.Minute

// UserStatus tracks a user's last activity. Exactly one exists per user,
// enforced by the service layer. Online-ness is derived on every read and
// never stored.
type UserStatus struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUserStatus(userID uuid.UUID, lastActiveAt time.Time) UserStatus {
	ts := now()
	return UserStatus{
		ID:           newID(),
		UserID:       userID,
		LastActiveAt: lastActiveAt,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func (s UserStatus) UpdateLastActiveAt(lastActiveAt time.Time) UserStatus {
	s.LastActiveAt = lastActiveAt
	s.UpdatedAt = now()
	return s
}

// OnlineAt reports whether the user counts as online at the given instant:
// strictly less than OnlineWindow since the last activity. A status with no
// recorded activity is always offline.
func (s UserStatus) OnlineAt(at time.Time) bool {
	if s.LastActiveAt.IsZero() {
		return false
	}
	return at.Sub(s.LastActiveAt) < OnlineWindow
}

// Online is OnlineAt with the current time.
func (s UserStatus) Online() bool {
	return s.OnlineAt(time.Now())
}
