package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the platform. ProfileID, when set, references the
// BinaryContent holding the profile image; the blob is owned by the user and
// deleted together with it.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	ProfileID *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(username, email, password string, profileID *uuid.UUID) User {
	ts := now()
	return User{
		ID:        newID(),
		Username:  username,
		Email:     email,
		Password:  password,
		ProfileID: profileID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// Update returns a copy with the non-nil fields replaced and UpdatedAt
// advanced. replaceProfile distinguishes "keep the current profile" from
// "set it to profileID" (which may be nil to clear it).
func (u User) Update(username, email, password *string, replaceProfile bool, profileID *uuid.UUID) User {
	if username != nil {
		u.Username = *username
	}
	if email != nil {
		u.Email = *email
	}
	if password != nil {
		u.Password = *password
	}
	if replaceProfile {
		u.ProfileID = profileID
	}
	u.UpdatedAt = now()
	return u
}
