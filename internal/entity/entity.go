// Package entity defines the persistent records of the messaging core.
//
// Entities are value snapshots: update methods return a new snapshot with
// UpdatedAt advanced instead of mutating in place, so a record held by two
// callers never changes underneath either of them.
package entity

import (
	"time"

	"github.com/google/uuid"
)

func newID() uuid.UUID { return uuid.New() }

func now() time.Time { return time.Now().UTC() }
