package shared

import (
	"time"
)

// BaseEntity provides the common fields every domain entity carries.
// The ID is assigned by the persistence boundary; 0 means "not yet persisted".
// Synced is the best-effort flag for later reconciliation with a remote
// store; any local mutation clears it.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Synced    bool
}

// NewBaseEntity creates a base entity with the given creation time and an
// unassigned ID.
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPersisted returns true once the persistence boundary has assigned an ID
func (e BaseEntity) IsPersisted() bool {
	return e.ID > 0
}

// Touched returns a copy with UpdatedAt refreshed and the synced flag cleared
func (e BaseEntity) Touched(now time.Time) BaseEntity {
	e.UpdatedAt = now
	e.Synced = false
	return e
}

// MarkSynced returns a copy flagged as reconciled with the remote store
func (e BaseEntity) MarkSynced() BaseEntity {
	e.Synced = true
	return e
}
