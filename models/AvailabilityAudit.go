package models

import (
	"time"
)

// AvailabilityAudit records one flip of a property's is_available flag.
// Rows are append-only: the admin surface exposes them read-only and no
// update or delete path exists.
type AvailabilityAudit struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PropertyID    uint      `json:"propertyID" gorm:"index;not null"`
	ChangedByID   *uint     `json:"changedByID" gorm:"index"` // nil when system-triggered
	FromAvailable bool      `json:"fromAvailable"`
	ToAvailable   bool      `json:"toAvailable"`
	ChangedAt     time.Time `json:"changedAt" gorm:"index"`

	Property  *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	ChangedBy *User     `json:"changedBy,omitempty" gorm:"foreignKey:ChangedByID"`
}
