package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking request statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// BookingRequest is a prospective tenant's request to reserve a property,
// created pending by the public form and resolved by an admin. The UI only
// collects a check-in date, so EndDate is kept equal to StartDate.
type BookingRequest struct {
	gorm.Model
	PropertyID uint           `json:"propertyID" gorm:"index;not null"`
	FullName   string         `json:"fullName" gorm:"size:120"`
	Email      string         `json:"email" gorm:"size:254;index"`
	Phone      string         `json:"phone" gorm:"size:20"`
	StartDate  datatypes.Date `json:"startDate"`
	EndDate    datatypes.Date `json:"endDate"`
	Notes      string         `json:"notes" gorm:"type:text"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
