package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tenant is an occupant record tied to a property. Plain CRUD data; the
// only invariant is the property reference.
type Tenant struct {
	gorm.Model
	PropertyID          uint            `json:"propertyID" gorm:"index;not null"`
	FullName            string          `json:"fullName" gorm:"size:200"`
	Email               string          `json:"email" gorm:"size:254"`
	PhoneNumber         string          `json:"phoneNumber" gorm:"size:20"`
	PPSNumber           string          `json:"ppsNumber" gorm:"size:50"`
	PassportKey         string          `json:"passportKey" gorm:"size:255"` // blob storage key
	MoveInDate          *datatypes.Date `json:"moveInDate"`
	MoveOutDate         *datatypes.Date `json:"moveOutDate"`
	NoticeDate          *datatypes.Date `json:"noticeDate"`
	Smoker              bool            `json:"smoker" gorm:"default:false"`
	ConsentPersonalData bool            `json:"consentPersonalData" gorm:"default:false"`
	ConsentShareData    bool            `json:"consentShareData" gorm:"default:false"`
	CurrentIncome       *float64        `json:"currentIncome"`
	LicenseFee          *float64        `json:"licenseFee"`
	Deposit             *float64        `json:"deposit"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (t *Tenant) DisplayName() string {
	if t.FullName != "" {
		return t.FullName
	}
	return "Tenant"
}
