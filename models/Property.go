package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unit types
const (
	UnitEntirePlace = "entire_place"
	UnitPrivateRoom = "private_room"
	UnitDormBed     = "dorm_bed"
)

type Property struct {
	gorm.Model
	Nickname       string          `json:"nickname"`
	StreetNumber   string          `json:"streetNumber" gorm:"size:10"`
	StreetName     string          `json:"streetName" gorm:"size:100"`
	Complement     string          `json:"complement" gorm:"size:100"`
	Landlord       string          `json:"landlord" gorm:"size:100"`
	DateAcquired   *datatypes.Date `json:"dateAcquired"`
	DateReleased   *datatypes.Date `json:"dateReleased"`
	ContractLength int             `json:"contractLength"` // months
	Internet       bool            `json:"internet" gorm:"default:false"`
	Electricity    bool            `json:"electricity" gorm:"default:false"`
	Gas            bool            `json:"gas" gorm:"default:false"`
	Trash          bool            `json:"trash" gorm:"default:false"`
	Maintenance    string          `json:"maintenance" gorm:"type:text"`
	Rooms          int             `json:"rooms"`
	Bathrooms      float32         `json:"bathrooms"`
	UnitType       string          `json:"unitType" gorm:"type:varchar(50)"` // entire_place, private_room, dorm_bed
	Rent           float64         `json:"rent"`
	RentMargin     float64         `json:"rentMargin"`
	ActualMargin   float64         `json:"actualMargin"`
	Profit         float64         `json:"profit"`
	RealProfit     float64         `json:"realProfit"`
	VideoKey       string          `json:"videoKey"` // optional video tour, blob storage key
	IsAvailable    bool            `json:"isAvailable" gorm:"default:true;index"`

	Images          []PropertyImage     `json:"images" gorm:"constraint:OnDelete:CASCADE"`
	BookingRequests []BookingRequest    `json:"bookingRequests,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Audits          []AvailabilityAudit `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tenants         []Tenant            `json:"tenants,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	// set by BeforeUpdate, compared in AfterUpdate
	prevAvailable *bool
}

type PropertyImage struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	PropertyID uint   `json:"propertyID" gorm:"index;not null"`
	ObjectKey  string `json:"objectKey" gorm:"size:255"`
	Caption    string `json:"caption" gorm:"size:200"`
}

// DisplayName picks a human-readable label for the property. Accessors are
// tried in order, first non-empty wins.
func (p *Property) DisplayName() string {
	accessors := []func() string{
		func() string { return strings.TrimSpace(p.Nickname) },
		func() string { return strings.TrimSpace(p.StreetNumber + " " + p.StreetName) },
		func() string { return strings.TrimSpace(p.Complement) },
	}
	for _, accessor := range accessors {
		if v := accessor(); v != "" {
			return v
		}
	}
	return fmt.Sprintf("Property #%d", p.ID)
}

// UnitTypeLabel returns the display form of the unit type category.
func (p *Property) UnitTypeLabel() string {
	switch p.UnitType {
	case UnitEntirePlace:
		return "Entire place"
	case UnitPrivateRoom:
		return "Private room"
	case UnitDormBed:
		return "Dorm bed"
	case "":
		return "-"
	}
	return p.UnitType
}

type actorKey struct{}

// WithActor records the admin performing a write so availability audits can
// attribute the change. Writes without an actor audit as system-triggered.
func WithActor(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actorFrom(ctx context.Context) *uint {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(actorKey{}).(uint); ok {
		return &id
	}
	return nil
}

// BeforeUpdate loads the persisted availability flag so AfterUpdate can
// detect a flip. Runs inside the same transaction as the update.
func (p *Property) BeforeUpdate(tx *gorm.DB) error {
	if p.ID == 0 {
		return nil
	}
	var prev Property
	if err := tx.Session(&gorm.Session{NewDB: true}).
		Select("is_available").First(&prev, p.ID).Error; err != nil {
		return err
	}
	p.prevAvailable = &prev.IsAvailable
	return nil
}

// AfterUpdate appends an AvailabilityAudit whenever the is_available flag
// changed, whatever the entry point. The audit row commits or rolls back
// with the update itself.
func (p *Property) AfterUpdate(tx *gorm.DB) error {
	if p.prevAvailable == nil || *p.prevAvailable == p.IsAvailable {
		return nil
	}
	audit := AvailabilityAudit{
		PropertyID:    p.ID,
		ChangedByID:   actorFrom(tx.Statement.Context),
		FromAvailable: *p.prevAvailable,
		ToAvailable:   p.IsAvailable,
		ChangedAt:     time.Now(),
	}
	p.prevAvailable = nil
	return tx.Session(&gorm.Session{NewDB: true}).Create(&audit).Error
}
