package services

import (
	"context"

	"github.com/Mohit9674/Smart-Home-Management/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransitionStatus moves a request toward target and reports whether the
// state actually changed. Same-state transitions are no-ops; any other
// combination is permitted (there is no terminal status).
func TransitionStatus(request *models.BookingRequest, target string) bool {
	if request.Status == target {
		return false
	}
	request.Status = target
	return true
}

// ShouldCloseProperty decides whether an approval closes out the property:
// only when the flag says so and the property is still available.
func ShouldCloseProperty(closeOnApproval bool, property *models.Property) bool {
	return closeOnApproval && property != nil && property.IsAvailable
}

// ApproveRequests approves each selected request that is not already
// approved and returns the count transitioned. When closeOnApproval is set
// and the property is still available it is flipped unavailable; the
// Property write path appends the availability audit attributed to actorID.
//
// Each request's status write and its property/audit writes share one
// transaction, but rows in the batch are independent: a failure partway
// through does not roll back earlier rows.
func ApproveRequests(ctx context.Context, db *gorm.DB, ids []uint, actorID uint, closeOnApproval bool) (int, error) {
	var requests []models.BookingRequest
	if err := db.Preload("Property").Where("id IN ?", ids).Find(&requests).Error; err != nil {
		return 0, err
	}

	updated := 0
	for i := range requests {
		request := &requests[i]
		if !TransitionStatus(request, models.StatusApproved) {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.BookingRequest{}).
				Where("id = ?", request.ID).
				Update("status", models.StatusApproved).Error; err != nil {
				return err
			}
			if ShouldCloseProperty(closeOnApproval, request.Property) {
				property := request.Property
				property.IsAvailable = false
				return tx.WithContext(models.WithActor(ctx, actorID)).
					Omit(clause.Associations).
					Save(property).Error
			}
			return nil
		})
		if err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// RejectRequests bulk-rejects every selected request not already rejected
// and returns the count changed. Rejection never touches availability.
func RejectRequests(db *gorm.DB, ids []uint) (int, error) {
	res := db.Model(&models.BookingRequest{}).
		Where("id IN ? AND status <> ?", ids, models.StatusRejected).
		Update("status", models.StatusRejected)
	return int(res.RowsAffected), res.Error
}
