package services

import (
	"context"
	"testing"
	"time"

	"github.com/Mohit9674/Smart-Home-Management/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openApprovalTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: is per-connection, keep a single one
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Property{}, &models.PropertyImage{},
		&models.BookingRequest{}, &models.AvailabilityAudit{}, &models.Tenant{},
	))
	return db
}

func seedPendingRequest(t *testing.T, db *gorm.DB, available bool) (models.Property, models.BookingRequest) {
	t.Helper()
	property := models.Property{StreetNumber: "12", StreetName: "Main Street", IsAvailable: available}
	require.NoError(t, db.Create(&property).Error)

	start := datatypes.Date(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC))
	request := models.BookingRequest{
		PropertyID: property.ID,
		FullName:   "Jane Murphy",
		Email:      "jane@example.com",
		StartDate:  start,
		EndDate:    start,
		Status:     models.StatusPending,
	}
	require.NoError(t, db.Create(&request).Error)
	return property, request
}

func TestApproveRequestsClosesPropertyAndAuditsOnce(t *testing.T) {
	db := openApprovalTestDB(t)
	property, request := seedPendingRequest(t, db, true)

	updated, err := ApproveRequests(context.Background(), db, []uint{request.ID}, 9, true)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	var got models.BookingRequest
	require.NoError(t, db.First(&got, request.ID).Error)
	require.Equal(t, models.StatusApproved, got.Status)

	var gotProperty models.Property
	require.NoError(t, db.First(&gotProperty, property.ID).Error)
	require.False(t, gotProperty.IsAvailable)

	var audits []models.AvailabilityAudit
	require.NoError(t, db.Where("property_id = ?", property.ID).Find(&audits).Error)
	require.Len(t, audits, 1)
	require.True(t, audits[0].FromAvailable)
	require.False(t, audits[0].ToAvailable)
	require.NotNil(t, audits[0].ChangedByID)
	require.Equal(t, uint(9), *audits[0].ChangedByID)
}

func TestApproveRequestsTwiceLeavesSingleAuditRow(t *testing.T) {
	db := openApprovalTestDB(t)
	property, request := seedPendingRequest(t, db, true)

	updated, err := ApproveRequests(context.Background(), db, []uint{request.ID}, 9, true)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	// already approved: no status change, no second flip, no second audit
	updated, err = ApproveRequests(context.Background(), db, []uint{request.ID}, 9, true)
	require.NoError(t, err)
	require.Equal(t, 0, updated)

	var count int64
	require.NoError(t, db.Model(&models.AvailabilityAudit{}).
		Where("property_id = ?", property.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestApproveRequestsWithCloseDisabledKeepsPropertyOpen(t *testing.T) {
	db := openApprovalTestDB(t)
	property, request := seedPendingRequest(t, db, true)

	updated, err := ApproveRequests(context.Background(), db, []uint{request.ID}, 9, false)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	var got models.BookingRequest
	require.NoError(t, db.First(&got, request.ID).Error)
	require.Equal(t, models.StatusApproved, got.Status)

	var gotProperty models.Property
	require.NoError(t, db.First(&gotProperty, property.ID).Error)
	require.True(t, gotProperty.IsAvailable)

	var count int64
	require.NoError(t, db.Model(&models.AvailabilityAudit{}).
		Where("property_id = ?", property.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestApproveRequestsOnUnavailableProperty(t *testing.T) {
	db := openApprovalTestDB(t)
	property, request := seedPendingRequest(t, db, false)

	updated, err := ApproveRequests(context.Background(), db, []uint{request.ID}, 9, true)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	// no flip happened, so nothing to audit
	var count int64
	require.NoError(t, db.Model(&models.AvailabilityAudit{}).
		Where("property_id = ?", property.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestRejectRequestsSkipsAlreadyRejected(t *testing.T) {
	db := openApprovalTestDB(t)
	property, first := seedPendingRequest(t, db, true)

	second := models.BookingRequest{
		PropertyID: property.ID,
		FullName:   "Liam Walsh",
		Email:      "liam@example.com",
		StartDate:  first.StartDate,
		EndDate:    first.EndDate,
		Status:     models.StatusRejected,
	}
	require.NoError(t, db.Create(&second).Error)

	changed, err := RejectRequests(db, []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Equal(t, 1, changed)

	// rejection never touches availability
	var gotProperty models.Property
	require.NoError(t, db.First(&gotProperty, property.ID).Error)
	require.True(t, gotProperty.IsAvailable)

	var count int64
	require.NoError(t, db.Model(&models.AvailabilityAudit{}).Count(&count).Error)
	require.Zero(t, count)
}
