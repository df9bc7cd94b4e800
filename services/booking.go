package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/Mohit9674/Smart-Home-Management/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	nameRE  = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ' -]+$`)
	phoneRE = regexp.MustCompile(`^\+?[0-9()\-.\s]{7,20}$`) // +353 86 123 4567, (01) 234-5678, etc.
	linkRE  = regexp.MustCompile(`(?i)https?://|www\.`)
)

const (
	// MaxAdvanceDays bounds how far ahead a check-in date may be (~18 months).
	MaxAdvanceDays = 540
	// DuplicateWindow is the sliding window for duplicate-submission checks.
	DuplicateWindow = 24 * time.Hour

	maxNotesLen = 500
)

// BookingSubmission is the raw public booking form payload. Website is a
// honeypot: hidden in the form, any value means a bot filled it in.
type BookingSubmission struct {
	FullName  string
	Email     string
	Phone     string
	StartDate time.Time
	Notes     string
	Website   string
}

// FieldErrors maps form field names to user-facing messages. The honeypot
// and duplicate checks report under the "form" key.
type FieldErrors map[string]string

// SubmissionValidator applies the booking form rules. Now and
// HasRecentPending are injected so rules stay testable without a database.
type SubmissionValidator struct {
	Now              func() time.Time
	HasRecentPending func(propertyID uint, email string, since time.Time) (bool, error)
}

// Validate normalizes the submission and applies every rule, returning the
// normalized copy and any per-field failures. A database error from the
// duplicate lookup is returned separately.
func (v *SubmissionValidator) Validate(propertyID uint, in BookingSubmission) (BookingSubmission, FieldErrors, error) {
	fields := FieldErrors{}

	if strings.TrimSpace(in.Website) != "" {
		fields["form"] = "Form flagged as spam."
	}

	in.FullName = strings.Join(strings.Fields(in.FullName), " ")
	if len([]rune(in.FullName)) < 2 {
		fields["fullName"] = "Enter at least 2 characters."
	} else if !nameRE.MatchString(in.FullName) {
		fields["fullName"] = "Use letters, spaces, apostrophes, or hyphens only."
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	in.Phone = strings.TrimSpace(in.Phone)
	if in.Phone != "" && !phoneRE.MatchString(in.Phone) {
		fields["phone"] = "Enter a valid phone number."
	}

	now := time.Now()
	if v.Now != nil {
		now = v.Now()
	}
	today := dateOnly(now)
	start := dateOnly(in.StartDate)
	in.StartDate = start
	if start.Before(today) {
		fields["startDate"] = "Check-in date cannot be in the past."
	} else if start.After(today.AddDate(0, 0, MaxAdvanceDays)) {
		fields["startDate"] = "Pick a date within the next 18 months."
	}

	in.Notes = strings.TrimSpace(in.Notes)
	if len([]rune(in.Notes)) > maxNotesLen {
		fields["notes"] = "Keep notes under 500 characters."
	} else if linkRE.MatchString(in.Notes) {
		fields["notes"] = "Please don't include links."
	}

	// Duplicate suppression only makes sense for a usable email.
	if _, taken := fields["form"]; !taken && in.Email != "" && v.HasRecentPending != nil {
		dup, err := v.HasRecentPending(propertyID, in.Email, now.Add(-DuplicateWindow))
		if err != nil {
			return in, fields, err
		}
		if dup {
			fields["form"] = "You've already submitted a request recently. We'll be in touch soon."
		}
	}

	return in, fields, nil
}

// HasRecentPendingRequest reports whether a pending request for the same
// property and email (case-insensitive) was created after since.
//
// The check and the subsequent insert are not atomic against a concurrent
// duplicate; two near-simultaneous submissions can both pass. Accepted for
// this workload.
func HasRecentPendingRequest(db *gorm.DB, propertyID uint, email string, since time.Time) (bool, error) {
	var count int64
	err := db.Model(&models.BookingRequest{}).
		Where("property_id = ? AND LOWER(email) = ? AND status = ? AND created_at >= ?",
			propertyID, strings.ToLower(email), models.StatusPending, since).
		Count(&count).Error
	return count > 0, err
}

// CreateBookingRequest persists an accepted submission as a pending request.
// The UI only collects a check-in date, so EndDate is forced to StartDate.
func CreateBookingRequest(db *gorm.DB, propertyID uint, in BookingSubmission) (*models.BookingRequest, error) {
	request := models.BookingRequest{
		PropertyID: propertyID,
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		StartDate:  datatypes.Date(in.StartDate),
		EndDate:    datatypes.Date(in.StartDate),
		Notes:      in.Notes,
		Status:     models.StatusPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
