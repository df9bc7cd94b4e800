package routes

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Mohit9674/Smart-Home-Management/models"
	"github.com/Mohit9674/Smart-Home-Management/services"
	"github.com/Mohit9674/Smart-Home-Management/storage"
	"github.com/Mohit9674/Smart-Home-Management/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

var bookingStatuses = []string{models.StatusPending, models.StatusApproved, models.StatusRejected}

type CreateBookingRequestInput struct {
	FullName  string `json:"fullName" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"max=20"`
	StartDate string `json:"startDate" validate:"required"`
	Notes     string `json:"notes" validate:"max=500"`
	Website   string `json:"website"` // honeypot, must stay empty
}

// CreateBookingRequest handles the public booking form. Only available
// properties can be requested; anything else is a plain 404.
func CreateBookingRequest(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Where("is_available = ?", true).First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input CreateBookingRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		utils.CreateFieldErrors(ctx, map[string]string{"startDate": "Enter a valid date (YYYY-MM-DD)."})
		return
	}

	validator := services.SubmissionValidator{
		Now: time.Now,
		HasRecentPending: func(propID uint, email string, since time.Time) (bool, error) {
			return services.HasRecentPendingRequest(storage.DB, propID, email, since)
		},
	}
	submission, fields, err := validator.Validate(property.ID, services.BookingSubmission{
		FullName:  input.FullName,
		Email:     input.Email,
		Phone:     input.Phone,
		StartDate: startDate,
		Notes:     input.Notes,
		Website:   input.Website,
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if len(fields) > 0 {
		utils.CreateFieldErrors(ctx, fields)
		return
	}

	request, err := services.CreateBookingRequest(storage.DB, property.ID, submission)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	mailer := services.NewMailerFromEnv()

	// The admin alert is part of the contract: a failure is surfaced even
	// though the request is already persisted.
	if err := mailer.SendBookingAlert(request, &property); err != nil {
		log.Printf("booking request %d saved but admin alert failed: %v", request.ID, err)
		utils.CreateError(iris.StatusBadGateway, "Notification Error",
			"Your request was recorded but we could not notify the team. Please contact us directly.", ctx)
		return
	}

	// Requester confirmation is best-effort only.
	if err := mailer.SendBookingConfirmation(request, &property); err != nil {
		log.Printf("confirmation email for booking request %d failed: %v", request.ID, err)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(request)
}

// AdminListBookingRequests - GET /admin/booking-requests?status=&q=&created_from=&created_to=&page=&per_page=
func AdminListBookingRequests(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.BookingRequest{}).
		Joins("JOIN properties p ON p.id = booking_requests.property_id")

	if status := ctx.URLParamDefault("status", ""); status != "" {
		if !slices.Contains(bookingStatuses, status) {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "unknown status filter", ctx)
			return
		}
		query = query.Where("booking_requests.status = ?", status)
	}
	if q := ctx.URLParamDefault("q", ""); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"booking_requests.full_name ILIKE ? OR booking_requests.email ILIKE ? OR p.street_name ILIKE ? OR p.street_number ILIKE ?",
			like, like, like, like,
		)
	}
	if from := ctx.URLParamDefault("created_from", ""); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("booking_requests.created_at >= ?", t)
		}
	}
	if to := ctx.URLParamDefault("created_to", ""); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("booking_requests.created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	query.Count(&total)

	var requests []models.BookingRequest
	if err := query.Preload("Property").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("booking_requests.created_at DESC").
		Find(&requests).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	utils.JSONPage(ctx, requests, page, perPage, total)
}

type BulkBookingInput struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// closeOnApprovalEnabled reads the configuration flag deciding whether an
// approval closes out the property. Default is enabled.
func closeOnApprovalEnabled() bool {
	return os.Getenv("BOOKING_CLOSES_AVAILABILITY") != "false"
}

// AdminApproveBookingRequests - POST /admin/booking-requests/bulk-approve
func AdminApproveBookingRequests(ctx iris.Context) {
	var input BulkBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updated, err := services.ApproveRequests(
		context.Background(),
		storage.DB,
		input.IDs,
		utils.AdminID(ctx),
		closeOnApprovalEnabled(),
	)
	if err != nil {
		log.Printf("bulk approve stopped after %d request(s): %v", updated, err)
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"approved": updated})
}

// AdminRejectBookingRequests - POST /admin/booking-requests/bulk-reject
func AdminRejectBookingRequests(ctx iris.Context) {
	var input BulkBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updated, err := services.RejectRequests(storage.DB, input.IDs)
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"rejected": updated})
}
