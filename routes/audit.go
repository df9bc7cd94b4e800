package routes

import (
	"time"

	"github.com/Mohit9674/Smart-Home-Management/models"
	"github.com/Mohit9674/Smart-Home-Management/storage"
	"github.com/Mohit9674/Smart-Home-Management/utils"

	"github.com/kataras/iris/v12"
)

// AdminListAvailabilityAudits - GET /admin/availability-audits
// Read-only: the audit log has no create, edit or delete routes.
// Filters: property_id, changed_by, from, to, changed_from, changed_to.
func AdminListAvailabilityAudits(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.AvailabilityAudit{})

	if propertyID, err := ctx.URLParamInt("property_id"); err == nil && propertyID > 0 {
		query = query.Where("property_id = ?", propertyID)
	}
	if changedBy, err := ctx.URLParamInt("changed_by"); err == nil && changedBy > 0 {
		query = query.Where("changed_by_id = ?", changedBy)
	}
	if from := ctx.URLParamDefault("from", ""); from != "" {
		query = query.Where("from_available = ?", from == "true")
	}
	if to := ctx.URLParamDefault("to", ""); to != "" {
		query = query.Where("to_available = ?", to == "true")
	}
	if after := ctx.URLParamDefault("changed_from", ""); after != "" {
		if t, err := time.Parse("2006-01-02", after); err == nil {
			query = query.Where("changed_at >= ?", t)
		}
	}
	if before := ctx.URLParamDefault("changed_to", ""); before != "" {
		if t, err := time.Parse("2006-01-02", before); err == nil {
			query = query.Where("changed_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	query.Count(&total)

	var audits []models.AvailabilityAudit
	if err := query.Preload("Property").Preload("ChangedBy").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("changed_at DESC").
		Find(&audits).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	utils.JSONPage(ctx, audits, page, perPage, total)
}
