package routes

import (
	"fmt"
	"time"

	"github.com/Mohit9674/Smart-Home-Management/models"
	"github.com/Mohit9674/Smart-Home-Management/storage"
	"github.com/Mohit9674/Smart-Home-Management/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type TenantInput struct {
	PropertyID          uint     `json:"propertyID" validate:"required"`
	FullName            string   `json:"fullName" validate:"max=200"`
	Email               string   `json:"email" validate:"omitempty,email"`
	PhoneNumber         string   `json:"phoneNumber" validate:"max=20"`
	PPSNumber           string   `json:"ppsNumber" validate:"max=50"`
	MoveInDate          string   `json:"moveInDate"`
	MoveOutDate         string   `json:"moveOutDate"`
	NoticeDate          string   `json:"noticeDate"`
	Smoker              bool     `json:"smoker"`
	ConsentPersonalData bool     `json:"consentPersonalData"`
	ConsentShareData    bool     `json:"consentShareData"`
	CurrentIncome       *float64 `json:"currentIncome"`
	LicenseFee          *float64 `json:"licenseFee"`
	Deposit             *float64 `json:"deposit"`
}

func parseOptionalDate(value string) (*datatypes.Date, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

func (in *TenantInput) apply(tenant *models.Tenant) error {
	moveIn, err := parseOptionalDate(in.MoveInDate)
	if err != nil {
		return fmt.Errorf("moveInDate: %w", err)
	}
	moveOut, err := parseOptionalDate(in.MoveOutDate)
	if err != nil {
		return fmt.Errorf("moveOutDate: %w", err)
	}
	notice, err := parseOptionalDate(in.NoticeDate)
	if err != nil {
		return fmt.Errorf("noticeDate: %w", err)
	}

	tenant.PropertyID = in.PropertyID
	tenant.FullName = in.FullName
	tenant.Email = in.Email
	tenant.PhoneNumber = in.PhoneNumber
	tenant.PPSNumber = in.PPSNumber
	tenant.MoveInDate = moveIn
	tenant.MoveOutDate = moveOut
	tenant.NoticeDate = notice
	tenant.Smoker = in.Smoker
	tenant.ConsentPersonalData = in.ConsentPersonalData
	tenant.ConsentShareData = in.ConsentShareData
	tenant.CurrentIncome = in.CurrentIncome
	tenant.LicenseFee = in.LicenseFee
	tenant.Deposit = in.Deposit
	return nil
}

func AdminListTenants(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.Tenant{})
	if propertyID, err := ctx.URLParamInt("property_id"); err == nil && propertyID > 0 {
		query = query.Where("property_id = ?", propertyID)
	}
	if q := ctx.URLParamDefault("q", ""); q != "" {
		like := "%" + q + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var tenants []models.Tenant
	if err := query.Preload("Property").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("id").Find(&tenants).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	utils.JSONPage(ctx, tenants, page, perPage, total)
}

func AdminGetTenant(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid tenant id", ctx)
		return
	}

	var tenant models.Tenant
	if err := storage.DB.Preload("Property").First(&tenant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(tenant)
}

func AdminCreateTenant(ctx iris.Context) {
	var input TenantInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Tenants must reference an existing property.
	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "property does not exist", ctx)
		return
	}

	var tenant models.Tenant
	if err := input.apply(&tenant); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
		return
	}

	if err := storage.DB.Create(&tenant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(tenant)
}

func AdminUpdateTenant(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid tenant id", ctx)
		return
	}

	var tenant models.Tenant
	if err := storage.DB.First(&tenant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input TenantInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.PropertyID != tenant.PropertyID {
		var property models.Property
		if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "property does not exist", ctx)
			return
		}
	}

	if err := input.apply(&tenant); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
		return
	}

	if err := storage.DB.Save(&tenant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(tenant)
}

func AdminDeleteTenant(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid tenant id", ctx)
		return
	}

	var tenant models.Tenant
	if err := storage.DB.First(&tenant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if tenant.PassportKey != "" {
		if err := storage.DeleteObject(tenant.PassportKey); err != nil {
			ctx.Application().Logger().Warnf("failed to delete passport %s: %v", tenant.PassportKey, err)
		}
	}

	if err := storage.DB.Delete(&tenant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": tenant.ID})
}

type PassportUploadInput struct {
	Passport string `json:"passport" validate:"required"` // base64 payload
}

func AdminUploadTenantPassport(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid tenant id", ctx)
		return
	}

	var tenant models.Tenant
	if err := storage.DB.First(&tenant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PassportUploadInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	key, err := storage.UploadBase64(input.Passport, fmt.Sprintf("tenant_passports/%d", tenant.ID))
	if err != nil {
		utils.CreateError(iris.StatusBadGateway, "Storage Error", err.Error(), ctx)
		return
	}

	if tenant.PassportKey != "" {
		if err := storage.DeleteObject(tenant.PassportKey); err != nil {
			ctx.Application().Logger().Warnf("failed to delete passport %s: %v", tenant.PassportKey, err)
		}
	}

	tenant.PassportKey = key
	if err := storage.DB.Save(&tenant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"passportKey": key})
}
