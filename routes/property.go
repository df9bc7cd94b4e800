package routes

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mohit9674/Smart-Home-Management/models"
	"github.com/Mohit9674/Smart-Home-Management/storage"
	"github.com/Mohit9674/Smart-Home-Management/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm/clause"
)

// Public listing: available properties only, optional free-text filter
// against address fields and id.
func ListAvailableProperties(ctx iris.Context) {
	query := storage.DB.Preload("Images").Where("is_available = ?", true)

	q := strings.TrimSpace(ctx.URLParamDefault("q", ""))
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"lower(street_name) LIKE ? OR lower(street_number) LIKE ? OR CAST(id AS TEXT) LIKE ?",
			like, like, like,
		)
	}

	var properties []models.Property
	if err := query.Order("id").Find(&properties).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(properties)
}

// Public detail: unavailable and nonexistent properties are both 404 so no
// prior state leaks.
func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	err := storage.DB.Preload("Images").
		Where("is_available = ?", true).
		First(&property, id).Error
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(property)
}

type PropertyInput struct {
	Nickname       string   `json:"nickname"`
	StreetNumber   string   `json:"streetNumber"`
	StreetName     string   `json:"streetName"`
	Complement     string   `json:"complement"`
	Landlord       string   `json:"landlord"`
	ContractLength int      `json:"contractLength"`
	Internet       bool     `json:"internet"`
	Electricity    bool     `json:"electricity"`
	Gas            bool     `json:"gas"`
	Trash          bool     `json:"trash"`
	Maintenance    string   `json:"maintenance"`
	Rooms          int      `json:"rooms"`
	Bathrooms      float32  `json:"bathrooms"`
	UnitType       string   `json:"unitType" validate:"omitempty,oneof=entire_place private_room dorm_bed"`
	Rent           float64  `json:"rent"`
	RentMargin     float64  `json:"rentMargin"`
	ActualMargin   float64  `json:"actualMargin"`
	Profit         float64  `json:"profit"`
	RealProfit     float64  `json:"realProfit"`
	IsAvailable    *bool    `json:"isAvailable"`
}

func AdminListProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.Property{})
	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"lower(street_name) LIKE ? OR lower(street_number) LIKE ? OR lower(nickname) LIKE ? OR CAST(id AS TEXT) LIKE ?",
			like, like, like, like,
		)
	}
	if avail := ctx.URLParamDefault("is_available", ""); avail != "" {
		query = query.Where("is_available = ?", avail == "true")
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	if err := query.Preload("Images").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("id").Find(&properties).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

func AdminGetProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Images").Preload("Tenants").First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(property)
}

func CreateProperty(ctx iris.Context) {
	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		Nickname:       input.Nickname,
		StreetNumber:   input.StreetNumber,
		StreetName:     input.StreetName,
		Complement:     input.Complement,
		Landlord:       input.Landlord,
		ContractLength: input.ContractLength,
		Internet:       input.Internet,
		Electricity:    input.Electricity,
		Gas:            input.Gas,
		Trash:          input.Trash,
		Maintenance:    input.Maintenance,
		Rooms:          input.Rooms,
		Bathrooms:      input.Bathrooms,
		UnitType:       input.UnitType,
		Rent:           input.Rent,
		RentMargin:     input.RentMargin,
		ActualMargin:   input.ActualMargin,
		Profit:         input.Profit,
		RealProfit:     input.RealProfit,
		IsAvailable:    true,
	}
	if input.IsAvailable != nil {
		property.IsAvailable = *input.IsAvailable
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

// UpdateProperty applies a full edit. A changed is_available flag is
// audited by the Property write path itself, attributed to the acting
// admin.
func UpdateProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property.Nickname = input.Nickname
	property.StreetNumber = input.StreetNumber
	property.StreetName = input.StreetName
	property.Complement = input.Complement
	property.Landlord = input.Landlord
	property.ContractLength = input.ContractLength
	property.Internet = input.Internet
	property.Electricity = input.Electricity
	property.Gas = input.Gas
	property.Trash = input.Trash
	property.Maintenance = input.Maintenance
	property.Rooms = input.Rooms
	property.Bathrooms = input.Bathrooms
	property.UnitType = input.UnitType
	property.Rent = input.Rent
	property.RentMargin = input.RentMargin
	property.ActualMargin = input.ActualMargin
	property.Profit = input.Profit
	property.RealProfit = input.RealProfit
	if input.IsAvailable != nil {
		property.IsAvailable = *input.IsAvailable
	}

	actorCtx := models.WithActor(context.Background(), utils.AdminID(ctx))
	if err := storage.DB.WithContext(actorCtx).
		Omit(clause.Associations).Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

type SetAvailabilityInput struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

// AdminSetPropertyAvailability edits the flag directly, outside the
// approval flow. The audit comes from the same write-path invariant.
func AdminSetPropertyAvailability(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	var input SetAvailabilityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	property.IsAvailable = *input.IsAvailable
	actorCtx := models.WithActor(context.Background(), utils.AdminID(ctx))
	if err := storage.DB.WithContext(actorCtx).
		Omit(clause.Associations).Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

// DeleteProperty cascades to images, booking requests, audits and tenants.
func DeleteProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Images").First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	for _, image := range property.Images {
		if err := storage.DeleteObject(image.ObjectKey); err != nil {
			ctx.Application().Logger().Warnf("failed to delete image %s: %v", image.ObjectKey, err)
		}
	}
	if property.VideoKey != "" {
		if err := storage.DeleteObject(property.VideoKey); err != nil {
			ctx.Application().Logger().Warnf("failed to delete video %s: %v", property.VideoKey, err)
		}
	}

	if err := storage.DB.Select(clause.Associations).Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": property.ID})
}

type PropertyImageInput struct {
	Image   string `json:"image" validate:"required"` // base64 payload
	Caption string `json:"caption" validate:"max=200"`
}

func AddPropertyImage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PropertyImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	key, err := storage.UploadBase64(input.Image, fmt.Sprintf("properties/%d", property.ID))
	if err != nil {
		utils.CreateError(iris.StatusBadGateway, "Storage Error", err.Error(), ctx)
		return
	}

	image := models.PropertyImage{
		PropertyID: property.ID,
		ObjectKey:  key,
		Caption:    input.Caption,
	}
	if err := storage.DB.Create(&image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"image": image, "url": storage.ObjectURL(key)})
}

func DeletePropertyImage(ctx iris.Context) {
	imageID, err := ctx.Params().GetUint("imageID")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid image id", ctx)
		return
	}

	var image models.PropertyImage
	if err := storage.DB.First(&image, imageID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DeleteObject(image.ObjectKey); err != nil {
		ctx.Application().Logger().Warnf("failed to delete image %s: %v", image.ObjectKey, err)
	}
	if err := storage.DB.Delete(&image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": image.ID})
}

type PropertyVideoInput struct {
	Video string `json:"video" validate:"required"` // base64 payload
}

// AddPropertyVideo stores an optional video tour and records its key.
func AddPropertyVideo(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PropertyVideoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	key, err := storage.UploadBase64(input.Video, fmt.Sprintf("properties/%d/video", property.ID))
	if err != nil {
		utils.CreateError(iris.StatusBadGateway, "Storage Error", err.Error(), ctx)
		return
	}

	if property.VideoKey != "" {
		if err := storage.DeleteObject(property.VideoKey); err != nil {
			ctx.Application().Logger().Warnf("failed to delete video %s: %v", property.VideoKey, err)
		}
	}

	property.VideoKey = key
	actorCtx := models.WithActor(context.Background(), utils.AdminID(ctx))
	if err := storage.DB.WithContext(actorCtx).
		Omit(clause.Associations).Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"videoKey": key, "url": storage.ObjectURL(key)})
}
