package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total},
		"links": iris.Map{},
	})
}

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{"error": title, "message": detail})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "Something went wrong, please try again later.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"error": "Not Found", "message": "Resource not found"})
}

// CreateFieldErrors renders per-field validation messages for form redisplay.
func CreateFieldErrors(ctx iris.Context, fields map[string]string) {
	ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
		"error":  "Validation Error",
		"fields": fields,
	})
}

// HandleValidationErrors maps validator.ValidationErrors from ctx.ReadJSON
// into the same field-message shape, falling back to a generic 400.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(errs))
		for _, fieldErr := range errs {
			switch fieldErr.Tag() {
			case "required":
				fields[fieldErr.Field()] = "This field is required."
			case "email":
				fields[fieldErr.Field()] = "Enter a valid email address."
			case "max":
				fields[fieldErr.Field()] = "Value is too long."
			default:
				fields[fieldErr.Field()] = "Invalid value."
			}
		}
		CreateFieldErrors(ctx, fields)
		return
	}
	CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
}
