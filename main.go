package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Mohit9674/Smart-Home-Management/routes"
	"github.com/Mohit9674/Smart-Home-Management/storage"
	"github.com/Mohit9674/Smart-Home-Management/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeS3()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Public surface: browse available properties, submit a booking request
	properties := app.Party("/api/properties")
	{
		properties.Get("/", routes.ListAvailableProperties)
		properties.Get("/{id:uint}", routes.GetProperty)
		properties.Post("/{id:uint}/booking-requests", routes.CreateBookingRequest)
	}

	user := app.Party("/api/user")
	{
		user.Post("/login", routes.Login)
		user.Get("/me", accessTokenVerifierMiddleware, routes.GetCurrentUser)
	}

	// Admin surface
	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Post("/users", utils.SuperAdminOnlyMiddleware, routes.AdminCreateUser)

		admin.Get("/properties", routes.AdminListProperties)
		admin.Post("/properties", routes.CreateProperty)
		admin.Get("/properties/{id:uint}", routes.AdminGetProperty)
		admin.Patch("/properties/{id:uint}", routes.UpdateProperty)
		admin.Patch("/properties/{id:uint}/availability", routes.AdminSetPropertyAvailability)
		admin.Delete("/properties/{id:uint}", routes.DeleteProperty)
		admin.Post("/properties/{id:uint}/images", routes.AddPropertyImage)
		admin.Delete("/properties/images/{imageID:uint}", routes.DeletePropertyImage)
		admin.Post("/properties/{id:uint}/video", routes.AddPropertyVideo)

		admin.Get("/booking-requests", routes.AdminListBookingRequests)
		admin.Post("/booking-requests/bulk-approve", routes.AdminApproveBookingRequests)
		admin.Post("/booking-requests/bulk-reject", routes.AdminRejectBookingRequests)

		// Audit log: list only, no mutation routes
		admin.Get("/availability-audits", routes.AdminListAvailabilityAudits)

		admin.Get("/tenants", routes.AdminListTenants)
		admin.Post("/tenants", routes.AdminCreateTenant)
		admin.Get("/tenants/{id:uint}", routes.AdminGetTenant)
		admin.Patch("/tenants/{id:uint}", routes.AdminUpdateTenant)
		admin.Delete("/tenants/{id:uint}", routes.AdminDeleteTenant)
		admin.Post("/tenants/{id:uint}/passport", routes.AdminUploadTenantPassport)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
