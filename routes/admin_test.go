package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Mohit9674/Smart-Home-Management/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp creates a minimal Iris app with the admin booking routes and
// a JWT verifier
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Post("/booking-requests/bulk-approve", AdminApproveBookingRequests)
		admin.Post("/booking-requests/bulk-reject", AdminRejectBookingRequests)
	}
	return app
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestBulkActionsRBAC(t *testing.T) {
	app := buildTestApp()
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodPost, "/api/admin/booking-requests/bulk-approve", strings.NewReader(`{"ids":[1]}`))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Non-admin role -> 403
	req2 := httptest.NewRequest(http.MethodPost, "/api/admin/booking-requests/bulk-approve", strings.NewReader(`{"ids":[1]}`))
	req2.Header.Set("Authorization", "Bearer "+signTestToken("viewer"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer role, got %d", resp2.Code)
	}
}

func TestBulkActionsRequireIDs(t *testing.T) {
	app := buildTestApp()
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	for _, path := range []string{
		"/api/admin/booking-requests/bulk-approve",
		"/api/admin/booking-requests/bulk-reject",
	} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 for missing ids, got %d", path, resp.Code)
		}
	}
}
