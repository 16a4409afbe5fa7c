package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-ledger/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "stock-ledger-test"
	testExpMin    = 60
)

// buildRoleApp: AuthMiddleware + RequireRole delante de un handler que responde el rol.
func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole(t *testing.T) {
	noRole, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	tests := []struct {
		name    string
		allowed []string
		header  string
		status  int
		code    string
	}{
		{"admin en ruta admin", []string{"admin"}, tokenForRole(t, "admin"), http.StatusOK, ""},
		{"bodeguero en ruta de operadores", []string{"admin", "bodeguero"}, tokenForRole(t, "bodeguero"), http.StatusOK, ""},
		{"rol en mayúsculas", []string{"admin"}, tokenForRole(t, "ADMIN"), http.StatusOK, ""},
		{"vendedor en ruta admin", []string{"admin"}, tokenForRole(t, "vendedor"), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{"admin"}, "Bearer " + noRole, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{"admin"}, "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto de Bearer", []string{"admin"}, "Basic abc", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", []string{"admin"}, "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := getProtected(t, buildRoleApp(tt.allowed...), tt.header)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.code != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tt.code)
			}
		})
	}
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "bodeguero", body["role"])
}

func TestJWT_ExpiradoOSecretDistinto(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, -1)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse(testJWTSecret, expired)
	assert.Error(t, err)

	valid, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse("otro-secret", valid)
	assert.Error(t, err)

	assert.True(t, pkgjwt.KnownRole("bodeguero"))
	assert.False(t, pkgjwt.KnownRole("root"))
}
