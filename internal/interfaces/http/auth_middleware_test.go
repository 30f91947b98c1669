package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	apphttp "github.com/jhoicas/comex-crm/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/comex-crm/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "https://proyecto.supabase.co/auth/v1"
)

// stubChecker devuelve el usuario o el error configurado y registra la última consulta.
type stubChecker struct {
	user      *entity.CompanyUser
	err       error
	lastEmail string
	lastPerm  string
}

func (s *stubChecker) Authorize(_ context.Context, email, permission string) (*entity.CompanyUser, error) {
	s.lastEmail, s.lastPerm = email, permission
	return s.user, s.err
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePermission para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(checker *stubChecker) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		apphttp.RequirePermission(entity.PermOrdersView, checker),
		func(c *fiber.Ctx) error {
			u := apphttp.GetCompanyUser(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"userId":  apphttp.GetUserID(c),
				"email":   apphttp.GetEmail(c),
				"hasUser": u != nil,
			})
		},
	)
	return app
}

// bearer genera un JWT de acceso con el email indicado.
func bearer(t *testing.T, email string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, email, testIssuer, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "cuerpo: %s", raw)
	return out
}

func activeUser() *entity.CompanyUser {
	return &entity.CompanyUser{ID: "u-1", Email: "ana@empresa.com", Role: entity.RoleViewer, IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader401(t *testing.T) {
	app := buildTestApp(&stubChecker{user: activeUser()})
	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeBody(t, resp)["code"])
}

func TestAuthMiddleware_FormatoInvalido401(t *testing.T) {
	app := buildTestApp(&stubChecker{user: activeUser()})
	resp := doRequest(t, app, "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeBody(t, resp)["code"])
}

func TestAuthMiddleware_FirmaIncorrecta401(t *testing.T) {
	app := buildTestApp(&stubChecker{user: activeUser()})
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, "ana@empresa.com", testIssuer, time.Hour)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado401(t *testing.T) {
	app := buildTestApp(&stubChecker{user: activeUser()})
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "ana@empresa.com", testIssuer, -time.Minute)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenSinEmail401(t *testing.T) {
	app := buildTestApp(&stubChecker{user: activeUser()})
	resp := doRequest(t, app, bearer(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_EMAIL", decodeBody(t, resp)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_UsuarioConPermisoPasa(t *testing.T) {
	checker := &stubChecker{user: activeUser()}
	app := buildTestApp(checker)

	resp := doRequest(t, app, bearer(t, "Ana@Empresa.com"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, "ana@empresa.com", body["email"], "el email se normaliza a minúsculas")
	assert.Equal(t, true, body["hasUser"])
	assert.Equal(t, "ana@empresa.com", checker.lastEmail)
	assert.Equal(t, entity.PermOrdersView, checker.lastPerm)
}

func TestRequirePermission_SinPermiso403(t *testing.T) {
	app := buildTestApp(&stubChecker{err: domain.ErrForbidden})
	resp := doRequest(t, app, bearer(t, "ana@empresa.com"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, resp)["code"])
}

func TestRequirePermission_FalloDeInfraestructura503(t *testing.T) {
	app := buildTestApp(&stubChecker{err: errors.New("conexión rechazada")})
	resp := doRequest(t, app, bearer(t, "ana@empresa.com"))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PERMISSION_CHECK_FAILED", decodeBody(t, resp)["code"])
}
