package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func adminRequest(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/admin/orders", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}, AdminMiddleware(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminMiddlewareAcceptsIssuedToken(t *testing.T) {
	token, err := GenerateAdminToken(testSecret)
	require.NoError(t, err)

	rec := adminRequest(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminMiddlewareRejectsMissingHeader(t *testing.T) {
	rec := adminRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminMiddlewareRejectsMalformedHeader(t *testing.T) {
	rec := adminRequest(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminMiddlewareRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("some-other-secret")
	require.NoError(t, err)

	rec := adminRequest(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
