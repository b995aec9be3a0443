// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albanrr9/PharmacyOnline/internal/models"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		userID, _ := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin-only", AuthRequired(), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func doAuthRequest(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := authTestRouter()

	token, err := utils.GenerateJWT(7, "Jane Doe", "jane@example.com", string(models.RoleCustomer), 1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/protected", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/protected", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/protected", "Bearer garbage").Code)
	assert.Equal(t, http.StatusOK, doAuthRequest(r, "/protected", "Bearer "+token).Code)

	// A token carrying an unknown role is rejected outright
	badRole, err := utils.GenerateJWT(7, "Jane Doe", "jane@example.com", "Wizard", 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "/protected", "Bearer "+badRole).Code)
}

func TestRoleRequired(t *testing.T) {
	r := authTestRouter()

	customerToken, err := utils.GenerateJWT(7, "Jane Doe", "jane@example.com", string(models.RoleCustomer), 1)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT(8, "Admin", "admin@pharmacy.com", string(models.RoleAdmin), 1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doAuthRequest(r, "/admin-only", "Bearer "+customerToken).Code)
	assert.Equal(t, http.StatusOK, doAuthRequest(r, "/admin-only", "Bearer "+adminToken).Code)
}
