package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
)

func TestLoginAndProfile(t *testing.T) {
	app := setupTestApp(t)
	r := setupTestRouter(app)

	token := adminToken(t, r)
	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.StaffID)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
	assert.Equal(t, "b1", claims.BranchID)

	w := doJSON(r, http.MethodGet, "/pos/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	profile := decodeData(t, w).(map[string]interface{})
	assert.Equal(t, "Super Admin", profile["name"])
	assert.NotContains(t, profile, "passwordHash")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := setupTestApp(t)
	r := setupTestRouter(app)

	for _, body := range []map[string]string{
		{"username": "admin", "password": "wrong"},
		{"username": "ghost", "password": "password"},
	} {
		w := doJSON(r, http.MethodPost, "/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	}

	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := setupTestApp(t)
	r := setupTestRouter(app)

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodGet, "/pos/cart", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodGet, "/admin/orders", "", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/ping", "", nil).Code)
}

func TestCashierCannotReachBackOffice(t *testing.T) {
	app := setupTestApp(t)
	addCashier(t, app)
	r := setupTestRouter(app)

	token := login(t, r, "cashier", "cashier-pass")
	assert.Equal(t, http.StatusForbidden, doJSON(r, http.MethodGet, "/admin/orders", token, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/pos/cart", token, nil).Code)
}
