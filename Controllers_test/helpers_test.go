package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/enterprise-pos/config"
	"github.com/yeremiapane/enterprise-pos/kds"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/router"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/store"
	"github.com/yeremiapane/enterprise-pos/utils"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)

// setupTestApp backs the app with an in-memory sqlite key/value table.
func setupTestApp(t *testing.T, opts ...services.Option) *services.App {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	backend, err := store.NewGormBackend(db)
	require.NoError(t, err)

	opts = append([]services.Option{
		services.WithClock(func() time.Time { return testNow }),
		services.WithHub(kds.NewHub()),
	}, opts...)
	return services.NewApp(context.Background(), backend, opts...)
}

func setupTestRouter(app *services.App) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.SetupRouter(app, config.ServerConfig{})
}

// addCashier adds a cashier assigned to b2 only.
func addCashier(t *testing.T, app *services.App) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("cashier-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	app.Staff.Update(context.Background(), func(list []models.Staff) []models.Staff {
		return append(append([]models.Staff(nil), list...), models.Staff{
			ID: "staff-2", Name: "Counter Two", Username: "cashier", PasswordHash: string(hash),
			Role: models.RoleCashier, AssignedBranchIDs: []string{"b2"},
		})
	})
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w).(map[string]interface{})
	return data["token"].(string)
}

func adminToken(t *testing.T, r *gin.Engine) string {
	return login(t, r, services.DefaultAdminUsername, services.DefaultAdminPassword)
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp["data"]
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, dst))
}
