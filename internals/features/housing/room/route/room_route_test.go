package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hoh_backend/internals/configs"
	"hoh_backend/internals/constants"
	residentModel "hoh_backend/internals/features/housing/resident/model"
	roomModel "hoh_backend/internals/features/housing/room/model"
	helper "hoh_backend/internals/helpers"
	authMiddleware "hoh_backend/internals/middlewares/auth"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	dsn := fmt.Sprintf("file:route_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&roomModel.RoomModel{},
		&residentModel.ResidentModel{},
		&residentModel.DocumentModel{},
	))

	app := fiber.New()
	api := app.Group("/api", authMiddleware.AuthMiddleware())
	RoomRoutes(api, db)
	return app, db
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := helper.CreateAccessToken(configs.JWTSecret, uuid.New(), "Tester", role)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRoomRoutes_AuthAndRoles(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := tokenFor(t, constants.RoleAdmin)
	staffToken := tokenFor(t, constants.RoleStaff)

	payload := map[string]interface{}{
		"room_number":   "A-101",
		"room_type":     "PUTRA",
		"room_capacity": 4,
		"room_floor":    1,
	}

	// tanpa token → 401
	resp := doJSON(t, app, http.MethodGet, "/api/rooms/", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// staff boleh baca
	resp = doJSON(t, app, http.MethodGet, "/api/rooms/", staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// staff tidak boleh mutasi
	resp = doJSON(t, app, http.MethodPost, "/api/rooms/", staffToken, payload)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// admin boleh mutasi
	resp = doJSON(t, app, http.MethodPost, "/api/rooms/", adminToken, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data roomModel.RoomModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, "A-101", created.Data.RoomNumber)

	// availability kamar baru
	resp = doJSON(t, app, http.MethodGet, "/api/rooms/"+created.Data.RoomID.String()+"/availability", staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// duplikat nomor kamar → 400
	resp = doJSON(t, app, http.MethodPost, "/api/rooms/", adminToken, payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoomRoutes_ValidationError(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := tokenFor(t, constants.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost, "/api/rooms/", adminToken, map[string]interface{}{
		"room_number": "A-102",
		"room_type":   "CAMPUR",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
