package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stackit/internal/config"
	"stackit/internal/handlers"
	"stackit/internal/models"
	"stackit/internal/notify"
	"stackit/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testService adapts a test database to the database.Service interface.
type testService struct {
	db *gorm.DB
}

func (s *testService) Health() map[string]string { return map[string]string{"status": "up"} }
func (s *testService) Close() error              { return nil }
func (s *testService) GetDB() *gorm.DB           { return s.db }

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{AppPort: "0", JWTSecret: "test-secret"}

	handler := handlers.NewHandler(db, nil, notify.New(db, cfg), cfg)
	s := &Server{cfg: cfg, db: &testService{db: db}, handler: handler}

	return &testApp{router: s.RegisterRoutes(), db: db}
}

// do performs a JSON request against the test router. token may be empty.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// register creates an account and returns its token and id.
func (a *testApp) register(t *testing.T, username string) (token string, id uint) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.AuthResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// promoteToAdmin flips a user's role directly in the store.
func (a *testApp) promoteToAdmin(t *testing.T, id uint) {
	t.Helper()
	require.NoError(t, a.db.Model(&models.User{}).Where("id = ?", id).
		Update("role", models.RoleAdmin).Error)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]string
	decode(t, w, &health)
	require.Equal(t, "up", health["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/questions"},
		{http.MethodPost, "/api/vote"},
		{http.MethodPost, "/api/answers/1/accept"},
		{http.MethodGet, "/api/notifications"},
	} {
		w := app.do(t, route.method, route.path, "", gin.H{})
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := newTestApp(t)
	token, _ := app.register(t, "plain_user")

	w := app.do(t, http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/platform-messages", token, gin.H{"message": "nope"})
	require.Equal(t, http.StatusForbidden, w.Code)
}
