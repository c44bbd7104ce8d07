package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/dashboard-api/internal/constants"
	"github.com/yukikurage/dashboard-api/internal/database"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"github.com/yukikurage/dashboard-api/internal/services"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zaptest.NewLogger(t)))
	return db
}

// createAuthContext builds a context as RequireAuth leaves it for user.
func createAuthContext(method, url string, body interface{}, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		payload, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyCurrentUser, user)
	}
	return c, w
}

func registerHandlerTestUser(t *testing.T, users repository.UserRepository, email, fullName string) *models.User {
	t.Helper()
	user, err := services.NewAuthService(users).Register(services.RegisterInput{
		Email:    email,
		Password: "password123",
		FullName: fullName,
	})
	require.NoError(t, err)
	return user
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body apierrors.ErrorResponse
	decodeJSON(t, w, &body)
	require.NotNil(t, body.Error)
	return body.Error.Message
}
