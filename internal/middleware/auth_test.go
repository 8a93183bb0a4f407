package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recortes/internal/database"
	"recortes/internal/domain"
	"recortes/internal/pkg/tokens"
	"recortes/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB, *tokens.DevTokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	tokenSvc := tokens.NewDevTokenService("test-secret", time.Hour)
	users := repository.NewUserRepository(db)

	router := gin.New()
	router.Use(Auth(tokenSvc, users))
	router.GET("/whoami", func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "email": identity.Email})
	})

	return router, db, tokenSvc
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuth_MissingHeader(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	rec := get(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header is missing")
}

func TestAuth_MissingToken(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	rec := get(router, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bearer token is missing")
}

func TestAuth_InvalidToken(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	rec := get(router, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuth_ExpiredToken(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	expired := tokens.NewDevTokenService("test-secret", -time.Hour)
	token, err := expired.Generate("sub-1", "a@example.com", "")
	require.NoError(t, err)

	rec := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ProvisionsUserLazilyAndIdempotently(t *testing.T) {
	router, db, tokenSvc := setupAuthRouter(t)

	token, err := tokenSvc.Generate("sub-1", "a@example.com", "Alice")
	require.NoError(t, err)

	rec := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the same subject never creates a second user
	rec = get(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var user domain.User
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, "sub-1", user.GoogleID)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
}
