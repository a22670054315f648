package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
	"github.com/keremaydin/acadport/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
}

func protectedRouter(jwtService *auth.JWTService, requiredType string) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	router := gin.New()
	group := router.Group("/", m.JWTAuth())
	if requiredType != "" {
		group.Use(m.RoleRequired(requiredType))
	}
	group.GET("/secure", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetInt64("userID")})
	})
	return router
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, userType models.UserType) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(&models.User{
		ID:       42,
		Email:    "user@acadport.edu",
		UserType: userType,
	})
	require.NoError(t, err)
	return token
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := protectedRouter(newJWTService(), "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router := protectedRouter(newJWTService(), "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := newJWTService()
	router := protectedRouter(jwtService, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.UserTypeStudent))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRoleRequired(t *testing.T) {
	jwtService := newJWTService()
	router := protectedRouter(jwtService, string(models.UserTypeAdmin))

	// A student token must not pass the admin gate.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.UserTypeStudent))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin token passes.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.UserTypeAdmin))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "course required", err: apperrors.ErrCourseRequired, wantStatus: http.StatusBadRequest},
		{name: "department required", err: apperrors.ErrDepartmentRequired, wantStatus: http.StatusBadRequest},
		{name: "invalid user type", err: apperrors.ErrInvalidUserType, wantStatus: http.StatusBadRequest},
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound},
		{name: "department not found", err: apperrors.ErrDepartmentNotFound, wantStatus: http.StatusNotFound},
		{name: "user not found", err: apperrors.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "email exists", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "account disabled", err: apperrors.ErrAccountDisabled, wantStatus: http.StatusForbidden},
		{name: "too many requests", err: apperrors.ErrTooManyRequests, wantStatus: http.StatusTooManyRequests},
		{
			name:       "allocation failed non-transient",
			err:        apperrors.NewAllocationFailedError(assert.AnError),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "allocation failed transient",
			err:        apperrors.NewAllocationFailedError(&pgconn.PgError{Code: "55P03"}),
			wantStatus: http.StatusServiceUnavailable,
		},
		{name: "unknown error", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
