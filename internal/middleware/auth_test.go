package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func newRouter(roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), RoleMiddleware(roles...), func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	return r
}

func bearer(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{Role: role}
	user.ID = 5
	token, err := util.GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(model.Student)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer not-a-token").Code)
	assert.Equal(t, http.StatusOK, do(r, bearer(t, model.Student)).Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(model.Faculty)

	assert.Equal(t, http.StatusForbidden, do(r, bearer(t, model.Student)).Code)
	assert.Equal(t, http.StatusOK, do(r, bearer(t, model.Faculty)).Code)
	// 管理员不受角色限制
	assert.Equal(t, http.StatusOK, do(r, bearer(t, model.Admin)).Code)
}
