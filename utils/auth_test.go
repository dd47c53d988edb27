package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	subject, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-1", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	_, err := GenerateToken("user-1", "", time.Hour)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	PasswordCost = 4
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AuthMiddleware(testSecret, "token"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userId"))
	})

	token, err := GenerateToken("user-42", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
		body   string
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK, "user-42"},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: token}) }, http.StatusOK, "user-42"},
		{"garbage token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, `{"message":"Unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}
