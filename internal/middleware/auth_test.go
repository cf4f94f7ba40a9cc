package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wingo_backend/internal/model"
	"wingo_backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testJWTConfig struct{}

func (testJWTConfig) AccessTokenSecretKey() []byte        { return []byte("test-secret") }
func (testJWTConfig) AccessTokenDuration() time.Duration  { return time.Hour }
func (testJWTConfig) RefreshTokenDuration() time.Duration { return 24 * time.Hour }

func authedRequest(t *testing.T, user *model.User) *http.Request {
	t.Helper()
	accessToken, err := token.GenerateAccessToken(user, testJWTConfig{}.AccessTokenSecretKey(), time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken)
	return r
}

func TestAuthPutsUserInContext(t *testing.T) {
	var gotID int
	var gotAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotID = id
		gotAdmin = IsAdminFromContext(r.Context())
	})

	w := httptest.NewRecorder()
	Auth(testJWTConfig{})(next).ServeHTTP(w, authedRequest(t, &model.User{ID: 42, IsAdmin: true}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 42, gotID)
	assert.True(t, gotAdmin)
}

func TestAuthRejectsBadToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	// Без заголовка
	w := httptest.NewRecorder()
	Auth(testJWTConfig{})(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Мусор вместо токена
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	Auth(testJWTConfig{})(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	chain := Auth(testJWTConfig{})(RequireAdmin(next))

	// Обычный пользователь получает 403
	w := httptest.NewRecorder()
	chain.ServeHTTP(w, authedRequest(t, &model.User{ID: 1, IsAdmin: false}))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)

	// Оператор проходит
	w = httptest.NewRecorder()
	chain.ServeHTTP(w, authedRequest(t, &model.User{ID: 2, IsAdmin: true}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
