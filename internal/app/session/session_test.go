package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nouhaa3/invisithreat/internal/app/models"
)

func testPayload() *models.AuthPayload {
	return &models.AuthPayload{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		TokenType:    "bearer",
		User: &models.User{
			ID:       "user-1",
			Email:    "ada@example.com",
			Nom:      "Ada",
			IsActive: true,
			RoleName: "Viewer",
		},
	}
}

// newTestRouter builds a gin engine with the cookie session middleware, the
// same shape the real router uses.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	return r
}

// roundTrip performs a request carrying cookies from previous responses.
func roundTrip(t *testing.T, r *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaveAuthRoundTrip(t *testing.T) {
	r := newTestRouter()
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, SaveAuth(c, testPayload()))
		c.Status(http.StatusOK)
	})
	r.GET("/check", func(c *gin.Context) {
		assert.True(t, IsAuthenticated(c))
		assert.Equal(t, "access-1", AccessToken(c))
		assert.Equal(t, "refresh-1", RefreshToken(c))

		user := CurrentUser(c)
		require.NotNil(t, user)
		assert.Equal(t, "Ada", user.Nom)
		assert.Equal(t, "Viewer", user.RoleName)
		c.Status(http.StatusOK)
	})

	login := roundTrip(t, r, http.MethodPost, "/login", nil)
	require.Equal(t, http.StatusOK, login.Code)
	require.NotEmpty(t, login.Result().Cookies(), "login should set the session cookie")

	check := roundTrip(t, r, http.MethodGet, "/check", login.Result().Cookies())
	assert.Equal(t, http.StatusOK, check.Code)
}

func TestUpdateTokensKeepsRefreshWhenEmpty(t *testing.T) {
	r := newTestRouter()
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, SaveAuth(c, testPayload()))
		c.Status(http.StatusOK)
	})
	r.POST("/renew", func(c *gin.Context) {
		require.NoError(t, UpdateTokens(c, &models.TokenPair{AccessToken: "access-2"}))
		c.Status(http.StatusOK)
	})
	r.GET("/check", func(c *gin.Context) {
		assert.Equal(t, "access-2", AccessToken(c))
		assert.Equal(t, "refresh-1", RefreshToken(c), "empty refresh token must keep the stored one")
		user := CurrentUser(c)
		require.NotNil(t, user, "renewal must not touch the stored user")
		c.Status(http.StatusOK)
	})

	login := roundTrip(t, r, http.MethodPost, "/login", nil)
	renew := roundTrip(t, r, http.MethodPost, "/renew", login.Result().Cookies())
	cookies := append(renew.Result().Cookies(), login.Result().Cookies()...)
	check := roundTrip(t, r, http.MethodGet, "/check", cookies)
	assert.Equal(t, http.StatusOK, check.Code)
}

func TestUpdateTokensRotatesBothWhenPresent(t *testing.T) {
	r := newTestRouter()
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, SaveAuth(c, testPayload()))
		c.Status(http.StatusOK)
	})
	r.POST("/renew", func(c *gin.Context) {
		require.NoError(t, UpdateTokens(c, &models.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}))
		c.Status(http.StatusOK)
	})
	r.GET("/check", func(c *gin.Context) {
		assert.Equal(t, "access-2", AccessToken(c))
		assert.Equal(t, "refresh-2", RefreshToken(c))
		c.Status(http.StatusOK)
	})

	login := roundTrip(t, r, http.MethodPost, "/login", nil)
	renew := roundTrip(t, r, http.MethodPost, "/renew", login.Result().Cookies())
	cookies := append(renew.Result().Cookies(), login.Result().Cookies()...)
	check := roundTrip(t, r, http.MethodGet, "/check", cookies)
	assert.Equal(t, http.StatusOK, check.Code)
}

func TestLogoutClearsEverything(t *testing.T) {
	r := newTestRouter()
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, SaveAuth(c, testPayload()))
		c.Status(http.StatusOK)
	})
	r.POST("/logout", func(c *gin.Context) {
		require.NoError(t, Logout(c))
		c.Status(http.StatusOK)
	})
	r.GET("/check", func(c *gin.Context) {
		assert.False(t, IsAuthenticated(c))
		assert.Empty(t, AccessToken(c))
		assert.Empty(t, RefreshToken(c))
		assert.Nil(t, CurrentUser(c))
		c.Status(http.StatusOK)
	})

	login := roundTrip(t, r, http.MethodPost, "/login", nil)
	logout := roundTrip(t, r, http.MethodPost, "/logout", login.Result().Cookies())
	cookies := append(logout.Result().Cookies(), login.Result().Cookies()...)
	check := roundTrip(t, r, http.MethodGet, "/check", cookies)
	assert.Equal(t, http.StatusOK, check.Code)
}

func TestIsAuthenticatedNeedsBothHalves(t *testing.T) {
	r := newTestRouter()
	r.POST("/token-only", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set("access_token", "orphan")
		require.NoError(t, s.Save())
		c.Status(http.StatusOK)
	})
	r.GET("/check", func(c *gin.Context) {
		assert.False(t, IsAuthenticated(c), "a token without a user is not a session")
		c.Status(http.StatusOK)
	})

	seed := roundTrip(t, r, http.MethodPost, "/token-only", nil)
	check := roundTrip(t, r, http.MethodGet, "/check", seed.Result().Cookies())
	assert.Equal(t, http.StatusOK, check.Code)
}

func TestCurrentUserFailsSoftOnCorruptData(t *testing.T) {
	r := newTestRouter()
	r.POST("/corrupt", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set("access_token", "access-1")
		s.Set("user", "{not json")
		require.NoError(t, s.Save())
		c.Status(http.StatusOK)
	})
	r.GET("/check", func(c *gin.Context) {
		assert.Nil(t, CurrentUser(c), "corrupt user data must read as no user, not an error")
		assert.False(t, IsAuthenticated(c))
		c.Status(http.StatusOK)
	})

	seed := roundTrip(t, r, http.MethodPost, "/corrupt", nil)
	check := roundTrip(t, r, http.MethodGet, "/check", seed.Result().Cookies())
	assert.Equal(t, http.StatusOK, check.Code)
}
