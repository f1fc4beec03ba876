package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/clothing-storefront/internal/platform/config"
)

func newManager() *Manager {
	return NewManager(config.SessionConfig{Secret: "s3cret", TTL: time.Hour, CookieName: "sid"})
}

func TestManager_IssueAndParse(t *testing.T) {
	m := newManager()
	sid := uuid.NewString()

	token, err := m.Issue(sid)
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)

	t.Run("Other secret", func(t *testing.T) {
		other := NewManager(config.SessionConfig{Secret: "different", TTL: time.Hour, CookieName: "sid"})
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := newManager()
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := expired.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Subject must be a uuid", func(t *testing.T) {
		bad, err := m.Issue("admin")
		require.NoError(t, err)
		_, err = m.Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestManager_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newManager()
	router := gin.New()
	router.GET("/whoami", m.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, ID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	t.Run("Cookie keeps the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(cookies[0])
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, first, w.Body.String())
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Tampered cookie starts a new session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: cookies[0].Value + "x"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.NotEqual(t, first, w.Body.String())
		assert.Len(t, w.Result().Cookies(), 1)
	})
}
