package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/damacus/iron-navigator/internal/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	svc, err := services.NewAuthService("")
	require.NoError(t, err)
	return svc
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == utils.CookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	authService := newTestAuthService(t)
	want := models.Identity{AccessKey: "admin", SecretKey: "password", DefaultRegion: "eu-west-1"}
	nav := new(MockNavigator)
	nav.On("ListBuckets", mock.Anything, &want, 0, 1).Return([]models.StorageItem{}, 0, nil)
	h := NewAuthHandler(authService, nav, false, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"accessKey":"admin","secretKey":"password","region":"eu-west-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	identity, err := authService.DecryptIdentity(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, want, *identity)
}

func TestAuthHandler_LoginRejectsBadCredentials(t *testing.T) {
	nav := new(MockNavigator)
	nav.On("ListBuckets", mock.Anything, mock.Anything, 0, 1).Return(nil, 0, errors.New("InvalidAccessKeyId"))
	h := NewAuthHandler(newTestAuthService(t), nav, false, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"accessKey":"x","secretKey":"y"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))

	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
	assert.Nil(t, sessionCookie(rec))
}

func TestAuthHandler_LoginRequiresKeys(t *testing.T) {
	nav := new(MockNavigator)
	h := NewAuthHandler(newTestAuthService(t), nav, false, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("accessKey=admin"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	err := h.Login(e.NewContext(req, httptest.NewRecorder()))

	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	nav.AssertNotCalled(t, "ListBuckets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(newTestAuthService(t), new(MockNavigator), true, zap.NewNop())

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Secure)
	assert.Less(t, cookie.MaxAge, 0)
}
