package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/damacus/iron-navigator/internal/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFServer() *echo.Echo {
	e := echo.New()
	e.Use(CSRF())
	e.GET("/csrf", func(c echo.Context) error {
		token, _ := c.Get("csrf").(string)
		return c.String(http.StatusOK, token)
	})
	e.POST("/api/buckets", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func TestCSRFMiddlewareRejectsSessionPostWithoutToken(t *testing.T) {
	e := newCSRFServer()

	req := httptest.NewRequest(http.MethodPost, "/api/buckets", strings.NewReader(`{"name":"demo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: utils.CookieName, Value: "sealed"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCSRFMiddlewareSkipsRequestsWithoutSession(t *testing.T) {
	e := newCSRFServer()

	req := httptest.NewRequest(http.MethodPost, "/api/buckets", strings.NewReader(`{"name":"demo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFMiddlewareAllowsPostWithTokenHeaderAndCookie(t *testing.T) {
	e := newCSRFServer()

	getReq := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	getRec := httptest.NewRecorder()
	e.ServeHTTP(getRec, getReq)

	require.Equal(t, http.StatusOK, getRec.Code)
	token := strings.TrimSpace(getRec.Body.String())
	require.NotEmpty(t, token)

	var csrfCookie *http.Cookie
	for _, cookie := range getRec.Result().Cookies() {
		if cookie.Name == utils.CSRFCookieName {
			csrfCookie = cookie
			break
		}
	}
	require.NotNil(t, csrfCookie)

	postReq := httptest.NewRequest(http.MethodPost, "/api/buckets", strings.NewReader(`{"name":"demo"}`))
	postReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	postReq.Header.Set("X-CSRF-Token", token)
	postReq.AddCookie(csrfCookie)
	postReq.AddCookie(&http.Cookie{Name: utils.CookieName, Value: "sealed"})
	postRec := httptest.NewRecorder()
	e.ServeHTTP(postRec, postReq)

	assert.Equal(t, http.StatusOK, postRec.Code)
}
