package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCurrentUserID(t *testing.T) {
	// JWT numeric claims decode as float64; other shapes come from
	// tests and internal callers setting the value directly.
	for _, v := range []interface{}{float64(42), uint64(42), int64(42), 42, "42"} {
		c := testContext()
		c.Set("user_id", v)
		id, ok := CurrentUserID(c)
		assert.True(t, ok, "value %#v", v)
		assert.Equal(t, uint64(42), id, "value %#v", v)
	}
}

func TestCurrentUserIDMissingOrBad(t *testing.T) {
	c := testContext()
	_, ok := CurrentUserID(c)
	assert.False(t, ok, "unauthenticated context has no user")

	c = testContext()
	c.Set("user_id", "not-a-number")
	_, ok = CurrentUserID(c)
	assert.False(t, ok)
}
