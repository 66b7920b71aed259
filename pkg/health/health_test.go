package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_AllHealthy(t *testing.T) {
	c := NewChecker()
	c.Add("api", func(context.Context) error { return nil })
	c.AddOptional("kafka", func(context.Context) error { return nil })

	response := c.Run(context.Background())
	assert.Equal(t, StatusHealthy, response.Status)
	assert.Len(t, response.Checks, 2)
	assert.Equal(t, StatusHealthy, response.Checks["api"].Status)
}

func TestChecker_OptionalFailureDegrades(t *testing.T) {
	c := NewChecker()
	c.Add("api", func(context.Context) error { return nil })
	c.AddOptional("kafka", func(context.Context) error { return errors.New("broker down") })

	response := c.Run(context.Background())
	assert.Equal(t, StatusDegraded, response.Status)
	assert.Equal(t, "broker down", response.Checks["kafka"].Message)
}

func TestChecker_RequiredFailureIsUnhealthy(t *testing.T) {
	c := NewChecker()
	c.Add("api", func(context.Context) error { return errors.New("connection refused") })
	c.AddOptional("kafka", func(context.Context) error { return errors.New("broker down") })

	assert.Equal(t, StatusUnhealthy, c.Run(context.Background()).Status)
}

func TestChecker_HandlerStatusCodes(t *testing.T) {
	c := NewChecker()
	failing := true
	c.Add("data", func(context.Context) error {
		if failing {
			return errors.New("not seeded")
		}
		return nil
	})

	e := echo.New()
	c.RegisterRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	failing = false
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, StatusHealthy, response.Status)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
