package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/collably/pkg/context"
)

type captured struct {
	mu       sync.Mutex
	messages []ectologger.EctoLogMessage
}

func (c *captured) logger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.messages = append(c.messages, msg)
	})
}

func (c *captured) find(message string) (ectologger.EctoLogMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, msg := range c.messages {
		if msg.Message == message {
			return msg, true
		}
	}
	return ectologger.EctoLogMessage{}, false
}

func newEcho(logger ectologger.Logger) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = Error(logger)
	e.Use(Context())
	e.Use(Logger(logger))
	return e
}

func TestLogger_TiesRequestToClientAction(t *testing.T) {
	logs := &captured{}
	e := newEcho(logs.logger())
	e.GET("/brands", func(c echo.Context) error {
		ctx := context.SetRoute(c.Request().Context(), "brands.list")
		c.SetRequest(c.Request().WithContext(context.SetPrincipal(ctx, "admin-1")))
		return c.JSON(http.StatusOK, map[string]any{"brands": []any{}})
	})

	req := httptest.NewRequest(http.MethodGet, "/brands", nil)
	req.Header.Set(string(context.ActionKey), "brands/fetchAllBrands")
	req.Header.Set(string(context.ActionTokenKey), "token-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	msg, ok := logs.find("Request")
	require.True(t, ok)
	assert.Equal(t, "brands/fetchAllBrands", msg.Fields["action"])
	assert.Equal(t, "token-1", msg.Fields["action_token"])
	assert.Equal(t, "brands.list", msg.Fields["route"])
	assert.Equal(t, "admin-1", msg.Fields["principal"])
	assert.Equal(t, http.StatusOK, msg.Fields["status"])
	assert.NotContains(t, msg.Fields, "fault")
}

func TestLogger_MarksInjectedFaults(t *testing.T) {
	logs := &captured{}
	e := newEcho(logs.logger())
	e.POST("/createbrand", func(c echo.Context) error {
		MarkFault(c)
		return httperror.NewHTTPError(http.StatusInternalServerError, "duplicate email")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/createbrand", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "duplicate email", body.Message)
	assert.NotEmpty(t, body.RequestID)

	msg, ok := logs.find("Request")
	require.True(t, ok)
	assert.Equal(t, true, msg.Fields["fault"])
	assert.NotContains(t, msg.Fields, "action")
}

func TestError_UnknownErrorIsInternal(t *testing.T) {
	e := newEcho(ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("nil map")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Message)
}
