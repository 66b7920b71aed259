package middleware

import (
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/collably/pkg/context"
)

// faultKey marks a request answered by an injected fault
const faultKey = "fault"

// MarkFault records that the response was an injected fault rather than a handler result
func MarkFault(c echo.Context) {
	c.Set(faultKey, true)
}

// Logger writes one line per request, tied to the client action that sent it
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()
			if err = next(c); err != nil {
				c.Error(err)
			}

			ctx := c.Request().Context()
			fields := map[string]interface{}{
				"request_id": context.GetRequestID(ctx),
				"method":     c.Request().Method,
				"route":      context.GetRoute(ctx),
				"status":     c.Response().Status,
				"latency":    time.Since(start).String(),
			}
			if action := context.GetAction(ctx); action != "" {
				fields["action"] = action
				fields["action_token"] = context.GetActionToken(ctx)
			}
			if principal := context.GetPrincipal(ctx); principal != "" {
				fields["principal"] = principal
			}
			if fault, _ := c.Get(faultKey).(bool); fault {
				fields["fault"] = true
			}

			logger.WithContext(ctx).WithFields(fields).Debug("Request")

			return nil
		}
	}
}
