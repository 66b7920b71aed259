// Package health runs named connectivity checks and reports them for health and liveness endpoints.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckTimeout bounds each check
const CheckTimeout = 5 * time.Second

// CheckResult represents the result of a health check
type CheckResult struct {
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Latency string `json:"latency,omitempty" yaml:"latency,omitempty"`
}

// Response represents a health check response
type Response struct {
	Status     Status                 `json:"status" yaml:"status"`
	Uptime     string                 `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Checks     map[string]CheckResult `json:"checks,omitempty" yaml:"checks,omitempty"`
	ReportedAt time.Time              `json:"reported_at" yaml:"reportedAt"`
}

// Check returns nil when the dependency is reachable
type Check func(ctx context.Context) error

type namedCheck struct {
	check    Check
	optional bool
}

// Checker runs every registered check
type Checker struct {
	mu        sync.RWMutex
	checks    map[string]namedCheck
	order     []string
	startTime time.Time
}

// NewChecker creates a checker with no checks
func NewChecker() *Checker {
	return &Checker{
		checks:    make(map[string]namedCheck),
		startTime: time.Now(),
	}
}

// Add registers a required check. A failing required check makes the whole report unhealthy.
func (c *Checker) Add(name string, check Check) {
	c.add(name, namedCheck{check: check})
}

// AddOptional registers a check whose failure only degrades the report
func (c *Checker) AddOptional(name string, check Check) {
	c.add(name, namedCheck{check: check, optional: true})
}

func (c *Checker) add(name string, check namedCheck) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.checks[name]; !exists {
		c.order = append(c.order, name)
	}
	c.checks[name] = check
}

// Run executes every check in registration order
func (c *Checker) Run(ctx context.Context) Response {
	c.mu.RLock()
	order := append([]string(nil), c.order...)
	checks := make(map[string]namedCheck, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	results := make(map[string]CheckResult, len(order))
	for _, name := range order {
		results[name] = runCheck(ctx, checks[name])
	}

	return Response{
		Status:     calculateOverallStatus(results),
		Uptime:     time.Since(c.startTime).Round(time.Second).String(),
		Checks:     results,
		ReportedAt: time.Now(),
	}
}

func runCheck(ctx context.Context, check namedCheck) CheckResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	if err := check.check(ctx); err != nil {
		status := StatusUnhealthy
		if check.optional {
			status = StatusDegraded
		}
		return CheckResult{
			Status:  status,
			Message: err.Error(),
			Latency: time.Since(start).String(),
		}
	}

	return CheckResult{
		Status:  StatusHealthy,
		Latency: time.Since(start).String(),
	}
}

// calculateOverallStatus determines the overall health status
func calculateOverallStatus(checks map[string]CheckResult) Status {
	hasUnhealthy := false
	hasDegraded := false

	for _, check := range checks {
		switch check.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// HealthHandler runs the checks and answers 503 when unhealthy
func (c *Checker) HealthHandler(ctx echo.Context) error {
	response := c.Run(ctx.Request().Context())

	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	return ctx.JSON(statusCode, response)
}

// LivenessHandler reports the process is up without running checks
func (c *Checker) LivenessHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Response{
		Status:     StatusHealthy,
		Uptime:     time.Since(c.startTime).Round(time.Second).String(),
		ReportedAt: time.Now(),
	})
}

// RegisterRoutes registers /health and /health/live
func (c *Checker) RegisterRoutes(e *echo.Echo) {
	health := e.Group("/health")
	health.GET("", c.HealthHandler)
	health.GET("/live", c.LivenessHandler)
}
