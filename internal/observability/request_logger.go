package observability

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey = "request_id"
	unmatchedKey = "route_unmatched"
)

// UnmatchedRoute labels requests that no registered route handled.
const UnmatchedRoute = "<unmatched>"

// RequestLogger assigns a request id, then logs and counts every request once
// the downstream chain has produced a response. Only the method, route, status,
// latency and request id are logged; headers and bodies never are.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(fiber.HeaderXRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Locals(requestIDKey, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		err := c.Next()
		NoteRouteMiss(c, err)

		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := RoutePattern(c)
		metrics.RecordRequest(route, c.Method(), status, latency)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request completed", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
		return err
	}
}

// RequestID returns the id assigned by RequestLogger, or "" outside of it.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// NoteRouteMiss marks the request as unmatched when err is the router's
// not-found error. Handlers report missing resources as domain errors, so a
// *fiber.Error 404 only comes from the router.
func NoteRouteMiss(c *fiber.Ctx, err error) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		c.Locals(unmatchedKey, true)
	}
}

// RoutePattern returns the matched route template (e.g. /api/admin/users/:id)
// so that counters do not grow with every distinct id. The raw path is never
// used; unmatched requests share UnmatchedRoute.
func RoutePattern(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedKey).(bool); unmatched {
		return UnmatchedRoute
	}
	if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
		return r.Path
	}
	return UnmatchedRoute
}
