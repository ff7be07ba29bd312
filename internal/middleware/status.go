package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ResponseStatus returns the status the client receives for a request whose
// handler chain returned err. Returned errors are rendered by the app's
// ErrorHandler only after every middleware has unwound, so the response
// status seen by a middleware is not final yet.
func ResponseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// routeTemplate returns the path template of the route that handled the
// request, e.g. "/api/posts/:postId". It reports false when no route matched.
func routeTemplate(c *fiber.Ctx, err error) (string, bool) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) &&
		(fiberErr.Code == fiber.StatusNotFound || fiberErr.Code == fiber.StatusMethodNotAllowed) {
		return "", false
	}
	return c.Route().Path, true
}
