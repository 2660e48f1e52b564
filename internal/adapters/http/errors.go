package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/data-tales/tree-locator/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, rate_limited, upstream_error, internal_error
	Message   string `json:"message"` // Human-readable message
	Hint      string `json:"hint,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code, message, hint string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		Hint:      hint,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg, hint string) error {
	return newError(c, 400, "bad_request", msg, hint)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg, hint string) error {
	return newError(c, 404, "not_found", msg, hint)
}

// errRateLimited returns a 429 error.
func errRateLimited(c *fiber.Ctx, msg, hint string) error {
	return newError(c, 429, "rate_limited", msg, hint)
}

// errUpstream returns a 502 error.
func errUpstream(c *fiber.Ctx, msg, hint string) error {
	return newError(c, 502, "upstream_error", msg, hint)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg, "please retry later")
}

// respondError maps a pipeline error to the matching status code, keeping
// the user-facing message and hint when the error carries them.
func respondError(c *fiber.Ctx, err error) error {
	ue, ok := domain.AsUserError(err)
	if !ok {
		return errInternal(c, "unexpected error")
	}
	switch ue.Kind {
	case domain.KindValidation:
		return errBadRequest(c, ue.Message, ue.Hint)
	case domain.KindNotFound:
		return errNotFound(c, ue.Message, ue.Hint)
	case domain.KindRateLimited:
		return errRateLimited(c, ue.Message, ue.Hint)
	case domain.KindUpstream:
		return errUpstream(c, ue.Message, ue.Hint)
	}
	return errInternal(c, ue.Message)
}
