package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

// APIError is a structured error response.
type APIError struct {
	Status    int            `json:"status"`
	Code      string         `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string         `json:"message"` // Human-readable message
	Issues    []domain.Issue `json:"issues,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	return sendError(c, APIError{Status: status, Code: code, Message: message})
}

func sendError(c *fiber.Ctx, e APIError) error {
	e.RequestID, _ = c.Locals("requestid").(string)
	return c.Status(e.Status).JSON(e)
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errUnprocessable returns a 422 error listing every rejected field.
func errUnprocessable(c *fiber.Ctx, issues []domain.Issue) error {
	return sendError(c, APIError{
		Status:  fiber.StatusUnprocessableEntity,
		Code:    "unprocessable_entity",
		Message: "validation failed",
		Issues:  issues,
	})
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// respondError maps a service error onto the matching response. Decode
// failures reaching this point come from stored data, not from the client.
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return errUnprocessable(c, verr.Issues)
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, "resource not found")
	case ewkb.ReasonOf(err) != 0:
		LoggerFromCtx(c.UserContext()).Error("stored geometry failed to decode", "error", err)
		return errInternal(c, "stored geometry is corrupt")
	default:
		LoggerFromCtx(c.UserContext()).Error("request failed", "error", err)
		return errInternal(c, "internal error")
	}
}

// geometryIssue reports a client supplied geometry that could not be read.
func geometryIssue(c *fiber.Ctx, path string, err error) error {
	code := domain.IssueInvalid
	if r := ewkb.ReasonOf(err); r != 0 {
		code = r.String()
	}
	slog.DebugContext(c.UserContext(), "rejected geometry", "path", path, "error", err)
	return errUnprocessable(c, []domain.Issue{{Path: []string{path}, Code: code, Message: err.Error()}})
}
