package serverutils

import (
	"errors"

	"coachsite-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts application errors into HTTP responses.
// Internal error details never reach the client, only the category message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code, message := statusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func statusFor(err error) (int, string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindConfiguration, apperrors.KindServiceUnavailable:
		return fiber.StatusServiceUnavailable, "Service temporarily unavailable"
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized, "Unauthorized"
	case apperrors.KindForbidden:
		return fiber.StatusForbidden, "Forbidden"
	case apperrors.KindValidation:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return fiber.StatusBadRequest, appErr.Message
		}
		return fiber.StatusBadRequest, "Invalid request"
	case apperrors.KindNotFound:
		return fiber.StatusNotFound, "Resource not found"
	case apperrors.KindLimitExceeded:
		return fiber.StatusTooManyRequests, "Daily message limit reached"
	case apperrors.KindGeneration:
		return fiber.StatusBadGateway, "Generation failed"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
