package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"jurnal/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// respondError writes err as a JSON error response. Unexpected errors are
// logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", httpErr.StatusCode).Msg("Request rejected")
	}
	return c.Status(httpErr.StatusCode).JSON(httpErr.Response)
}

// bindJSON parses and validates the body into dst. When ok is false a 400 has
// been written and err is whatever writing it returned.
func bindJSON(c *fiber.Ctx, validate *validator.Validate, dst interface{}) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(apperrors.ErrorResponse{
			Message: "Invalid request body",
			Error:   err.Error(),
			Code:    "VALIDATION_FAILED",
		})
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(apperrors.ErrorResponse{
				Message: "Validation failed",
				Error:   err.Error(),
				Code:    "VALIDATION_FAILED",
			})
		}
		errorMessages := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(apperrors.ErrorResponse{
			Message: "Validation failed",
			Code:    "VALIDATION_FAILED",
			Errors:  errorMessages,
		})
	}
	return true, nil
}

// ErrorHandler is the Fiber fallback for errors returned by handlers and
// middleware, such as unknown routes and recovered panics.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(apperrors.ErrorResponse{
				Message: fe.Message,
				Code:    strings.ToUpper(strings.ReplaceAll(fiberStatusText(fe.Code), " ", "_")),
			})
		}
		return respondError(c, log, err)
	}
}

func fiberStatusText(code int) string {
	if text := utils.StatusMessage(code); text != "" {
		return text
	}
	return "Error"
}
