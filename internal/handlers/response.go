package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// envelope is the uniform JSON response shape:
// {success, message, data} plus meta on list responses.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	Meta    *models.ListMeta `json:"meta,omitempty"`
}

func respondOK(c *fiber.Ctx, message string, data any) error {
	return c.JSON(envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Success: true, Message: message, Data: data})
}

func respondList(c *fiber.Ctx, message string, data any, meta models.ListMeta) error {
	return c.JSON(envelope{Success: true, Message: message, Data: data, Meta: &meta})
}

// errorEnvelope is the error response shape produced by the centralized
// handler.
type errorEnvelope struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ErrorDetails string `json:"errorDetails,omitempty"`
}

// ErrorHandler is installed as the Fiber app's error handler. Services throw
// apperrors.AppError values; anything else defaults to a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp := errorEnvelope{Message: appErr.Message}
		if appErr.Err != nil {
			resp.ErrorDetails = appErr.Err.Error()
		}
		if appErr.Status >= fiber.StatusInternalServerError {
			log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Status(appErr.Status).JSON(resp)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errorEnvelope{Message: fiberErr.Message})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(errorEnvelope{
		Message:      "Internal server error",
		ErrorDetails: err.Error(),
	})
}

// parseListQuery reads the uniform list filters from the query string.
func parseListQuery(c *fiber.Ctx) models.ListQuery {
	q := models.ListQuery{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true" || v == "1"
		q.IsActive = &active
	}
	return q
}

// validateStruct runs the struct validation rules and converts the first
// failure into a BadRequest error.
func validateStruct(validate *validator.Validate, s any) error {
	if err := validate.Struct(s); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok || len(validationErrors) == 0 {
			return apperrors.BadRequest("validation failed")
		}
		e := validationErrors[0]
		return apperrors.BadRequest(fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag()))
	}
	return nil
}

// formFileBytes reads an optional multipart file field, returning nil when
// the field is absent or the request is not multipart.
func formFileBytes(c *fiber.Ctx, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, apperrors.BadRequest("could not read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.BadRequest("could not read uploaded file")
	}
	return data, nil
}
