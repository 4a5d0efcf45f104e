package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
)

// ErrorBody is the payload of every error response
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// FieldError describes one failed validation rule
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func apiError(status int, code, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, ErrorBody{Code: code, Message: message})
}

func badRequest(message string) *echo.HTTPError {
	return apiError(http.StatusBadRequest, "invalid_request", message)
}

// validationError turns validator output into a response with per-field details
func validationError(err error, status int) *echo.HTTPError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apiError(status, "validation_error", err.Error())
	}

	details := make([]FieldError, 0, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fieldPath(fe), Rule: fe.Tag(), Param: fe.Param()})
		fields = append(fields, fieldPath(fe))
	}

	return echo.NewHTTPError(status, ErrorBody{
		Code:    "validation_error",
		Message: "invalid " + strings.Join(fields, ", "),
		Details: details,
	})
}

// fieldPath drops the root struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// domainError maps service errors onto HTTP responses. Callers adjust the
// few statuses that differ per endpoint before falling back to it.
func domainError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		he = apiError(http.StatusNotFound, "task_not_found", "Task not found")
	case errors.Is(err, entities.ErrSpaceNotFound):
		he = apiError(http.StatusNotFound, "space_not_found", "Space not found")
	case errors.Is(err, entities.ErrTemplateNotFound):
		he = apiError(http.StatusNotFound, "template_not_found", "Task template not found")
	case errors.Is(err, entities.ErrMessageNotFound):
		he = apiError(http.StatusNotFound, "message_not_found", "No motivational message for this task")
	case errors.Is(err, entities.ErrSpaceTypeNotFound):
		he = apiError(http.StatusBadRequest, "invalid_space_type", "Unknown space type")
	case errors.Is(err, entities.ErrDuplicateTaskName):
		he = apiError(http.StatusConflict, "duplicate_task", "A task with this name already exists in the space")
	case errors.Is(err, entities.ErrDuplicateSpaceName):
		he = apiError(http.StatusConflict, "duplicate_space", "A space with this name already exists")
	case errors.Is(err, entities.ErrTaskVersionConflict):
		he = apiError(http.StatusConflict, "conflict", "The task was modified by another request, reload and retry")
	case errors.Is(err, entities.ErrPostponementLimitExceeded):
		he = apiError(http.StatusUnprocessableEntity, "postponement_limit_exceeded",
			fmt.Sprintf("A task can be postponed at most %d times per cycle", entities.MaxPostponements))
	case errors.Is(err, entities.ErrInvalidRecurrence):
		he = apiError(http.StatusUnprocessableEntity, "validation_error", "Recurrence value must be positive and unit days or months")
	case errors.Is(err, entities.ErrPageOutOfRange):
		he = apiError(http.StatusBadRequest, "page_out_of_range", err.Error())
	case errors.Is(err, entities.ErrRateLimited):
		he = apiError(http.StatusTooManyRequests, "rate_limited", "Too many messages requested, try again later")
	case errors.Is(err, entities.ErrGeneratorUnavailable):
		he = apiError(http.StatusBadGateway, "generator_unavailable", "The message generator is unavailable")
	default:
		he = apiError(http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
	return he.SetInternal(err)
}

// withStatus overrides the status of a mapped error
func withStatus(he *echo.HTTPError, status int) *echo.HTTPError {
	he.Code = status
	return he
}

// ErrorHandler renders every error as an ErrorResponse and logs server errors
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			body = ErrorBody{Code: "internal_error", Message: "An unexpected error occurred"}
		)

		var he *echo.HTTPError
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &he):
			code = he.Code
			switch msg := he.Message.(type) {
			case ErrorBody:
				body = msg
			case string:
				body = ErrorBody{Code: statusCode(code), Message: msg}
			default:
				body = ErrorBody{Code: statusCode(code), Message: http.StatusText(code)}
			}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %w", err, he.Internal)
			}
		case errors.As(err, &verrs):
			he := validationError(verrs, http.StatusBadRequest)
			code, body = he.Code, he.Message.(ErrorBody)
		}

		if code >= http.StatusInternalServerError {
			log.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path, "status", code)
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{Error: body})
		}
		if err != nil {
			log.Errorw("Error sending response", "error", err)
		}
	}
}

// statusCode derives a snake_case code such as "not_found" from a status
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
