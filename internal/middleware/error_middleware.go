package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto HTTP responses. Controllers
// funnel every service error through here so the status mapping and response
// envelope stay uniform.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrAuthenticationRequired):
		respond(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message))
	case errors.Is(err, apperrors.ErrNotFound):
		respond(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message))
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, message))
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message))
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message))
	case errors.Is(err, apperrors.ErrTimeout):
		respond(c, http.StatusGatewayTimeout, dto.NewErrorDetail(dto.ErrorCodeStorageError, "Storage operation timed out"))
	case errors.Is(err, apperrors.ErrStorage):
		// do not leak backend details to clients
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Storage failure")
		respond(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeStorageError, "Storage failure"))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		respond(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

// HandleBindingError maps a request binding failure onto a 400 response,
// with per-field messages when the failure comes from validation tags.
func HandleBindingError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body")
	if messages := validationMessages(err); len(messages) > 0 {
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(messages)
	} else {
		detail = detail.WithDetails(err.Error())
	}
	respond(c, http.StatusBadRequest, detail)
}

func respond(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
