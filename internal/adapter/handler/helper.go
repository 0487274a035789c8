package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/errors"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/dto/common"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	aiuse "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/ai"
	meetingUsecase "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/meeting"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/table"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized 200 response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessStatus writes a standardized success response with status
func HandleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Debug("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := ToAppError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("app_code", appErr.Code.String()),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	body := common.ErrorResponse{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
		Details: appErr.Details,
	}
	if appErr.Raw != nil {
		body.Info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, body)
}

// ToAppError maps domain, use case and storage errors to API errors.
// Anything unrecognized is an internal error.
func ToAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	var httpErr *echo.HTTPError

	switch {
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrNotFound("Meeting")
	case stdErrors.Is(err, entities.ErrInvalidPagination):
		return errors.ErrInvalidPagination(err)
	case stdErrors.Is(err, entities.ErrEmptyTranscript):
		return errors.ErrEmptyTranscript()
	case stdErrors.Is(err, entities.ErrInvalidRequest):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, meetingUsecase.ErrMissingAudio):
		return errors.ErrMissingAudio()
	case stdErrors.Is(err, aiuse.ErrExtraction):
		return errors.ErrAIServiceUnavailable(err)
	case stdErrors.Is(err, meetingUsecase.ErrTranscriberUnavailable):
		e := errors.ErrAIServiceUnavailable(err)
		e.Message = "Transcription is not configured"
		return e
	case stdErrors.Is(err, meetingUsecase.ErrTranscription):
		return errors.ErrTranscriptionFailed(err)
	case stdErrors.Is(err, meetingUsecase.ErrArchive):
		return errors.ErrStorageFailed(err)
	case stdErrors.Is(err, table.ErrConstraintViolation):
		return errors.ErrDBConstraintViolation(err)
	case stdErrors.Is(err, table.ErrSchema):
		return errors.ErrDBSchema(err)
	case stdErrors.As(err, &verrs):
		return errors.ErrInvalidArgument(verrs.Error())
	case stdErrors.As(err, &httpErr):
		if httpErr.Code == http.StatusNotFound {
			return errors.ErrNotFound("Route")
		}
		if httpErr.Code < http.StatusInternalServerError {
			e := errors.ErrInvalidPayload()
			e.HTTPCode = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok && msg != "" {
				e.Message = msg
			}
			return e
		}
		return errors.ErrInternal(err)
	default:
		return errors.ErrInternal(err)
	}
}

// NewHTTPErrorHandler renders errors that escape handlers, such as unknown
// routes, in the same shape as handler errors.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if herr := HandleError(logger, c, err); herr != nil && logger != nil {
			logger.Error("http.response.write_failed", zap.Error(herr))
		}
	}
}
