package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abim/abim-backend/internal/response"
	"github.com/abim/abim-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// domainErrors maps service sentinels to their HTTP status and error code.
var domainErrors = []struct {
	err    error
	status int
	code   response.ErrCode
}{
	{service.ErrCourseNotFound, http.StatusNotFound, response.ErrCourseNotFound},
	{service.ErrBlogNotFound, http.StatusNotFound, response.ErrBlogNotFound},
	{service.ErrBannerNotFound, http.StatusNotFound, response.ErrBannerNotFound},
	{service.ErrApplicationNotFound, http.StatusNotFound, response.ErrApplicationNotFound},
	{service.ErrStudentNotFound, http.StatusNotFound, response.ErrStudentNotFound},
	{service.ErrDuplicateEmail, http.StatusBadRequest, response.ErrDuplicateEmail},
	{service.ErrDuplicatePhone, http.StatusBadRequest, response.ErrDuplicatePhone},
	{service.ErrInvalidStatus, http.StatusBadRequest, response.ErrInvalidStatus},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
	{service.ErrSessionInvalidated, http.StatusUnauthorized, response.ErrSessionInvalidated},
	{service.ErrUnsupportedFileType, http.StatusBadRequest, response.ErrUnsupportedFile},
	{service.ErrFileTooLarge, http.StatusBadRequest, response.ErrFileTooLarge},
}

// fail writes the error response for err. Anything unclassified is logged and
// reported as a generic 500.
func fail(c *gin.Context, log zerolog.Logger, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
		return
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			response.Fail(c, m.status, m.code)
			return
		}
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Str("request_id", c.GetString(response.ContextKeyRequestID)).
		Msg("Request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// paramID parses a positive integer path parameter, writing a 400 when it is malformed.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
