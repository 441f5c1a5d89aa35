package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-youtube-clone/internal/application"
	"github.com/oksasatya/go-youtube-clone/pkg/response"
)

// writeServiceError maps the application sentinels onto HTTP statuses.
// Unknown errors become an opaque 500; the detail stays in the log.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, app.ErrVideoNotFound):
		response.Error[any](c, http.StatusNotFound, "video not found", nil)
	case errors.Is(err, app.ErrCommentNotFound):
		response.Error[any](c, http.StatusNotFound, "comment not found", nil)
	case errors.Is(err, app.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, app.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "not allowed", nil)
	case errors.Is(err, app.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, app.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, app.ErrEmptyComment), errors.Is(err, app.ErrMissingVideoURL):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
