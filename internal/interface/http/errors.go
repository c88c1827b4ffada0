package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/internal/application"
	"github.com/oksasatya/rupaykg-biomass/pkg/response"
	"github.com/oksasatya/rupaykg-biomass/pkg/validation"
)

// writeError maps application errors onto status codes and the error envelope.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var authz *application.AuthzError
	var storage *application.StorageError
	var input *application.InputError
	switch {
	case errors.As(err, &input):
		response.Abort(c, http.StatusBadRequest, "invalid payload", map[string]string{input.Field: input.Message})
	case errors.As(err, &authz):
		response.Abort(c, http.StatusForbidden, authz.Message, nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Abort(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrInvalidOrExpiredToken):
		response.Abort(c, http.StatusUnauthorized, "invalid or expired token", nil)
	case errors.As(err, &storage):
		logger.WithError(storage.Err).
			WithField("request_id", c.GetString("request_id")).
			WithField("op", storage.Op).
			Error("storage failure")
		response.Abort(c, http.StatusInternalServerError, "storage unavailable", nil)
	default:
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled error")
		response.Abort(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}
