package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
)

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondWithError maps service and domain errors to HTTP statuses.
// Anything unrecognised is logged and hidden behind a generic 500.
func respondWithError(c *gin.Context, err error) {
	var (
		invalidArgument *domain.InvalidArgumentError
		doesNotExist    *domain.DoesNotExistError
		unauthorized    *domain.UnauthorizedResourceAccessError
		alreadyFinished *domain.WorkoutAlreadyFinishedError
		metricExists    *domain.ExerciseMetricAlreadyExistsError
	)

	switch {
	case errors.As(err, &invalidArgument):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &doesNotExist):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &unauthorized):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.As(err, &alreadyFinished), errors.As(err, &metricExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case domain.IsDomainError(err):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed), errors.Is(err, service.ErrInvalidToken):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	default:
		log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("request failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "An internal server error occurred")
	}
}
