package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name           string                          `json:"name" binding:"required"`
	Description    *string                         `json:"description"`
	TargetMuscles  []domain.TargetMusclePrimitives `json:"targetMuscles"`
	DefaultMetrics []string                        `json:"defaultMetrics"`
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List the caller's exercises
// @Description Criteria query string (filters, orderBy, orderType, pageSize, pageNumber) scoped to the authenticated user.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {object} listResponse[domain.ExercisePrimitives]
// @Failure 400 {object} gin.H "Invalid criteria"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	p := userCriteria(c, userID)

	exercises, err := h.exerciseService.SearchExercisesByCriteria(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.exerciseService.CountExercisesByCriteria(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse[domain.ExercisePrimitives]{Data: exercises, Meta: listMeta{Total: total}})
}

// GetExercise godoc
// @Summary Get an exercise
// @Description Returns a system exercise or one owned by the caller.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} dataResponse[domain.ExercisePrimitives]
// @Failure 403 {object} gin.H "Forbidden (owned by another user)"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := bindID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.FindExercise(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[domain.ExercisePrimitives]{Data: exercise})
}

// CreateExercise godoc
// @Summary Create a custom exercise
// @Description The client picks the id; the exercise is owned by the caller.
// @Tags Exercises
// @Accept json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := bindID(c)
	if !ok {
		return
	}
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.exerciseService.CreateExercise(c.Request.Context(), service.CreateExerciseInput{
		ID:             exerciseID,
		UserID:         userID,
		Name:           req.Name,
		Description:    req.Description,
		TargetMuscles:  req.TargetMuscles,
		DefaultMetrics: req.DefaultMetrics,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// UpdateExercise godoc
// @Summary Partially update an exercise
// @Tags Exercises
// @Accept json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body service.UpdateExerciseInput true "Fields to change"
// @Success 204
// @Failure 403 {object} gin.H "Forbidden (system exercise or owned by another user)"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [patch]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := bindID(c)
	if !ok {
		return
	}
	var req service.UpdateExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, exerciseID, req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteExercise godoc
// @Summary Delete a custom exercise
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, exerciseID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Exercise metrics ---

// ExerciseMetricHandler serves the read-only metric catalogue.
type ExerciseMetricHandler struct {
	metricService service.ExerciseMetricService
}

func NewExerciseMetricHandler(metricService service.ExerciseMetricService) *ExerciseMetricHandler {
	return &ExerciseMetricHandler{metricService: metricService}
}

// ListExerciseMetrics godoc
// @Summary List all exercise metrics
// @Tags ExerciseMetrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dataResponse[[]domain.ExerciseMetricPrimitives]
// @Router /exercise-metrics [get]
func (h *ExerciseMetricHandler) ListExerciseMetrics(c *gin.Context) {
	metrics, err := h.metricService.SearchAllExerciseMetrics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[[]domain.ExerciseMetricPrimitives]{Data: metrics})
}
