package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	metrics        *metrics.Manager
}

func NewWorkoutHandler(workoutService service.WorkoutService, metricsManager *metrics.Manager) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, metrics: metricsManager}
}

type StartWorkoutRequest struct {
	RoutineID string `json:"routineId" binding:"required,uuid"`
}

// ListWorkouts godoc
// @Summary List the caller's workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} listResponse[domain.WorkoutPrimitives]
// @Failure 400 {object} gin.H "Invalid criteria"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	p := userCriteria(c, userID)

	workouts, err := h.workoutService.SearchWorkoutsByCriteria(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.workoutService.CountWorkoutsByCriteria(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse[domain.WorkoutPrimitives]{Data: workouts, Meta: listMeta{Total: total}})
}

// GetWorkout godoc
// @Summary Get one of the caller's workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} dataResponse[domain.WorkoutPrimitives]
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workoutID, ok := bindID(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.FindWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[domain.WorkoutPrimitives]{Data: workout})
}

// StartWorkout godoc
// @Summary Start a workout from a routine
// @Description Snapshots the routine's blocks into a new in-progress workout with the given id.
// @Tags Workouts
// @Accept json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param body body StartWorkoutRequest true "Routine to start from"
// @Success 201
// @Failure 403 {object} gin.H "Forbidden (routine owned by another user)"
// @Failure 404 {object} gin.H "Routine not found"
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) StartWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workoutID, ok := bindID(c)
	if !ok {
		return
	}
	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.workoutService.StartWorkoutFromRoutine(c.Request.Context(), userID, workoutID, req.RoutineID); err != nil {
		respondWithError(c, err)
		return
	}
	h.metrics.WorkoutEvent(metrics.WorkoutStarted)
	c.Status(http.StatusCreated)
}

// FinishWorkout godoc
// @Summary Finish an in-progress workout
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 204
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Failure 409 {object} gin.H "Already finished"
// @Router /workouts/{id}/finish [post]
func (h *WorkoutHandler) FinishWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workoutID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.workoutService.FinishWorkout(c.Request.Context(), userID, workoutID); err != nil {
		respondWithError(c, err)
		return
	}
	h.metrics.WorkoutEvent(metrics.WorkoutFinished)
	c.Status(http.StatusNoContent)
}

// DiscardWorkout godoc
// @Summary Discard an in-progress workout
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 204
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Failure 409 {object} gin.H "Already finished"
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DiscardWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workoutID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.workoutService.DiscardWorkout(c.Request.Context(), userID, workoutID); err != nil {
		respondWithError(c, err)
		return
	}
	h.metrics.WorkoutEvent(metrics.WorkoutDiscarded)
	c.Status(http.StatusNoContent)
}
