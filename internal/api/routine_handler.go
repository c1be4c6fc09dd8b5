package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
)

type RoutineHandler struct {
	routineService service.RoutineService
}

func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

type CreateRoutineRequest struct {
	Name        string                          `json:"name" binding:"required"`
	Description *string                         `json:"description"`
	Blocks      []domain.RoutineBlockPrimitives `json:"blocks"`
}

// ListRoutines godoc
// @Summary List the caller's routines
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Success 200 {object} listResponse[domain.RoutinePrimitives]
// @Failure 400 {object} gin.H "Invalid criteria"
// @Router /routines [get]
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	p := userCriteria(c, userID)

	routines, err := h.routineService.SearchRoutinesByCriteria(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.routineService.CountRoutinesByCriteria(c.Request.Context(), p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse[domain.RoutinePrimitives]{Data: routines, Meta: listMeta{Total: total}})
}

// GetRoutine godoc
// @Summary Get one of the caller's routines
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Param id path string true "Routine ID"
// @Success 200 {object} dataResponse[domain.RoutinePrimitives]
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /routines/{id} [get]
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	routineID, ok := bindID(c)
	if !ok {
		return
	}

	routine, err := h.routineService.FindRoutine(c.Request.Context(), userID, routineID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[domain.RoutinePrimitives]{Data: routine})
}

// CreateRoutine godoc
// @Summary Create a routine
// @Tags Routines
// @Accept json
// @Security BearerAuth
// @Param id path string true "Routine ID"
// @Param routine body CreateRoutineRequest true "Routine template"
// @Success 201
// @Failure 400 {object} gin.H "Invalid input"
// @Router /routines/{id} [put]
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	routineID, ok := bindID(c)
	if !ok {
		return
	}
	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.routineService.CreateRoutine(c.Request.Context(), service.CreateRoutineInput{
		ID:          routineID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Blocks:      req.Blocks,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// UpdateRoutine godoc
// @Summary Partially update a routine
// @Description Only the fields present in the body are changed; "description": null clears it.
// @Tags Routines
// @Accept json
// @Security BearerAuth
// @Param id path string true "Routine ID"
// @Param routine body service.UpdateRoutineInput true "Fields to change"
// @Success 204
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /routines/{id} [patch]
func (h *RoutineHandler) UpdateRoutine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	routineID, ok := bindID(c)
	if !ok {
		return
	}
	var req service.UpdateRoutineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.routineService.UpdateRoutine(c.Request.Context(), userID, routineID, req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRoutine godoc
// @Summary Delete a routine
// @Tags Routines
// @Security BearerAuth
// @Param id path string true "Routine ID"
// @Success 204
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /routines/{id} [delete]
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	routineID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.routineService.DeleteRoutine(c.Request.Context(), userID, routineID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
