package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-tracker/internal/service"
)

type SystemPromptHandler struct {
	promptService service.SystemPromptService
}

func NewSystemPromptHandler(promptService service.SystemPromptService) *SystemPromptHandler {
	return &SystemPromptHandler{promptService: promptService}
}

type PutSystemPromptRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetSystemPrompt godoc
// @Summary Get the caller's AI system prompt
// @Description data is null when no prompt was stored.
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dataResponse[string]
// @Router /ai/system-prompt [get]
func (h *SystemPromptHandler) GetSystemPrompt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	prompt, err := h.promptService.GetSystemPrompt(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[*string]{Data: prompt})
}

// PutSystemPrompt godoc
// @Summary Store the caller's AI system prompt
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PutSystemPromptRequest true "Prompt content"
// @Success 200 {object} dataResponse[string]
// @Failure 400 {object} gin.H "Empty or too long"
// @Router /ai/system-prompt [put]
func (h *SystemPromptHandler) PutSystemPrompt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req PutSystemPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.promptService.PutSystemPrompt(c.Request.Context(), userID, req.Content); err != nil {
		respondWithError(c, err)
		return
	}

	prompt, err := h.promptService.GetSystemPrompt(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[*string]{Data: prompt})
}
