package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"unicode/utf8"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/storage"
)

const (
	maxSystemPromptLength  = 20000
	systemPromptObjectType = "text/plain; charset=utf-8"
)

// --- Service Interface ---

// SystemPromptService stores the per-user prompt used by the AI coach.
type SystemPromptService interface {
	// GetSystemPrompt returns nil when the user never stored a prompt.
	GetSystemPrompt(ctx context.Context, userID string) (*string, error)
	PutSystemPrompt(ctx context.Context, userID, content string) error
}

// --- Service Implementation ---

type systemPromptService struct {
	store  storage.ObjectStorage
	prefix string
}

func NewSystemPromptService(store storage.ObjectStorage, prefix string) SystemPromptService {
	return &systemPromptService{store: store, prefix: prefix}
}

func (s *systemPromptService) GetSystemPrompt(ctx context.Context, userID string) (*string, error) {
	body, err := s.store.GetObject(ctx, s.objectKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	content := string(body)
	return &content, nil
}

func (s *systemPromptService) PutSystemPrompt(ctx context.Context, userID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.NewInvalidArgumentError("System prompt cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxSystemPromptLength {
		return domain.NewInvalidArgumentError("System prompt is too long (max %d characters)", maxSystemPromptLength)
	}
	return s.store.PutObject(ctx, s.objectKey(userID), []byte(content), systemPromptObjectType)
}

// objectKey is "<prefix><userID>.txt"; path.Base strips any path segments from the id.
func (s *systemPromptService) objectKey(userID string) string {
	return s.prefix + path.Base(userID) + ".txt"
}
