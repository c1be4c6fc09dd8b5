package service

import (
	"context"
	"errors"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// --- Inputs ---

type CreateExerciseInput struct {
	ID             string
	UserID         string
	Name           string
	Description    *string
	TargetMuscles  []domain.TargetMusclePrimitives
	DefaultMetrics []string
}

// UpdateExerciseInput is a partial update; only set fields are applied.
type UpdateExerciseInput struct {
	Name           Optional[string]                          `json:"name"`
	Description    Optional[*string]                         `json:"description"`
	TargetMuscles  Optional[[]domain.TargetMusclePrimitives] `json:"targetMuscles"`
	DefaultMetrics Optional[[]string]                        `json:"defaultMetrics"`
}

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, in CreateExerciseInput) error
	UpdateExercise(ctx context.Context, userID, exerciseID string, in UpdateExerciseInput) error
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
	FindExercise(ctx context.Context, userID, exerciseID string) (domain.ExercisePrimitives, error)
	SearchExercisesByUser(ctx context.Context, userID string) ([]domain.ExercisePrimitives, error)
	SearchExercisesByCriteria(ctx context.Context, p criteria.Primitives) ([]domain.ExercisePrimitives, error)
	CountExercisesByCriteria(ctx context.Context, p criteria.Primitives) (int64, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise creates a custom exercise owned by the given user.
func (s *exerciseService) CreateExercise(ctx context.Context, in CreateExerciseInput) error {
	exercise, err := domain.CreateExercise(domain.CreateExerciseParams{
		ID:             in.ID,
		Name:           in.Name,
		Description:    in.Description,
		UserID:         &in.UserID,
		TargetMuscles:  in.TargetMuscles,
		DefaultMetrics: in.DefaultMetrics,
	})
	if err != nil {
		return err
	}

	// Only the owner may reuse an existing id.
	existing, err := s.exerciseRepo.Search(ctx, exercise.ID())
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return err
	case !existing.BelongsTo(in.UserID):
		return domain.NewUnauthorizedResourceAccessError(domain.ResourceExercise, exercise.ID())
	}
	return s.exerciseRepo.Save(ctx, exercise)
}

// UpdateExercise applies a partial update. System exercises cannot be changed by users.
func (s *exerciseService) UpdateExercise(ctx context.Context, userID, exerciseID string, in UpdateExerciseInput) error {
	exercise, err := s.findOwned(ctx, userID, exerciseID)
	if err != nil {
		return err
	}

	if in.Name.Set {
		if err := exercise.UpdateName(in.Name.Value); err != nil {
			return err
		}
	}
	if in.Description.Set {
		if err := exercise.UpdateDescription(in.Description.Value); err != nil {
			return err
		}
	}
	if in.TargetMuscles.Set {
		if err := exercise.UpdateTargetMuscles(in.TargetMuscles.Value); err != nil {
			return err
		}
	}
	if in.DefaultMetrics.Set {
		if err := exercise.UpdateDefaultMetrics(in.DefaultMetrics.Value); err != nil {
			return err
		}
	}

	return s.exerciseRepo.Save(ctx, exercise)
}

func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	if _, err := s.findOwned(ctx, userID, exerciseID); err != nil {
		return err
	}
	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewExerciseDoesNotExistError(exerciseID)
		}
		return err
	}
	return nil
}

// FindExercise returns a system exercise or one of the user's own.
func (s *exerciseService) FindExercise(ctx context.Context, userID, exerciseID string) (domain.ExercisePrimitives, error) {
	exercise, err := s.find(ctx, exerciseID)
	if err != nil {
		return domain.ExercisePrimitives{}, err
	}
	if !exercise.IsSystem() && !exercise.BelongsTo(userID) {
		return domain.ExercisePrimitives{}, domain.NewUnauthorizedResourceAccessError(domain.ResourceExercise, exerciseID)
	}
	return exercise.ToPrimitives(), nil
}

func (s *exerciseService) SearchExercisesByUser(ctx context.Context, userID string) ([]domain.ExercisePrimitives, error) {
	exercises, err := s.exerciseRepo.SearchByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapSlice(exercises, (*domain.Exercise).ToPrimitives), nil
}

func (s *exerciseService) SearchExercisesByCriteria(ctx context.Context, p criteria.Primitives) ([]domain.ExercisePrimitives, error) {
	c, err := criteria.FromPrimitives(p)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.SearchByCriteria(ctx, c)
	if err != nil {
		return nil, err
	}
	return mapSlice(exercises, (*domain.Exercise).ToPrimitives), nil
}

func (s *exerciseService) CountExercisesByCriteria(ctx context.Context, p criteria.Primitives) (int64, error) {
	c, err := criteria.FromPrimitives(p)
	if err != nil {
		return 0, err
	}
	return s.exerciseRepo.CountByCriteria(ctx, c)
}

func (s *exerciseService) find(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.Search(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewExerciseDoesNotExistError(exerciseID)
		}
		return nil, err
	}
	return exercise, nil
}

// findOwned loads an exercise the user may mutate.
func (s *exerciseService) findOwned(ctx context.Context, userID, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.find(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if !exercise.BelongsTo(userID) {
		return nil, domain.NewUnauthorizedResourceAccessError(domain.ResourceExercise, exerciseID)
	}
	return exercise, nil
}
