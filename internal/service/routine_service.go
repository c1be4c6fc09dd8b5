package service

import (
	"context"
	"errors"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// --- Inputs ---

type CreateRoutineInput struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	Blocks      []domain.RoutineBlockPrimitives
}

// UpdateRoutineInput is a field-level merge: absent fields stay untouched,
// an explicit null description clears it.
type UpdateRoutineInput struct {
	Name        Optional[string]                          `json:"name"`
	Description Optional[*string]                         `json:"description"`
	Blocks      Optional[[]domain.RoutineBlockPrimitives] `json:"blocks"`
}

// --- Service Interface ---
type RoutineService interface {
	CreateRoutine(ctx context.Context, in CreateRoutineInput) error
	UpdateRoutine(ctx context.Context, userID, routineID string, in UpdateRoutineInput) error
	DeleteRoutine(ctx context.Context, userID, routineID string) error
	FindRoutine(ctx context.Context, userID, routineID string) (domain.RoutinePrimitives, error)
	SearchRoutinesByUser(ctx context.Context, userID string) ([]domain.RoutinePrimitives, error)
	SearchRoutinesByCriteria(ctx context.Context, p criteria.Primitives) ([]domain.RoutinePrimitives, error)
	CountRoutinesByCriteria(ctx context.Context, p criteria.Primitives) (int64, error)
}

// --- Service Implementation ---

type routineService struct {
	routineRepo repository.RoutineRepository
}

func NewRoutineService(routineRepo repository.RoutineRepository) RoutineService {
	return &routineService{routineRepo: routineRepo}
}

func (s *routineService) CreateRoutine(ctx context.Context, in CreateRoutineInput) error {
	routine, err := domain.CreateRoutine(domain.CreateRoutineParams{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		UserID:      in.UserID,
		Blocks:      in.Blocks,
	})
	if err != nil {
		return err
	}
	if err := s.ensureIDAvailable(ctx, in.UserID, routine.ID()); err != nil {
		return err
	}
	return s.routineRepo.Save(ctx, routine)
}

// ensureIDAvailable lets a create through for a new id or for a routine the
// user already owns; another user's routine is never replaced.
func (s *routineService) ensureIDAvailable(ctx context.Context, userID, routineID string) error {
	existing, err := s.routineRepo.Search(ctx, routineID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return ensureRoutineBelongsToUser(existing, userID)
}

func (s *routineService) UpdateRoutine(ctx context.Context, userID, routineID string, in UpdateRoutineInput) error {
	routine, err := loadRoutine(ctx, s.routineRepo, routineID)
	if err != nil {
		return err
	}
	if err := ensureRoutineBelongsToUser(routine, userID); err != nil {
		return err
	}

	if in.Name.Set {
		if err := routine.UpdateName(in.Name.Value); err != nil {
			return err
		}
	}
	if in.Description.Set {
		if err := routine.UpdateDescription(in.Description.Value); err != nil {
			return err
		}
	}
	if in.Blocks.Set {
		if err := routine.UpdateBlocks(in.Blocks.Value); err != nil {
			return err
		}
	}

	return s.routineRepo.Save(ctx, routine)
}

func (s *routineService) DeleteRoutine(ctx context.Context, userID, routineID string) error {
	routine, err := loadRoutine(ctx, s.routineRepo, routineID)
	if err != nil {
		return err
	}
	if err := ensureRoutineBelongsToUser(routine, userID); err != nil {
		return err
	}
	if err := s.routineRepo.Delete(ctx, routineID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewRoutineDoesNotExistError(routineID)
		}
		return err
	}
	return nil
}

func (s *routineService) FindRoutine(ctx context.Context, userID, routineID string) (domain.RoutinePrimitives, error) {
	routine, err := loadRoutine(ctx, s.routineRepo, routineID)
	if err != nil {
		return domain.RoutinePrimitives{}, err
	}
	if err := ensureRoutineBelongsToUser(routine, userID); err != nil {
		return domain.RoutinePrimitives{}, err
	}
	return routine.ToPrimitives(), nil
}

func (s *routineService) SearchRoutinesByUser(ctx context.Context, userID string) ([]domain.RoutinePrimitives, error) {
	routines, err := s.routineRepo.SearchByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapSlice(routines, (*domain.Routine).ToPrimitives), nil
}

func (s *routineService) SearchRoutinesByCriteria(ctx context.Context, p criteria.Primitives) ([]domain.RoutinePrimitives, error) {
	c, err := criteria.FromPrimitives(p)
	if err != nil {
		return nil, err
	}
	routines, err := s.routineRepo.SearchByCriteria(ctx, c)
	if err != nil {
		return nil, err
	}
	return mapSlice(routines, (*domain.Routine).ToPrimitives), nil
}

func (s *routineService) CountRoutinesByCriteria(ctx context.Context, p criteria.Primitives) (int64, error) {
	c, err := criteria.FromPrimitives(p)
	if err != nil {
		return 0, err
	}
	return s.routineRepo.CountByCriteria(ctx, c)
}

// loadRoutine is the lookup-before-mutate step shared with the workout service.
func loadRoutine(ctx context.Context, repo repository.RoutineRepository, routineID string) (*domain.Routine, error) {
	routine, err := repo.Search(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewRoutineDoesNotExistError(routineID)
		}
		return nil, err
	}
	return routine, nil
}

func ensureRoutineBelongsToUser(routine *domain.Routine, userID string) error {
	if routine.BelongsTo(userID) {
		return nil
	}
	return domain.NewUnauthorizedResourceAccessError(domain.ResourceRoutine, routine.ID())
}
