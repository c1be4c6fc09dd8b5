package service

import (
	"context"
	"errors"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// --- Service Interface ---
type WorkoutService interface {
	// StartWorkoutFromRoutine snapshots the routine into a new in-progress workout.
	StartWorkoutFromRoutine(ctx context.Context, userID, workoutID, routineID string) error
	FinishWorkout(ctx context.Context, userID, workoutID string) error
	// DiscardWorkout deletes a workout that is still in progress.
	DiscardWorkout(ctx context.Context, userID, workoutID string) error
	FindWorkout(ctx context.Context, userID, workoutID string) (domain.WorkoutPrimitives, error)
	SearchWorkoutsByUser(ctx context.Context, userID string) ([]domain.WorkoutPrimitives, error)
	SearchWorkoutsByCriteria(ctx context.Context, p criteria.Primitives) ([]domain.WorkoutPrimitives, error)
	CountWorkoutsByCriteria(ctx context.Context, p criteria.Primitives) (int64, error)
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	routineRepo repository.RoutineRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, routineRepo repository.RoutineRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		routineRepo: routineRepo,
	}
}

func (s *workoutService) StartWorkoutFromRoutine(ctx context.Context, userID, workoutID, routineID string) error {
	started, err := s.alreadyStarted(ctx, userID, workoutID)
	if err != nil || started {
		return err
	}

	routine, err := loadRoutine(ctx, s.routineRepo, routineID)
	if err != nil {
		return err
	}
	if err := ensureRoutineBelongsToUser(routine, userID); err != nil {
		return err
	}

	template := routine.ToPrimitives()
	workout, err := domain.CreateWorkout(domain.CreateWorkoutParams{
		ID:        workoutID,
		UserID:    userID,
		RoutineID: &routineID,
		Name:      template.Name,
		Blocks:    copyRoutineBlocks(template.Blocks),
	})
	if err != nil {
		return err
	}

	return s.workoutRepo.Save(ctx, workout)
}

func (s *workoutService) FinishWorkout(ctx context.Context, userID, workoutID string) error {
	workout, err := s.loadInProgress(ctx, userID, workoutID)
	if err != nil {
		return err
	}
	if err := workout.Finish(); err != nil {
		return err
	}
	return s.workoutRepo.Save(ctx, workout)
}

func (s *workoutService) DiscardWorkout(ctx context.Context, userID, workoutID string) error {
	if _, err := s.loadInProgress(ctx, userID, workoutID); err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewWorkoutDoesNotExistError(workoutID)
		}
		return err
	}
	return nil
}

func (s *workoutService) FindWorkout(ctx context.Context, userID, workoutID string) (domain.WorkoutPrimitives, error) {
	workout, err := s.load(ctx, workoutID)
	if err != nil {
		return domain.WorkoutPrimitives{}, err
	}
	if !workout.BelongsTo(userID) {
		return domain.WorkoutPrimitives{}, domain.NewUnauthorizedResourceAccessError(domain.ResourceWorkout, workoutID)
	}
	return workout.ToPrimitives(), nil
}

func (s *workoutService) SearchWorkoutsByUser(ctx context.Context, userID string) ([]domain.WorkoutPrimitives, error) {
	workouts, err := s.workoutRepo.SearchByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapSlice(workouts, (*domain.Workout).ToPrimitives), nil
}

func (s *workoutService) SearchWorkoutsByCriteria(ctx context.Context, p criteria.Primitives) ([]domain.WorkoutPrimitives, error) {
	c, err := criteria.FromPrimitives(p)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.SearchByCriteria(ctx, c)
	if err != nil {
		return nil, err
	}
	return mapSlice(workouts, (*domain.Workout).ToPrimitives), nil
}

func (s *workoutService) CountWorkoutsByCriteria(ctx context.Context, p criteria.Primitives) (int64, error) {
	c, err := criteria.FromPrimitives(p)
	if err != nil {
		return 0, err
	}
	return s.workoutRepo.CountByCriteria(ctx, c)
}

func (s *workoutService) load(ctx context.Context, workoutID string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.Search(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewWorkoutDoesNotExistError(workoutID)
		}
		return nil, err
	}
	return workout, nil
}

// alreadyStarted reports whether workoutID is the user's in-progress workout.
// Starting it again is a no-op; a finished workout or one owned by someone
// else cannot be started over.
func (s *workoutService) alreadyStarted(ctx context.Context, userID, workoutID string) (bool, error) {
	existing, err := s.workoutRepo.Search(ctx, workoutID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !existing.BelongsTo(userID) {
		return false, domain.NewUnauthorizedResourceAccessError(domain.ResourceWorkout, workoutID)
	}
	if existing.IsFinished() {
		return false, domain.NewWorkoutAlreadyFinishedError(workoutID)
	}
	return true, nil
}

// loadInProgress checks existence, then ownership, then that the workout is not finished.
func (s *workoutService) loadInProgress(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	workout, err := s.load(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if !workout.BelongsTo(userID) {
		return nil, domain.NewUnauthorizedResourceAccessError(domain.ResourceWorkout, workoutID)
	}
	if workout.IsFinished() {
		return nil, domain.NewWorkoutAlreadyFinishedError(workoutID)
	}
	return workout, nil
}
