package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// --- Users ---

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" || user.Email == "" || user.PasswordHash == "" {
		return errors.New("user id, email and password hash are required")
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.take(ctx, "email = ?", email)
}

func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *gormUserRepository) take(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// --- Exercises ---

type gormExerciseRepository struct {
	store *tableStore[exerciseRow, domain.ExercisePrimitives, *domain.Exercise]
}

func NewGormExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{store: newTableStore(db, newExerciseRow, domain.ExerciseFromPrimitives)}
}

func (r *gormExerciseRepository) Save(ctx context.Context, exercise *domain.Exercise) error {
	return r.store.save(ctx, exercise.ToPrimitives())
}

func (r *gormExerciseRepository) Search(ctx context.Context, id string) (*domain.Exercise, error) {
	return r.store.findByID(ctx, id)
}

func (r *gormExerciseRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Exercise, error) {
	return r.store.findByUserID(ctx, userID)
}

func (r *gormExerciseRepository) SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Exercise, error) {
	return r.store.findByCriteria(ctx, c)
}

func (r *gormExerciseRepository) CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	return r.store.countByCriteria(ctx, c)
}

func (r *gormExerciseRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

// --- Exercise metrics ---

type gormExerciseMetricRepository struct {
	store *tableStore[exerciseMetricRow, domain.ExerciseMetricPrimitives, *domain.ExerciseMetric]
}

func NewGormExerciseMetricRepository(db *gorm.DB) repository.ExerciseMetricRepository {
	return &gormExerciseMetricRepository{store: newTableStore(db, newExerciseMetricRow, domain.ExerciseMetricFromPrimitives)}
}

func (r *gormExerciseMetricRepository) Save(ctx context.Context, metric *domain.ExerciseMetric) error {
	return r.store.save(ctx, metric.ToPrimitives())
}

func (r *gormExerciseMetricRepository) Search(ctx context.Context, id string) (*domain.ExerciseMetric, error) {
	return r.store.findByID(ctx, id)
}

func (r *gormExerciseMetricRepository) SearchAll(ctx context.Context) ([]*domain.ExerciseMetric, error) {
	return r.store.find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	})
}

// --- Routines ---

type gormRoutineRepository struct {
	store *tableStore[routineRow, domain.RoutinePrimitives, *domain.Routine]
}

func NewGormRoutineRepository(db *gorm.DB) repository.RoutineRepository {
	return &gormRoutineRepository{store: newTableStore(db, newRoutineRow, domain.RoutineFromPrimitives)}
}

func (r *gormRoutineRepository) Save(ctx context.Context, routine *domain.Routine) error {
	return r.store.save(ctx, routine.ToPrimitives())
}

func (r *gormRoutineRepository) Search(ctx context.Context, id string) (*domain.Routine, error) {
	return r.store.findByID(ctx, id)
}

func (r *gormRoutineRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Routine, error) {
	return r.store.findByUserID(ctx, userID)
}

func (r *gormRoutineRepository) SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Routine, error) {
	return r.store.findByCriteria(ctx, c)
}

func (r *gormRoutineRepository) CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	return r.store.countByCriteria(ctx, c)
}

func (r *gormRoutineRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

// --- Workouts ---

type gormWorkoutRepository struct {
	store *tableStore[workoutRow, domain.WorkoutPrimitives, *domain.Workout]
}

func NewGormWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &gormWorkoutRepository{store: newTableStore(db, newWorkoutRow, domain.WorkoutFromPrimitives)}
}

func (r *gormWorkoutRepository) Save(ctx context.Context, workout *domain.Workout) error {
	return r.store.save(ctx, workout.ToPrimitives())
}

func (r *gormWorkoutRepository) Search(ctx context.Context, id string) (*domain.Workout, error) {
	return r.store.findByID(ctx, id)
}

func (r *gormWorkoutRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Workout, error) {
	return r.store.findByUserID(ctx, userID)
}

func (r *gormWorkoutRepository) SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Workout, error) {
	return r.store.findByCriteria(ctx, c)
}

func (r *gormWorkoutRepository) CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	return r.store.countByCriteria(ctx, c)
}

func (r *gormWorkoutRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}
