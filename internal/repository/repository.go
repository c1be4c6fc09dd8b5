package repository

import (
	"context" // Standard for request-scoped deadlines, cancellation signals, etc.

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain" // Import our defined domain models
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ExerciseRepository defines the interface for interacting with exercise data.
// Search returns ErrNotFound when no exercise has the given id.
type ExerciseRepository interface {
	Save(ctx context.Context, exercise *domain.Exercise) error // insert or replace by id
	Search(ctx context.Context, id string) (*domain.Exercise, error)
	SearchByUserID(ctx context.Context, userID string) ([]*domain.Exercise, error)
	SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Exercise, error)
	CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error)
	Delete(ctx context.Context, id string) error
}

// ExerciseMetricRepository defines the interface for the (system wide) metric catalogue.
type ExerciseMetricRepository interface {
	Save(ctx context.Context, metric *domain.ExerciseMetric) error
	Search(ctx context.Context, id string) (*domain.ExerciseMetric, error)
	SearchAll(ctx context.Context) ([]*domain.ExerciseMetric, error)
}

// RoutineRepository defines the interface for interacting with routine data.
type RoutineRepository interface {
	Save(ctx context.Context, routine *domain.Routine) error
	Search(ctx context.Context, id string) (*domain.Routine, error)
	SearchByUserID(ctx context.Context, userID string) ([]*domain.Routine, error)
	SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Routine, error)
	CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error)
	Delete(ctx context.Context, id string) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Save(ctx context.Context, workout *domain.Workout) error
	Search(ctx context.Context, id string) (*domain.Workout, error)
	SearchByUserID(ctx context.Context, userID string) ([]*domain.Workout, error)
	SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Workout, error)
	CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error)
	Delete(ctx context.Context, id string) error
}
