package domain

import (
	"errors"
	"fmt"
)

// Resource names used in error messages and ownership checks.
const (
	ResourceExercise       = "Exercise"
	ResourceExerciseMetric = "ExerciseMetric"
	ResourceRoutine        = "Routine"
	ResourceWorkout        = "Workout"
)

// DomainError is implemented by every error raised while enforcing a domain rule.
// The API layer maps these to 4xx responses; anything else becomes a 500.
type DomainError interface {
	error
	DomainErrorType() string
}

// IsDomainError reports whether err (or anything it wraps) is a DomainError.
func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

// --- InvalidArgumentError ---

// InvalidArgumentError is raised when a value object, enum, operator or
// pagination bound fails validation.
type InvalidArgumentError struct {
	Message string
}

func NewInvalidArgumentError(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

func (e *InvalidArgumentError) Error() string           { return e.Message }
func (e *InvalidArgumentError) DomainErrorType() string { return "invalid_argument" }

// --- DoesNotExistError ---

// DoesNotExistError is raised by lookup-before-mutate when no aggregate has the given id.
type DoesNotExistError struct {
	Resource string
	ID       string
}

func NewExerciseDoesNotExistError(id string) *DoesNotExistError {
	return &DoesNotExistError{Resource: ResourceExercise, ID: id}
}

func NewExerciseMetricDoesNotExistError(id string) *DoesNotExistError {
	return &DoesNotExistError{Resource: ResourceExerciseMetric, ID: id}
}

func NewRoutineDoesNotExistError(id string) *DoesNotExistError {
	return &DoesNotExistError{Resource: ResourceRoutine, ID: id}
}

func NewWorkoutDoesNotExistError(id string) *DoesNotExistError {
	return &DoesNotExistError{Resource: ResourceWorkout, ID: id}
}

func (e *DoesNotExistError) Error() string {
	return fmt.Sprintf("The %s %s does not exist", resourceLabel(e.Resource), e.ID)
}

func (e *DoesNotExistError) DomainErrorType() string { return "does_not_exist" }

// --- UnauthorizedResourceAccessError ---

// UnauthorizedResourceAccessError is raised when the acting user does not own the aggregate.
type UnauthorizedResourceAccessError struct {
	ResourceType string
	ResourceID   string
}

func NewUnauthorizedResourceAccessError(resourceType, resourceID string) *UnauthorizedResourceAccessError {
	return &UnauthorizedResourceAccessError{ResourceType: resourceType, ResourceID: resourceID}
}

func (e *UnauthorizedResourceAccessError) Error() string {
	return fmt.Sprintf("Unauthorized access to %s %s", e.ResourceType, e.ResourceID)
}

func (e *UnauthorizedResourceAccessError) DomainErrorType() string {
	return "unauthorized_resource_access"
}

// --- WorkoutAlreadyFinishedError ---

type WorkoutAlreadyFinishedError struct {
	WorkoutID string
}

func NewWorkoutAlreadyFinishedError(workoutID string) *WorkoutAlreadyFinishedError {
	return &WorkoutAlreadyFinishedError{WorkoutID: workoutID}
}

func (e *WorkoutAlreadyFinishedError) Error() string {
	return fmt.Sprintf("The workout %s is already finished", e.WorkoutID)
}

func (e *WorkoutAlreadyFinishedError) DomainErrorType() string { return "workout_already_finished" }

// --- ExerciseMetricAlreadyExistsError ---

type ExerciseMetricAlreadyExistsError struct {
	Name string
}

func NewExerciseMetricAlreadyExistsError(name string) *ExerciseMetricAlreadyExistsError {
	return &ExerciseMetricAlreadyExistsError{Name: name}
}

func (e *ExerciseMetricAlreadyExistsError) Error() string {
	return fmt.Sprintf("The exercise metric %s already exists", e.Name)
}

func (e *ExerciseMetricAlreadyExistsError) DomainErrorType() string {
	return "exercise_metric_already_exists"
}

func resourceLabel(resource string) string {
	switch resource {
	case ResourceExercise:
		return "exercise"
	case ResourceExerciseMetric:
		return "exercise metric"
	case ResourceRoutine:
		return "routine"
	case ResourceWorkout:
		return "workout"
	default:
		return resource
	}
}
