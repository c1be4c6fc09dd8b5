package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeRepository keeps primitives so that callers never share aggregate
// pointers with the store, like a real database round trip.
type fakeRepository[A any, P any] struct {
	mu    sync.Mutex
	items map[string]P
	ids   []string

	toPrimitives   func(A) P
	fromPrimitives func(P) (A, error)
	idOf           func(P) string
	userOf         func(P) string

	lastCriteria criteria.Criteria
	saves        int
}

func newFakeRepository[A any, P any](
	toPrimitives func(A) P,
	fromPrimitives func(P) (A, error),
	idOf func(P) string,
	userOf func(P) string,
) *fakeRepository[A, P] {
	return &fakeRepository[A, P]{
		items:          map[string]P{},
		toPrimitives:   toPrimitives,
		fromPrimitives: fromPrimitives,
		idOf:           idOf,
		userOf:         userOf,
	}
}

func (r *fakeRepository[A, P]) Save(_ context.Context, aggregate A) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.toPrimitives(aggregate)
	id := r.idOf(p)
	if _, ok := r.items[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.items[id] = p
	r.saves++
	return nil
}

func (r *fakeRepository[A, P]) Search(_ context.Context, id string) (A, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		var zero A
		return zero, repository.ErrNotFound
	}
	return r.fromPrimitives(p)
}

func (r *fakeRepository[A, P]) SearchAll(_ context.Context) ([]A, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(P) bool { return true })
}

func (r *fakeRepository[A, P]) SearchByUserID(_ context.Context, userID string) ([]A, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(p P) bool { return r.userOf(p) == userID })
}

// SearchByCriteria honours "userId eq" filters only; everything else is
// the storage adapters' job and is covered by their own tests.
func (r *fakeRepository[A, P]) SearchByCriteria(_ context.Context, c criteria.Criteria) ([]A, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCriteria = c
	return r.collect(r.matcher(c))
}

func (r *fakeRepository[A, P]) CountByCriteria(_ context.Context, c criteria.Criteria) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCriteria = c
	found, err := r.collect(r.matcher(c))
	return int64(len(found)), err
}

func (r *fakeRepository[A, P]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepository[A, P]) matcher(c criteria.Criteria) func(P) bool {
	return func(p P) bool {
		for _, f := range c.Filters() {
			if f.Field() == "userId" && f.Operator() == criteria.OperatorEqual && f.Value() != r.userOf(p) {
				return false
			}
		}
		return true
	}
}

func (r *fakeRepository[A, P]) collect(keep func(P) bool) ([]A, error) {
	var out []A
	for _, id := range r.ids {
		p, ok := r.items[id]
		if !ok || !keep(p) {
			continue
		}
		a, err := r.fromPrimitives(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeRepository[A, P]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func newFakeRoutineRepository() *fakeRepository[*domain.Routine, domain.RoutinePrimitives] {
	return newFakeRepository(
		(*domain.Routine).ToPrimitives,
		domain.RoutineFromPrimitives,
		func(p domain.RoutinePrimitives) string { return p.ID },
		func(p domain.RoutinePrimitives) string { return p.UserID },
	)
}

func newFakeWorkoutRepository() *fakeRepository[*domain.Workout, domain.WorkoutPrimitives] {
	return newFakeRepository(
		(*domain.Workout).ToPrimitives,
		domain.WorkoutFromPrimitives,
		func(p domain.WorkoutPrimitives) string { return p.ID },
		func(p domain.WorkoutPrimitives) string { return p.UserID },
	)
}

func newFakeExerciseRepository() *fakeRepository[*domain.Exercise, domain.ExercisePrimitives] {
	return newFakeRepository(
		(*domain.Exercise).ToPrimitives,
		domain.ExerciseFromPrimitives,
		func(p domain.ExercisePrimitives) string { return p.ID },
		func(p domain.ExercisePrimitives) string {
			if p.UserID == nil {
				return ""
			}
			return *p.UserID
		},
	)
}

func newFakeExerciseMetricRepository() *fakeRepository[*domain.ExerciseMetric, domain.ExerciseMetricPrimitives] {
	return newFakeRepository(
		(*domain.ExerciseMetric).ToPrimitives,
		domain.ExerciseMetricFromPrimitives,
		func(p domain.ExerciseMetricPrimitives) string { return p.ID },
		func(domain.ExerciseMetricPrimitives) string { return "" },
	)
}

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]domain.User{}}
}

func (r *fakeUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// --- Mothers ---

func ptr[T any](v T) *T { return &v }

func randomName() string {
	return gofakeit.Word() + " " + gofakeit.Word()
}

func routineMother(t *testing.T, userID string, blocks []domain.RoutineBlockPrimitives) *domain.Routine {
	t.Helper()
	routine, err := domain.CreateRoutine(domain.CreateRoutineParams{
		ID:          gofakeit.UUID(),
		Name:        randomName(),
		Description: ptr(gofakeit.Sentence(6)),
		UserID:      userID,
		Blocks:      blocks,
	})
	require.NoError(t, err)
	return routine
}

func exerciseMother(t *testing.T, userID *string) *domain.Exercise {
	t.Helper()
	exercise, err := domain.CreateExercise(domain.CreateExerciseParams{
		ID:     gofakeit.UUID(),
		Name:   randomName(),
		UserID: userID,
		TargetMuscles: []domain.TargetMusclePrimitives{
			{MuscleGroup: "chest", Involvement: "primary"},
		},
		DefaultMetrics: []string{gofakeit.UUID()},
	})
	require.NoError(t, err)
	return exercise
}

func sortedNames(metrics []domain.ExerciseMetricPrimitives) []string {
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = m.Name
	}
	sort.Strings(names)
	return names
}
