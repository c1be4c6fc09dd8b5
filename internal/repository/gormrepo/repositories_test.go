package gormrepo

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = Close(db)
	})
	return db
}

func newRoutine(t *testing.T, userID, name string, description *string) *domain.Routine {
	t.Helper()
	rest := 90
	r, err := domain.CreateRoutine(domain.CreateRoutineParams{
		ID:          domain.NewID(),
		Name:        name,
		Description: description,
		UserID:      userID,
		Blocks: []domain.RoutineBlockPrimitives{{
			Order:           0,
			DefaultRestTime: &rest,
			Sets: []domain.RoutineSetPrimitives{{
				Order:      0,
				ExerciseID: domain.NewID(),
				Metrics: []domain.RoutineSetMetricPrimitives{{
					MetricID:    domain.NewID(),
					TargetValue: &domain.MetricValuePrimitives{Value: 10, Unit: "quantity"},
				}},
			}},
		}},
	})
	require.NoError(t, err)
	return r
}

func TestRoutineRepository_SaveAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewGormRoutineRepository(openTestDB(t))
	routine := newRoutine(t, domain.NewID(), "Push day", nil)

	require.NoError(t, repo.Save(ctx, routine))

	found, err := repo.Search(ctx, routine.ID())
	require.NoError(t, err)
	assert.Equal(t, routine.ToPrimitives(), found.ToPrimitives())

	require.NoError(t, routine.UpdateName("Push day v2"))
	require.NoError(t, repo.Save(ctx, routine))

	found, err = repo.Search(ctx, routine.ID())
	require.NoError(t, err)
	assert.Equal(t, "Push day v2", found.Name())
}

func TestRoutineRepository_SearchMissing(t *testing.T) {
	repo := NewGormRoutineRepository(openTestDB(t))

	_, err := repo.Search(context.Background(), domain.NewID())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(context.Background(), domain.NewID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoutineRepository_SearchByCriteria(t *testing.T) {
	ctx := context.Background()
	repo := NewGormRoutineRepository(openTestDB(t))
	owner := domain.NewID()
	other := domain.NewID()
	description := gofakeit.Sentence(5)

	for _, r := range []*domain.Routine{
		newRoutine(t, owner, "Push A", nil),
		newRoutine(t, owner, "Push B", &description),
		newRoutine(t, owner, "Pull", nil),
		newRoutine(t, other, "Push C", nil),
	} {
		require.NoError(t, repo.Save(ctx, r))
	}

	t.Run("contains with order", func(t *testing.T) {
		c, err := criteria.NewBuilder().
			Equal("userId", owner).
			Contains("name", "Push").
			OrderByDesc("name").
			Build()
		require.NoError(t, err)

		routines, err := repo.SearchByCriteria(ctx, c)
		require.NoError(t, err)
		require.Len(t, routines, 2)
		assert.Equal(t, "Push B", routines[0].Name())
		assert.Equal(t, "Push A", routines[1].Name())
	})

	t.Run("contains is case sensitive", func(t *testing.T) {
		c, err := criteria.NewBuilder().Contains("name", "push").Build()
		require.NoError(t, err)

		routines, err := repo.SearchByCriteria(ctx, c)
		require.NoError(t, err)
		assert.Empty(t, routines)
	})

	t.Run("contains a comma list", func(t *testing.T) {
		third := domain.NewID()
		require.NoError(t, repo.Save(ctx, newRoutine(t, third, "Push,Pull split", nil)))

		values, err := url.ParseQuery("filters[0][field]=name&filters[0][operator]=contains&filters[0][value]=Push,Pull")
		require.NoError(t, err)
		c, err := criteria.FromPrimitives(criteria.FromQuery(values))
		require.NoError(t, err)

		routines, err := repo.SearchByCriteria(ctx, c)
		require.NoError(t, err)
		require.Len(t, routines, 1)
		assert.Equal(t, third, routines[0].UserID())
	})

	t.Run("null checks", func(t *testing.T) {
		c, err := criteria.NewBuilder().Equal("userId", owner).IsNotNull("description").Build()
		require.NoError(t, err)

		routines, err := repo.SearchByCriteria(ctx, c)
		require.NoError(t, err)
		require.Len(t, routines, 1)
		assert.Equal(t, "Push B", routines[0].Name())
	})

	t.Run("pagination and count", func(t *testing.T) {
		c, err := criteria.NewBuilder().Equal("userId", owner).OrderByAsc("name").Paginate(2, 2).Build()
		require.NoError(t, err)

		routines, err := repo.SearchByCriteria(ctx, c)
		require.NoError(t, err)
		require.Len(t, routines, 1)
		assert.Equal(t, "Push B", routines[0].Name())

		total, err := repo.CountByCriteria(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("in", func(t *testing.T) {
		c, err := criteria.NewBuilder().In("userId", []string{other}).Build()
		require.NoError(t, err)

		routines, err := repo.SearchByCriteria(ctx, c)
		require.NoError(t, err)
		require.Len(t, routines, 1)
		assert.Equal(t, "Push C", routines[0].Name())
	})

	t.Run("unknown field", func(t *testing.T) {
		c, err := criteria.NewBuilder().Equal("color", "red").Build()
		require.NoError(t, err)

		_, err = repo.SearchByCriteria(ctx, c)
		require.Error(t, err)
		assert.Equal(t, "Invalid filter field: color", err.Error())
	})

	t.Run("by user", func(t *testing.T) {
		routines, err := repo.SearchByUserID(ctx, other)
		require.NoError(t, err)
		require.Len(t, routines, 1)
	})
}

func TestWorkoutRepository_FinishedWorkoutsCanBeFiltered(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWorkoutRepository(openTestDB(t))
	userID := domain.NewID()

	open, err := domain.CreateWorkout(domain.CreateWorkoutParams{ID: domain.NewID(), UserID: userID, Name: "Open"})
	require.NoError(t, err)
	done, err := domain.CreateWorkout(domain.CreateWorkoutParams{ID: domain.NewID(), UserID: userID, Name: "Done"})
	require.NoError(t, err)
	require.NoError(t, done.Finish())

	require.NoError(t, repo.Save(ctx, open))
	require.NoError(t, repo.Save(ctx, done))

	c, err := criteria.NewBuilder().IsNull("finishedAt").Build()
	require.NoError(t, err)
	workouts, err := repo.SearchByCriteria(ctx, c)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, open.ID(), workouts[0].ID())

	require.NoError(t, repo.Delete(ctx, open.ID()))
	_, err = repo.Search(ctx, open.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkoutRepository_SaveKeepsOwnershipColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWorkoutRepository(openTestDB(t))
	owner := domain.NewID()

	original, err := domain.CreateWorkout(domain.CreateWorkoutParams{ID: domain.NewID(), UserID: owner, Name: "Legs"})
	require.NoError(t, err)
	require.NoError(t, original.Finish())
	require.NoError(t, repo.Save(ctx, original))

	later := time.Now().Add(24 * time.Hour)
	conflicting, err := domain.CreateWorkout(domain.CreateWorkoutParams{
		ID:        original.ID(),
		UserID:    domain.NewID(),
		Name:      "Mine",
		StartedAt: &later,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, conflicting))

	found, err := repo.Search(ctx, original.ID())
	require.NoError(t, err)
	got, want := found.ToPrimitives(), original.ToPrimitives()
	assert.Equal(t, owner, got.UserID)
	assert.Equal(t, want.StartedAt, got.StartedAt)
	assert.Equal(t, want.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Mine", got.Name)
}

func TestExerciseMetricRepository_SearchAllOrdersByName(t *testing.T) {
	ctx := context.Background()
	repo := NewGormExerciseMetricRepository(openTestDB(t))

	for _, name := range []string{"Weight", "Reps", "Distance"} {
		m, err := domain.CreateExerciseMetric(domain.CreateExerciseMetricParams{
			ID: domain.NewID(), Name: name, Type: "count", Relation: "direct",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, m))
	}

	metrics, err := repo.SearchAll(ctx)
	require.NoError(t, err)
	require.Len(t, metrics, 3)
	assert.Equal(t, "Distance", metrics[0].Name())
	assert.Equal(t, "Reps", metrics[1].Name())
	assert.Equal(t, "Weight", metrics[2].Name())
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(openTestDB(t))
	email := gofakeit.Email()

	first := &domain.User{ID: domain.NewID(), Name: gofakeit.Name(), Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.User{ID: domain.NewID(), Name: gofakeit.Name(), Email: email, PasswordHash: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, second), repository.ErrDuplicateKey)

	found, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestExplainCriteria(t *testing.T) {
	db := openTestDB(t)
	c, err := criteria.NewBuilder().Equal("userId", "u-1").OrderByDesc("createdAt").Paginate(10, 2).Build()
	require.NoError(t, err)

	sql, err := ExplainCriteria(db, "routines", c)
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM `routines`")
	assert.Contains(t, sql, "`user_id` = \"u-1\"")
	assert.Contains(t, sql, "ORDER BY `created_at` DESC")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 10")

	_, err = ExplainCriteria(db, "users", c)
	assert.Error(t, err)

	bad, err := criteria.NewBuilder().Equal("color", "red").Build()
	require.NoError(t, err)
	_, err = ExplainCriteria(db, "routines", bad)
	assert.True(t, domain.IsDomainError(err))
}
