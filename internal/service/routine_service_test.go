package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
)

func sampleBlocks() []domain.RoutineBlockPrimitives {
	return []domain.RoutineBlockPrimitives{{
		Order:           0,
		DefaultRestTime: ptr(120),
		Sets: []domain.RoutineSetPrimitives{{
			Order:      0,
			ExerciseID: gofakeit.UUID(),
			Metrics: []domain.RoutineSetMetricPrimitives{{
				MetricID:    gofakeit.UUID(),
				TargetValue: &domain.MetricValuePrimitives{Value: 5, Unit: "quantity"},
			}},
		}},
	}}
}

func TestCreateAndFindRoutine(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRoutineRepository()
	svc := NewRoutineService(repo)
	userID := gofakeit.UUID()
	routineID := gofakeit.UUID()
	blocks := sampleBlocks()

	require.NoError(t, svc.CreateRoutine(ctx, CreateRoutineInput{
		ID:     routineID,
		UserID: userID,
		Name:   "  Upper body  ",
		Blocks: blocks,
	}))

	found, err := svc.FindRoutine(ctx, userID, routineID)
	require.NoError(t, err)
	assert.Equal(t, "Upper body", found.Name)
	assert.Nil(t, found.Description)
	if diff := cmp.Diff(blocks, found.Blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}

	_, err = svc.FindRoutine(ctx, gofakeit.UUID(), routineID)
	var unauthorized *domain.UnauthorizedResourceAccessError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestCreateRoutine_Invalid(t *testing.T) {
	svc := NewRoutineService(newFakeRoutineRepository())

	err := svc.CreateRoutine(context.Background(), CreateRoutineInput{
		ID:     gofakeit.UUID(),
		UserID: gofakeit.UUID(),
		Name:   "   ",
	})
	var invalid *domain.InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestUpdateRoutine_OnlyNameChanges(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRoutineRepository()
	svc := NewRoutineService(repo)
	userID := gofakeit.UUID()
	routine := routineMother(t, userID, sampleBlocks())
	require.NoError(t, repo.Save(ctx, routine))
	before := routine.ToPrimitives()

	var in UpdateRoutineInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X"}`), &in))
	require.NoError(t, svc.UpdateRoutine(ctx, userID, routine.ID(), in))

	after, err := svc.FindRoutine(ctx, userID, routine.ID())
	require.NoError(t, err)
	assert.Equal(t, "X", after.Name)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.Blocks, after.Blocks)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.GreaterOrEqual(t, after.UpdatedAt, before.UpdatedAt)
}

func TestUpdateRoutine_ExplicitNullClearsDescription(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRoutineRepository()
	svc := NewRoutineService(repo)
	userID := gofakeit.UUID()
	routine := routineMother(t, userID, nil)
	require.NoError(t, repo.Save(ctx, routine))

	var in UpdateRoutineInput
	require.NoError(t, json.Unmarshal([]byte(`{"description":null,"blocks":[]}`), &in))
	require.True(t, in.Description.Set)
	require.NoError(t, svc.UpdateRoutine(ctx, userID, routine.ID(), in))

	after, err := svc.FindRoutine(ctx, userID, routine.ID())
	require.NoError(t, err)
	assert.Nil(t, after.Description)
	assert.Equal(t, routine.Name(), after.Name)
}

func TestUpdateRoutine_Errors(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRoutineRepository()
	svc := NewRoutineService(repo)
	owner := gofakeit.UUID()
	routine := routineMother(t, owner, nil)
	require.NoError(t, repo.Save(ctx, routine))
	saves := repo.saves

	err := svc.UpdateRoutine(ctx, gofakeit.UUID(), routine.ID(), UpdateRoutineInput{Name: Some("stolen")})
	var unauthorized *domain.UnauthorizedResourceAccessError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, routine.ID(), unauthorized.ResourceID)

	err = svc.UpdateRoutine(ctx, owner, gofakeit.UUID(), UpdateRoutineInput{Name: Some("ghost")})
	var notFound *domain.DoesNotExistError
	assert.ErrorAs(t, err, &notFound)

	err = svc.UpdateRoutine(ctx, owner, routine.ID(), UpdateRoutineInput{Name: Some("")})
	var invalid *domain.InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)

	assert.Equal(t, saves, repo.saves)
}

func TestDeleteRoutine(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRoutineRepository()
	svc := NewRoutineService(repo)
	owner := gofakeit.UUID()
	routine := routineMother(t, owner, nil)
	require.NoError(t, repo.Save(ctx, routine))

	err := svc.DeleteRoutine(ctx, gofakeit.UUID(), routine.ID())
	var unauthorized *domain.UnauthorizedResourceAccessError
	require.ErrorAs(t, err, &unauthorized)

	require.NoError(t, svc.DeleteRoutine(ctx, owner, routine.ID()))
	assert.Zero(t, repo.len())

	err = svc.DeleteRoutine(ctx, owner, routine.ID())
	var notFound *domain.DoesNotExistError
	assert.ErrorAs(t, err, &notFound)
}

func TestSearchRoutines(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRoutineRepository()
	svc := NewRoutineService(repo)
	owner := gofakeit.UUID()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, routineMother(t, owner, nil)))
	}
	require.NoError(t, repo.Save(ctx, routineMother(t, gofakeit.UUID(), nil)))

	p := criteria.Primitives{
		Filters:    []criteria.FilterPrimitives{{Field: "userId", Operator: "eq", Value: owner}},
		OrderBy:    ptr("name"),
		OrderType:  ptr("ASC"),
		PageSize:   ptr(10),
		PageNumber: ptr(1),
	}
	routines, err := svc.SearchRoutinesByCriteria(ctx, p)
	require.NoError(t, err)
	assert.Len(t, routines, 3)
	assert.Equal(t, p, repo.lastCriteria.ToPrimitives())

	total, err := svc.CountRoutinesByCriteria(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	mine, err := svc.SearchRoutinesByUser(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	_, err = svc.CountRoutinesByCriteria(ctx, criteria.Primitives{PageSize: ptr(0)})
	var invalid *domain.InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestCreateRoutine_ExistingID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRoutineRepository()
	svc := NewRoutineService(repo)
	owner := gofakeit.UUID()
	routine := routineMother(t, owner, sampleBlocks())
	require.NoError(t, repo.Save(ctx, routine))

	err := svc.CreateRoutine(ctx, CreateRoutineInput{
		ID:     routine.ID(),
		UserID: gofakeit.UUID(),
		Name:   "Taken over",
	})
	var unauthorized *domain.UnauthorizedResourceAccessError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, domain.ResourceRoutine, unauthorized.ResourceType)

	found, err := svc.FindRoutine(ctx, owner, routine.ID())
	require.NoError(t, err)
	assert.Equal(t, routine.Name(), found.Name)
	assert.Equal(t, owner, found.UserID)

	// the owner may send the same id again and replace the routine
	require.NoError(t, svc.CreateRoutine(ctx, CreateRoutineInput{
		ID:     routine.ID(),
		UserID: owner,
		Name:   "Renamed",
	}))
	found, err = svc.FindRoutine(ctx, owner, routine.ID())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Name)
	assert.Equal(t, 1, repo.len())
}
