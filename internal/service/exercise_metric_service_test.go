package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/fitness-tracker/internal/domain"
)

func TestPopulateExerciseMetrics(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseMetricRepository()
	svc := NewExerciseMetricService(repo)

	inserted, err := svc.PopulateExerciseMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, inserted)

	metrics, err := svc.SearchAllExerciseMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Distance", "Duration", "RPE", "Reps", "Rest Time", "Weight"}, sortedNames(metrics))

	for _, m := range metrics {
		if m.Name == "Rest Time" {
			assert.Equal(t, "duration", m.Type)
			assert.Equal(t, "inverse", m.Relation)
		}
	}

	inserted, err = svc.PopulateExerciseMetrics(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestPopulateExerciseMetrics_SkipsCaseInsensitiveMatches(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseMetricRepository()
	svc := NewExerciseMetricService(repo)
	require.NoError(t, svc.CreateExerciseMetric(ctx, CreateExerciseMetricInput{
		ID: gofakeit.UUID(), Name: "reps", Type: "count", Relation: "direct",
	}))

	inserted, err := svc.PopulateExerciseMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, inserted)
	assert.Equal(t, 6, repo.len())
}

func TestCreateExerciseMetric_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewExerciseMetricService(newFakeExerciseMetricRepository())
	require.NoError(t, svc.CreateExerciseMetric(ctx, CreateExerciseMetricInput{
		ID: gofakeit.UUID(), Name: "Tempo", Type: "duration", Relation: "direct",
	}))

	err := svc.CreateExerciseMetric(ctx, CreateExerciseMetricInput{
		ID: gofakeit.UUID(), Name: " TEMPO ", Type: "duration", Relation: "direct",
	})
	var exists *domain.ExerciseMetricAlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "TEMPO", exists.Name)

	err = svc.CreateExerciseMetric(ctx, CreateExerciseMetricInput{
		ID: gofakeit.UUID(), Name: "Cadence", Type: "speed", Relation: "direct",
	})
	var invalid *domain.InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestUpdateExerciseMetric(t *testing.T) {
	ctx := context.Background()
	svc := NewExerciseMetricService(newFakeExerciseMetricRepository())
	tempoID := gofakeit.UUID()
	require.NoError(t, svc.CreateExerciseMetric(ctx, CreateExerciseMetricInput{
		ID: tempoID, Name: "Tempo", Type: "duration", Relation: "direct",
	}))
	require.NoError(t, svc.CreateExerciseMetric(ctx, CreateExerciseMetricInput{
		ID: gofakeit.UUID(), Name: "Cadence", Type: "count", Relation: "direct",
	}))

	t.Run("rename to own name with different case", func(t *testing.T) {
		require.NoError(t, svc.UpdateExerciseMetric(ctx, tempoID, UpdateExerciseMetricInput{Name: Some("TEMPO")}))
		m, err := svc.FindExerciseMetric(ctx, tempoID)
		require.NoError(t, err)
		assert.Equal(t, "TEMPO", m.Name)
	})

	t.Run("rename onto another metric", func(t *testing.T) {
		err := svc.UpdateExerciseMetric(ctx, tempoID, UpdateExerciseMetricInput{Name: Some("cadence")})
		var exists *domain.ExerciseMetricAlreadyExistsError
		assert.ErrorAs(t, err, &exists)
	})

	t.Run("relation", func(t *testing.T) {
		require.NoError(t, svc.UpdateExerciseMetric(ctx, tempoID, UpdateExerciseMetricInput{Relation: Some("inverse")}))
		m, err := svc.FindExerciseMetric(ctx, tempoID)
		require.NoError(t, err)
		assert.Equal(t, "inverse", m.Relation)
		assert.Equal(t, "duration", m.Type)
	})

	t.Run("missing", func(t *testing.T) {
		err := svc.UpdateExerciseMetric(ctx, gofakeit.UUID(), UpdateExerciseMetricInput{Relation: Some("inverse")})
		var notFound *domain.DoesNotExistError
		assert.ErrorAs(t, err, &notFound)
	})
}
