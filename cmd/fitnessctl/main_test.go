package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/fitness-tracker/internal/app"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
)

// useTempConfig points the CLI at a fresh SQLite database.
func useTempConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	yaml := fmt.Sprintf(`database:
  driver: sqlite
  sqlite_path: %s
s3:
  enabled: false
jwt:
  secret: fitnessctl-test
`, filepath.Join(dir, "fitness.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	previous := configDir
	configDir = dir
	t.Cleanup(func() { configDir = previous })
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestMetricsSeedIsIdempotent(t *testing.T) {
	useTempConfig(t)

	cmd, out := newTestCmd()
	require.NoError(t, runMetricsSeed(cmd, nil))
	assert.Equal(t, "6 exercise metrics inserted\n", out.String())

	out.Reset()
	require.NoError(t, runMetricsSeed(cmd, nil))
	assert.Equal(t, "0 exercise metrics inserted\n", out.String())

	out.Reset()
	require.NoError(t, runMetricsList(cmd, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Distance")
	assert.Contains(t, lines[6], "Weight")
}

func TestMetricsCreateAndUpdate(t *testing.T) {
	useTempConfig(t)
	metricType, metricRelation = string(domain.MetricTypeDistance), string(domain.MetricRelationDirect)
	t.Cleanup(func() { metricType, metricRelation = "", "direct" })

	cmd, out := newTestCmd()
	require.NoError(t, runMetricsCreate(cmd, []string{"Swim"}))
	id := strings.TrimSpace(out.String())
	require.NotEmpty(t, id)

	// duplicate names are rejected
	err := runMetricsCreate(cmd, []string{"Swim"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err))

	metricNewName, metricNewRelation = "Swim Distance", string(domain.MetricRelationInverse)
	t.Cleanup(func() { metricNewName, metricNewRelation = "", "" })

	out.Reset()
	require.NoError(t, runMetricsUpdate(cmd, []string{id}))
	assert.Contains(t, out.String(), "Swim Distance")
	assert.Contains(t, out.String(), "inverse")
}

func TestMetricsUpdateRequiresAChange(t *testing.T) {
	cmd, _ := newTestCmd()
	err := runMetricsUpdate(cmd, []string{domain.NewID()})
	assert.EqualError(t, err, "nothing to update: pass --name and/or --relation")
}

func TestCriteriaParse(t *testing.T) {
	criteriaTarget = "routines"

	cmd, out := newTestCmd()
	query := "filters[0][field]=name&filters[0][operator]=contains&filters[0][value]=Push&orderBy=createdAt&orderType=DESC&pageSize=10&pageNumber=2"
	require.NoError(t, runCriteriaParse(cmd, []string{query}))

	got := out.String()
	assert.Contains(t, got, `"field": "name"`)
	assert.Contains(t, got, "orderBy=createdAt")
	assert.Contains(t, got, `{"name":{"$regex":"Push"}}`)
	assert.Contains(t, got, `mongo sort: {"createdAt":-1}`)
	assert.Contains(t, got, "mongo skip: 10")
	assert.Contains(t, got, "FROM `routines`")
}

func TestCriteriaParseRejectsUnknownField(t *testing.T) {
	criteriaTarget = "workouts"
	t.Cleanup(func() { criteriaTarget = "routines" })

	cmd, _ := newTestCmd()
	err := runCriteriaParse(cmd, []string{"filters[0][field]=color&filters[0][operator]=eq&filters[0][value]=red"})
	require.Error(t, err)
	assert.Equal(t, "Invalid filter field: color", err.Error())
}

func TestUsersData(t *testing.T) {
	useTempConfig(t)
	owner, stranger := domain.NewID(), domain.NewID()
	routineID, workoutID := domain.NewID(), domain.NewID()

	require.NoError(t, withApp(func(ctx context.Context, a *app.App) error {
		err := a.Services.Exercise.CreateExercise(ctx, service.CreateExerciseInput{
			ID:            domain.NewID(),
			UserID:        owner,
			Name:          "Zercher squat",
			TargetMuscles: []domain.TargetMusclePrimitives{{MuscleGroup: "quads", Involvement: "primary"}},
		})
		if err != nil {
			return err
		}
		if err := a.Services.Routine.CreateRoutine(ctx, service.CreateRoutineInput{ID: routineID, UserID: owner, Name: "Legs"}); err != nil {
			return err
		}
		if err := a.Services.Routine.CreateRoutine(ctx, service.CreateRoutineInput{ID: domain.NewID(), UserID: stranger, Name: "Arms"}); err != nil {
			return err
		}
		return a.Services.Workout.StartWorkoutFromRoutine(ctx, owner, workoutID, routineID)
	}))

	cmd, out := newTestCmd()
	require.NoError(t, runUsersData(cmd, []string{owner}))

	got := out.String()
	assert.Contains(t, got, "exercises (1)")
	assert.Contains(t, got, "Zercher squat")
	assert.Contains(t, got, "routines (1)")
	assert.Contains(t, got, routineID)
	assert.NotContains(t, got, "Arms")
	assert.Contains(t, got, "workouts (1)")
	assert.Contains(t, got, workoutID)
	assert.Contains(t, got, "in progress")
}
