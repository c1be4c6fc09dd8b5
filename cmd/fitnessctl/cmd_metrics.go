package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alcyxob/fitness-tracker/internal/app"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
)

var (
	metricType        string
	metricRelation    string
	metricNewName     string
	metricNewRelation string
)

// metricsCmd groups the exercise metric catalogue commands
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Manage the exercise metric catalogue",
	Long: `Exercise metrics are system-wide and read-only over the HTTP API.

Available subcommands:
  list   - Print every metric ordered by name
  create - Add a metric
  update - Rename a metric or change its relation
  seed   - Install the default catalogue entries that are missing`,
}

var metricsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercise metrics",
	Args:  cobra.NoArgs,
	RunE:  runMetricsList,
}

var metricsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an exercise metric",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricsCreate,
}

var metricsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an exercise metric",
	Long: `Update the name and/or relation of an exercise metric.

The metric type cannot change once created. Names must stay unique.`,
	Args: cobra.ExactArgs(1),
	RunE: runMetricsUpdate,
}

var metricsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default exercise metrics",
	Long: `Install Reps, Weight, Duration, Distance, Rest Time and RPE.

Entries whose name already exists are left untouched, so the command is
safe to run on every deploy.`,
	Args: cobra.NoArgs,
	RunE: runMetricsSeed,
}

func runMetricsList(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		metrics, err := a.Services.ExerciseMetric.SearchAllExerciseMetrics(ctx)
		if err != nil {
			return err
		}
		printMetrics(cmd, metrics)
		return nil
	})
}

func runMetricsCreate(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		id := domain.NewID()
		err := a.Services.ExerciseMetric.CreateExerciseMetric(ctx, service.CreateExerciseMetricInput{
			ID:       id,
			Name:     args[0],
			Type:     metricType,
			Relation: metricRelation,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	})
}

func runMetricsUpdate(cmd *cobra.Command, args []string) error {
	var in service.UpdateExerciseMetricInput
	if metricNewName != "" {
		in.Name = service.Some(metricNewName)
	}
	if metricNewRelation != "" {
		in.Relation = service.Some(metricNewRelation)
	}
	if !in.Name.Set && !in.Relation.Set {
		return errors.New("nothing to update: pass --name and/or --relation")
	}

	return withApp(func(ctx context.Context, a *app.App) error {
		if err := a.Services.ExerciseMetric.UpdateExerciseMetric(ctx, args[0], in); err != nil {
			return err
		}
		metric, err := a.Services.ExerciseMetric.FindExerciseMetric(ctx, args[0])
		if err != nil {
			return err
		}
		printMetrics(cmd, []domain.ExerciseMetricPrimitives{metric})
		return nil
	})
}

func runMetricsSeed(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App) error {
		inserted, err := a.Services.ExerciseMetric.PopulateExerciseMetrics(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d exercise metrics inserted\n", inserted)
		return nil
	})
}

func printMetrics(cmd *cobra.Command, metrics []domain.ExerciseMetricPrimitives) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tRELATION")
	for _, m := range metrics {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Type, m.Relation)
	}
	_ = w.Flush()
}
