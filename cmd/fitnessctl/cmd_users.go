package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alcyxob/fitness-tracker/internal/app"
	"alcyxob/fitness-tracker/internal/domain"
)

// usersCmd groups the per-user support commands
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect user data",
}

var usersDataCmd = &cobra.Command{
	Use:   "data <user-id>",
	Short: "List the exercises, routines and workouts a user owns",
	Long: `Print everything stored for one user, newest first.

System exercises are not listed since no user owns them.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersData,
}

func runUsersData(cmd *cobra.Command, args []string) error {
	userID := args[0]
	return withApp(func(ctx context.Context, a *app.App) error {
		exercises, err := a.Services.Exercise.SearchExercisesByUser(ctx, userID)
		if err != nil {
			return err
		}
		routines, err := a.Services.Routine.SearchRoutinesByUser(ctx, userID)
		if err != nil {
			return err
		}
		workouts, err := a.Services.Workout.SearchWorkoutsByUser(ctx, userID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "exercises (%d)\n", len(exercises))
		fmt.Fprintln(w, "ID\tNAME\tCREATED")
		for _, e := range exercises {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, e.CreatedAt)
		}
		fmt.Fprintf(w, "\nroutines (%d)\n", len(routines))
		fmt.Fprintln(w, "ID\tNAME\tBLOCKS\tCREATED")
		for _, r := range routines {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.Name, len(r.Blocks), r.CreatedAt)
		}
		fmt.Fprintf(w, "\nworkouts (%d)\n", len(workouts))
		fmt.Fprintln(w, "ID\tNAME\tSTARTED\tFINISHED")
		for _, wo := range workouts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", wo.ID, wo.Name, wo.StartedAt, finishedLabel(wo))
		}
		return w.Flush()
	})
}

func finishedLabel(w domain.WorkoutPrimitives) string {
	if w.FinishedAt == nil {
		return "in progress"
	}
	return *w.FinishedAt
}
