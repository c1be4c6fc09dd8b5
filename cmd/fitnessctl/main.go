// Command fitnessctl is the operator CLI of the fitness tracker. It shares
// configuration and storage wiring with the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"alcyxob/fitness-tracker/internal/app"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logging"
)

var (
	configDir string
	timeout   time.Duration
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fitnessctl",
	Short: "Operate the fitness tracker data stores",
	Long: `fitnessctl manages the system-wide exercise metric catalogue and helps
debugging list queries.

It reads the same config.yaml and environment variables as the server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Setup(logging.LoggerSetupParams{LogToStdout: true, LogLevel: level})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing config.yaml")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	metricsCreateCmd.Flags().StringVar(&metricType, "type", "", "Metric type: count, weight, duration or distance")
	metricsCreateCmd.Flags().StringVar(&metricRelation, "relation", "direct", "Metric relation: direct or inverse")
	metricsUpdateCmd.Flags().StringVar(&metricNewName, "name", "", "New metric name")
	metricsUpdateCmd.Flags().StringVar(&metricNewRelation, "relation", "", "New metric relation: direct or inverse")
	_ = metricsCreateCmd.MarkFlagRequired("type")

	metricsCmd.AddCommand(metricsListCmd)
	metricsCmd.AddCommand(metricsCreateCmd)
	metricsCmd.AddCommand(metricsUpdateCmd)
	metricsCmd.AddCommand(metricsSeedCmd)

	criteriaParseCmd.Flags().StringVar(&criteriaTarget, "target", "routines", "Collection the query runs against: exercises, exercise_metrics, routines or workouts")
	criteriaCmd.AddCommand(criteriaParseCmd)

	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(criteriaCmd)

	usersCmd.AddCommand(usersDataCmd)
	rootCmd.AddCommand(usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp loads the configuration from configDir and opens its stores.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Debugf("database driver: %s", cfg.Database.Driver)
	return app.New(ctx, cfg)
}

// withApp runs fn against a freshly opened application and closes it afterwards.
func withApp(fn func(ctx context.Context, a *app.App) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, a)
}
