package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Auth           service.AuthService
	Exercise       service.ExerciseService
	ExerciseMetric service.ExerciseMetricService
	Routine        service.RoutineService
	Workout        service.WorkoutService
	SystemPrompt   service.SystemPromptService
}

// NewRouter builds a gin engine with the instrumentation middleware and all routes.
func NewRouter(services Services, metricsManager *metrics.Manager, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(metricsManager.Recovery(), metricsManager.RequestMetrics(), RequestLogger())
	SetupRoutes(router, services, metricsManager, gatherer)
	return router
}

func SetupRoutes(router *gin.Engine, services Services, metricsManager *metrics.Manager, gatherer prometheus.Gatherer) {
	authHandler := NewAuthHandler(services.Auth)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	metricHandler := NewExerciseMetricHandler(services.ExerciseMetric)
	routineHandler := NewRoutineHandler(services.Routine)
	workoutHandler := NewWorkoutHandler(services.Workout, metricsManager)
	promptHandler := NewSystemPromptHandler(services.SystemPrompt)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(services.Auth))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, ok := requireUserID(c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.CreateExercise)
			exerciseGroup.PATCH("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		protected.GET("/exercise-metrics", metricHandler.ListExerciseMetrics)

		// --- Routine Routes ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.GET("/:id", routineHandler.GetRoutine)
			routineGroup.PUT("/:id", routineHandler.CreateRoutine)
			routineGroup.PATCH("/:id", routineHandler.UpdateRoutine)
			routineGroup.DELETE("/:id", routineHandler.DeleteRoutine)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.StartWorkout)
			workoutGroup.POST("/:id/finish", workoutHandler.FinishWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DiscardWorkout)
		}

		// --- AI Routes ---
		aiGroup := protected.Group("/ai")
		{
			aiGroup.GET("/system-prompt", promptHandler.GetSystemPrompt)
			aiGroup.PUT("/system-prompt", promptHandler.PutSystemPrompt)
		}
	}
}
