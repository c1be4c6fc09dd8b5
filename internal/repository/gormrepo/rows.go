package gormrepo

import "alcyxob/fitness-tracker/internal/domain"

// Row models mirror the aggregate primitives. Timestamps stay ISO-8601
// strings, which sort the same way as the instants they encode.

type exerciseRow struct {
	ID             string                          `gorm:"primaryKey"`
	Name           string                          `gorm:"not null;index"`
	Description    *string                         `gorm:"type:text"`
	UserID         *string                         `gorm:"index"`
	TargetMuscles  []domain.TargetMusclePrimitives `gorm:"type:text;serializer:json"`
	DefaultMetrics []string                        `gorm:"type:text;serializer:json"`
	CreatedAt      string                          `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt      string                          `gorm:"not null;autoUpdateTime:false"`
}

func (exerciseRow) TableName() string { return "exercises" }

func (exerciseRow) mutableColumns() []string {
	return []string{"name", "description", "target_muscles", "default_metrics", "updated_at"}
}

func newExerciseRow(p domain.ExercisePrimitives) exerciseRow {
	return exerciseRow{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		UserID:         p.UserID,
		TargetMuscles:  p.TargetMuscles,
		DefaultMetrics: p.DefaultMetrics,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (r exerciseRow) toPrimitives() domain.ExercisePrimitives {
	return domain.ExercisePrimitives{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		UserID:         r.UserID,
		TargetMuscles:  r.TargetMuscles,
		DefaultMetrics: r.DefaultMetrics,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type exerciseMetricRow struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null;index"`
	Type     string `gorm:"not null"`
	Relation string `gorm:"not null"`
}

func (exerciseMetricRow) TableName() string { return "exercise_metrics" }

func (exerciseMetricRow) mutableColumns() []string { return []string{"name", "relation"} }

func newExerciseMetricRow(p domain.ExerciseMetricPrimitives) exerciseMetricRow {
	return exerciseMetricRow{ID: p.ID, Name: p.Name, Type: p.Type, Relation: p.Relation}
}

func (r exerciseMetricRow) toPrimitives() domain.ExerciseMetricPrimitives {
	return domain.ExerciseMetricPrimitives{ID: r.ID, Name: r.Name, Type: r.Type, Relation: r.Relation}
}

type routineRow struct {
	ID          string                          `gorm:"primaryKey"`
	Name        string                          `gorm:"not null"`
	Description *string                         `gorm:"type:text"`
	UserID      string                          `gorm:"not null;index"`
	Blocks      []domain.RoutineBlockPrimitives `gorm:"type:text;serializer:json"`
	CreatedAt   string                          `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   string                          `gorm:"not null;autoUpdateTime:false"`
}

func (routineRow) TableName() string { return "routines" }

func (routineRow) mutableColumns() []string {
	return []string{"name", "description", "blocks", "updated_at"}
}

func newRoutineRow(p domain.RoutinePrimitives) routineRow {
	return routineRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		Blocks:      p.Blocks,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r routineRow) toPrimitives() domain.RoutinePrimitives {
	return domain.RoutinePrimitives{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		UserID:      r.UserID,
		Blocks:      r.Blocks,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type workoutRow struct {
	ID         string                          `gorm:"primaryKey"`
	UserID     string                          `gorm:"not null;index"`
	RoutineID  *string                         `gorm:"index"`
	Name       string                          `gorm:"not null"`
	StartedAt  string                          `gorm:"not null"`
	FinishedAt *string
	Notes      *string                         `gorm:"type:text"`
	Blocks     []domain.WorkoutBlockPrimitives `gorm:"type:text;serializer:json"`
	CreatedAt  string                          `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt  string                          `gorm:"not null;autoUpdateTime:false"`
}

func (workoutRow) TableName() string { return "workouts" }

func (workoutRow) mutableColumns() []string {
	return []string{"name", "finished_at", "notes", "blocks", "updated_at"}
}

func newWorkoutRow(p domain.WorkoutPrimitives) workoutRow {
	return workoutRow{
		ID:         p.ID,
		UserID:     p.UserID,
		RoutineID:  p.RoutineID,
		Name:       p.Name,
		StartedAt:  p.StartedAt,
		FinishedAt: p.FinishedAt,
		Notes:      p.Notes,
		Blocks:     p.Blocks,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r workoutRow) toPrimitives() domain.WorkoutPrimitives {
	return domain.WorkoutPrimitives{
		ID:         r.ID,
		UserID:     r.UserID,
		RoutineID:  r.RoutineID,
		Name:       r.Name,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Notes:      r.Notes,
		Blocks:     r.Blocks,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
