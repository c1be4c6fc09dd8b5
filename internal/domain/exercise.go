package domain

import "time"

// ExercisePrimitives is the persisted and transported shape of an Exercise.
type ExercisePrimitives struct {
	ID             string                   `bson:"_id" json:"id"`
	Name           string                   `bson:"name" json:"name"`
	Description    *string                  `bson:"description" json:"description"`
	UserID         *string                  `bson:"userId" json:"userId"` // nil for system exercises
	TargetMuscles  []TargetMusclePrimitives `bson:"targetMuscles" json:"targetMuscles"`
	DefaultMetrics []string                 `bson:"defaultMetrics" json:"defaultMetrics"` // ExerciseMetric ids
	CreatedAt      string                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt      string                   `bson:"updatedAt" json:"updatedAt"`
}

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	id             string
	name           string
	description    *string
	userID         *string
	targetMuscles  []TargetMuscle
	defaultMetrics []string
	createdAt      time.Time
	updatedAt      time.Time
}

type CreateExerciseParams struct {
	ID             string
	Name           string
	Description    *string
	UserID         *string
	TargetMuscles  []TargetMusclePrimitives
	DefaultMetrics []string
}

func CreateExercise(p CreateExerciseParams) (*Exercise, error) {
	ts := FormatTimestamp(now())
	return ExerciseFromPrimitives(ExercisePrimitives{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		UserID:         p.UserID,
		TargetMuscles:  p.TargetMuscles,
		DefaultMetrics: p.DefaultMetrics,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	})
}

func ExerciseFromPrimitives(p ExercisePrimitives) (*Exercise, error) {
	id, err := parseID("exercise", p.ID)
	if err != nil {
		return nil, err
	}
	name, err := parseName("Exercise name", p.Name)
	if err != nil {
		return nil, err
	}
	description, err := parseDescription("Exercise description", p.Description)
	if err != nil {
		return nil, err
	}
	userID, err := parseOptionalID("user", p.UserID)
	if err != nil {
		return nil, err
	}
	muscles, err := targetMusclesFromPrimitives(p.TargetMuscles)
	if err != nil {
		return nil, err
	}
	metrics, err := metricIDs(p.DefaultMetrics)
	if err != nil {
		return nil, err
	}
	createdAt, err := ParseTimestamp(p.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := ParseTimestamp(p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &Exercise{
		id:             id,
		name:           name,
		description:    description,
		userID:         userID,
		targetMuscles:  muscles,
		defaultMetrics: metrics,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (e *Exercise) ToPrimitives() ExercisePrimitives {
	muscles := make([]TargetMusclePrimitives, len(e.targetMuscles))
	for i, m := range e.targetMuscles {
		muscles[i] = m.ToPrimitives()
	}
	return ExercisePrimitives{
		ID:             e.id,
		Name:           e.name,
		Description:    copyString(e.description),
		UserID:         copyString(e.userID),
		TargetMuscles:  muscles,
		DefaultMetrics: append([]string{}, e.defaultMetrics...),
		CreatedAt:      FormatTimestamp(e.createdAt),
		UpdatedAt:      FormatTimestamp(e.updatedAt),
	}
}

func (e *Exercise) ID() string           { return e.id }
func (e *Exercise) Name() string         { return e.name }
func (e *Exercise) UserID() *string      { return copyString(e.userID) }
func (e *Exercise) UpdatedAt() time.Time { return e.updatedAt }

// IsSystem reports whether the exercise is part of the shared catalogue.
func (e *Exercise) IsSystem() bool {
	return e.userID == nil
}

// BelongsTo is false for system exercises regardless of userID.
func (e *Exercise) BelongsTo(userID string) bool {
	return e.userID != nil && *e.userID == userID
}

func (e *Exercise) UpdateName(name string) error {
	parsed, err := parseName("Exercise name", name)
	if err != nil {
		return err
	}
	e.name = parsed
	e.updatedAt = now()
	return nil
}

func (e *Exercise) UpdateDescription(description *string) error {
	parsed, err := parseDescription("Exercise description", description)
	if err != nil {
		return err
	}
	e.description = parsed
	e.updatedAt = now()
	return nil
}

func (e *Exercise) UpdateTargetMuscles(muscles []TargetMusclePrimitives) error {
	parsed, err := targetMusclesFromPrimitives(muscles)
	if err != nil {
		return err
	}
	e.targetMuscles = parsed
	e.updatedAt = now()
	return nil
}

func (e *Exercise) UpdateDefaultMetrics(metricIDList []string) error {
	parsed, err := metricIDs(metricIDList)
	if err != nil {
		return err
	}
	e.defaultMetrics = parsed
	e.updatedAt = now()
	return nil
}

func metricIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := parseID("exercise metric", raw)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
