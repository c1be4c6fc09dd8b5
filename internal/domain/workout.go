package domain

import "time"

// --- Primitives ---

type WorkoutSetMetricPrimitives struct {
	MetricID    string                      `bson:"metricId" json:"metricId"`
	Value       MetricValuePrimitives       `bson:"value" json:"value"` // recorded measurement
	TargetRange *MetricValueRangePrimitives `bson:"targetRange" json:"targetRange"`
	TargetValue *MetricValuePrimitives      `bson:"targetValue" json:"targetValue"`
}

type WorkoutSetPrimitives struct {
	Order      int                          `bson:"order" json:"order"`
	ExerciseID string                       `bson:"exerciseId" json:"exerciseId"`
	Notes      *string                      `bson:"notes" json:"notes"`
	StartedAt  *string                      `bson:"startedAt" json:"startedAt"`
	FinishedAt *string                      `bson:"finishedAt" json:"finishedAt"`
	RestTime   *int                         `bson:"restTime" json:"restTime"`
	Metrics    []WorkoutSetMetricPrimitives `bson:"metrics" json:"metrics"`
}

type WorkoutBlockPrimitives struct {
	Order      int                    `bson:"order" json:"order"`
	Notes      *string                `bson:"notes" json:"notes"`
	StartedAt  *string                `bson:"startedAt" json:"startedAt"`
	FinishedAt *string                `bson:"finishedAt" json:"finishedAt"`
	Sets       []WorkoutSetPrimitives `bson:"sets" json:"sets"`
}

// WorkoutPrimitives is the persisted and transported shape of a Workout.
type WorkoutPrimitives struct {
	ID         string                   `bson:"_id" json:"id"`
	UserID     string                   `bson:"userId" json:"userId"`
	RoutineID  *string                  `bson:"routineId" json:"routineId"`
	Name       string                   `bson:"name" json:"name"`
	StartedAt  string                   `bson:"startedAt" json:"startedAt"`
	FinishedAt *string                  `bson:"finishedAt" json:"finishedAt"` // nil while in progress
	Notes      *string                  `bson:"notes" json:"notes"`
	Blocks     []WorkoutBlockPrimitives `bson:"blocks" json:"blocks"`
	CreatedAt  string                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt  string                   `bson:"updatedAt" json:"updatedAt"`
}

// --- Nested entities ---

type WorkoutSetMetric struct {
	metricID    string
	value       MetricValue
	targetRange *MetricValueRange
	targetValue *MetricValue
}

type WorkoutSet struct {
	order      int
	exerciseID string
	notes      *string
	startedAt  *time.Time
	finishedAt *time.Time
	restTime   *int
	metrics    []WorkoutSetMetric
}

type WorkoutBlock struct {
	order      int
	notes      *string
	startedAt  *time.Time
	finishedAt *time.Time
	sets       []WorkoutSet
}

func workoutSetMetricFromPrimitives(p WorkoutSetMetricPrimitives) (WorkoutSetMetric, error) {
	metricID, err := parseID("exercise metric", p.MetricID)
	if err != nil {
		return WorkoutSetMetric{}, err
	}
	value, err := MetricValueFromPrimitives(p.Value)
	if err != nil {
		return WorkoutSetMetric{}, err
	}
	targetRange, err := optionalRangeFromPrimitives(p.TargetRange)
	if err != nil {
		return WorkoutSetMetric{}, err
	}
	targetValue, err := optionalMetricValueFromPrimitives(p.TargetValue)
	if err != nil {
		return WorkoutSetMetric{}, err
	}
	return WorkoutSetMetric{
		metricID:    metricID,
		value:       value,
		targetRange: targetRange,
		targetValue: targetValue,
	}, nil
}

func (m WorkoutSetMetric) toPrimitives() WorkoutSetMetricPrimitives {
	return WorkoutSetMetricPrimitives{
		MetricID:    m.metricID,
		Value:       m.value.ToPrimitives(),
		TargetRange: optionalRangeToPrimitives(m.targetRange),
		TargetValue: optionalMetricValueToPrimitives(m.targetValue),
	}
}

func workoutSetFromPrimitives(p WorkoutSetPrimitives) (WorkoutSet, error) {
	exerciseID, err := parseID("exercise", p.ExerciseID)
	if err != nil {
		return WorkoutSet{}, err
	}
	startedAt, err := parseOptionalTimestamp(p.StartedAt)
	if err != nil {
		return WorkoutSet{}, err
	}
	finishedAt, err := parseOptionalTimestamp(p.FinishedAt)
	if err != nil {
		return WorkoutSet{}, err
	}
	metrics := make([]WorkoutSetMetric, 0, len(p.Metrics))
	for _, mp := range p.Metrics {
		m, err := workoutSetMetricFromPrimitives(mp)
		if err != nil {
			return WorkoutSet{}, err
		}
		metrics = append(metrics, m)
	}
	return WorkoutSet{
		order:      p.Order,
		exerciseID: exerciseID,
		notes:      copyString(p.Notes),
		startedAt:  startedAt,
		finishedAt: finishedAt,
		restTime:   copyInt(p.RestTime),
		metrics:    metrics,
	}, nil
}

func (s WorkoutSet) toPrimitives() WorkoutSetPrimitives {
	metrics := make([]WorkoutSetMetricPrimitives, len(s.metrics))
	for i, m := range s.metrics {
		metrics[i] = m.toPrimitives()
	}
	return WorkoutSetPrimitives{
		Order:      s.order,
		ExerciseID: s.exerciseID,
		Notes:      copyString(s.notes),
		StartedAt:  formatOptionalTimestamp(s.startedAt),
		FinishedAt: formatOptionalTimestamp(s.finishedAt),
		RestTime:   copyInt(s.restTime),
		Metrics:    metrics,
	}
}

func workoutBlockFromPrimitives(p WorkoutBlockPrimitives) (WorkoutBlock, error) {
	startedAt, err := parseOptionalTimestamp(p.StartedAt)
	if err != nil {
		return WorkoutBlock{}, err
	}
	finishedAt, err := parseOptionalTimestamp(p.FinishedAt)
	if err != nil {
		return WorkoutBlock{}, err
	}
	sets := make([]WorkoutSet, 0, len(p.Sets))
	for _, sp := range p.Sets {
		s, err := workoutSetFromPrimitives(sp)
		if err != nil {
			return WorkoutBlock{}, err
		}
		sets = append(sets, s)
	}
	return WorkoutBlock{
		order:      p.Order,
		notes:      copyString(p.Notes),
		startedAt:  startedAt,
		finishedAt: finishedAt,
		sets:       sets,
	}, nil
}

func (b WorkoutBlock) toPrimitives() WorkoutBlockPrimitives {
	sets := make([]WorkoutSetPrimitives, len(b.sets))
	for i, s := range b.sets {
		sets[i] = s.toPrimitives()
	}
	return WorkoutBlockPrimitives{
		Order:      b.order,
		Notes:      copyString(b.notes),
		StartedAt:  formatOptionalTimestamp(b.startedAt),
		FinishedAt: formatOptionalTimestamp(b.finishedAt),
		Sets:       sets,
	}
}

// --- Workout aggregate ---

// Workout is one performed session, usually snapshotted from a Routine.
// It is in progress while finishedAt is nil and immutable once finished.
type Workout struct {
	id         string
	userID     string
	routineID  *string
	name       string
	startedAt  time.Time
	finishedAt *time.Time
	notes      *string
	blocks     []WorkoutBlock
	createdAt  time.Time
	updatedAt  time.Time
}

type CreateWorkoutParams struct {
	ID        string
	UserID    string
	RoutineID *string
	Name      string
	StartedAt *time.Time // defaults to now
	Notes     *string
	Blocks    []WorkoutBlockPrimitives
}

func CreateWorkout(p CreateWorkoutParams) (*Workout, error) {
	created := now()
	startedAt := created
	if p.StartedAt != nil {
		startedAt = *p.StartedAt
	}
	ts := FormatTimestamp(created)
	return WorkoutFromPrimitives(WorkoutPrimitives{
		ID:         p.ID,
		UserID:     p.UserID,
		RoutineID:  p.RoutineID,
		Name:       p.Name,
		StartedAt:  FormatTimestamp(startedAt),
		FinishedAt: nil,
		Notes:      p.Notes,
		Blocks:     p.Blocks,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	})
}

func WorkoutFromPrimitives(p WorkoutPrimitives) (*Workout, error) {
	id, err := parseID("workout", p.ID)
	if err != nil {
		return nil, err
	}
	userID, err := parseID("user", p.UserID)
	if err != nil {
		return nil, err
	}
	routineID, err := parseOptionalID("routine", p.RoutineID)
	if err != nil {
		return nil, err
	}
	name, err := parseName("Workout name", p.Name)
	if err != nil {
		return nil, err
	}
	startedAt, err := ParseTimestamp(p.StartedAt)
	if err != nil {
		return nil, err
	}
	finishedAt, err := parseOptionalTimestamp(p.FinishedAt)
	if err != nil {
		return nil, err
	}
	blocks := make([]WorkoutBlock, 0, len(p.Blocks))
	for _, bp := range p.Blocks {
		b, err := workoutBlockFromPrimitives(bp)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	createdAt, err := ParseTimestamp(p.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := ParseTimestamp(p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &Workout{
		id:         id,
		userID:     userID,
		routineID:  routineID,
		name:       name,
		startedAt:  startedAt,
		finishedAt: finishedAt,
		notes:      copyString(p.Notes),
		blocks:     blocks,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (w *Workout) ToPrimitives() WorkoutPrimitives {
	blocks := make([]WorkoutBlockPrimitives, len(w.blocks))
	for i, b := range w.blocks {
		blocks[i] = b.toPrimitives()
	}
	return WorkoutPrimitives{
		ID:         w.id,
		UserID:     w.userID,
		RoutineID:  copyString(w.routineID),
		Name:       w.name,
		StartedAt:  FormatTimestamp(w.startedAt),
		FinishedAt: formatOptionalTimestamp(w.finishedAt),
		Notes:      copyString(w.notes),
		Blocks:     blocks,
		CreatedAt:  FormatTimestamp(w.createdAt),
		UpdatedAt:  FormatTimestamp(w.updatedAt),
	}
}

func (w *Workout) ID() string           { return w.id }
func (w *Workout) UserID() string       { return w.userID }
func (w *Workout) Name() string         { return w.name }
func (w *Workout) UpdatedAt() time.Time { return w.updatedAt }

func (w *Workout) FinishedAt() *time.Time {
	if w.finishedAt == nil {
		return nil
	}
	t := *w.finishedAt
	return &t
}

func (w *Workout) BelongsTo(userID string) bool {
	return w.userID == userID
}

func (w *Workout) IsFinished() bool {
	return w.finishedAt != nil
}

// Finish moves the workout from in progress to finished.
func (w *Workout) Finish() error {
	if w.IsFinished() {
		return NewWorkoutAlreadyFinishedError(w.id)
	}
	t := now()
	w.finishedAt = &t
	w.updatedAt = t
	return nil
}
