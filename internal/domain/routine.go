package domain

import "time"

// --- Primitives ---

type RoutineSetMetricPrimitives struct {
	MetricID    string                      `bson:"metricId" json:"metricId"`
	TargetRange *MetricValueRangePrimitives `bson:"targetRange" json:"targetRange"`
	TargetValue *MetricValuePrimitives      `bson:"targetValue" json:"targetValue"`
	LastValue   *MetricValuePrimitives      `bson:"lastValue" json:"lastValue"`
}

type RoutineSetPrimitives struct {
	Order      int                          `bson:"order" json:"order"`
	ExerciseID string                       `bson:"exerciseId" json:"exerciseId"`
	Notes      *string                      `bson:"notes" json:"notes"`
	RestTime   *int                         `bson:"restTime" json:"restTime"` // seconds
	Metrics    []RoutineSetMetricPrimitives `bson:"metrics" json:"metrics"`
}

type RoutineBlockPrimitives struct {
	Order           int                    `bson:"order" json:"order"`
	Notes           *string                `bson:"notes" json:"notes"`
	DefaultRestTime *int                   `bson:"defaultRestTime" json:"defaultRestTime"` // seconds
	Sets            []RoutineSetPrimitives `bson:"sets" json:"sets"`
}

// RoutinePrimitives is the persisted and transported shape of a Routine.
type RoutinePrimitives struct {
	ID          string                   `bson:"_id" json:"id"`
	Name        string                   `bson:"name" json:"name"`
	Description *string                  `bson:"description" json:"description"`
	UserID      string                   `bson:"userId" json:"userId"`
	Blocks      []RoutineBlockPrimitives `bson:"blocks" json:"blocks"`
	CreatedAt   string                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   string                   `bson:"updatedAt" json:"updatedAt"`
}

// --- Nested entities ---

type RoutineSetMetric struct {
	metricID    string
	targetRange *MetricValueRange
	targetValue *MetricValue
	lastValue   *MetricValue
}

type RoutineSet struct {
	order      int
	exerciseID string
	notes      *string
	restTime   *int
	metrics    []RoutineSetMetric
}

type RoutineBlock struct {
	order           int
	notes           *string
	defaultRestTime *int
	sets            []RoutineSet
}

func routineSetMetricFromPrimitives(p RoutineSetMetricPrimitives) (RoutineSetMetric, error) {
	metricID, err := parseID("exercise metric", p.MetricID)
	if err != nil {
		return RoutineSetMetric{}, err
	}
	targetRange, err := optionalRangeFromPrimitives(p.TargetRange)
	if err != nil {
		return RoutineSetMetric{}, err
	}
	targetValue, err := optionalMetricValueFromPrimitives(p.TargetValue)
	if err != nil {
		return RoutineSetMetric{}, err
	}
	lastValue, err := optionalMetricValueFromPrimitives(p.LastValue)
	if err != nil {
		return RoutineSetMetric{}, err
	}
	return RoutineSetMetric{
		metricID:    metricID,
		targetRange: targetRange,
		targetValue: targetValue,
		lastValue:   lastValue,
	}, nil
}

func (m RoutineSetMetric) toPrimitives() RoutineSetMetricPrimitives {
	return RoutineSetMetricPrimitives{
		MetricID:    m.metricID,
		TargetRange: optionalRangeToPrimitives(m.targetRange),
		TargetValue: optionalMetricValueToPrimitives(m.targetValue),
		LastValue:   optionalMetricValueToPrimitives(m.lastValue),
	}
}

func routineSetFromPrimitives(p RoutineSetPrimitives) (RoutineSet, error) {
	exerciseID, err := parseID("exercise", p.ExerciseID)
	if err != nil {
		return RoutineSet{}, err
	}
	metrics := make([]RoutineSetMetric, 0, len(p.Metrics))
	for _, mp := range p.Metrics {
		m, err := routineSetMetricFromPrimitives(mp)
		if err != nil {
			return RoutineSet{}, err
		}
		metrics = append(metrics, m)
	}
	return RoutineSet{
		order:      p.Order,
		exerciseID: exerciseID,
		notes:      copyString(p.Notes),
		restTime:   copyInt(p.RestTime),
		metrics:    metrics,
	}, nil
}

func (s RoutineSet) toPrimitives() RoutineSetPrimitives {
	metrics := make([]RoutineSetMetricPrimitives, len(s.metrics))
	for i, m := range s.metrics {
		metrics[i] = m.toPrimitives()
	}
	return RoutineSetPrimitives{
		Order:      s.order,
		ExerciseID: s.exerciseID,
		Notes:      copyString(s.notes),
		RestTime:   copyInt(s.restTime),
		Metrics:    metrics,
	}
}

func routineBlockFromPrimitives(p RoutineBlockPrimitives) (RoutineBlock, error) {
	sets := make([]RoutineSet, 0, len(p.Sets))
	for _, sp := range p.Sets {
		s, err := routineSetFromPrimitives(sp)
		if err != nil {
			return RoutineBlock{}, err
		}
		sets = append(sets, s)
	}
	return RoutineBlock{
		order:           p.Order,
		notes:           copyString(p.Notes),
		defaultRestTime: copyInt(p.DefaultRestTime),
		sets:            sets,
	}, nil
}

func (b RoutineBlock) toPrimitives() RoutineBlockPrimitives {
	sets := make([]RoutineSetPrimitives, len(b.sets))
	for i, s := range b.sets {
		sets[i] = s.toPrimitives()
	}
	return RoutineBlockPrimitives{
		Order:           b.order,
		Notes:           copyString(b.notes),
		DefaultRestTime: copyInt(b.defaultRestTime),
		Sets:            sets,
	}
}

func routineBlocksFromPrimitives(ps []RoutineBlockPrimitives) ([]RoutineBlock, error) {
	blocks := make([]RoutineBlock, 0, len(ps))
	for _, bp := range ps {
		b, err := routineBlockFromPrimitives(bp)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// --- Routine aggregate ---

// Routine is a reusable workout template owned by a single user.
type Routine struct {
	id          string
	name        string
	description *string
	userID      string
	blocks      []RoutineBlock
	createdAt   time.Time
	updatedAt   time.Time
}

type CreateRoutineParams struct {
	ID          string
	Name        string
	Description *string
	UserID      string
	Blocks      []RoutineBlockPrimitives
}

func CreateRoutine(p CreateRoutineParams) (*Routine, error) {
	ts := FormatTimestamp(now())
	return RoutineFromPrimitives(RoutinePrimitives{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		Blocks:      p.Blocks,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
}

func RoutineFromPrimitives(p RoutinePrimitives) (*Routine, error) {
	id, err := parseID("routine", p.ID)
	if err != nil {
		return nil, err
	}
	name, err := parseName("Routine name", p.Name)
	if err != nil {
		return nil, err
	}
	description, err := parseDescription("Routine description", p.Description)
	if err != nil {
		return nil, err
	}
	userID, err := parseID("user", p.UserID)
	if err != nil {
		return nil, err
	}
	blocks, err := routineBlocksFromPrimitives(p.Blocks)
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

	return &Routine{
		id:          id,
		name:        name,
		description: description,
		userID:      userID,
		blocks:      blocks,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *Routine) ToPrimitives() RoutinePrimitives {
	blocks := make([]RoutineBlockPrimitives, len(r.blocks))
	for i, b := range r.blocks {
		blocks[i] = b.toPrimitives()
	}
	return RoutinePrimitives{
		ID:          r.id,
		Name:        r.name,
		Description: copyString(r.description),
		UserID:      r.userID,
		Blocks:      blocks,
		CreatedAt:   FormatTimestamp(r.createdAt),
		UpdatedAt:   FormatTimestamp(r.updatedAt),
	}
}

func (r *Routine) ID() string           { return r.id }
func (r *Routine) Name() string         { return r.name }
func (r *Routine) UserID() string       { return r.userID }
func (r *Routine) UpdatedAt() time.Time { return r.updatedAt }

func (r *Routine) BelongsTo(userID string) bool {
	return r.userID == userID
}

func (r *Routine) UpdateName(name string) error {
	parsed, err := parseName("Routine name", name)
	if err != nil {
		return err
	}
	r.name = parsed
	r.updatedAt = now()
	return nil
}

// UpdateDescription clears the description when given nil.
func (r *Routine) UpdateDescription(description *string) error {
	parsed, err := parseDescription("Routine description", description)
	if err != nil {
		return err
	}
	r.description = parsed
	r.updatedAt = now()
	return nil
}

func (r *Routine) UpdateBlocks(blocks []RoutineBlockPrimitives) error {
	parsed, err := routineBlocksFromPrimitives(blocks)
	if err != nil {
		return err
	}
	r.blocks = parsed
	r.updatedAt = now()
	return nil
}
