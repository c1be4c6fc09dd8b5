package domain

import "strings"

// ExerciseMetricPrimitives is the persisted and transported shape of an ExerciseMetric.
type ExerciseMetricPrimitives struct {
	ID       string `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Type     string `bson:"type" json:"type"`
	Relation string `bson:"relation" json:"relation"`
}

// ExerciseMetric is a system-wide measurement definition (reps, weight, RPE...).
type ExerciseMetric struct {
	id         string
	name       string
	metricType MetricType
	relation   MetricRelation
}

type CreateExerciseMetricParams struct {
	ID       string
	Name     string
	Type     string
	Relation string
}

func CreateExerciseMetric(p CreateExerciseMetricParams) (*ExerciseMetric, error) {
	return ExerciseMetricFromPrimitives(ExerciseMetricPrimitives{
		ID:       p.ID,
		Name:     p.Name,
		Type:     p.Type,
		Relation: p.Relation,
	})
}

func ExerciseMetricFromPrimitives(p ExerciseMetricPrimitives) (*ExerciseMetric, error) {
	id, err := parseID("exercise metric", p.ID)
	if err != nil {
		return nil, err
	}
	name, err := parseName("Exercise metric name", p.Name)
	if err != nil {
		return nil, err
	}
	metricType, err := ParseMetricType(p.Type)
	if err != nil {
		return nil, err
	}
	relation, err := ParseMetricRelation(p.Relation)
	if err != nil {
		return nil, err
	}
	return &ExerciseMetric{id: id, name: name, metricType: metricType, relation: relation}, nil
}

func (m *ExerciseMetric) ToPrimitives() ExerciseMetricPrimitives {
	return ExerciseMetricPrimitives{
		ID:       m.id,
		Name:     m.name,
		Type:     string(m.metricType),
		Relation: string(m.relation),
	}
}

func (m *ExerciseMetric) ID() string               { return m.id }
func (m *ExerciseMetric) Name() string             { return m.name }
func (m *ExerciseMetric) Type() MetricType         { return m.metricType }
func (m *ExerciseMetric) Relation() MetricRelation { return m.relation }

// HasName compares names case-insensitively, ignoring surrounding whitespace.
func (m *ExerciseMetric) HasName(name string) bool {
	return strings.EqualFold(m.name, strings.TrimSpace(name))
}

func (m *ExerciseMetric) Rename(name string) error {
	parsed, err := parseName("Exercise metric name", name)
	if err != nil {
		return err
	}
	m.name = parsed
	return nil
}

func (m *ExerciseMetric) ChangeRelation(relation string) error {
	parsed, err := ParseMetricRelation(relation)
	if err != nil {
		return err
	}
	m.relation = parsed
	return nil
}
