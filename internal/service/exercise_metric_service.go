package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// defaultExerciseMetrics is the catalogue installed by PopulateExerciseMetrics.
var defaultExerciseMetrics = []struct {
	name     string
	kind     domain.MetricType
	relation domain.MetricRelation
}{
	{"Reps", domain.MetricTypeCount, domain.MetricRelationDirect},
	{"Weight", domain.MetricTypeWeight, domain.MetricRelationDirect},
	{"Duration", domain.MetricTypeDuration, domain.MetricRelationDirect},
	{"Distance", domain.MetricTypeDistance, domain.MetricRelationDirect},
	{"Rest Time", domain.MetricTypeDuration, domain.MetricRelationInverse},
	{"RPE", domain.MetricTypeCount, domain.MetricRelationDirect},
}

type CreateExerciseMetricInput struct {
	ID       string
	Name     string
	Type     string
	Relation string
}

type UpdateExerciseMetricInput struct {
	Name     Optional[string] `json:"name"`
	Relation Optional[string] `json:"relation"`
}

// --- Service Interface ---
type ExerciseMetricService interface {
	SearchAllExerciseMetrics(ctx context.Context) ([]domain.ExerciseMetricPrimitives, error)
	FindExerciseMetric(ctx context.Context, metricID string) (domain.ExerciseMetricPrimitives, error)
	CreateExerciseMetric(ctx context.Context, in CreateExerciseMetricInput) error
	UpdateExerciseMetric(ctx context.Context, metricID string, in UpdateExerciseMetricInput) error
	// PopulateExerciseMetrics installs the default catalogue entries that are
	// missing and returns how many were inserted.
	PopulateExerciseMetrics(ctx context.Context) (int, error)
}

// --- Service Implementation ---

type exerciseMetricService struct {
	metricRepo repository.ExerciseMetricRepository
}

func NewExerciseMetricService(metricRepo repository.ExerciseMetricRepository) ExerciseMetricService {
	return &exerciseMetricService{metricRepo: metricRepo}
}

func (s *exerciseMetricService) SearchAllExerciseMetrics(ctx context.Context) ([]domain.ExerciseMetricPrimitives, error) {
	metrics, err := s.metricRepo.SearchAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(metrics, (*domain.ExerciseMetric).ToPrimitives), nil
}

func (s *exerciseMetricService) FindExerciseMetric(ctx context.Context, metricID string) (domain.ExerciseMetricPrimitives, error) {
	metric, err := s.find(ctx, metricID)
	if err != nil {
		return domain.ExerciseMetricPrimitives{}, err
	}
	return metric.ToPrimitives(), nil
}

func (s *exerciseMetricService) CreateExerciseMetric(ctx context.Context, in CreateExerciseMetricInput) error {
	metric, err := domain.CreateExerciseMetric(domain.CreateExerciseMetricParams{
		ID:       in.ID,
		Name:     in.Name,
		Type:     in.Type,
		Relation: in.Relation,
	})
	if err != nil {
		return err
	}

	existing, err := s.metricRepo.SearchAll(ctx)
	if err != nil {
		return err
	}
	if nameTaken(existing, metric.Name(), "") {
		return domain.NewExerciseMetricAlreadyExistsError(metric.Name())
	}

	return s.metricRepo.Save(ctx, metric)
}

func (s *exerciseMetricService) UpdateExerciseMetric(ctx context.Context, metricID string, in UpdateExerciseMetricInput) error {
	metric, err := s.find(ctx, metricID)
	if err != nil {
		return err
	}

	if in.Name.Set {
		existing, err := s.metricRepo.SearchAll(ctx)
		if err != nil {
			return err
		}
		if nameTaken(existing, in.Name.Value, metric.ID()) {
			return domain.NewExerciseMetricAlreadyExistsError(in.Name.Value)
		}
		if err := metric.Rename(in.Name.Value); err != nil {
			return err
		}
	}
	if in.Relation.Set {
		if err := metric.ChangeRelation(in.Relation.Value); err != nil {
			return err
		}
	}

	return s.metricRepo.Save(ctx, metric)
}

func (s *exerciseMetricService) PopulateExerciseMetrics(ctx context.Context) (int, error) {
	existing, err := s.metricRepo.SearchAll(ctx)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, d := range defaultExerciseMetrics {
		if nameTaken(existing, d.name, "") {
			continue
		}
		metric, err := domain.CreateExerciseMetric(domain.CreateExerciseMetricParams{
			ID:       domain.NewID(),
			Name:     d.name,
			Type:     string(d.kind),
			Relation: string(d.relation),
		})
		if err != nil {
			return inserted, err
		}
		if err := s.metricRepo.Save(ctx, metric); err != nil {
			return inserted, err
		}
		existing = append(existing, metric)
		inserted++
	}

	log.Infof("exercise metrics populated: %d inserted", inserted)
	return inserted, nil
}

func (s *exerciseMetricService) find(ctx context.Context, metricID string) (*domain.ExerciseMetric, error) {
	metric, err := s.metricRepo.Search(ctx, metricID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewExerciseMetricDoesNotExistError(metricID)
		}
		return nil, err
	}
	return metric, nil
}

// nameTaken reports whether another metric (ignoring exceptID) already uses name.
func nameTaken(metrics []*domain.ExerciseMetric, name, exceptID string) bool {
	for _, m := range metrics {
		if m.ID() != exceptID && m.HasName(name) {
			return true
		}
	}
	return false
}
