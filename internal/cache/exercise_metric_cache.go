// Package cache holds in-process read-through caches for rarely changing data.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

const (
	allMetricsKey   = "metrics::all"
	metricKeyFormat = "metrics::%s"
)

// ExerciseMetricRepository caches the metric catalogue in front of another
// repository. Writes go straight through and invalidate the affected keys.
type ExerciseMetricRepository struct {
	next   repository.ExerciseMetricRepository
	cache  *freecache.Cache
	expire int // seconds
}

var _ repository.ExerciseMetricRepository = (*ExerciseMetricRepository)(nil)

func NewExerciseMetricRepository(next repository.ExerciseMetricRepository, sizeBytes int, ttl time.Duration) *ExerciseMetricRepository {
	return &ExerciseMetricRepository{
		next:   next,
		cache:  freecache.NewCache(sizeBytes),
		expire: int(ttl.Seconds()),
	}
}

func (r *ExerciseMetricRepository) Save(ctx context.Context, metric *domain.ExerciseMetric) error {
	if err := r.next.Save(ctx, metric); err != nil {
		return err
	}
	r.cache.Del([]byte(allMetricsKey))
	r.cache.Del(metricKey(metric.ID()))
	return nil
}

func (r *ExerciseMetricRepository) Search(ctx context.Context, id string) (*domain.ExerciseMetric, error) {
	key := metricKey(id)
	if cached, err := r.cache.Get(key); err == nil {
		var p domain.ExerciseMetricPrimitives
		if err := json.Unmarshal(cached, &p); err == nil {
			return domain.ExerciseMetricFromPrimitives(p)
		} else {
			log.Errorf("failed to unmarshal exercise metric %s from cache: %s", id, err)
		}
	}

	metric, err := r.next.Search(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(key, metric.ToPrimitives())
	return metric, nil
}

func (r *ExerciseMetricRepository) SearchAll(ctx context.Context) ([]*domain.ExerciseMetric, error) {
	if cached, err := r.cache.Get([]byte(allMetricsKey)); err == nil {
		log.Tracef("found exercise metrics in cache")
		var ps []domain.ExerciseMetricPrimitives
		if err := json.Unmarshal(cached, &ps); err == nil {
			return metricsFromPrimitives(ps)
		} else {
			log.Errorf("failed to unmarshal exercise metrics from cache: %s", err)
		}
	}

	metrics, err := r.next.SearchAll(ctx)
	if err != nil {
		return nil, err
	}
	ps := make([]domain.ExerciseMetricPrimitives, len(metrics))
	for i, m := range metrics {
		ps[i] = m.ToPrimitives()
	}
	r.set([]byte(allMetricsKey), ps)
	return metrics, nil
}

func (r *ExerciseMetricRepository) set(key []byte, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Errorf("failed to marshal cache entry %s: %s", key, err)
		return
	}
	if err := r.cache.Set(key, data, r.expire); err != nil {
		log.Errorf("failed to write cache entry %s: %s", key, err)
	}
}

func metricKey(id string) []byte {
	return []byte(fmt.Sprintf(metricKeyFormat, id))
}

func metricsFromPrimitives(ps []domain.ExerciseMetricPrimitives) ([]*domain.ExerciseMetric, error) {
	metrics := make([]*domain.ExerciseMetric, 0, len(ps))
	for _, p := range ps {
		m, err := domain.ExerciseMetricFromPrimitives(p)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
