package service

import "alcyxob/fitness-tracker/internal/domain"

// copyRoutineBlocks deep-copies a routine template into workout blocks.
// Run-specific timestamps start empty and the routine's lastValue history
// is left behind.
func copyRoutineBlocks(blocks []domain.RoutineBlockPrimitives) []domain.WorkoutBlockPrimitives {
	out := make([]domain.WorkoutBlockPrimitives, len(blocks))
	for i, block := range blocks {
		out[i] = domain.WorkoutBlockPrimitives{
			Order:      block.Order,
			Notes:      copyString(block.Notes),
			StartedAt:  nil,
			FinishedAt: nil,
			Sets:       copyRoutineSets(block.Sets, block.DefaultRestTime),
		}
	}
	return out
}

func copyRoutineSets(sets []domain.RoutineSetPrimitives, defaultRestTime *int) []domain.WorkoutSetPrimitives {
	out := make([]domain.WorkoutSetPrimitives, len(sets))
	for i, set := range sets {
		restTime := set.RestTime
		if restTime == nil {
			restTime = defaultRestTime
		}
		out[i] = domain.WorkoutSetPrimitives{
			Order:      set.Order,
			ExerciseID: set.ExerciseID,
			Notes:      copyString(set.Notes),
			StartedAt:  nil,
			FinishedAt: nil,
			RestTime:   copyInt(restTime),
			Metrics:    copyRoutineMetrics(set.Metrics),
		}
	}
	return out
}

func copyRoutineMetrics(metrics []domain.RoutineSetMetricPrimitives) []domain.WorkoutSetMetricPrimitives {
	out := make([]domain.WorkoutSetMetricPrimitives, len(metrics))
	for i, metric := range metrics {
		out[i] = domain.WorkoutSetMetricPrimitives{
			MetricID:    metric.MetricID,
			Value:       domain.MetricValuePrimitives{Value: 0, Unit: inferUnit(metric)},
			TargetRange: metric.TargetRange,
			TargetValue: metric.TargetValue,
		}
	}
	return out
}

// inferUnit picks the first unit available from targetValue, range min, range max.
func inferUnit(metric domain.RoutineSetMetricPrimitives) string {
	switch {
	case metric.TargetValue != nil:
		return metric.TargetValue.Unit
	case metric.TargetRange != nil && metric.TargetRange.Min != nil:
		return metric.TargetRange.Min.Unit
	case metric.TargetRange != nil && metric.TargetRange.Max != nil:
		return metric.TargetRange.Max.Unit
	default:
		return string(domain.MetricUnitQuantity)
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
