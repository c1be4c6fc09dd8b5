package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/repository"
)

type rowModel[P any] interface {
	TableName() string
	toPrimitives() P
	// mutableColumns are overwritten when a row with the same id exists.
	mutableColumns() []string
}

// tableStore holds the table plumbing shared by the aggregate repositories.
// R is the row model, P the aggregate primitives and A the aggregate.
type tableStore[R rowModel[P], P any, A any] struct {
	db             *gorm.DB
	converter      *CriteriaConverter
	toRow          func(P) R
	fromPrimitives func(P) (A, error)
}

func newTableStore[R rowModel[P], P any, A any](db *gorm.DB, toRow func(P) R, fromPrimitives func(P) (A, error)) *tableStore[R, P, A] {
	var model R
	return &tableStore[R, P, A]{
		db:             db,
		converter:      mustCriteriaConverter(&model, nil),
		toRow:          toRow,
		fromPrimitives: fromPrimitives,
	}
}

// save inserts the row or updates the mutable columns of the existing one.
// Ownership and creation columns keep their first value.
func (s *tableStore[R, P, A]) save(ctx context.Context, p P) error {
	row := s.toRow(p)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(row.mutableColumns()),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", row.TableName(), err)
	}
	return nil
}

func (s *tableStore[R, P, A]) findByID(ctx context.Context, id string) (A, error) {
	var zero A
	var row R
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, repository.ErrNotFound
		}
		return zero, err
	}
	return s.fromPrimitives(row.toPrimitives())
}

func (s *tableStore[R, P, A]) find(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]A, error) {
	var rows []R
	if err := s.db.WithContext(ctx).Scopes(scopes...).Find(&rows).Error; err != nil {
		return nil, err
	}

	aggregates := make([]A, 0, len(rows))
	for _, row := range rows {
		aggregate, err := s.fromPrimitives(row.toPrimitives())
		if err != nil {
			return nil, fmt.Errorf("decode %s row: %w", row.TableName(), err)
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}

func (s *tableStore[R, P, A]) findByUserID(ctx context.Context, userID string) ([]A, error) {
	return s.find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("created_at DESC")
	})
}

func (s *tableStore[R, P, A]) findByCriteria(ctx context.Context, c criteria.Criteria) ([]A, error) {
	q, err := s.converter.Convert(c)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, q.Scope)
}

// countByCriteria ignores pagination.
func (s *tableStore[R, P, A]) countByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	q, err := s.converter.Convert(c)
	if err != nil {
		return 0, err
	}
	var model R
	var count int64
	err = s.db.WithContext(ctx).Model(&model).Scopes(q.WhereScope).Count(&count).Error
	return count, err
}

func (s *tableStore[R, P, A]) delete(ctx context.Context, id string) error {
	var model R
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ExplainCriteria renders the SELECT a repository would issue for c against
// table, without executing it.
func ExplainCriteria(db *gorm.DB, table string, c criteria.Criteria) (string, error) {
	switch table {
	case exerciseRow{}.TableName():
		return explain[exerciseRow](db, c)
	case exerciseMetricRow{}.TableName():
		return explain[exerciseMetricRow](db, c)
	case routineRow{}.TableName():
		return explain[routineRow](db, c)
	case workoutRow{}.TableName():
		return explain[workoutRow](db, c)
	default:
		return "", fmt.Errorf("unknown table %q", table)
	}
}

func explain[R any](db *gorm.DB, c criteria.Criteria) (string, error) {
	var model R
	converter, err := NewCriteriaConverter(&model, nil)
	if err != nil {
		return "", err
	}
	q, err := converter.Convert(c)
	if err != nil {
		return "", err
	}
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []R
		return tx.Scopes(q.Scope).Find(&rows)
	}), nil
}
