package gormrepo

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
)

var (
	schemaCache sync.Map
	naming      = schema.NamingStrategy{}
)

// Query is a criteria.Criteria translated into GORM clauses.
type Query struct {
	Where  []clause.Expression
	Order  *clause.OrderByColumn
	Limit  *int
	Offset *int
}

// Scope applies filters, order and pagination.
func (q Query) Scope(db *gorm.DB) *gorm.DB {
	db = q.WhereScope(db)
	if q.Order != nil {
		db = db.Order(*q.Order)
	}
	if q.Limit != nil {
		db = db.Limit(*q.Limit)
	}
	if q.Offset != nil {
		db = db.Offset(*q.Offset)
	}
	return db
}

// WhereScope applies the filters only. Used for counting.
func (q Query) WhereScope(db *gorm.DB) *gorm.DB {
	if len(q.Where) == 0 {
		return db
	}
	return db.Clauses(clause.Where{Exprs: q.Where})
}

// FieldMapping maps logical criteria fields to column names. Fields that
// are not listed map to their snake_case column.
type FieldMapping map[string]string

// CriteriaConverter translates criteria into clauses for one table. The
// table's columns are taken from the row model's schema.
type CriteriaConverter struct {
	columns map[string]struct{}
	mapping FieldMapping
}

func NewCriteriaConverter(model any, mapping FieldMapping) (*CriteriaConverter, error) {
	s, err := schema.Parse(model, &schemaCache, naming)
	if err != nil {
		return nil, fmt.Errorf("parse schema of %T: %w", model, err)
	}
	columns := make(map[string]struct{}, len(s.DBNames))
	for _, name := range s.DBNames {
		columns[name] = struct{}{}
	}
	if mapping == nil {
		mapping = FieldMapping{}
	}
	return &CriteriaConverter{columns: columns, mapping: mapping}, nil
}

func mustCriteriaConverter(model any, mapping FieldMapping) *CriteriaConverter {
	c, err := NewCriteriaConverter(model, mapping)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *CriteriaConverter) Convert(cr criteria.Criteria) (Query, error) {
	var q Query

	for _, f := range cr.Filters() {
		expr, err := c.convertFilter(f)
		if err != nil {
			return Query{}, err
		}
		q.Where = append(q.Where, expr)
	}

	if cr.HasOrder() {
		column, err := c.column(cr.Order().Field())
		if err != nil {
			return Query{}, err
		}
		q.Order = &clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: cr.Order().IsDesc()}
	}

	if limit, ok := cr.Pagination().Limit(); ok {
		q.Limit = &limit
	}
	if offset, ok := cr.Pagination().Offset(); ok {
		q.Offset = &offset
	}

	return q, nil
}

func (c *CriteriaConverter) convertFilter(f criteria.Filter) (clause.Expression, error) {
	name, err := c.column(f.Field())
	if err != nil {
		return nil, err
	}
	column := clause.Column{Name: name}
	value := f.Value()

	switch f.Operator() {
	case criteria.OperatorEqual:
		return clause.Eq{Column: column, Value: value}, nil
	case criteria.OperatorNotEqual:
		return clause.Neq{Column: column, Value: value}, nil
	case criteria.OperatorGreaterThan:
		return clause.Gt{Column: column, Value: value}, nil
	case criteria.OperatorGreaterThanOrEqual:
		return clause.Gte{Column: column, Value: value}, nil
	case criteria.OperatorLessThan:
		return clause.Lt{Column: column, Value: value}, nil
	case criteria.OperatorLessThanOrEqual:
		return clause.Lte{Column: column, Value: value}, nil
	case criteria.OperatorContains:
		return clause.Expr{SQL: `? LIKE ? ESCAPE '\'`, Vars: []any{column, likePattern(value)}}, nil
	case criteria.OperatorNotContains:
		return clause.Expr{SQL: `? NOT LIKE ? ESCAPE '\'`, Vars: []any{column, likePattern(value)}}, nil
	case criteria.OperatorIn:
		values, ok := criteria.ArrayValues(value)
		if !ok {
			return nil, domain.NewInvalidArgumentError("IN operator requires an array value")
		}
		return clause.IN{Column: column, Values: values}, nil
	case criteria.OperatorNotIn:
		values, ok := criteria.ArrayValues(value)
		if !ok {
			return nil, domain.NewInvalidArgumentError("NOT_IN operator requires an array value")
		}
		return clause.Not(clause.IN{Column: column, Values: values}), nil
	case criteria.OperatorIsNull:
		return clause.Eq{Column: column, Value: nil}, nil
	case criteria.OperatorIsNotNull:
		return clause.Neq{Column: column, Value: nil}, nil
	default:
		return nil, domain.NewInvalidArgumentError("Unsupported operator: %s", f.Operator())
	}
}

// column resolves a logical field. Unmapped fields must be the camelCase
// form of a column, so "userId" resolves but "user_id" does not.
func (c *CriteriaConverter) column(field string) (string, error) {
	column, mapped := c.mapping[field]
	if !mapped {
		column = naming.ColumnName("", field)
	}
	if _, ok := c.columns[column]; !ok || (!mapped && logicalName(column) != field) {
		return "", domain.NewInvalidArgumentError("Invalid filter field: %s", column)
	}
	return column, nil
}

// logicalName turns a snake_case column into its camelCase field name.
func logicalName(column string) string {
	parts := strings.Split(column, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches value anywhere in the column, with wildcards escaped.
func likePattern(value any) string {
	return "%" + likeEscaper.Replace(criteria.FormatValue(value)) + "%"
}
