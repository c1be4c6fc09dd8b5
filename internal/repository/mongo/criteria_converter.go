package mongo

import (
	"reflect"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
)

// FieldMapping maps logical criteria fields to document keys. Fields that
// are not listed map to themselves.
type FieldMapping map[string]string

// Query is a criteria.Criteria translated for a collection.
type Query struct {
	Filter bson.D
	Sort   bson.D
	Limit  *int64
	Skip   *int64
}

// FindOptions applies sort, limit and skip.
func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Limit != nil {
		opts.SetLimit(*q.Limit)
	}
	if q.Skip != nil {
		opts.SetSkip(*q.Skip)
	}
	return opts
}

// CriteriaConverter translates criteria into MongoDB filters for one
// collection. The collection's keys are taken from the bson tags of its
// document type.
type CriteriaConverter struct {
	fields  map[string]struct{}
	mapping FieldMapping
}

func NewCriteriaConverter(document any, mapping FieldMapping) *CriteriaConverter {
	if mapping == nil {
		mapping = FieldMapping{}
	}
	return &CriteriaConverter{fields: documentFields(document), mapping: mapping}
}

// Convert never touches the database.
func (c *CriteriaConverter) Convert(cr criteria.Criteria) (Query, error) {
	q := Query{Filter: bson.D{}}

	if cr.HasFilters() {
		predicates := make([]bson.D, 0, len(cr.Filters()))
		for _, f := range cr.Filters() {
			p, err := c.convertFilter(f)
			if err != nil {
				return Query{}, err
			}
			predicates = append(predicates, p)
		}
		if len(predicates) == 1 {
			q.Filter = predicates[0]
		} else {
			all := make(bson.A, len(predicates))
			for i, p := range predicates {
				all[i] = p
			}
			// An explicit $and keeps several predicates on the same key apart.
			q.Filter = bson.D{{Key: "$and", Value: all}}
		}
	}

	if cr.HasOrder() {
		column, err := c.column(cr.Order().Field())
		if err != nil {
			return Query{}, err
		}
		direction := 1
		if cr.Order().IsDesc() {
			direction = -1
		}
		q.Sort = bson.D{{Key: column, Value: direction}}
	}

	if cr.HasPagination() {
		if limit, ok := cr.Pagination().Limit(); ok {
			l := int64(limit)
			q.Limit = &l
		}
		if offset, ok := cr.Pagination().Offset(); ok {
			s := int64(offset)
			q.Skip = &s
		}
	}

	return q, nil
}

func (c *CriteriaConverter) convertFilter(f criteria.Filter) (bson.D, error) {
	column, err := c.column(f.Field())
	if err != nil {
		return nil, err
	}
	value := f.Value()

	switch f.Operator() {
	case criteria.OperatorEqual:
		return comparison(column, "$eq", value), nil
	case criteria.OperatorNotEqual:
		return comparison(column, "$ne", value), nil
	case criteria.OperatorGreaterThan:
		return comparison(column, "$gt", value), nil
	case criteria.OperatorGreaterThanOrEqual:
		return comparison(column, "$gte", value), nil
	case criteria.OperatorLessThan:
		return comparison(column, "$lt", value), nil
	case criteria.OperatorLessThanOrEqual:
		return comparison(column, "$lte", value), nil
	case criteria.OperatorContains:
		return comparison(column, "$regex", substringPattern(value)), nil
	case criteria.OperatorNotContains:
		return comparison(column, "$not", primitive.Regex{Pattern: substringPattern(value)}), nil
	case criteria.OperatorIn:
		values, ok := criteria.ArrayValues(value)
		if !ok {
			return nil, domain.NewInvalidArgumentError("IN operator requires an array value")
		}
		return comparison(column, "$in", bson.A(values)), nil
	case criteria.OperatorNotIn:
		values, ok := criteria.ArrayValues(value)
		if !ok {
			return nil, domain.NewInvalidArgumentError("NOT_IN operator requires an array value")
		}
		return comparison(column, "$nin", bson.A(values)), nil
	case criteria.OperatorIsNull:
		// Matches both explicit nulls and missing keys.
		return bson.D{{Key: column, Value: nil}}, nil
	case criteria.OperatorIsNotNull:
		return comparison(column, "$ne", nil), nil
	default:
		return nil, domain.NewInvalidArgumentError("Unsupported operator: %s", f.Operator())
	}
}

func (c *CriteriaConverter) column(field string) (string, error) {
	column := field
	if mapped, ok := c.mapping[field]; ok {
		column = mapped
	}
	if _, ok := c.fields[column]; !ok {
		return "", domain.NewInvalidArgumentError("Invalid filter field: %s", column)
	}
	return column, nil
}

func comparison(column, operator string, value any) bson.D {
	return bson.D{{Key: column, Value: bson.D{{Key: operator, Value: value}}}}
}

// substringPattern is a case-sensitive "contains" regex with metacharacters escaped.
func substringPattern(value any) string {
	return regexp.QuoteMeta(criteria.FormatValue(value))
}

// documentFields collects the top-level bson keys of a document struct.
func documentFields(document any) map[string]struct{} {
	fields := make(map[string]struct{})
	t := reflect.TypeOf(document)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.Split(sf.Tag.Get("bson"), ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		fields[name] = struct{}{}
	}
	return fields
}
