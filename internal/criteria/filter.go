// Package criteria describes storage-agnostic queries: ANDed filters, a
// single-field order and page-based pagination. A Criteria travels as
// Primitives across request boundaries and is translated into concrete
// queries by the repository adapters.
package criteria

import (
	"reflect"
	"strings"

	"alcyxob/fitness-tracker/internal/domain"
)

// Operator is a filter comparison.
type Operator string

const (
	OperatorEqual              Operator = "eq"
	OperatorNotEqual           Operator = "ne"
	OperatorGreaterThan        Operator = "gt"
	OperatorGreaterThanOrEqual Operator = "gte"
	OperatorLessThan           Operator = "lt"
	OperatorLessThanOrEqual    Operator = "lte"
	OperatorContains           Operator = "contains"
	OperatorNotContains        Operator = "notContains"
	OperatorIn                 Operator = "in"
	OperatorNotIn              Operator = "notIn"
	OperatorIsNull             Operator = "isNull"
	OperatorIsNotNull          Operator = "isNotNull"
)

var operators = []Operator{
	OperatorEqual,
	OperatorNotEqual,
	OperatorGreaterThan,
	OperatorGreaterThanOrEqual,
	OperatorLessThan,
	OperatorLessThanOrEqual,
	OperatorContains,
	OperatorNotContains,
	OperatorIn,
	OperatorNotIn,
	OperatorIsNull,
	OperatorIsNotNull,
}

// ParseOperator validates value against the closed operator set.
func ParseOperator(value string) (Operator, error) {
	for _, op := range operators {
		if string(op) == value {
			return op, nil
		}
	}
	valid := make([]string, len(operators))
	for i, op := range operators {
		valid[i] = string(op)
	}
	return "", domain.NewInvalidArgumentError(
		"Invalid filter operator: %s. Valid operators: %s", value, strings.Join(valid, ", "))
}

// IgnoresValue reports whether the operator only looks at the field.
func (o Operator) IgnoresValue() bool {
	return o == OperatorIsNull || o == OperatorIsNotNull
}

// RequiresArray reports whether the operator needs a list value.
func (o Operator) RequiresArray() bool {
	return o == OperatorIn || o == OperatorNotIn
}

// FilterPrimitives is the wire shape of a Filter.
// Value holds nil, a string, a bool, a number or a slice of those.
type FilterPrimitives struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Filter is one predicate on a logical field name.
type Filter struct {
	field    string
	operator Operator
	value    any
}

func NewFilter(field string, operator Operator, value any) (Filter, error) {
	if strings.TrimSpace(field) == "" {
		return Filter{}, domain.NewInvalidArgumentError("Filter field cannot be empty")
	}
	if _, err := ParseOperator(string(operator)); err != nil {
		return Filter{}, err
	}
	return Filter{field: field, operator: operator, value: value}, nil
}

func FilterFromPrimitives(p FilterPrimitives) (Filter, error) {
	return NewFilter(p.Field, Operator(p.Operator), p.Value)
}

func (f Filter) Field() string      { return f.field }
func (f Filter) Operator() Operator { return f.operator }
func (f Filter) Value() any         { return f.value }

func (f Filter) ToPrimitives() FilterPrimitives {
	return FilterPrimitives{Field: f.field, Operator: string(f.operator), Value: f.value}
}

// ArrayValues returns the elements of a slice value. The second result is
// false when v is not a slice.
func ArrayValues(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if values, ok := v.([]any); ok {
		return values, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	values := make([]any, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, true
}
