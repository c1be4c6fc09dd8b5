package criteria

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Query string convention:
//
//	filters[0][field]=name&filters[0][operator]=contains&filters[0][value]=press
//	&orderBy=createdAt&orderType=DESC&pageSize=10&pageNumber=1
var filterKeyPattern = regexp.MustCompile(`^filters\[(\d+)\]\[(\w+)\]$`)

type partialFilter struct {
	field    string
	operator string
	value    any
	hasValue bool
}

// FromQuery decodes query parameters into criteria Primitives. It never
// fails: partial filters, unknown order types and non-positive page values
// are dropped.
func FromQuery(values url.Values) Primitives {
	return Primitives{
		Filters:    parseFilters(values),
		OrderBy:    optionalParam(values, "orderBy"),
		OrderType:  parseOrderTypeParam(values),
		PageSize:   parsePositiveInt(values, "pageSize"),
		PageNumber: parsePositiveInt(values, "pageNumber"),
	}
}

func parseFilters(values url.Values) []FilterPrimitives {
	partials := make(map[int]*partialFilter)
	for key, vals := range values {
		match := filterKeyPattern.FindStringSubmatch(key)
		if match == nil || len(vals) == 0 {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		p, ok := partials[index]
		if !ok {
			p = &partialFilter{}
			partials[index] = p
		}
		// Repeated keys: the last occurrence wins.
		raw := vals[len(vals)-1]
		switch match[2] {
		case "field":
			p.field = raw
		case "operator":
			p.operator = raw
		case "value":
			p.value = parseFilterValue(raw)
			p.hasValue = true
		}
	}

	indices := make([]int, 0, len(partials))
	for index := range partials {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	filters := make([]FilterPrimitives, 0, len(indices))
	for _, index := range indices {
		p := partials[index]
		if p.field == "" || p.operator == "" || !p.hasValue {
			continue
		}
		filters = append(filters, FilterPrimitives{Field: p.field, Operator: p.operator, Value: p.value})
	}
	return filters
}

// parseFilterValue coerces a raw query value, in order: null, booleans,
// comma-separated lists, finite numbers, then the raw string.
func parseFilterValue(raw string) any {
	switch raw {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
			return n
		}
	}
	return raw
}

func optionalParam(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}

func parseOrderTypeParam(values url.Values) *string {
	t := strings.ToUpper(values.Get("orderType"))
	if t != string(OrderAsc) && t != string(OrderDesc) {
		return nil
	}
	return &t
}

var leadingIntPattern = regexp.MustCompile(`^[+-]?\d+`)

// parsePositiveInt reads the leading integer of the value, so "10abc" is 10
// and "2.5" is 2. Values without one, or below 1, are dropped.
func parsePositiveInt(values url.Values, key string) *int {
	digits := leadingIntPattern.FindString(strings.TrimSpace(values.Get(key)))
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return nil
	}
	return &n
}

// ToQueryParams is the inverse of FromQuery. Lists are comma-joined, nil
// becomes the literal "null" and absent order/pagination fields are omitted.
func ToQueryParams(p Primitives) url.Values {
	values := url.Values{}
	for i, f := range p.Filters {
		values.Set(fmt.Sprintf("filters[%d][field]", i), f.Field)
		values.Set(fmt.Sprintf("filters[%d][operator]", i), f.Operator)
		values.Set(fmt.Sprintf("filters[%d][value]", i), FormatValue(f.Value))
	}
	if p.OrderBy != nil {
		values.Set("orderBy", *p.OrderBy)
	}
	if p.OrderType != nil {
		values.Set("orderType", *p.OrderType)
	}
	if p.PageSize != nil {
		values.Set("pageSize", strconv.Itoa(*p.PageSize))
	}
	if p.PageNumber != nil {
		values.Set("pageNumber", strconv.Itoa(*p.PageNumber))
	}
	return values
}

// FormatValue renders a filter value as text: lists are comma-joined and nil
// is "null".
func FormatValue(v any) string {
	if v == nil {
		return "null"
	}
	if items, ok := ArrayValues(v); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = serializeScalar(item)
		}
		return strings.Join(parts, ",")
	}
	return serializeScalar(v)
}

func serializeScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}
