package criteria

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return values
}

func TestFromQuery_FullExample(t *testing.T) {
	values := mustParseQuery(t, "filters[0][field]=name&filters[0][operator]=contains&filters[0][value]=press"+
		"&orderBy=createdAt&orderType=desc&pageSize=10&pageNumber=2")

	p := FromQuery(values)

	want := Primitives{
		Filters:    []FilterPrimitives{{Field: "name", Operator: "contains", Value: "press"}},
		OrderBy:    strPtr("createdAt"),
		OrderType:  strPtr("DESC"),
		PageSize:   intP(10),
		PageNumber: intP(2),
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("unexpected primitives (-want +got):\n%s", diff)
	}

	c, err := FromPrimitives(p)
	require.NoError(t, err)
	limit, _ := c.Pagination().Limit()
	offset, _ := c.Pagination().Offset()
	assert.Equal(t, 10, limit)
	assert.Equal(t, 10, offset)
}

func TestFromQuery_SortsIndicesNumericallyAndDropsPartialEntries(t *testing.T) {
	values := mustParseQuery(t,
		"filters[10][field]=b&filters[10][operator]=eq&filters[10][value]=2"+
			"&filters[2][field]=a&filters[2][operator]=eq&filters[2][value]=1"+
			"&filters[5][field]=partial&filters[5][operator]=eq")

	p := FromQuery(values)

	require.Len(t, p.Filters, 2)
	assert.Equal(t, "a", p.Filters[0].Field)
	assert.Equal(t, "b", p.Filters[1].Field)
}

func TestFromQuery_ValueCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want any
	}{
		{"null", nil},
		{"true", true},
		{"false", false},
		{"x, y ,z", []string{"x", "y", "z"}},
		{"1,2", []string{"1", "2"}},
		{"42", 42.0},
		{"-3.5", -3.5},
		{"Infinity", "Infinity"},
		{"inf", "inf"},
		{"press", "press"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseFilterValue(tc.raw), "raw %q", tc.raw)
	}
}

func TestFromQuery_NullValueIsKept(t *testing.T) {
	values := url.Values{}
	values.Set("filters[0][field]", "description")
	values.Set("filters[0][operator]", "eq")
	values.Set("filters[0][value]", "null")

	p := FromQuery(values)

	require.Len(t, p.Filters, 1)
	assert.Nil(t, p.Filters[0].Value)
}

func TestFromQuery_NeverFails(t *testing.T) {
	values := mustParseQuery(t, "orderType=sideways&pageSize=-1&pageNumber=abc&filters[x][field]=name&filters[0][unknown]=1")

	p := FromQuery(values)

	assert.Empty(t, p.Filters)
	assert.Nil(t, p.OrderBy)
	assert.Nil(t, p.OrderType)
	assert.Nil(t, p.PageSize)
	assert.Nil(t, p.PageNumber)

	_, err := FromPrimitives(p)
	assert.NoError(t, err)
}

func TestToQueryParams(t *testing.T) {
	p := Primitives{
		Filters: []FilterPrimitives{
			{Field: "id", Operator: "in", Value: []string{"a", "b"}},
			{Field: "archived", Operator: "eq", Value: true},
			{Field: "description", Operator: "isNull", Value: nil},
			{Field: "weight", Operator: "gt", Value: 12.5},
		},
		OrderBy:  strPtr("name"),
		PageSize: intP(5),
	}

	values := ToQueryParams(p)

	assert.Equal(t, "a,b", values.Get("filters[0][value]"))
	assert.Equal(t, "true", values.Get("filters[1][value]"))
	assert.Equal(t, "null", values.Get("filters[2][value]"))
	assert.Equal(t, "12.5", values.Get("filters[3][value]"))
	assert.Equal(t, "name", values.Get("orderBy"))
	assert.False(t, values.Has("orderType"))
	assert.Equal(t, "5", values.Get("pageSize"))
	assert.False(t, values.Has("pageNumber"))
}

func TestToQueryParams_IsInverseOfFromQuery(t *testing.T) {
	p := Primitives{
		Filters: []FilterPrimitives{
			{Field: "name", Operator: "contains", Value: "row"},
			{Field: "reps", Operator: "gte", Value: 8.0},
			{Field: "id", Operator: "notIn", Value: []string{"a", "b"}},
		},
		OrderBy:    strPtr("createdAt"),
		OrderType:  strPtr("ASC"),
		PageSize:   intP(20),
		PageNumber: intP(3),
	}

	got := FromQuery(ToQueryParams(p))

	if diff := cmp.Diff(p, got); diff != "" {
		t.Fatalf("query params round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "Push,Pull", FormatValue([]string{"Push", "Pull"}))
	assert.Equal(t, "1,2.5", FormatValue([]any{1.0, 2.5}))
	assert.Equal(t, "null", FormatValue(nil))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "press", FormatValue("press"))
}

func TestFromQuery_PageValuesUseLeadingInteger(t *testing.T) {
	cases := []struct {
		raw  string
		want *int
	}{
		{"10", intP(10)},
		{" 7 ", intP(7)},
		{"10abc", intP(10)},
		{"2.5", intP(2)},
		{"+3", intP(3)},
		{"0", nil},
		{"-4", nil},
		{"abc", nil},
		{"", nil},
		{"99999999999999999999", nil},
	}
	for _, tc := range cases {
		values := url.Values{"pageSize": {tc.raw}}
		assert.Equal(t, tc.want, FromQuery(values).PageSize, "raw %q", tc.raw)
	}
}
