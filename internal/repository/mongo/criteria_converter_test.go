package mongo

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
)

func routineConverter() *CriteriaConverter {
	return NewCriteriaConverter(domain.RoutinePrimitives{}, aggregateFieldMapping)
}

func TestCriteriaConverter_EmptyCriteria(t *testing.T) {
	q, err := routineConverter().Convert(criteria.Empty())
	require.NoError(t, err)

	assert.Equal(t, bson.D{}, q.Filter)
	assert.Nil(t, q.Sort)
	assert.Nil(t, q.Limit)
	assert.Nil(t, q.Skip)
}

func TestCriteriaConverter_SingleFilterIsNotWrapped(t *testing.T) {
	c, err := criteria.NewBuilder().Equal("userId", "u-1").Build()
	require.NoError(t, err)

	q, err := routineConverter().Convert(c)
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "userId", Value: bson.D{{Key: "$eq", Value: "u-1"}}}}, q.Filter)
}

func TestCriteriaConverter_ContainsFromQueryString(t *testing.T) {
	values, err := url.ParseQuery("filters[0][field]=name&filters[0][operator]=contains&filters[0][value]=Push,Pull")
	require.NoError(t, err)
	c, err := criteria.FromPrimitives(criteria.FromQuery(values))
	require.NoError(t, err)

	q, err := routineConverter().Convert(c)
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: "Push,Pull"}}}}, q.Filter)
}

func TestCriteriaConverter_Operators(t *testing.T) {
	cases := []struct {
		name   string
		filter criteria.FilterPrimitives
		want   bson.D
	}{
		{"ne", criteria.FilterPrimitives{Field: "name", Operator: "ne", Value: "a"},
			bson.D{{Key: "name", Value: bson.D{{Key: "$ne", Value: "a"}}}}},
		{"gt", criteria.FilterPrimitives{Field: "createdAt", Operator: "gt", Value: "2024-01-01"},
			bson.D{{Key: "createdAt", Value: bson.D{{Key: "$gt", Value: "2024-01-01"}}}}},
		{"lte", criteria.FilterPrimitives{Field: "updatedAt", Operator: "lte", Value: "2024-01-01"},
			bson.D{{Key: "updatedAt", Value: bson.D{{Key: "$lte", Value: "2024-01-01"}}}}},
		{"contains escapes regex", criteria.FilterPrimitives{Field: "name", Operator: "contains", Value: "a.b"},
			bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: `a\.b`}}}}},
		{"contains a comma list", criteria.FilterPrimitives{Field: "name", Operator: "contains", Value: []string{"Push", "Pull"}},
			bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: "Push,Pull"}}}}},
		{"notContains", criteria.FilterPrimitives{Field: "name", Operator: "notContains", Value: "old"},
			bson.D{{Key: "name", Value: bson.D{{Key: "$not", Value: primitive.Regex{Pattern: "old"}}}}}},
		{"in", criteria.FilterPrimitives{Field: "id", Operator: "in", Value: []string{"a", "b"}},
			bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{"a", "b"}}}}}},
		{"notIn", criteria.FilterPrimitives{Field: "id", Operator: "notIn", Value: []string{"c"}},
			bson.D{{Key: "_id", Value: bson.D{{Key: "$nin", Value: bson.A{"c"}}}}}},
		{"isNull", criteria.FilterPrimitives{Field: "description", Operator: "isNull"},
			bson.D{{Key: "description", Value: nil}}},
		{"isNotNull", criteria.FilterPrimitives{Field: "description", Operator: "isNotNull"},
			bson.D{{Key: "description", Value: bson.D{{Key: "$ne", Value: nil}}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := criteria.FromPrimitives(criteria.Primitives{Filters: []criteria.FilterPrimitives{tc.filter}})
			require.NoError(t, err)

			q, err := routineConverter().Convert(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, q.Filter)
		})
	}
}

func TestCriteriaConverter_CombinesFiltersWithAnd(t *testing.T) {
	c, err := criteria.NewBuilder().
		Equal("userId", "u-1").
		Contains("name", "push").
		OrderByDesc("createdAt").
		Paginate(10, 3).
		Build()
	require.NoError(t, err)

	q, err := routineConverter().Convert(c)
	require.NoError(t, err)

	require.Len(t, q.Filter, 1)
	assert.Equal(t, "$and", q.Filter[0].Key)
	assert.Len(t, q.Filter[0].Value, 2)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
	require.NotNil(t, q.Limit)
	require.NotNil(t, q.Skip)
	assert.Equal(t, int64(10), *q.Limit)
	assert.Equal(t, int64(20), *q.Skip)
}

func TestCriteriaConverter_PageSizeWithoutNumberHasNoSkip(t *testing.T) {
	size := 5
	c, err := criteria.FromPrimitives(criteria.Primitives{PageSize: &size})
	require.NoError(t, err)

	q, err := routineConverter().Convert(c)
	require.NoError(t, err)

	require.NotNil(t, q.Limit)
	assert.Equal(t, int64(5), *q.Limit)
	assert.Nil(t, q.Skip)
}

func TestCriteriaConverter_Errors(t *testing.T) {
	cases := []struct {
		name    string
		filter  criteria.FilterPrimitives
		message string
	}{
		{"unknown field", criteria.FilterPrimitives{Field: "color", Operator: "eq", Value: "red"}, "Invalid filter field: color"},
		{"in with scalar", criteria.FilterPrimitives{Field: "id", Operator: "in", Value: "a"}, "IN operator requires an array value"},
		{"notIn with scalar", criteria.FilterPrimitives{Field: "id", Operator: "notIn", Value: "a"}, "NOT_IN operator requires an array value"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := criteria.FromPrimitives(criteria.Primitives{Filters: []criteria.FilterPrimitives{tc.filter}})
			require.NoError(t, err)

			_, err = routineConverter().Convert(c)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestCriteriaConverter_UnknownOrderField(t *testing.T) {
	c, err := criteria.NewBuilder().OrderByAsc("color").Build()
	require.NoError(t, err)

	_, err = routineConverter().Convert(c)
	assert.True(t, domain.IsDomainError(err))
}

func TestCollectionConverter(t *testing.T) {
	c, err := criteria.NewBuilder().IsNull("finishedAt").Build()
	require.NoError(t, err)

	workouts, err := CollectionConverter("workouts")
	require.NoError(t, err)
	q, err := workouts.Convert(c)
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "finishedAt", Value: nil}}, q.Filter)

	// routines have no finishedAt key
	routines, err := CollectionConverter("routines")
	require.NoError(t, err)
	_, err = routines.Convert(c)
	assert.True(t, domain.IsDomainError(err))

	_, err = CollectionConverter("users")
	assert.Error(t, err)
}
