package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func orConditions(t *testing.T, filter bson.M) []bson.M {
	t.Helper()
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok, "filter must be a $or disjunction")
	return or
}

func TestBuildSearchFilterNumeric(t *testing.T) {
	conditions := orConditions(t, BuildSearchFilter("10"))
	require.Len(t, conditions, 5)

	topic, ok := conditions[0]["topic"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "10", topic.Pattern)
	assert.Equal(t, "i", topic.Options)

	location, ok := conditions[1]["location"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "10", location.Pattern)

	assert.Equal(t, bson.M{"price": 10}, conditions[2])
	assert.Equal(t, bson.M{"spaces": 10}, conditions[3])
	assert.Equal(t, bson.M{"id": 10}, conditions[4])
}

func TestBuildSearchFilterText(t *testing.T) {
	conditions := orConditions(t, BuildSearchFilter("Maths"))
	require.Len(t, conditions, 2, "text queries carry no numeric clauses")

	topic := conditions[0]["topic"].(primitive.Regex)
	assert.Equal(t, "Maths", topic.Pattern)
	assert.Equal(t, "i", topic.Options)
}

func TestBuildSearchFilterPartialNumber(t *testing.T) {
	// "10x" is not an integer; only the substring clauses apply
	conditions := orConditions(t, BuildSearchFilter("10x"))
	assert.Len(t, conditions, 2)
}

func TestBuildSearchFilterQuotesRegexMeta(t *testing.T) {
	conditions := orConditions(t, BuildSearchFilter("c++"))
	topic := conditions[0]["topic"].(primitive.Regex)
	assert.Equal(t, `c\+\+`, topic.Pattern)
}
