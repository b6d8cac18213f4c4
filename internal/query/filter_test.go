package query

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func boolPtr(v bool) *bool { return &v }

func TestBuildEmpty(t *testing.T) {
	require.Equal(t, bson.M{}, Build(Filters{}))
}

func TestBuildSingleFlag(t *testing.T) {
	f := Build(Filters{IsActive: boolPtr(true)})
	require.Equal(t, bson.M{"isActive": true}, f)
}

func TestBuildCombinesWithAnd(t *testing.T) {
	f := Build(Filters{IsActive: boolPtr(true), IsPaid: boolPtr(false)})
	and, ok := f["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 2)
	require.Contains(t, and, bson.M{"isActive": true})
	require.Contains(t, and, bson.M{"isPaid": false})
}

func TestBuildNameIsCaseInsensitive(t *testing.T) {
	f := Build(Filters{Name: "kumar"})
	or, ok := f["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	re, ok := or[0]["name"].(bson.M)
	require.True(t, ok)
	require.Equal(t, "kumar", re["$regex"])
	require.Equal(t, "i", re["$options"])
}

func TestBuildEscapesRegexMeta(t *testing.T) {
	f := Build(Filters{Name: "a.b(c"})
	or := f["$or"].([]bson.M)
	re := or[0]["name"].(bson.M)
	require.Equal(t, `a\.b\(c`, re["$regex"])
}

func TestCIRegexEscapesMeta(t *testing.T) {
	re := CIRegex("a.b(c")
	require.Equal(t, `a\.b\(c`, re["$regex"])
	require.Equal(t, "i", re["$options"])

	// A would-be scan pattern stays a literal.
	re = CIRegex(".*")
	require.Equal(t, `\.\*`, re["$regex"])
}

func TestBuildSearchSpansNameAndAddress(t *testing.T) {
	f := Build(Filters{Search: "ward 7"})
	or, ok := f["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 6)
}

func TestParseFlag(t *testing.T) {
	v, err := ParseFlag("true")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.True(t, *v)

	v, err = ParseFlag("false")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.False(t, *v)

	v, err = ParseFlag("")
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = ParseFlag("1")
	require.Error(t, err)
	_, err = ParseFlag("TRUE")
	require.Error(t, err)
}

func TestParseSortDefaults(t *testing.T) {
	s, err := ParseSort("", "")
	require.NoError(t, err)
	require.Equal(t, Sort{Field: "_id", Order: 1}, s)
}

func TestParseSortDesc(t *testing.T) {
	s, err := ParseSort("name", "desc")
	require.NoError(t, err)
	require.Equal(t, Sort{Field: "name", Order: -1}, s)
	require.Equal(t, bson.D{{Key: "name", Value: -1}}, s.Mongo())
}

func TestParseSortRejectsUnknownField(t *testing.T) {
	_, err := ParseSort("passwordHash", "asc")
	require.Error(t, err)
}

func TestParseSortRejectsBadOrder(t *testing.T) {
	_, err := ParseSort("name", "descending")
	require.Error(t, err)
}

func TestParsePageDefaultsAndClamp(t *testing.T) {
	p := ParsePage("", "", 20, 100)
	require.Equal(t, Page{Number: 1, Limit: 20}, p)
	require.Equal(t, 0, p.Skip())

	p = ParsePage("3", "50", 20, 100)
	require.Equal(t, Page{Number: 3, Limit: 50}, p)
	require.Equal(t, 100, p.Skip())

	p = ParsePage("-1", "9999", 20, 100)
	require.Equal(t, Page{Number: 1, Limit: 100}, p)

	p = ParsePage("abc", "xyz", 20, 100)
	require.Equal(t, Page{Number: 1, Limit: 20}, p)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 2, TotalPages(25, 20))
	require.Equal(t, 1, TotalPages(20, 20))
	require.Equal(t, 0, TotalPages(0, 20))
	require.Equal(t, 5, TotalPages(100, 20))
}
