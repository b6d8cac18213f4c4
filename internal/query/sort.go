package query

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Sortable voter fields. _id is the default so pages are stable when the
// client sends nothing.
var sortFields = map[string]bool{
	"_id":         true,
	"name":        true,
	"nameEnglish": true,
	"age":         true,
	"cardNo":      true,
	"createdAt":   true,
}

// Sort is a validated sort key + direction (1 asc, -1 desc).
type Sort struct {
	Field string
	Order int
}

// ParseSort validates sortBy/sortOrder. Empty inputs default to _id asc.
func ParseSort(sortBy, sortOrder string) (Sort, error) {
	s := Sort{Field: "_id", Order: 1}
	if sortBy != "" {
		if !sortFields[sortBy] {
			return Sort{}, fmt.Errorf("unsupported sortBy %q", sortBy)
		}
		s.Field = sortBy
	}
	switch sortOrder {
	case "", "asc":
	case "desc":
		s.Order = -1
	default:
		return Sort{}, fmt.Errorf("sortOrder must be \"asc\" or \"desc\", got %q", sortOrder)
	}
	return s, nil
}

// Mongo renders the sort document for Find options.
func (s Sort) Mongo() bson.D {
	return bson.D{{Key: s.Field, Value: s.Order}}
}
