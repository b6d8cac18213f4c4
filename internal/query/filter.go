// Package query builds the mongo filter/sort/pagination primitives shared
// by every voter listing. Both voter collections use the same field names,
// so one builder serves both.
package query

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Filters is the recognized listing filter set.
type Filters struct {
	IsActive  *bool
	IsPaid    *bool
	IsVisited *bool
	Name      string // case-insensitive substring on name fields
	Address   string // case-insensitive substring on address fields
	Search    string // free text over name/relative-name/address
}

// CIRegex matches a literal substring case-insensitively. Every
// user-supplied search term must pass through here so regex
// metacharacters stay inert.
func CIRegex(sub string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(sub), "$options": "i"}
}

// Build produces the bson filter document. An empty Filters builds the
// match-all document.
func Build(f Filters) bson.M {
	and := []bson.M{}
	if f.IsActive != nil {
		and = append(and, bson.M{"isActive": *f.IsActive})
	}
	if f.IsPaid != nil {
		and = append(and, bson.M{"isPaid": *f.IsPaid})
	}
	if f.IsVisited != nil {
		and = append(and, bson.M{"isVisited": *f.IsVisited})
	}
	if f.Name != "" {
		and = append(and, bson.M{"$or": []bson.M{
			{"name": CIRegex(f.Name)},
			{"nameEnglish": CIRegex(f.Name)},
		}})
	}
	if f.Address != "" {
		and = append(and, bson.M{"$or": []bson.M{
			{"address": CIRegex(f.Address)},
			{"addressEnglish": CIRegex(f.Address)},
		}})
	}
	if f.Search != "" {
		and = append(and, bson.M{"$or": []bson.M{
			{"name": CIRegex(f.Search)},
			{"nameEnglish": CIRegex(f.Search)},
			{"relativeName": CIRegex(f.Search)},
			{"relativeNameEnglish": CIRegex(f.Search)},
			{"address": CIRegex(f.Search)},
			{"addressEnglish": CIRegex(f.Search)},
		}})
	}
	switch len(and) {
	case 0:
		return bson.M{}
	case 1:
		return and[0]
	}
	return bson.M{"$and": and}
}

// ParseFlag parses the query-string boolean encoding: the literal strings
// "true" and "false". Empty means "not filtered"; anything else is an
// input error.
func ParseFlag(s string) (*bool, error) {
	switch s {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	}
	return nil, fmt.Errorf("expected \"true\" or \"false\", got %q", s)
}
