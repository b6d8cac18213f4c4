package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// Collection names.
const (
	colVoters      = "voters"
	colVoterFour   = "voterfour"
	colAssignments = "voterassignments"
	colSurveys     = "surveys"
	colAdmins      = "admins"
	colSubAdmins   = "subadmins"
	colAlerts      = "alerts"
	colCategories  = "categories"
	colOutbox      = "outbox_events"
)

// ErrNotFound is the repository-level not-found sentinel.
var ErrNotFound = errors.New("not found")

// Stores is the single resolver from a VoterType discriminator to its
// collection. Every cross-collection operation goes through Resolve; the
// ternary never repeats at call sites.
type Stores struct {
	db *mongo.Database
}

func NewStores(db *mongo.Database) *Stores {
	return &Stores{db: db}
}

// Resolve re-validates the discriminator and returns its collection.
func (s *Stores) Resolve(t model.VoterType) (*mongo.Collection, error) {
	switch t {
	case model.VoterTypeMain:
		return s.db.Collection(colVoters), nil
	case model.VoterTypeFour:
		return s.db.Collection(colVoterFour), nil
	}
	return nil, model.ErrUnknownVoterType
}

func (s *Stores) DB() *mongo.Database { return s.db }

// IsDuplicateKey reports whether err is a mongo unique-index violation
// (code 11000). Used as the backstop behind every application-level
// duplicate pre-check.
func IsDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}
