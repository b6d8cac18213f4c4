package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Outbox event kinds. SurveyDone sets the voter's denormalized survey
// fields; SurveyCleared unsets them.
const (
	OutboxSurveyDone    = "survey_done"
	OutboxSurveyCleared = "survey_cleared"
)

// OutboxEvent records a pending voter-flag update emitted by a survey
// write. Events stay in the collection after processing (Processed=true)
// so the sync history can be inspected.
type OutboxEvent struct {
	ID         bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Kind       string         `json:"kind" bson:"kind"`
	Voter      VoterRef       `json:"voter" bson:"voter"`
	SurveyID   *bson.ObjectID `json:"surveyId,omitempty" bson:"surveyId,omitempty"`
	OccurredAt time.Time      `json:"occurredAt" bson:"occurredAt"`

	Processed   bool       `json:"processed" bson:"processed"`
	ProcessedAt *time.Time `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
	Attempts    int        `json:"attempts" bson:"attempts"`
	LastError   string     `json:"lastError,omitempty" bson:"lastError,omitempty"`
}
