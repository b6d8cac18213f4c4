package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Survey status values. Statuses are not strictly ordered: any explicit
// value may be set directly by the status endpoint.
const (
	SurveyStatusDraft     = "draft"
	SurveyStatusCompleted = "completed"
	SurveyStatusSubmitted = "submitted"
	SurveyStatusVerified  = "verified"
	SurveyStatusRejected  = "rejected"
)

// ValidSurveyStatus reports whether s is one of the five known statuses.
func ValidSurveyStatus(s string) bool {
	switch s {
	case SurveyStatusDraft, SurveyStatusCompleted, SurveyStatusSubmitted,
		SurveyStatusVerified, SurveyStatusRejected:
		return true
	}
	return false
}

// SurveyStatusDone reports whether s counts as a finished survey for the
// purpose of the voter's denormalized surveyDone flag.
func SurveyStatusDone(s string) bool {
	switch s {
	case SurveyStatusCompleted, SurveyStatusSubmitted, SurveyStatusVerified:
		return true
	}
	return false
}

// SurveyLocation is the GPS fix captured by the surveyor's device.
type SurveyLocation struct {
	Latitude  float64  `json:"latitude" bson:"latitude"`
	Longitude float64  `json:"longitude" bson:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty" bson:"accuracy,omitempty"`
}

// SurveyMember is one household member recorded during the survey. A member
// who is themselves a registered voter carries a VoterRef linkage.
type SurveyMember struct {
	Name         string    `json:"name" bson:"name"`
	Age          int       `json:"age,omitempty" bson:"age,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Relationship string    `json:"relationship,omitempty" bson:"relationship,omitempty"`
	Voter        *VoterRef `json:"voter,omitempty" bson:"voter,omitempty"`
}

// Survey is one completed (or in-progress) household survey for a voter.
// At most one survey may exist per (voterId, voterType); a compound unique
// index backs the application-level pre-check.
type Survey struct {
	ID         bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	VoterID    bson.ObjectID  `json:"voterId" bson:"voterId"`
	VoterType  VoterType      `json:"voterType" bson:"voterType"`
	SurveyorID bson.ObjectID  `json:"surveyorId" bson:"surveyorId"`
	Location   SurveyLocation `json:"location" bson:"location"`

	VoterPhoneNumber string         `json:"voterPhoneNumber" bson:"voterPhoneNumber"`
	SurveyData       bson.M         `json:"surveyData,omitempty" bson:"surveyData,omitempty"`
	Status           string         `json:"status" bson:"status"`
	Members          []SurveyMember `json:"members,omitempty" bson:"members,omitempty"`

	// Quality-review metadata, filled in by whoever verifies or rejects.
	ReviewedBy   *bson.ObjectID `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	ReviewRemark string         `json:"reviewRemark,omitempty" bson:"reviewRemark,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
