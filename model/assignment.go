package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// VoterAssignment links one sub-admin to one voter. Unassigning flips
// IsActive to false instead of deleting, so the collection doubles as the
// assignment audit trail.
type VoterAssignment struct {
	ID         bson.ObjectID `json:"id" bson:"_id,omitempty"`
	SubAdminID bson.ObjectID `json:"subAdminId" bson:"subAdminId"`
	VoterID    bson.ObjectID `json:"voterId" bson:"voterId"`
	VoterType  VoterType     `json:"voterType" bson:"voterType"`
	AssignedBy string        `json:"assignedBy" bson:"assignedBy,omitempty"`
	AssignedAt time.Time     `json:"assignedAt" bson:"assignedAt"`
	IsActive   bool          `json:"isActive" bson:"isActive"`
	Notes      string        `json:"notes,omitempty" bson:"notes,omitempty"`
}
