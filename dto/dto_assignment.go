package dto

import "github.com/developerakkoo/Voter-Management-API-sub000/model"

// AssignRequest is the all-or-nothing batch assign body.
type AssignRequest struct {
	SubAdminID string   `json:"subAdminId"`
	VoterIDs   []string `json:"voterIds"`
	VoterType  string   `json:"voterType"`
	Notes      string   `json:"notes"`
}

// UnassignRequest deactivates the matching assignment rows.
type UnassignRequest struct {
	SubAdminID string   `json:"subAdminId"`
	VoterIDs   []string `json:"voterIds"`
	VoterType  string   `json:"voterType"`
}

// AssignConflictResponse lists the voters that blocked a batch assign.
type AssignConflictResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	AlreadyAssigned []string `json:"alreadyAssigned"`
}

// AssignmentWithVoter decorates an assignment row with the voter document
// fetched from its collection.
type AssignmentWithVoter struct {
	model.VoterAssignment
	Voter *model.Voter `json:"voter,omitempty"`
}
