package dto

import "go.mongodb.org/mongo-driver/v2/bson"

// CreateSurveyRequest is the survey capture body posted by the field app.
type CreateSurveyRequest struct {
	VoterID    string `json:"voterId"`
	VoterType  string `json:"voterType"`
	SurveyorID string `json:"surveyorId"`
	Location   struct {
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Accuracy  *float64 `json:"accuracy"`
	} `json:"location"`
	VoterPhoneNumber string                `json:"voterPhoneNumber"`
	SurveyData       bson.M                `json:"surveyData"`
	Status           string                `json:"status"`
	Members          []SurveyMemberRequest `json:"members"`
}

// SurveyMemberRequest is one household member in the create body.
type SurveyMemberRequest struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	VoterID      string `json:"voterId"`
	VoterType    string `json:"voterType"`
}

// SurveyStatusRequest sets an explicit status value.
type SurveyStatusRequest struct {
	Status       string `json:"status"`
	ReviewedBy   string `json:"reviewedBy"`
	ReviewRemark string `json:"reviewRemark"`
}

// VoterNotFoundResponse is the 404 body on survey creation, carrying a
// small sample of ids that do exist in the selected collection so the
// field app can self-diagnose a wrong voterType.
type VoterNotFoundResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	VoterType   string   `json:"voterType"`
	SampleIDs   []string `json:"sampleIds"`
	RequestedID string   `json:"requestedId"`
}
