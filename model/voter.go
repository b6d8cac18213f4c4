package model

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrUnknownVoterType marks a discriminator outside the two-value enum.
// Handlers map it to 400.
var ErrUnknownVoterType = errors.New("unknown voterType")

// VoterType discriminates between the two voter collections. Every value that
// reaches a repository has been through ParseVoterType first.
type VoterType string

const (
	// VoterTypeMain is the primary voter collection.
	VoterTypeMain VoterType = "voter"
	// VoterTypeFour is the second collection, populated by a later import batch.
	VoterTypeFour VoterType = "voterfour"
)

// ParseVoterType validates the discriminator coming from a request. Anything
// outside the two known values is an input error, never a fallback.
func ParseVoterType(s string) (VoterType, error) {
	switch VoterType(s) {
	case VoterTypeMain, VoterTypeFour:
		return VoterType(s), nil
	}
	return "", fmt.Errorf("%w %q: must be %q or %q", ErrUnknownVoterType, s, VoterTypeMain, VoterTypeFour)
}

// VoterRef is a tagged reference to a voter in one of the two collections.
type VoterRef struct {
	Type VoterType     `bson:"voterType" json:"voterType"`
	ID   bson.ObjectID `bson:"voterId" json:"voterId"`
}

// Voter is the document shape shared by both collections. The second
// collection additionally carries sourceFile and codeNo; documents in the
// primary collection never set them, so both collections decode into this
// one struct.
type Voter struct {
	ID bson.ObjectID `json:"id" bson:"_id,omitempty"`

	Name                string `json:"name" bson:"name,omitempty"`
	NameEnglish         string `json:"nameEnglish" bson:"nameEnglish,omitempty"`
	RelativeName        string `json:"relativeName" bson:"relativeName,omitempty"`
	RelativeNameEnglish string `json:"relativeNameEnglish" bson:"relativeNameEnglish,omitempty"`

	Sex    string `json:"sex" bson:"sex,omitempty"`
	Age    int    `json:"age" bson:"age,omitempty"`
	CardNo string `json:"cardNo,omitempty" bson:"cardNo,omitempty"`

	Address        string `json:"address" bson:"address,omitempty"`
	AddressEnglish string `json:"addressEnglish" bson:"addressEnglish,omitempty"`

	BoothNo string `json:"boothNo" bson:"boothNo,omitempty"`
	PartNo  string `json:"partNo" bson:"partNo,omitempty"`
	AcNo    string `json:"acNo" bson:"acNo,omitempty"`
	Pno     string `json:"pno" bson:"pno,omitempty"`

	IsPaid    bool `json:"isPaid" bson:"isPaid"`
	IsVisited bool `json:"isVisited" bson:"isVisited"`
	IsActive  bool `json:"isActive" bson:"isActive"`

	// Denormalized survey cache, owned by the outbox consumer. The surveys
	// collection is the source of truth for these three fields.
	SurveyDone     bool           `json:"surveyDone" bson:"surveyDone"`
	SurveyID       *bson.ObjectID `json:"surveyId,omitempty" bson:"surveyId,omitempty"`
	LastSurveyDate *time.Time     `json:"lastSurveyDate,omitempty" bson:"lastSurveyDate,omitempty"`

	// Present only on voterfour documents.
	SourceFile string `json:"sourceFile,omitempty" bson:"sourceFile,omitempty"`
	CodeNo     string `json:"codeNo,omitempty" bson:"codeNo,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt,omitempty"`
}
