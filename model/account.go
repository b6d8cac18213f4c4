package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Admin is a full-access account. Password hashes never serialize to JSON.
type Admin struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName     string        `json:"fullName" bson:"fullName"`
	Email        string        `json:"email" bson:"email"`
	PasswordHash string        `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// SubAdmin is a field-operator account that voters get assigned to.
type SubAdmin struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName     string        `json:"fullName" bson:"fullName"`
	Email        string        `json:"email" bson:"email"`
	Phone        string        `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string        `json:"-" bson:"passwordHash"`
	IsActive     bool          `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}
