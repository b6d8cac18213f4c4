package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Alert types.
const (
	AlertTypeInfo    = "info"
	AlertTypeWarning = "warning"
	AlertTypeUrgent  = "urgent"
)

// ValidAlertType reports whether t is a known alert type.
func ValidAlertType(t string) bool {
	return t == AlertTypeInfo || t == AlertTypeWarning || t == AlertTypeUrgent
}

// Alert is a broadcast notice shown to sub-admins.
type Alert struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string        `json:"title" bson:"title"`
	Message   string        `json:"message" bson:"message"`
	Type      string        `json:"type" bson:"type"`
	IsActive  bool          `json:"isActive" bson:"isActive"`
	CreatedBy string        `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Category is a piece of named content (campaign material, talking points)
// grouped for the mobile client.
type Category struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Body         string        `json:"body,omitempty" bson:"body,omitempty"`
	DisplayOrder int           `json:"displayOrder" bson:"displayOrder"`
	IsActive     bool          `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}
