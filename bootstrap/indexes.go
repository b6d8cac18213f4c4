package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates every index the repositories rely on. Safe to run
// on every boot; mongo treats identical definitions as no-ops.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// cardNo is unique within each voter collection but optional, so the
	// index is sparse.
	for _, name := range []string{"voters", "voterfour"} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "cardNo", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		})
		if err != nil {
			return fmt.Errorf("%s cardNo index: %w", name, err)
		}
	}

	// At most one active assignment per (subAdminId, voterId, voterType).
	// The partial filter keeps deactivated history rows out of the
	// uniqueness scope, so re-assignment after unassign is allowed.
	_, err := db.Collection("voterassignments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "subAdminId", Value: 1},
				{Key: "voterId", Value: 1},
				{Key: "voterType", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
		{Keys: bson.D{{Key: "subAdminId", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "voterId", Value: 1}, {Key: "voterType", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("voterassignments indexes: %w", err)
	}

	// One survey per voter. Surveys are hard-deleted on removal, so a
	// plain compound unique index is enough.
	_, err = db.Collection("surveys").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "voterId", Value: 1}, {Key: "voterType", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("surveys unique index: %w", err)
	}

	_, err = db.Collection("outbox_events").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "processed", Value: 1}, {Key: "occurredAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("outbox index: %w", err)
	}

	for _, name := range []string{"admins", "subadmins"} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("%s email index: %w", name, err)
		}
	}

	_, err = db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("categories name index: %w", err)
	}
	return nil
}
