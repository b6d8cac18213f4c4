package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// ErrNameTaken rejects a category whose name is already in use.
var ErrNameTaken = errors.New("category name already exists")

// ContentRepo owns the alerts and categories collections. Plain CRUD.
type ContentRepo struct {
	alerts     *mongo.Collection
	categories *mongo.Collection
}

func NewContentRepo(stores *Stores) *ContentRepo {
	return &ContentRepo{
		alerts:     stores.DB().Collection(colAlerts),
		categories: stores.DB().Collection(colCategories),
	}
}

func (r *ContentRepo) CreateAlert(ctx context.Context, a *model.Alert) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	res, err := r.alerts.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *ContentRepo) ListAlerts(ctx context.Context, isActive *bool, alertType string) ([]model.Alert, error) {
	filter := bson.M{}
	if isActive != nil {
		filter["isActive"] = *isActive
	}
	if alertType != "" {
		filter["type"] = alertType
	}
	cur, err := r.alerts.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []model.Alert
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Alert{}
	}
	return out, nil
}

func (r *ContentRepo) GetAlert(ctx context.Context, id bson.ObjectID) (*model.Alert, error) {
	var a model.Alert
	if err := r.alerts.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ContentRepo) UpdateAlert(ctx context.Context, id bson.ObjectID, set bson.M) (*model.Alert, error) {
	set["updatedAt"] = time.Now().UTC()
	var a model.Alert
	err := r.alerts.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ContentRepo) DeleteAlert(ctx context.Context, id bson.ObjectID) error {
	res, err := r.alerts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentRepo) CreateCategory(ctx context.Context, c *model.Category) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := r.categories.InsertOne(ctx, c)
	if err != nil {
		if IsDuplicateKey(err) {
			return ErrNameTaken
		}
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (r *ContentRepo) ListCategories(ctx context.Context, isActive *bool) ([]model.Category, error) {
	filter := bson.M{}
	if isActive != nil {
		filter["isActive"] = *isActive
	}
	cur, err := r.categories.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []model.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Category{}
	}
	return out, nil
}

func (r *ContentRepo) GetCategory(ctx context.Context, id bson.ObjectID) (*model.Category, error) {
	var c model.Category
	if err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepo) UpdateCategory(ctx context.Context, id bson.ObjectID, set bson.M) (*model.Category, error) {
	set["updatedAt"] = time.Now().UTC()
	var c model.Category
	err := r.categories.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if IsDuplicateKey(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepo) DeleteCategory(ctx context.Context, id bson.ObjectID) error {
	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
