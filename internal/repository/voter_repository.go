package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/developerakkoo/Voter-Management-API-sub000/internal/metrics"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// VoterRepo is the per-collection voter store. Every method resolves the
// target collection through Stores.
type VoterRepo struct {
	stores *Stores
}

func NewVoterRepo(stores *Stores) *VoterRepo {
	return &VoterRepo{stores: stores}
}

// List returns one page plus the total count for the same filter. The find
// and the count run concurrently.
func (r *VoterRepo) List(ctx context.Context, t model.VoterType, f query.Filters, s query.Sort, p query.Page) ([]model.Voter, int64, error) {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return nil, 0, err
	}
	filter := query.Build(f)

	var (
		voters []model.Voter
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer metrics.ObserveStoreQuery(string(t), "find")()
		cur, err := col.Find(gctx, filter, options.Find().
			SetSort(s.Mongo()).
			SetSkip(int64(p.Skip())).
			SetLimit(int64(p.Limit)))
		if err != nil {
			return err
		}
		return cur.All(gctx, &voters)
	})
	g.Go(func() error {
		defer metrics.ObserveStoreQuery(string(t), "count")()
		var err error
		total, err = col.CountDocuments(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if voters == nil {
		voters = []model.Voter{}
	}
	return voters, total, nil
}

// Get fetches one voter by id.
func (r *VoterRepo) Get(ctx context.Context, t model.VoterType, id bson.ObjectID) (*model.Voter, error) {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return nil, err
	}
	var v model.Voter
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Create inserts a voter document, stamping timestamps.
func (r *VoterRepo) Create(ctx context.Context, t model.VoterType, v *model.Voter) error {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	res, err := col.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

// Update applies a $set patch and returns the updated document. The patch
// always gets a fresh updatedAt.
func (r *VoterRepo) Update(ctx context.Context, t model.VoterType, id bson.ObjectID, set bson.M) (*model.Voter, error) {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = time.Now().UTC()
	var v model.Voter
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Delete removes one voter document.
func (r *VoterRepo) Delete(ctx context.Context, t model.VoterType, id bson.ObjectID) error {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset wipes the whole collection. Only reachable through the explicit
// reset endpoint.
func (r *VoterRepo) Reset(ctx context.Context, t model.VoterType) (int64, error) {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return 0, err
	}
	res, err := col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistingIDs returns which of the requested ids are present, used by the
// assignment batch validation.
func (r *VoterRepo) ExistingIDs(ctx context.Context, t model.VoterType, ids []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	found := make(map[bson.ObjectID]bool, len(docs))
	for _, d := range docs {
		found[d.ID] = true
	}
	return found, nil
}

// SampleIDs returns up to n ids from the collection, for the survey 404
// debug payload.
func (r *VoterRepo) SampleIDs(ctx context.Context, t model.VoterType, n int) ([]string, error) {
	col, err := r.stores.Resolve(t)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{},
		options.Find().SetLimit(int64(n)).SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID.Hex())
	}
	return out, nil
}
