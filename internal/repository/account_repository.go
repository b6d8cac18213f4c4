package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// ErrEmailTaken rejects a registration with an email already on file.
var ErrEmailTaken = errors.New("email already registered")

// ErrBadCredentials covers both unknown email and wrong password, so a
// login failure does not reveal which.
var ErrBadCredentials = errors.New("invalid email or password")

// AccountRepo owns the admin and sub-admin collections.
type AccountRepo struct {
	admins    *mongo.Collection
	subadmins *mongo.Collection
}

func NewAccountRepo(stores *Stores) *AccountRepo {
	return &AccountRepo{
		admins:    stores.DB().Collection(colAdmins),
		subadmins: stores.DB().Collection(colSubAdmins),
	}
}

func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateAdmin registers a full-access account.
func (r *AccountRepo) CreateAdmin(ctx context.Context, fullName, email, password string) (*model.Admin, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := model.Admin{FullName: fullName, Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	res, err := r.admins.InsertOne(ctx, a)
	if err != nil {
		if IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		a.ID = oid
	}
	return &a, nil
}

// AuthenticateAdmin checks credentials and returns the account.
func (r *AccountRepo) AuthenticateAdmin(ctx context.Context, email, password string) (*model.Admin, error) {
	var a model.Admin
	if err := r.admins.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &a, nil
}

// CreateSubAdmin registers a field-operator account, active by default.
func (r *AccountRepo) CreateSubAdmin(ctx context.Context, fullName, email, phone, password string) (*model.SubAdmin, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	s := model.SubAdmin{
		FullName: fullName, Email: email, Phone: phone,
		PasswordHash: hash, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	res, err := r.subadmins.InsertOne(ctx, s)
	if err != nil {
		if IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		s.ID = oid
	}
	return &s, nil
}

// AuthenticateSubAdmin checks credentials; deactivated accounts fail the
// same way as bad credentials.
func (r *AccountRepo) AuthenticateSubAdmin(ctx context.Context, email, password string) (*model.SubAdmin, error) {
	var s model.SubAdmin
	if err := r.subadmins.FindOne(ctx, bson.M{"email": email}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !s.IsActive {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &s, nil
}

// ListSubAdmins returns a searchable page of sub-admins.
func (r *AccountRepo) ListSubAdmins(ctx context.Context, search string, skip, limit int) ([]model.SubAdmin, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter = bson.M{"$or": []bson.M{
			{"fullName": query.CIRegex(search)},
			{"email": query.CIRegex(search)},
		}}
	}
	total, err := r.subadmins.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := r.subadmins.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}
	var out []model.SubAdmin
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	if out == nil {
		out = []model.SubAdmin{}
	}
	return out, total, nil
}

// GetSubAdmin fetches one sub-admin by id.
func (r *AccountRepo) GetSubAdmin(ctx context.Context, id bson.ObjectID) (*model.SubAdmin, error) {
	var s model.SubAdmin
	if err := r.subadmins.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateSubAdmin applies a $set patch and returns the updated account.
func (r *AccountRepo) UpdateSubAdmin(ctx context.Context, id bson.ObjectID, set bson.M) (*model.SubAdmin, error) {
	set["updatedAt"] = time.Now().UTC()
	var s model.SubAdmin
	err := r.subadmins.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &s, nil
}

// DeactivateSubAdmin soft-deletes the account.
func (r *AccountRepo) DeactivateSubAdmin(ctx context.Context, id bson.ObjectID) error {
	res, err := r.subadmins.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
