package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// ErrMissingVoters rejects a batch in which some requested ids do not
// exist in the selected collection.
type ErrMissingVoters struct {
	Missing []string
}

func (e *ErrMissingVoters) Error() string {
	return fmt.Sprintf("%d voter(s) not found", len(e.Missing))
}

// ErrAlreadyAssigned rejects a batch in which some voters already hold an
// active assignment to the sub-admin. Nothing from the batch is written.
type ErrAlreadyAssigned struct {
	VoterIDs []string
}

func (e *ErrAlreadyAssigned) Error() string {
	return fmt.Sprintf("%d voter(s) already assigned", len(e.VoterIDs))
}

// ErrSubAdminNotFound rejects an assign request for an unknown sub-admin.
var ErrSubAdminNotFound = errors.New("sub-admin not found")

// AssignmentRepo orchestrates the assignment link collection. Assignment
// is all-or-nothing per batch; unassignment is a bulk isActive flip that
// keeps rows for history.
type AssignmentRepo struct {
	stores *Stores
	voters *VoterRepo
	col    *mongo.Collection
}

func NewAssignmentRepo(stores *Stores, voters *VoterRepo) *AssignmentRepo {
	return &AssignmentRepo{
		stores: stores,
		voters: voters,
		col:    stores.DB().Collection(colAssignments),
	}
}

// Assign validates the sub-admin, every voter id, and the absence of
// active assignments before inserting the batch. Any failed check rejects
// the entire batch.
func (r *AssignmentRepo) Assign(ctx context.Context, subAdminID bson.ObjectID, voterIDs []bson.ObjectID, t model.VoterType, assignedBy, notes string) ([]model.VoterAssignment, error) {
	subadmins := r.stores.DB().Collection(colSubAdmins)
	if err := subadmins.FindOne(ctx, bson.M{"_id": subAdminID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubAdminNotFound
		}
		return nil, err
	}

	found, err := r.voters.ExistingIDs(ctx, t, voterIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(voterIDs) {
		missing := []string{}
		for _, id := range voterIDs {
			if !found[id] {
				missing = append(missing, id.Hex())
			}
		}
		return nil, &ErrMissingVoters{Missing: missing}
	}

	// Pre-check for active conflicts so the response can name them. The
	// partial unique index is the backstop if a concurrent assign slips
	// past this read.
	cur, err := r.col.Find(ctx, bson.M{
		"subAdminId": subAdminID,
		"voterType":  t,
		"voterId":    bson.M{"$in": voterIDs},
		"isActive":   true,
	})
	if err != nil {
		return nil, err
	}
	var conflicts []model.VoterAssignment
	if err := cur.All(ctx, &conflicts); err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		ids := make([]string, 0, len(conflicts))
		for _, c := range conflicts {
			ids = append(ids, c.VoterID.Hex())
		}
		return nil, &ErrAlreadyAssigned{VoterIDs: ids}
	}

	now := time.Now().UTC()
	rows := make([]model.VoterAssignment, 0, len(voterIDs))
	docs := make([]any, 0, len(voterIDs))
	for _, id := range voterIDs {
		row := model.VoterAssignment{
			SubAdminID: subAdminID,
			VoterID:    id,
			VoterType:  t,
			AssignedBy: assignedBy,
			AssignedAt: now,
			IsActive:   true,
			Notes:      notes,
		}
		rows = append(rows, row)
		docs = append(docs, row)
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		if IsDuplicateKey(err) {
			// Lost the race to a concurrent assign. Roll back whatever
			// part of this batch made it in, then report the whole batch
			// as conflicted to keep the all-or-nothing contract.
			_, _ = r.col.DeleteMany(ctx, bson.M{
				"subAdminId": subAdminID,
				"voterType":  t,
				"voterId":    bson.M{"$in": voterIDs},
				"assignedAt": now,
			})
			ids := make([]string, 0, len(voterIDs))
			for _, id := range voterIDs {
				ids = append(ids, id.Hex())
			}
			return nil, &ErrAlreadyAssigned{VoterIDs: ids}
		}
		return nil, err
	}
	for i, ins := range res.InsertedIDs {
		if oid, ok := ins.(bson.ObjectID); ok && i < len(rows) {
			rows[i].ID = oid
		}
	}
	return rows, nil
}

// Unassign flips isActive to false for every matching tuple. No existence
// check: unassigning nothing reports a zero count, not an error.
func (r *AssignmentRepo) Unassign(ctx context.Context, subAdminID bson.ObjectID, voterIDs []bson.ObjectID, t model.VoterType) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{
		"subAdminId": subAdminID,
		"voterType":  t,
		"voterId":    bson.M{"$in": voterIDs},
		"isActive":   true,
	}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ListForSubAdmin returns a page of a sub-admin's assignments, each
// decorated with its voter document. The decoration is a manual join: the
// link rows carry only ids.
func (r *AssignmentRepo) ListForSubAdmin(ctx context.Context, subAdminID bson.ObjectID, isActive *bool, skip, limit int) ([]dto.AssignmentWithVoter, int64, error) {
	filter := bson.M{"subAdminId": subAdminID}
	if isActive != nil {
		filter["isActive"] = *isActive
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "assignedAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}
	var rows []model.VoterAssignment
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}

	out := make([]dto.AssignmentWithVoter, 0, len(rows))
	for _, row := range rows {
		item := dto.AssignmentWithVoter{VoterAssignment: row}
		v, err := r.voters.Get(ctx, row.VoterType, row.VoterID)
		if err == nil {
			item.Voter = v
		} else if !errors.Is(err, ErrNotFound) {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, nil
}

// ListForVoter returns the full assignment history of one voter.
func (r *AssignmentRepo) ListForVoter(ctx context.Context, t model.VoterType, voterID bson.ObjectID) ([]model.VoterAssignment, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"voterId": voterID, "voterType": t},
		options.Find().SetSort(bson.D{{Key: "assignedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rows []model.VoterAssignment
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.VoterAssignment{}
	}
	return rows, nil
}

// ActiveCount counts a sub-admin's active assignments.
func (r *AssignmentRepo) ActiveCount(ctx context.Context, subAdminID bson.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"subAdminId": subAdminID, "isActive": true})
}
