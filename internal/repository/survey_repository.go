package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// ErrSurveyExists means the voter already has a survey. One survey per
// (voterId, voterType); the compound unique index backs the pre-check.
var ErrSurveyExists = errors.New("survey already exists for this voter")

// SurveyRepo owns the surveys collection. It never touches voter
// documents directly: every surveyDone change goes through an outbox
// event, applied by the outbox consumer.
type SurveyRepo struct {
	col    *mongo.Collection
	outbox *mongo.Collection
	notify func()
}

// NewSurveyRepo wires the repo to the outbox. notify wakes the outbox
// consumer after an event is appended; pass nil to rely on polling alone.
func NewSurveyRepo(stores *Stores, notify func()) *SurveyRepo {
	if notify == nil {
		notify = func() {}
	}
	return &SurveyRepo{
		col:    stores.DB().Collection(colSurveys),
		outbox: stores.DB().Collection(colOutbox),
		notify: notify,
	}
}

// Create inserts the survey after the one-per-voter pre-check. A
// duplicate-key backstop converts the race loser into the same conflict.
func (r *SurveyRepo) Create(ctx context.Context, s *model.Survey) error {
	err := r.col.FindOne(ctx, bson.M{"voterId": s.VoterID, "voterType": s.VoterType}).Err()
	if err == nil {
		return ErrSurveyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if IsDuplicateKey(err) {
			return ErrSurveyExists
		}
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		s.ID = oid
	}

	if model.SurveyStatusDone(s.Status) {
		r.emit(model.OutboxSurveyDone, s)
	}
	return nil
}

// Get fetches one survey by id.
func (r *SurveyRepo) Get(ctx context.Context, id bson.ObjectID) (*model.Survey, error) {
	var s model.Survey
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByVoter fetches the survey referencing one voter, if any.
func (r *SurveyRepo) GetByVoter(ctx context.Context, t model.VoterType, voterID bson.ObjectID) (*model.Survey, error) {
	var s model.Survey
	err := r.col.FindOne(ctx, bson.M{"voterId": voterID, "voterType": t}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns a page of surveys, optionally filtered by status and
// surveyor.
func (r *SurveyRepo) List(ctx context.Context, status string, surveyorID *bson.ObjectID, skip, limit int) ([]model.Survey, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if surveyorID != nil {
		filter["surveyorId"] = *surveyorID
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}
	var out []model.Survey
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	if out == nil {
		out = []model.Survey{}
	}
	return out, total, nil
}

// UpdateStatus sets an explicit status value and emits the matching voter
// sync event: done statuses set the flag, leaving a done status clears it.
func (r *SurveyRepo) UpdateStatus(ctx context.Context, id bson.ObjectID, status string, reviewedBy *bson.ObjectID, remark string) (*model.Survey, error) {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if reviewedBy != nil {
		set["reviewedBy"] = *reviewedBy
		set["reviewedAt"] = time.Now().UTC()
	}
	if remark != "" {
		set["reviewRemark"] = remark
	}

	var before model.Survey
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	after := before
	after.Status = status
	switch {
	case model.SurveyStatusDone(status):
		r.emit(model.OutboxSurveyDone, &after)
	case model.SurveyStatusDone(before.Status):
		r.emit(model.OutboxSurveyCleared, &after)
	}
	return &after, nil
}

// Delete removes the survey and emits the clearing event for its voter.
func (r *SurveyRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	var s model.Survey
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	r.emit(model.OutboxSurveyCleared, &s)
	return nil
}

// emitTimeout bounds the outbox append on its own clock. The survey write
// has already committed when emit runs, so the append must not inherit a
// request deadline that may be about to expire.
const emitTimeout = 5 * time.Second

// emit appends the outbox event and wakes the consumer. An append failure
// is logged but does not fail the survey write; the dropped event means
// the voter's flag stays stale until another event for the same voter.
// newSyncEvent builds the voter sync event for one survey. Only done
// events carry the survey id; clearing events unset it on the voter.
func newSyncEvent(kind string, s *model.Survey) model.OutboxEvent {
	ev := model.OutboxEvent{
		Kind:       kind,
		Voter:      model.VoterRef{Type: s.VoterType, ID: s.VoterID},
		OccurredAt: time.Now().UTC(),
	}
	if kind == model.OutboxSurveyDone {
		ev.SurveyID = &s.ID
	}
	return ev
}

func (r *SurveyRepo) emit(kind string, s *model.Survey) {
	ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
	defer cancel()

	ev := newSyncEvent(kind, s)
	if _, err := r.outbox.InsertOne(ctx, ev); err != nil {
		slog.Error("outbox append failed", "kind", kind, "voterId", s.VoterID.Hex(), "err", err)
		return
	}
	r.notify()
}
