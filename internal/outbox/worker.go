// Package outbox drains survey sync events onto voter documents. The
// survey write path appends events; this consumer applies them with
// retries, so a voter-side failure never fails a survey save and is never
// silently dropped.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/developerakkoo/Voter-Management-API-sub000/internal/metrics"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

const fetchBatch = 50

// maxAttempts is the per-event retry budget across drains. An event that
// fails this many times is parked (never refetched) so it cannot block
// the queue forever; parked events keep their lastError for inspection.
const maxAttempts = 5

// Worker polls the outbox collection and applies pending events in
// occurrence order. Applying an event is idempotent, so redelivery after
// a crash or a failed run is safe.
type Worker struct {
	stores   *repository.Stores
	col      *mongo.Collection
	interval time.Duration
	wake     chan struct{}
}

func NewWorker(stores *repository.Stores, interval time.Duration) *Worker {
	return &Worker{
		stores:   stores,
		col:      stores.DB().Collection("outbox_events"),
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Notify wakes the worker immediately. Non-blocking; a pending wakeup is
// enough.
func (w *Worker) Notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run drains on every tick or wakeup until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-w.wake:
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		events, err := w.fetchPending(ctx)
		if err != nil {
			slog.Error("outbox fetch failed", "err", err)
			return
		}
		if len(events) == 0 {
			return
		}
		for _, ev := range events {
			if err := w.process(ctx, ev); err != nil {
				// Stop the pass so per-voter order holds: the failed
				// event is retried ahead of anything newer until its
				// attempts budget runs out and fetchPending stops
				// returning it, at which point later events proceed.
				metrics.OutboxFailures.Inc()
				slog.Error("outbox event failed", "id", ev.ID.Hex(), "kind", ev.Kind, "err", err)
				w.markFailed(ctx, ev, err)
				return
			}
			metrics.OutboxProcessed.Inc()
		}
	}
}

// pendingFilter selects unprocessed events that still have retry budget.
func pendingFilter() bson.M {
	return bson.M{"processed": false, "attempts": bson.M{"$lt": maxAttempts}}
}

func (w *Worker) fetchPending(ctx context.Context) ([]model.OutboxEvent, error) {
	cur, err := w.col.Find(ctx,
		pendingFilter(),
		options.Find().SetSort(bson.D{{Key: "occurredAt", Value: 1}}).SetLimit(fetchBatch))
	if err != nil {
		return nil, err
	}
	var events []model.OutboxEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// process applies one event to its voter document and marks it processed.
func (w *Worker) process(ctx context.Context, ev model.OutboxEvent) error {
	err := retry.Do(
		func() error { return w.apply(ctx, ev) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = w.col.UpdateOne(ctx,
		bson.M{"_id": ev.ID},
		bson.M{"$set": bson.M{"processed": true, "processedAt": now}, "$inc": bson.M{"attempts": 1}})
	return err
}

// voterUpdate builds the idempotent update an event applies to its voter
// document. ok is false for unknown kinds, which are consumed as no-ops.
func voterUpdate(ev model.OutboxEvent) (update bson.M, ok bool) {
	switch ev.Kind {
	case model.OutboxSurveyDone:
		return bson.M{"$set": bson.M{
			"surveyDone":     true,
			"surveyId":       ev.SurveyID,
			"lastSurveyDate": ev.OccurredAt,
		}}, true
	case model.OutboxSurveyCleared:
		return bson.M{
			"$set":   bson.M{"surveyDone": false},
			"$unset": bson.M{"surveyId": "", "lastSurveyDate": ""},
		}, true
	}
	return nil, false
}

// apply performs the voter update. A voter that no longer exists consumes
// the event as a no-op.
func (w *Worker) apply(ctx context.Context, ev model.OutboxEvent) error {
	col, err := w.stores.Resolve(ev.Voter.Type)
	if err != nil {
		return err
	}
	update, ok := voterUpdate(ev)
	if !ok {
		slog.Warn("unknown outbox kind, consuming", "kind", ev.Kind)
		return nil
	}
	_, err = col.UpdateOne(ctx, bson.M{"_id": ev.Voter.ID}, update)
	return err
}

func (w *Worker) markFailed(ctx context.Context, ev model.OutboxEvent, cause error) {
	_, err := w.col.UpdateOne(ctx,
		bson.M{"_id": ev.ID},
		bson.M{"$set": bson.M{"lastError": cause.Error()}, "$inc": bson.M{"attempts": 1}})
	if err != nil {
		slog.Error("outbox markFailed failed", "id", ev.ID.Hex(), "err", err)
		return
	}
	if ev.Attempts+1 >= maxAttempts {
		slog.Error("outbox event parked, retry budget exhausted",
			"id", ev.ID.Hex(), "kind", ev.Kind, "attempts", ev.Attempts+1)
	}
}
