package outbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

func TestVoterUpdateSurveyDone(t *testing.T) {
	sid := bson.NewObjectID()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ev := model.OutboxEvent{
		Kind:       model.OutboxSurveyDone,
		Voter:      model.VoterRef{Type: model.VoterTypeMain, ID: bson.NewObjectID()},
		SurveyID:   &sid,
		OccurredAt: at,
	}

	update, ok := voterUpdate(ev)
	require.True(t, ok)
	set, isSet := update["$set"].(bson.M)
	require.True(t, isSet)
	require.Equal(t, true, set["surveyDone"])
	require.Equal(t, &sid, set["surveyId"])
	require.Equal(t, at, set["lastSurveyDate"])
}

func TestVoterUpdateSurveyCleared(t *testing.T) {
	ev := model.OutboxEvent{
		Kind:  model.OutboxSurveyCleared,
		Voter: model.VoterRef{Type: model.VoterTypeFour, ID: bson.NewObjectID()},
	}

	update, ok := voterUpdate(ev)
	require.True(t, ok)
	require.Equal(t, bson.M{"surveyDone": false}, update["$set"])
	require.Equal(t, bson.M{"surveyId": "", "lastSurveyDate": ""}, update["$unset"])
}

func TestVoterUpdateUnknownKindIsNoOp(t *testing.T) {
	update, ok := voterUpdate(model.OutboxEvent{Kind: "something_else"})
	require.False(t, ok)
	require.Nil(t, update)
}

func TestPendingFilterEnforcesRetryBudget(t *testing.T) {
	f := pendingFilter()
	require.Equal(t, false, f["processed"])
	// Events at or past the attempts cap are parked: never refetched, so
	// a persistently failing event cannot block the queue forever.
	require.Equal(t, bson.M{"$lt": maxAttempts}, f["attempts"])
}

func TestNotifyNeverBlocks(t *testing.T) {
	w := &Worker{wake: make(chan struct{}, 1)}
	// A second Notify with the wake slot already full must not block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Notify()
		w.Notify()
		w.Notify()
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked")
	}
	// The pending wake-up is still observable.
	select {
	case <-w.wake:
	default:
		t.Fatal("expected a pending wake signal")
	}
}
