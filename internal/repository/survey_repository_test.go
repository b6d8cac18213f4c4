package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

func TestNewSyncEventDoneCarriesSurveyID(t *testing.T) {
	s := &model.Survey{
		ID:        bson.NewObjectID(),
		VoterID:   bson.NewObjectID(),
		VoterType: model.VoterTypeMain,
	}

	ev := newSyncEvent(model.OutboxSurveyDone, s)
	require.Equal(t, model.OutboxSurveyDone, ev.Kind)
	require.Equal(t, s.VoterID, ev.Voter.ID)
	require.Equal(t, model.VoterTypeMain, ev.Voter.Type)
	require.NotNil(t, ev.SurveyID)
	require.Equal(t, s.ID, *ev.SurveyID)
	require.WithinDuration(t, time.Now().UTC(), ev.OccurredAt, time.Minute)
}

func TestNewSyncEventClearedOmitsSurveyID(t *testing.T) {
	s := &model.Survey{
		ID:        bson.NewObjectID(),
		VoterID:   bson.NewObjectID(),
		VoterType: model.VoterTypeFour,
	}

	ev := newSyncEvent(model.OutboxSurveyCleared, s)
	require.Equal(t, model.OutboxSurveyCleared, ev.Kind)
	require.Nil(t, ev.SurveyID)
}
