package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVoterType(t *testing.T) {
	got, err := ParseVoterType("voter")
	require.NoError(t, err)
	require.Equal(t, VoterTypeMain, got)

	got, err = ParseVoterType("voterfour")
	require.NoError(t, err)
	require.Equal(t, VoterTypeFour, got)
}

func TestParseVoterTypeRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "all", "Voter", "voter4", "voterFour"} {
		_, err := ParseVoterType(s)
		require.Error(t, err, "input %q", s)
		require.ErrorIs(t, err, ErrUnknownVoterType)
	}
}

func TestValidSurveyStatus(t *testing.T) {
	for _, s := range []string{"draft", "completed", "submitted", "verified", "rejected"} {
		require.True(t, ValidSurveyStatus(s), s)
	}
	require.False(t, ValidSurveyStatus(""))
	require.False(t, ValidSurveyStatus("done"))
	require.False(t, ValidSurveyStatus("Completed"))
}

func TestSurveyStatusDone(t *testing.T) {
	require.True(t, SurveyStatusDone(SurveyStatusCompleted))
	require.True(t, SurveyStatusDone(SurveyStatusSubmitted))
	require.True(t, SurveyStatusDone(SurveyStatusVerified))
	require.False(t, SurveyStatusDone(SurveyStatusDraft))
	require.False(t, SurveyStatusDone(SurveyStatusRejected))
	require.False(t, SurveyStatusDone(""))
}

func TestValidAlertType(t *testing.T) {
	require.True(t, ValidAlertType("info"))
	require.True(t, ValidAlertType("warning"))
	require.True(t, ValidAlertType("urgent"))
	require.False(t, ValidAlertType(""))
	require.False(t, ValidAlertType("critical"))
}

func TestErrUnknownVoterTypeWrapping(t *testing.T) {
	_, err := ParseVoterType("bogus")
	var target error = ErrUnknownVoterType
	require.True(t, errors.Is(err, target))
	require.Contains(t, err.Error(), `"bogus"`)
}
