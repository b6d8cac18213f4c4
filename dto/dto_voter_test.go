package dto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVoterAnalyticsAdd(t *testing.T) {
	a := VoterAnalytics{
		Total: 10, Male: 4, Female: 6,
		Paid: 3, Unpaid: 7,
		Active: 10,
		ByPno:  map[string]int64{"1": 5, "2": 5},
	}
	b := VoterAnalytics{
		Total: 5, Male: 5,
		Paid: 5,
		Active: 4, Inactive: 1,
		SurveyDone: 2,
		ByPno:      map[string]int64{"2": 3, "unknown": 2},
	}

	a.Add(b)

	require.Equal(t, int64(15), a.Total)
	require.Equal(t, int64(9), a.Male)
	require.Equal(t, int64(6), a.Female)
	require.Equal(t, int64(8), a.Paid)
	require.Equal(t, int64(7), a.Unpaid)
	require.Equal(t, int64(14), a.Active)
	require.Equal(t, int64(1), a.Inactive)
	require.Equal(t, int64(2), a.SurveyDone)
	require.Equal(t, map[string]int64{"1": 5, "2": 8, "unknown": 2}, a.ByPno)
}

func TestVoterAnalyticsAddIntoZeroValue(t *testing.T) {
	var a VoterAnalytics
	a.Add(VoterAnalytics{Total: 3, ByPno: map[string]int64{"7": 3}})
	require.Equal(t, int64(3), a.Total)
	require.Equal(t, map[string]int64{"7": 3}, a.ByPno)

	// Nothing to merge leaves the map nil so it stays omitted from JSON.
	var c VoterAnalytics
	c.Add(VoterAnalytics{Total: 1})
	require.Nil(t, c.ByPno)
}
