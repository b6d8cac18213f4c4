package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

func mkVoter(name string, age int) model.Voter {
	return model.Voter{ID: bson.NewObjectID(), Name: name, Age: age}
}

func mkRows(t model.VoterType, names ...string) []dto.CombinedVoter {
	vs := make([]model.Voter, 0, len(names))
	for _, n := range names {
		vs = append(vs, mkVoter(n, 30))
	}
	return tagVoters(vs, t)
}

func TestTagVoters(t *testing.T) {
	v := mkVoter("Asha", 41)
	rows := tagVoters([]model.Voter{v}, model.VoterTypeFour)
	require.Len(t, rows, 1)
	require.Equal(t, "voterfour", rows[0].VoterType)
	require.Equal(t, v.ID.Hex(), rows[0].CollectionID)
	require.Equal(t, "Asha", rows[0].Name)
}

func TestMergeRowsSortsByNameCaseInsensitive(t *testing.T) {
	a := mkRows(model.VoterTypeMain, "banerjee", "Agarwal")
	b := mkRows(model.VoterTypeFour, "ADITI")
	s := query.Sort{Field: "name", Order: 1}

	rows, sorted := mergeRows(a, b, s, DefaultMergeSortMax)
	require.True(t, sorted)
	require.Equal(t, []string{"ADITI", "Agarwal", "banerjee"},
		[]string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestMergeRowsStableTieKeepsMainFirst(t *testing.T) {
	// Equal sort keys: main-collection rows must stay ahead of
	// voterfour rows because they arrived first.
	a := mkRows(model.VoterTypeMain, "same", "same")
	b := mkRows(model.VoterTypeFour, "same")
	s := query.Sort{Field: "name", Order: 1}

	rows, sorted := mergeRows(a, b, s, DefaultMergeSortMax)
	require.True(t, sorted)
	require.Equal(t, "voter", rows[0].VoterType)
	require.Equal(t, "voter", rows[1].VoterType)
	require.Equal(t, "voterfour", rows[2].VoterType)
}

func TestMergeRowsAboveThresholdSkipsGlobalSort(t *testing.T) {
	a := mkRows(model.VoterTypeMain, "zulu")
	b := mkRows(model.VoterTypeFour, "alpha", "bravo")
	s := query.Sort{Field: "name", Order: 1}

	rows, sorted := mergeRows(a, b, s, 2)
	require.False(t, sorted)
	// Concatenation order preserved: per-collection slices untouched.
	require.Equal(t, "zulu", rows[0].Name)
	require.Equal(t, "alpha", rows[1].Name)
	require.Equal(t, "bravo", rows[2].Name)
}

func TestMergeRowsDescending(t *testing.T) {
	a := []dto.CombinedVoter{
		{Voter: mkVoter("x", 20)},
		{Voter: mkVoter("y", 45)},
	}
	b := []dto.CombinedVoter{{Voter: mkVoter("z", 33)}}
	s := query.Sort{Field: "age", Order: -1}

	rows, sorted := mergeRows(a, b, s, DefaultMergeSortMax)
	require.True(t, sorted)
	require.Equal(t, []int{45, 33, 20}, []int{rows[0].Age, rows[1].Age, rows[2].Age})
}

func TestMergeRowsByCreatedAt(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	old := model.Voter{ID: bson.NewObjectID(), Name: "old", CreatedAt: base}
	mid := model.Voter{ID: bson.NewObjectID(), Name: "mid", CreatedAt: base.Add(time.Hour)}
	late := model.Voter{ID: bson.NewObjectID(), Name: "new", CreatedAt: base.Add(2 * time.Hour)}

	rows, sorted := mergeRows(
		tagVoters([]model.Voter{late, old}, model.VoterTypeMain),
		tagVoters([]model.Voter{mid}, model.VoterTypeFour),
		query.Sort{Field: "createdAt", Order: 1},
		DefaultMergeSortMax)
	require.True(t, sorted)
	require.Equal(t, []string{"old", "mid", "new"},
		[]string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestPageSlice(t *testing.T) {
	rows := make([]dto.CombinedVoter, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, dto.CombinedVoter{Voter: mkVoter(fmt.Sprintf("v%02d", i), 30)})
	}

	page1 := pageSlice(rows, 0, 20)
	require.Len(t, page1, 20)
	require.Equal(t, "v00", page1[0].Name)

	page2 := pageSlice(rows, 20, 20)
	require.Len(t, page2, 5)
	require.Equal(t, "v20", page2[0].Name)

	require.Empty(t, pageSlice(rows, 25, 20))
	require.Empty(t, pageSlice(rows, 100, 20))
}

// The §-documented listing example: 15 + 10 matching rows with limit 20
// paginate into a 20-row first page and a 5-row second page against a
// summed total of 25.
func TestCombinedPaginationExample(t *testing.T) {
	a := make([]model.Voter, 15)
	b := make([]model.Voter, 10)
	for i := range a {
		a[i] = mkVoter(fmt.Sprintf("a%02d", i), 30)
	}
	for i := range b {
		b[i] = mkVoter(fmt.Sprintf("b%02d", i), 30)
	}
	rows, sorted := mergeRows(
		tagVoters(a, model.VoterTypeMain),
		tagVoters(b, model.VoterTypeFour),
		query.Sort{Field: "name", Order: 1},
		DefaultMergeSortMax)
	require.True(t, sorted)

	total := int64(len(a) + len(b))
	require.Equal(t, int64(25), total)
	require.Equal(t, 2, query.TotalPages(total, 20))
	require.Len(t, pageSlice(rows, 0, 20), 20)
	require.Len(t, pageSlice(rows, 20, 20), 5)
}
