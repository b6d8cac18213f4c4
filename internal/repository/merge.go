package repository

import (
	"sort"
	"strings"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// tagVoters marks each row with its originating collection.
func tagVoters(vs []model.Voter, t model.VoterType) []dto.CombinedVoter {
	out := make([]dto.CombinedVoter, 0, len(vs))
	for _, v := range vs {
		out = append(out, dto.CombinedVoter{
			Voter:        v,
			VoterType:    string(t),
			CollectionID: v.ID.Hex(),
		})
	}
	return out
}

// voterLess builds the comparator for the requested sort key. String keys
// compare case-insensitively; equal keys compare as not-less so a stable
// sort keeps arrival order (main-collection rows before voterfour rows).
func voterLess(s query.Sort) func(a, b dto.CombinedVoter) bool {
	cmp := func(a, b dto.CombinedVoter) int {
		switch s.Field {
		case "name":
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case "nameEnglish":
			return strings.Compare(strings.ToLower(a.NameEnglish), strings.ToLower(b.NameEnglish))
		case "age":
			return a.Age - b.Age
		case "cardNo":
			return strings.Compare(a.CardNo, b.CardNo)
		case "createdAt":
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				return -1
			case a.CreatedAt.After(b.CreatedAt):
				return 1
			}
			return 0
		default: // _id
			return strings.Compare(a.ID.Hex(), b.ID.Hex())
		}
	}
	if s.Order < 0 {
		return func(a, b dto.CombinedVoter) bool { return cmp(a, b) > 0 }
	}
	return func(a, b dto.CombinedVoter) bool { return cmp(a, b) < 0 }
}

// mergeRows concatenates the two per-collection slices and, when the union
// is small enough to re-sort in memory, sorts it into one total order.
// Above the threshold the rows stay per-collection sorted only, and the
// caller must surface the degraded-ordering warning.
func mergeRows(a, b []dto.CombinedVoter, s query.Sort, sortMax int) (rows []dto.CombinedVoter, globallySorted bool) {
	rows = make([]dto.CombinedVoter, 0, len(a)+len(b))
	rows = append(rows, a...)
	rows = append(rows, b...)
	if len(rows) > sortMax {
		return rows, false
	}
	less := voterLess(s)
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	return rows, true
}

// pageSlice applies skip/limit to the materialized merged slice.
func pageSlice(rows []dto.CombinedVoter, skip, limit int) []dto.CombinedVoter {
	if skip >= len(rows) {
		return []dto.CombinedVoter{}
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end]
}
