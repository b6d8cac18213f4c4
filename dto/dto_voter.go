package dto

import "github.com/developerakkoo/Voter-Management-API-sub000/model"

// CombinedVoter is a voter row tagged with its originating collection, as
// returned by the cross-collection listing endpoints.
type CombinedVoter struct {
	model.Voter
	VoterType    string `json:"voterType"`
	CollectionID string `json:"collectionId"`
}

// VoterFilters echoes back the filters a listing was computed with.
type VoterFilters struct {
	IsActive  *bool  `json:"isActive,omitempty"`
	IsPaid    *bool  `json:"isPaid,omitempty"`
	IsVisited *bool  `json:"isVisited,omitempty"`
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	Search    string `json:"search,omitempty"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
	VoterType string `json:"voterType"`
}

// VoterAnalytics is the cross-collection aggregate block on the combined
// listing. Always computed over the complete filtered set, regardless of
// the listing read cap.
type VoterAnalytics struct {
	Total      int64            `json:"total"`
	Male       int64            `json:"male"`
	Female     int64            `json:"female"`
	OtherSex   int64            `json:"otherSex"`
	Paid       int64            `json:"paid"`
	Unpaid     int64            `json:"unpaid"`
	Visited    int64            `json:"visited"`
	NotVisited int64            `json:"notVisited"`
	Active     int64            `json:"active"`
	Inactive   int64            `json:"inactive"`
	SurveyDone int64            `json:"surveyDone"`
	ByPno      map[string]int64 `json:"byPno,omitempty"`
}

// Add merges another store's aggregate into the receiver field-by-field.
func (a *VoterAnalytics) Add(b VoterAnalytics) {
	a.Total += b.Total
	a.Male += b.Male
	a.Female += b.Female
	a.OtherSex += b.OtherSex
	a.Paid += b.Paid
	a.Unpaid += b.Unpaid
	a.Visited += b.Visited
	a.NotVisited += b.NotVisited
	a.Active += b.Active
	a.Inactive += b.Inactive
	a.SurveyDone += b.SurveyDone
	if len(b.ByPno) > 0 {
		if a.ByPno == nil {
			a.ByPno = make(map[string]int64, len(b.ByPno))
		}
		for k, v := range b.ByPno {
			a.ByPno[k] += v
		}
	}
}

// CombinedListResponse is the body of GET /api/voters/all.
type CombinedListResponse struct {
	Success    bool            `json:"success"`
	Data       []CombinedVoter `json:"data"`
	Pagination Pagination      `json:"pagination"`
	Analytics  VoterAnalytics  `json:"analytics"`
	Filters    VoterFilters    `json:"filters"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// StreamResponse is the body of GET /api/voters/all/stream.
type StreamResponse struct {
	Success    bool             `json:"success"`
	Data       []CombinedVoter  `json:"data"`
	Pagination CursorPagination `json:"pagination"`
}

// VoterListResponse is the body of the single-collection listing.
type VoterListResponse struct {
	Success    bool          `json:"success"`
	Data       []model.Voter `json:"data"`
	Pagination Pagination    `json:"pagination"`
	Filters    VoterFilters  `json:"filters"`
}

// UpdateVoterRequest carries the editable voter fields. Pointer fields
// distinguish "not sent" from zero values.
type UpdateVoterRequest struct {
	Name                *string `json:"name"`
	NameEnglish         *string `json:"nameEnglish"`
	RelativeName        *string `json:"relativeName"`
	RelativeNameEnglish *string `json:"relativeNameEnglish"`
	Sex                 *string `json:"sex"`
	Age                 *int    `json:"age"`
	CardNo              *string `json:"cardNo"`
	Address             *string `json:"address"`
	AddressEnglish      *string `json:"addressEnglish"`
	BoothNo             *string `json:"boothNo"`
	PartNo              *string `json:"partNo"`
	AcNo                *string `json:"acNo"`
	Pno                 *string `json:"pno"`
	SourceFile          *string `json:"sourceFile"`
	CodeNo              *string `json:"codeNo"`
}

// StatusPatchRequest carries the flag toggles. At least one field must be
// present or the request is a 400.
type StatusPatchRequest struct {
	IsPaid    *bool `json:"isPaid"`
	IsVisited *bool `json:"isVisited"`
}
