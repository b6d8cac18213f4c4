package repository

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/metrics"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// Capacity tunables for the cross-collection union. Defaults follow the
// deployed configuration; both are per-instance knobs, not contracts.
const (
	// DefaultMergeSortMax is the largest union re-sorted in memory into
	// one total order.
	DefaultMergeSortMax = 1000
	// DefaultPerStoreCap bounds how many rows one listing reads from each
	// collection.
	DefaultPerStoreCap = 5000
)

// TargetAll selects both collections on the combined endpoints.
const TargetAll = "all"

// CombinedResult is everything one combined listing produced.
type CombinedResult struct {
	Rows       []dto.CombinedVoter
	TotalCount int64
	Analytics  dto.VoterAnalytics
	Warnings   []string
}

// StreamResult is one cursor page from the streaming endpoint.
type StreamResult struct {
	Rows       []dto.CombinedVoter
	HasMore    bool
	NextCursor string
}

// CombinedRepo answers listings that span both voter collections. Each
// collection's query engine knows nothing of the other; the union, sort
// and analytics summing happen here.
type CombinedRepo struct {
	stores       *Stores
	MergeSortMax int
	PerStoreCap  int
}

func NewCombinedRepo(stores *Stores) *CombinedRepo {
	return &CombinedRepo{
		stores:       stores,
		MergeSortMax: DefaultMergeSortMax,
		PerStoreCap:  DefaultPerStoreCap,
	}
}

// targets resolves the voterType selector of the combined endpoints:
// "all", or one of the two discriminators.
func (r *CombinedRepo) targets(sel string) ([]model.VoterType, error) {
	if sel == "" || sel == TargetAll {
		return []model.VoterType{model.VoterTypeMain, model.VoterTypeFour}, nil
	}
	t, err := model.ParseVoterType(sel)
	if err != nil {
		return nil, err
	}
	return []model.VoterType{t}, nil
}

// List runs the filtered find, count and analytics aggregation for every
// target collection in parallel, merges, then paginates the merged slice.
// Any per-collection failure aborts the whole operation.
func (r *CombinedRepo) List(ctx context.Context, sel string, f query.Filters, s query.Sort, p query.Page) (*CombinedResult, error) {
	types, err := r.targets(sel)
	if err != nil {
		return nil, err
	}
	filter := query.Build(f)

	tagged := make([][]dto.CombinedVoter, len(types))
	counts := make([]int64, len(types))
	aggs := make([]dto.VoterAnalytics, len(types))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		i, t := i, t
		col, err := r.stores.Resolve(t)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			defer metrics.ObserveStoreQuery(string(t), "find")()
			cur, err := col.Find(gctx, filter, options.Find().
				SetSort(s.Mongo()).
				SetLimit(int64(r.PerStoreCap)))
			if err != nil {
				return err
			}
			var vs []model.Voter
			if err := cur.All(gctx, &vs); err != nil {
				return err
			}
			tagged[i] = tagVoters(vs, t)
			return nil
		})
		g.Go(func() error {
			defer metrics.ObserveStoreQuery(string(t), "count")()
			n, err := col.CountDocuments(gctx, filter)
			counts[i] = n
			return err
		})
		g.Go(func() error {
			defer metrics.ObserveStoreQuery(string(t), "aggregate")()
			a, err := aggregateAnalytics(gctx, col, filter)
			aggs[i] = a
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &CombinedResult{}
	for i := range types {
		res.TotalCount += counts[i]
		res.Analytics.Add(aggs[i])
	}

	var second []dto.CombinedVoter
	if len(types) == 2 {
		second = tagged[1]
	}
	rows, sorted := mergeRows(tagged[0], second, s, r.MergeSortMax)
	if !sorted {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("result set exceeds %d rows: rows are sorted within each collection but not across collections", r.MergeSortMax))
	}
	for i, t := range types {
		if len(tagged[i]) == r.PerStoreCap {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s read capped at %d rows: pagination beyond the cap is unreliable", t, r.PerStoreCap))
		}
	}

	res.Rows = pageSlice(rows, p.Skip(), p.Limit)
	return res, nil
}

// Stream returns one cursor page using a monotonic _id comparison per
// collection. The page is re-sorted within itself only; global ordering
// across pages follows the same caveat as List above the merge threshold.
func (r *CombinedRepo) Stream(ctx context.Context, sel string, f query.Filters, lastID *bson.ObjectID, limit int, descending bool) (*StreamResult, error) {
	types, err := r.targets(sel)
	if err != nil {
		return nil, err
	}
	filter := query.Build(f)
	if lastID != nil {
		op := "$gt"
		if descending {
			op = "$lt"
		}
		idCond := bson.M{"_id": bson.M{op: *lastID}}
		if len(filter) == 0 {
			filter = idCond
		} else {
			filter = bson.M{"$and": []bson.M{filter, idCond}}
		}
	}
	order := 1
	if descending {
		order = -1
	}

	tagged := make([][]dto.CombinedVoter, len(types))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		i, t := i, t
		col, err := r.stores.Resolve(t)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			defer metrics.ObserveStoreQuery(string(t), "stream")()
			cur, err := col.Find(gctx, filter, options.Find().
				SetSort(bson.D{{Key: "_id", Value: order}}).
				SetLimit(int64(limit)))
			if err != nil {
				return err
			}
			var vs []model.Voter
			if err := cur.All(gctx, &vs); err != nil {
				return err
			}
			tagged[i] = tagVoters(vs, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []dto.CombinedVoter
	for _, part := range tagged {
		rows = append(rows, part...)
	}
	asc := !descending
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return rows[i].ID.Hex() < rows[j].ID.Hex()
		}
		return rows[i].ID.Hex() > rows[j].ID.Hex()
	})

	hasMore := len(rows) > limit
	for _, part := range tagged {
		if len(part) == limit {
			hasMore = true
		}
	}
	res := &StreamResult{HasMore: hasMore}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	res.Rows = rows
	if len(rows) > 0 {
		res.NextCursor = rows[len(rows)-1].ID.Hex()
	}
	if res.Rows == nil {
		res.Rows = []dto.CombinedVoter{}
	}
	return res, nil
}

// analyticsSummary mirrors the $group stage of the analytics pipeline.
type analyticsSummary struct {
	Total      int64 `bson:"total"`
	Male       int64 `bson:"male"`
	Female     int64 `bson:"female"`
	Paid       int64 `bson:"paid"`
	Visited    int64 `bson:"visited"`
	Active     int64 `bson:"active"`
	SurveyDone int64 `bson:"surveyDone"`
}

func flagSum(field string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$" + field, true}}, 1, 0}}}
}

func sexSum(value string) bson.M {
	lowered := bson.M{"$toLower": bson.M{"$ifNull": bson.A{"$sex", ""}}}
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{lowered, value}}, 1, 0}}}
}

// aggregateAnalytics computes one collection's aggregate over the complete
// filtered set. Never bounded by the listing read cap: what you count is
// decoupled from what you see.
func aggregateAnalytics(ctx context.Context, col *mongo.Collection, filter bson.M) (dto.VoterAnalytics, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$facet", Value: bson.M{
			"summary": bson.A{bson.M{"$group": bson.M{
				"_id":        nil,
				"total":      bson.M{"$sum": 1},
				"male":       sexSum("male"),
				"female":     sexSum("female"),
				"paid":       flagSum("isPaid"),
				"visited":    flagSum("isVisited"),
				"active":     flagSum("isActive"),
				"surveyDone": flagSum("surveyDone"),
			}}},
			"byPno": bson.A{bson.M{"$group": bson.M{
				"_id":   bson.M{"$ifNull": bson.A{"$pno", "unknown"}},
				"count": bson.M{"$sum": 1},
			}}},
		}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return dto.VoterAnalytics{}, err
	}
	var facets []struct {
		Summary []analyticsSummary `bson:"summary"`
		ByPno   []struct {
			Pno   string `bson:"_id"`
			Count int64  `bson:"count"`
		} `bson:"byPno"`
	}
	if err := cur.All(ctx, &facets); err != nil {
		return dto.VoterAnalytics{}, err
	}

	out := dto.VoterAnalytics{}
	if len(facets) == 0 {
		return out, nil
	}
	if len(facets[0].Summary) > 0 {
		s := facets[0].Summary[0]
		out.Total = s.Total
		out.Male = s.Male
		out.Female = s.Female
		out.OtherSex = s.Total - s.Male - s.Female
		out.Paid = s.Paid
		out.Unpaid = s.Total - s.Paid
		out.Visited = s.Visited
		out.NotVisited = s.Total - s.Visited
		out.Active = s.Active
		out.Inactive = s.Total - s.Active
		out.SurveyDone = s.SurveyDone
	}
	if len(facets[0].ByPno) > 0 {
		out.ByPno = make(map[string]int64, len(facets[0].ByPno))
		for _, p := range facets[0].ByPno {
			out.ByPno[p.Pno] = p.Count
		}
	}
	return out, nil
}
