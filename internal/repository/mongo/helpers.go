package mongo

import (
	"github.com/courseforge/courseforge/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// listOpts translates a query filter into find options. Sort defaults to
// newest-first; pagination is skipped entirely for unlimited filters.
func listOpts(f *types.QueryFilter) *options.FindOptionsBuilder {
	opts := options.Find().SetSort(sortSpec(f))
	if !f.IsUnlimited() {
		opts = opts.
			SetLimit(int64(f.GetLimit())).
			SetSkip(int64(f.GetOffset()))
	}
	return opts
}

func sortSpec(f *types.QueryFilter) bson.D {
	dir := -1
	if f.GetOrder() == "asc" {
		dir = 1
	}
	return bson.D{{Key: f.GetSort(), Value: dir}}
}
