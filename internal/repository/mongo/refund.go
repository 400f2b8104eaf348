package mongo

import (
	"context"
	"time"

	domainRefund "github.com/courseforge/courseforge/internal/domain/refund"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	"github.com/courseforge/courseforge/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const refundCollection = "refunds"

type refundRepository struct {
	db     *mongodb.DB
	logger *logger.Logger
}

func NewRefundRepository(db *mongodb.DB, logger *logger.Logger) domainRefund.Repository {
	return &refundRepository{db: db, logger: logger}
}

func (r *refundRepository) collection() *mongo.Collection {
	return r.db.Collection(refundCollection)
}

func (r *refundRepository) Create(ctx context.Context, refund *domainRefund.Refund) error {
	r.logger.Debugw("creating refund",
		"refund_id", refund.ID,
		"payment_id", refund.PaymentID)

	if _, err := r.collection().InsertOne(ctx, refund); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create refund").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *refundRepository) Get(ctx context.Context, id string) (*domainRefund.Refund, error) {
	var refund domainRefund.Refund
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&refund)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("refund not found").
				WithHintf("Refund with ID %s was not found", id).
				WithReportableDetails(map[string]interface{}{
					"refund_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get refund").
			Mark(ierr.ErrDatabase)
	}
	return &refund, nil
}

func (r *refundRepository) Update(ctx context.Context, refund *domainRefund.Refund) error {
	refund.UpdatedAt = time.Now().UTC()
	refund.UpdatedBy = types.GetUserID(ctx)

	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": refund.ID}, refund)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update refund").
			Mark(ierr.ErrDatabase)
	}
	if res.MatchedCount == 0 {
		return ierr.NewError("refund not found").
			WithHintf("Refund with ID %s was not found", refund.ID).
			WithReportableDetails(map[string]interface{}{
				"refund_id": refund.ID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *refundRepository) List(ctx context.Context, filter *types.RefundFilter) ([]*domainRefund.Refund, error) {
	query := bson.M{}
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
		if filter.RefundStatus != nil {
			query["refund_status"] = *filter.RefundStatus
		}
		if filter.Email != nil {
			query["email"] = *filter.Email
		}
	}

	cursor, err := r.collection().Find(ctx, query, listOpts(qf))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list refunds").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var refunds []*domainRefund.Refund
	if err := cursor.All(ctx, &refunds); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode refunds").
			Mark(ierr.ErrDatabase)
	}
	return refunds, nil
}

func (r *refundRepository) BulkUpdateStatus(ctx context.Context, ids []string, status types.RefundStatus, notes string) error {
	if len(ids) == 0 {
		return nil
	}

	r.logger.Debugw("bulk updating refund status",
		"refund_count", len(ids),
		"refund_status", status)

	update := bson.M{"$set": bson.M{
		"refund_status": status,
		"notes":         notes,
		"updated_at":    time.Now().UTC(),
		"updated_by":    types.GetUserID(ctx),
	}}
	_, err := r.collection().UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, update)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update refunds").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *refundRepository) CountByStatus(ctx context.Context) (map[types.RefundStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$refund_status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to count refunds").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status types.RefundStatus `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode refund counts").
			Mark(ierr.ErrDatabase)
	}

	counts := make(map[types.RefundStatus]int64, len(results))
	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}
