package mongo

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/domain/billingop"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	"github.com/courseforge/courseforge/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const billingOpCollection = "billing_operations"

type billingOpRepository struct {
	db     *mongodb.DB
	logger *logger.Logger
}

func NewBillingOperationRepository(db *mongodb.DB, logger *logger.Logger) billingop.Repository {
	return &billingOpRepository{db: db, logger: logger}
}

func (r *billingOpRepository) collection() *mongo.Collection {
	return r.db.Collection(billingOpCollection)
}

func (r *billingOpRepository) Create(ctx context.Context, op *billingop.BillingOperation) error {
	r.logger.Debugw("creating billing operation",
		"billing_operation_id", op.ID,
		"user_email", op.UserEmail,
		"type", op.Type)

	if _, err := r.collection().InsertOne(ctx, op); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create billing operation").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *billingOpRepository) Get(ctx context.Context, id string) (*billingop.BillingOperation, error) {
	var op billingop.BillingOperation
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&op)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("billing operation not found").
				WithHintf("Billing operation with ID %s was not found", id).
				WithReportableDetails(map[string]interface{}{
					"billing_operation_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get billing operation").
			Mark(ierr.ErrDatabase)
	}
	return &op, nil
}

func (r *billingOpRepository) List(ctx context.Context, filter *types.BillingOperationFilter) ([]*billingop.BillingOperation, error) {
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}

	cursor, err := r.collection().Find(ctx, billingOpQuery(filter), listOpts(qf))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list billing operations").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var ops []*billingop.BillingOperation
	if err := cursor.All(ctx, &ops); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode billing operations").
			Mark(ierr.ErrDatabase)
	}
	return ops, nil
}

func (r *billingOpRepository) Count(ctx context.Context, filter *types.BillingOperationFilter) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, billingOpQuery(filter))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count billing operations").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *billingOpRepository) UpdateStatus(ctx context.Context, id string, status types.BillingOperationStatus) error {
	update := bson.M{"$set": bson.M{
		"billing_status": status,
		"updated_at":     time.Now().UTC(),
		"updated_by":     types.GetUserID(ctx),
	}}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update billing operation").
			Mark(ierr.ErrDatabase)
	}
	if res.MatchedCount == 0 {
		return ierr.NewError("billing operation not found").
			WithHintf("Billing operation with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"billing_operation_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func billingOpQuery(filter *types.BillingOperationFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.UserEmail != nil {
		query["user_email"] = *filter.UserEmail
	}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.Status != nil {
		query["billing_status"] = *filter.Status
	}
	return query
}
