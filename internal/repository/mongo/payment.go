package mongo

import (
	"context"

	domainPayment "github.com/courseforge/courseforge/internal/domain/payment"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const paymentCollection = "payments"

type paymentRepository struct {
	db     *mongodb.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *mongodb.DB, logger *logger.Logger) domainPayment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) collection() *mongo.Collection {
	return r.db.Collection(paymentCollection)
}

func (r *paymentRepository) Create(ctx context.Context, payment *domainPayment.Payment) error {
	r.logger.Debugw("creating payment",
		"payment_id", payment.ID,
		"transaction_id", payment.TransactionID,
		"gateway", payment.Gateway)

	if _, err := r.collection().InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHint("A payment with this transaction already exists").
				WithReportableDetails(map[string]interface{}{
					"transaction_id": payment.TransactionID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*domainPayment.Payment, error) {
	var payment domainPayment.Payment
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("payment not found").
				WithHintf("Payment with ID %s was not found", id).
				WithReportableDetails(map[string]interface{}{
					"payment_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, txnID string) (*domainPayment.Payment, error) {
	var payment domainPayment.Payment
	err := r.collection().FindOne(ctx, bson.M{"transaction_id": txnID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("payment not found").
				WithHintf("Payment with transaction %s was not found", txnID).
				WithReportableDetails(map[string]interface{}{
					"transaction_id": txnID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*domainPayment.Payment, error) {
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	cursor, err := r.collection().Find(ctx, paymentQuery(filter), listOpts(qf))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var payments []*domainPayment.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, paymentQuery(filter))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count payments").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *paymentRepository) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"payment_status": types.PaymentStatusSuccess}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to sum payments").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total decimal.Decimal `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to decode payment sum").
			Mark(ierr.ErrDatabase)
	}
	if len(results) == 0 {
		return decimal.Zero, nil
	}
	return results[0].Total, nil
}

func paymentQuery(filter *types.PaymentFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.Email != nil {
		query["email"] = *filter.Email
	}
	if filter.Gateway != nil {
		query["gateway"] = *filter.Gateway
	}
	if filter.PaymentStatus != nil {
		query["payment_status"] = *filter.PaymentStatus
	}
	return query
}
