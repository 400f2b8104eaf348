package mongo

import (
	"context"

	domainAdmin "github.com/courseforge/courseforge/internal/domain/admin"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const adminCollection = "admins"

type adminRepository struct {
	db     *mongodb.DB
	logger *logger.Logger
}

func NewAdminRepository(db *mongodb.DB, logger *logger.Logger) domainAdmin.Repository {
	return &adminRepository{db: db, logger: logger}
}

func (r *adminRepository) collection() *mongo.Collection {
	return r.db.Collection(adminCollection)
}

func (r *adminRepository) Create(ctx context.Context, admin *domainAdmin.Admin) error {
	r.logger.Debugw("creating admin", "email", admin.Email, "admin_type", admin.AdminType)

	if _, err := r.collection().InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHint("An admin with this email already exists").
				WithReportableDetails(map[string]interface{}{
					"email": admin.Email,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create admin").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domainAdmin.Admin, error) {
	var admin domainAdmin.Admin
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("admin not found").
				WithHintf("Admin with email %s was not found", email).
				WithReportableDetails(map[string]interface{}{
					"email": email,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get admin").
			Mark(ierr.ErrDatabase)
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]*domainAdmin.Admin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list admins").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var admins []*domainAdmin.Admin
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode admins").
			Mark(ierr.ErrDatabase)
	}
	return admins, nil
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count admins").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *adminRepository) DeleteByEmail(ctx context.Context, email string) error {
	r.logger.Debugw("deleting admin", "email", email)

	res, err := r.collection().DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete admin").
			Mark(ierr.ErrDatabase)
	}
	if res.DeletedCount == 0 {
		return ierr.NewError("admin not found").
			WithHintf("Admin with email %s was not found", email).
			WithReportableDetails(map[string]interface{}{
				"email": email,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
