package mongo

import (
	"context"
	"time"

	domainUser "github.com/courseforge/courseforge/internal/domain/user"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	"github.com/courseforge/courseforge/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const userCollection = "users"

type userRepository struct {
	db     *mongodb.DB
	logger *logger.Logger
}

func NewUserRepository(db *mongodb.DB, logger *logger.Logger) domainUser.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) collection() *mongo.Collection {
	return r.db.Collection(userCollection)
}

func (r *userRepository) Create(ctx context.Context, user *domainUser.User) error {
	r.logger.Debugw("creating user", "user_id", user.ID, "email", user.Email)

	if _, err := r.collection().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				WithReportableDetails(map[string]interface{}{
					"email": user.Email,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domainUser.User, error) {
	var user domainUser.User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("user not found").
				WithHintf("User with ID %s was not found", id).
				WithReportableDetails(map[string]interface{}{
					"user_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	var user domainUser.User
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("user not found").
				WithHintf("User with email %s was not found", email).
				WithReportableDetails(map[string]interface{}{
					"email": email,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*domainUser.User, error) {
	cursor, err := r.collection().Find(ctx, bson.M{}, listOpts(filter))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var users []*domainUser.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count users").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *userRepository) UpdatePlanTier(ctx context.Context, id string, tier types.PlanTier) error {
	r.logger.Debugw("updating user plan tier", "user_id", id, "plan_tier", tier)

	update := bson.M{"$set": bson.M{
		"plan_tier":  tier,
		"updated_at": time.Now().UTC(),
		"updated_by": types.GetUserID(ctx),
	}}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update user plan").
			Mark(ierr.ErrDatabase)
	}
	if res.MatchedCount == 0 {
		return ierr.NewError("user not found").
			WithHintf("User with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"user_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting user", "user_id", id)

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete user").
			Mark(ierr.ErrDatabase)
	}
	if res.DeletedCount == 0 {
		return ierr.NewError("user not found").
			WithHintf("User with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"user_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
