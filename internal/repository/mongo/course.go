package mongo

import (
	"context"

	domainCourse "github.com/courseforge/courseforge/internal/domain/course"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const courseCollection = "courses"

type courseRepository struct {
	db     *mongodb.DB
	logger *logger.Logger
}

func NewCourseRepository(db *mongodb.DB, logger *logger.Logger) domainCourse.Repository {
	return &courseRepository{db: db, logger: logger}
}

func (r *courseRepository) collection() *mongo.Collection {
	return r.db.Collection(courseCollection)
}

func (r *courseRepository) Create(ctx context.Context, c *domainCourse.Course) error {
	r.logger.Debugw("creating course", "course_id", c.ID, "user_id", c.UserID)

	if _, err := r.collection().InsertOne(ctx, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create course").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *courseRepository) Get(ctx context.Context, id string) (*domainCourse.Course, error) {
	var c domainCourse.Course
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("course not found").
				WithHintf("Course with ID %s was not found", id).
				WithReportableDetails(map[string]interface{}{
					"course_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get course").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *courseRepository) ListByUser(ctx context.Context, userID string) ([]*domainCourse.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list courses").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var courses []*domainCourse.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode courses").
			Mark(ierr.ErrDatabase)
	}
	return courses, nil
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count courses").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *courseRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.logger.Debugw("deleting courses for user", "user_id", userID)

	if _, err := r.collection().DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete courses").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
