package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/courseforge/courseforge/internal/domain/course"
	ierr "github.com/courseforge/courseforge/internal/errors"
)

// InMemoryCourseStore is an in-memory implementation of the Course repository
type InMemoryCourseStore struct {
	mu      sync.Mutex
	courses map[string]*course.Course
}

func NewInMemoryCourseStore() *InMemoryCourseStore {
	return &InMemoryCourseStore{courses: make(map[string]*course.Course)}
}

func (r *InMemoryCourseStore) Create(ctx context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.courses[c.ID] = c
	return nil
}

func (r *InMemoryCourseStore) Get(ctx context.Context, id string) (*course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, ierr.NewError("course not found").
			WithHintf("Course with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (r *InMemoryCourseStore) ListByUser(ctx context.Context, userID string) ([]*course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses := make([]*course.Course, 0)
	for _, c := range r.courses {
		if c.UserID == userID {
			courses = append(courses, c)
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	return courses, nil
}

func (r *InMemoryCourseStore) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.courses)), nil
}

func (r *InMemoryCourseStore) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.courses {
		if c.UserID == userID {
			delete(r.courses, id)
		}
	}
	return nil
}

func (r *InMemoryCourseStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses = make(map[string]*course.Course)
}
