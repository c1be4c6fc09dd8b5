package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

const exerciseCollectionName = "exercises"

// exerciseMutableKeys are the document keys a save may overwrite.
var exerciseMutableKeys = []string{"name", "description", "targetMuscles", "defaultMetrics", "updatedAt"}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	store *documentStore[domain.ExercisePrimitives, *domain.Exercise]
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		store: newDocumentStore(db.Collection(exerciseCollectionName), domain.ExerciseFromPrimitives, exerciseMutableKeys...),
	}
}

// Save inserts the exercise or replaces the stored one with the same id.
func (r *mongoExerciseRepository) Save(ctx context.Context, exercise *domain.Exercise) error {
	doc := exercise.ToPrimitives()
	return r.store.save(ctx, doc.ID, doc)
}

// Search retrieves an exercise by its ID.
func (r *mongoExerciseRepository) Search(ctx context.Context, id string) (*domain.Exercise, error) {
	return r.store.findByID(ctx, id)
}

// SearchByUserID returns the custom exercises of a user, newest first.
// System exercises have no userId and are never part of the result.
func (r *mongoExerciseRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Exercise, error) {
	return r.store.findByUserID(ctx, userID)
}

func (r *mongoExerciseRepository) SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Exercise, error) {
	return r.store.findByCriteria(ctx, c)
}

func (r *mongoExerciseRepository) CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	return r.store.countByCriteria(ctx, c)
}

// Delete removes an exercise by its ID.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// Custom exercises of a user; system exercises have a null userId
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	})
}
