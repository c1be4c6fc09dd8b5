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

const workoutCollectionName = "workouts"

// workoutMutableKeys are the document keys a save may overwrite.
var workoutMutableKeys = []string{"name", "finishedAt", "notes", "blocks", "updatedAt"}

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	store *documentStore[domain.WorkoutPrimitives, *domain.Workout]
}

// NewMongoWorkoutRepository creates a new Workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		store: newDocumentStore(db.Collection(workoutCollectionName), domain.WorkoutFromPrimitives, workoutMutableKeys...),
	}
}

func (r *mongoWorkoutRepository) Save(ctx context.Context, workout *domain.Workout) error {
	doc := workout.ToPrimitives()
	return r.store.save(ctx, doc.ID, doc)
}

func (r *mongoWorkoutRepository) Search(ctx context.Context, id string) (*domain.Workout, error) {
	return r.store.findByID(ctx, id)
}

func (r *mongoWorkoutRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Workout, error) {
	return r.store.findByUserID(ctx, userID)
}

func (r *mongoWorkoutRepository) SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Workout, error) {
	return r.store.findByCriteria(ctx, c)
}

func (r *mongoWorkoutRepository) CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	return r.store.countByCriteria(ctx, c)
}

// Delete removes a workout. Used when an in-progress workout is discarded.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

// EnsureWorkoutIndexes creates necessary indexes for the workouts collection.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "routineId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}
