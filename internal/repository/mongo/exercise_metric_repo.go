package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

const exerciseMetricCollectionName = "exercise_metrics"

// exerciseMetricMutableKeys are the document keys a save may overwrite.
var exerciseMetricMutableKeys = []string{"name", "relation"}

// mongoExerciseMetricRepository implements repository.ExerciseMetricRepository.
type mongoExerciseMetricRepository struct {
	store *documentStore[domain.ExerciseMetricPrimitives, *domain.ExerciseMetric]
}

func NewMongoExerciseMetricRepository(db *mongo.Database) repository.ExerciseMetricRepository {
	return &mongoExerciseMetricRepository{
		store: newDocumentStore(db.Collection(exerciseMetricCollectionName), domain.ExerciseMetricFromPrimitives, exerciseMetricMutableKeys...),
	}
}

func (r *mongoExerciseMetricRepository) Save(ctx context.Context, metric *domain.ExerciseMetric) error {
	doc := metric.ToPrimitives()
	return r.store.save(ctx, doc.ID, doc)
}

func (r *mongoExerciseMetricRepository) Search(ctx context.Context, id string) (*domain.ExerciseMetric, error) {
	return r.store.findByID(ctx, id)
}

// SearchAll returns the whole catalogue ordered by name.
func (r *mongoExerciseMetricRepository) SearchAll(ctx context.Context) ([]*domain.ExerciseMetric, error) {
	return r.store.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

// EnsureExerciseMetricIndexes creates necessary indexes for the metric catalogue.
func EnsureExerciseMetricIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	})
}
