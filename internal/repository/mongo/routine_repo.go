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

const routineCollectionName = "routines"

// routineMutableKeys are the document keys a save may overwrite.
var routineMutableKeys = []string{"name", "description", "blocks", "updatedAt"}

// mongoRoutineRepository implements repository.RoutineRepository. Blocks,
// sets and set metrics are embedded in the routine document.
type mongoRoutineRepository struct {
	store *documentStore[domain.RoutinePrimitives, *domain.Routine]
}

// NewMongoRoutineRepository creates a new Routine repository backed by MongoDB.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		store: newDocumentStore(db.Collection(routineCollectionName), domain.RoutineFromPrimitives, routineMutableKeys...),
	}
}

func (r *mongoRoutineRepository) Save(ctx context.Context, routine *domain.Routine) error {
	doc := routine.ToPrimitives()
	return r.store.save(ctx, doc.ID, doc)
}

func (r *mongoRoutineRepository) Search(ctx context.Context, id string) (*domain.Routine, error) {
	return r.store.findByID(ctx, id)
}

func (r *mongoRoutineRepository) SearchByUserID(ctx context.Context, userID string) ([]*domain.Routine, error) {
	return r.store.findByUserID(ctx, userID)
}

func (r *mongoRoutineRepository) SearchByCriteria(ctx context.Context, c criteria.Criteria) ([]*domain.Routine, error) {
	return r.store.findByCriteria(ctx, c)
}

func (r *mongoRoutineRepository) CountByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	return r.store.countByCriteria(ctx, c)
}

func (r *mongoRoutineRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

// EnsureRoutineIndexes creates necessary indexes for the routines collection.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	})
}
