package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// Aggregates are stored as their primitives; the logical "id" lives in _id.
var aggregateFieldMapping = FieldMapping{"id": "_id"}

// newestFirst is the default ordering for per-user listings.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// documentStore holds the collection plumbing shared by the aggregate
// repositories. P is the primitives document, A the aggregate.
type documentStore[P any, A any] struct {
	collection     *mongo.Collection
	converter      *CriteriaConverter
	fromPrimitives func(P) (A, error)
	mutable        map[string]struct{}
}

// newDocumentStore takes the keys that a save may overwrite on an existing
// document. Every other key is only written on insert.
func newDocumentStore[P any, A any](collection *mongo.Collection, fromPrimitives func(P) (A, error), mutableKeys ...string) *documentStore[P, A] {
	var document P
	mutable := make(map[string]struct{}, len(mutableKeys))
	for _, key := range mutableKeys {
		mutable[key] = struct{}{}
	}
	return &documentStore[P, A]{
		collection:     collection,
		converter:      NewCriteriaConverter(document, aggregateFieldMapping),
		fromPrimitives: fromPrimitives,
		mutable:        mutable,
	}
}

// save inserts the document or updates the mutable keys of the existing one.
func (s *documentStore[P, A]) save(ctx context.Context, id string, document P) error {
	update, err := s.upsertDocument(document)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", s.collection.Name(), id, err)
	}
	_, err = s.collection.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save %s %s: %w", s.collection.Name(), id, err)
	}
	return nil
}

// upsertDocument splits document into $set (mutable keys) and $setOnInsert
// (everything else but _id, which the filter supplies).
func (s *documentStore[P, A]) upsertDocument(document P) (bson.D, error) {
	raw, err := bson.Marshal(document)
	if err != nil {
		return nil, err
	}
	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	set, onInsert := bson.D{}, bson.D{}
	for _, field := range fields {
		switch _, ok := s.mutable[field.Key]; {
		case field.Key == "_id":
		case ok:
			set = append(set, field)
		default:
			onInsert = append(onInsert, field)
		}
	}

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(onInsert) > 0 {
		update = append(update, bson.E{Key: "$setOnInsert", Value: onInsert})
	}
	return update, nil
}

func (s *documentStore[P, A]) findByID(ctx context.Context, id string) (A, error) {
	var zero A
	var document P
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, repository.ErrNotFound
		}
		return zero, err
	}
	return s.fromPrimitives(document)
}

func (s *documentStore[P, A]) find(ctx context.Context, filter any, opts *options.FindOptions) ([]A, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var documents []P
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, err
	}
	// Check for cursor errors after iteration
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	aggregates := make([]A, 0, len(documents))
	for _, document := range documents {
		aggregate, err := s.fromPrimitives(document)
		if err != nil {
			return nil, fmt.Errorf("decode %s document: %w", s.collection.Name(), err)
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}

func (s *documentStore[P, A]) findByUserID(ctx context.Context, userID string) ([]A, error) {
	return s.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
}

func (s *documentStore[P, A]) findByCriteria(ctx context.Context, c criteria.Criteria) ([]A, error) {
	q, err := s.converter.Convert(c)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, q.Filter, q.FindOptions())
}

// countByCriteria ignores pagination.
func (s *documentStore[P, A]) countByCriteria(ctx context.Context, c criteria.Criteria) (int64, error) {
	q, err := s.converter.Convert(c)
	if err != nil {
		return 0, err
	}
	return s.collection.CountDocuments(ctx, q.Filter)
}

func (s *documentStore[P, A]) delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CollectionConverter returns the criteria converter used by the repository
// of the named aggregate collection.
func CollectionConverter(collection string) (*CriteriaConverter, error) {
	switch collection {
	case exerciseCollectionName:
		return NewCriteriaConverter(domain.ExercisePrimitives{}, aggregateFieldMapping), nil
	case exerciseMetricCollectionName:
		return NewCriteriaConverter(domain.ExerciseMetricPrimitives{}, aggregateFieldMapping), nil
	case routineCollectionName:
		return NewCriteriaConverter(domain.RoutinePrimitives{}, aggregateFieldMapping), nil
	case workoutCollectionName:
		return NewCriteriaConverter(domain.WorkoutPrimitives{}, aggregateFieldMapping), nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}
