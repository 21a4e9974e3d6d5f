package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// MongoStore implements Store on a single kind-tagged MongoDB collection.
// Documents keep the same envelope fields as the memory store; _id mirrors
// the id field.
type MongoStore struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoStore creates a MongoStore over the given collection
func NewMongoStore(coll *mongo.Collection, logger zerolog.Logger) *MongoStore {
	return &MongoStore{coll: coll, logger: logger}
}

func (s *MongoStore) Create(ctx context.Context, doc Document) (Document, error) {
	stored := CopyDocument(doc)
	now := Now()
	id := "doc_" + uuid.NewString()
	stored[FieldID] = id
	stored[FieldRevision] = "1-" + uuid.NewString()
	stored[FieldCreatedAt] = now
	stored[FieldUpdatedAt] = now

	record := bson.M{"_id": id}
	for k, v := range stored {
		record[k] = v
	}

	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		return nil, apperrors.NewStorageError(err, fmt.Sprintf("failed to insert document %s", id))
	}
	return stored, nil
}

func (s *MongoStore) Read(ctx context.Context, id string) (Document, error) {
	var record bson.M
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(err, fmt.Sprintf("failed to read document %s", id))
	}
	return fromBSON(record), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, patch Document, expectedRev string) (Document, error) {
	existing, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", id))
	}

	currentRev, _ := existing[FieldRevision].(string)
	if expectedRev != "" && expectedRev != currentRev {
		return nil, apperrors.NewConflictError(fmt.Sprintf("document %s: revision %s is stale", id, expectedRev))
	}

	set := bson.M{
		FieldRevision:  NextRevision(currentRev),
		FieldUpdatedAt: Now(),
	}
	for k, v := range patch {
		switch k {
		case FieldID, FieldKind, FieldCreatedAt, FieldRevision:
			continue
		}
		set[k] = v
	}

	// The revision in the filter keeps the check-and-set atomic even though
	// the existence check above already ran.
	filter := bson.M{"_id": id, FieldRevision: currentRev}
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var record bson.M
	err = s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("document %s was modified concurrently", id))
	}
	if err != nil {
		return nil, apperrors.NewStorageError(err, fmt.Sprintf("failed to update document %s", id))
	}
	return fromBSON(record), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, apperrors.NewStorageError(err, fmt.Sprintf("failed to delete document %s", id))
	}
	return result.DeletedCount > 0, nil
}

func (s *MongoStore) Find(ctx context.Context, q Query) ([]Document, error) {
	filter := buildMongoFilter(q)

	opts := options.Find()
	if q.SortByCreatedAtDesc {
		opts.SetSort(bson.D{{Key: FieldCreatedAt, Value: -1}})
	}
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "failed to query documents")
	}
	defer cursor.Close(ctx)

	var results []Document
	for cursor.Next(ctx) {
		var record bson.M
		if err := cursor.Decode(&record); err != nil {
			return nil, apperrors.NewStorageError(err, "failed to decode document")
		}
		results = append(results, fromBSON(record))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "document cursor failed")
	}
	return results, nil
}

func buildMongoFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Kind != "" {
		filter[FieldKind] = q.Kind
	}
	applyMongoClauses(filter, q)

	if len(q.Or) > 0 {
		branches := make(bson.A, 0, len(q.Or))
		for _, branch := range q.Or {
			sub := bson.M{}
			applyMongoClauses(sub, branch)
			branches = append(branches, sub)
		}
		filter["$or"] = branches
	}
	return filter
}

func applyMongoClauses(filter bson.M, q Query) {
	for field, value := range q.Equals {
		filter[field] = value
	}
	for field, value := range q.ArrayContains {
		filter[field] = bson.M{"$elemMatch": bson.M{"$eq": value}}
	}
	for field, pattern := range q.Regex {
		filter[field] = primitive.Regex{Pattern: pattern, Options: "i"}
	}
}

// fromBSON converts a decoded record to a Document, dropping the _id mirror.
func fromBSON(record bson.M) Document {
	doc := make(Document, len(record))
	for k, v := range record {
		if k == "_id" {
			continue
		}
		doc[k] = fromBSONValue(v)
	}
	return doc
}

func fromBSONValue(v interface{}) interface{} {
	switch value := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(value))
		for k, elem := range value {
			out[k] = fromBSONValue(elem)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(value))
		for _, elem := range value {
			out[elem.Key] = fromBSONValue(elem.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(value))
		for i, elem := range value {
			out[i] = fromBSONValue(elem)
		}
		return out
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return value
	}
}
