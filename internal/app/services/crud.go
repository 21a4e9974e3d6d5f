package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/docstore"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// crudService carries the storage plumbing shared by every entity service:
// encoding an entity into a store document, stamping the kind, and decoding
// results back. Entity-specific defaults and rules live in the services that
// embed it.
type crudService[T any] struct {
	store  docstore.Store
	kind   models.Kind
	logger zerolog.Logger
}

func newCrudService[T any](store docstore.Store, kind models.Kind, logger zerolog.Logger) crudService[T] {
	return crudService[T]{store: store, kind: kind, logger: logger}
}

// toDocument converts an entity into its store representation through a JSON
// round trip, dropping the envelope fields the store owns.
func toDocument(entity interface{}) (docstore.Document, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	delete(doc, docstore.FieldID)
	delete(doc, docstore.FieldCreatedAt)
	delete(doc, docstore.FieldUpdatedAt)
	delete(doc, docstore.FieldRevision)
	return doc, nil
}

// decode converts a store document back into the entity type.
func decode[T any](doc docstore.Document) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	entity := new(T)
	if err := json.Unmarshal(raw, entity); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return entity, nil
}

func decodeAll[T any](docs []docstore.Document) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		entity, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// create stores the entity under the service's kind and returns the stored
// record with its assigned id, timestamps and revision.
func (s *crudService[T]) create(ctx context.Context, entity *T) (*T, error) {
	doc, err := toDocument(entity)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "failed to encode record")
	}
	doc[docstore.FieldKind] = string(s.kind)

	stored, err := s.store.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	return decode[T](stored)
}

// getByID returns the entity, or (nil, nil) when the id does not exist or
// belongs to a different kind.
func (s *crudService[T]) getByID(ctx context.Context, id string) (*T, error) {
	doc, err := s.store.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc[docstore.FieldKind] != string(s.kind) {
		return nil, nil
	}
	return decode[T](doc)
}

// list runs q restricted to the service's kind, newest first.
func (s *crudService[T]) list(ctx context.Context, q docstore.Query) ([]*T, error) {
	q.Kind = string(s.kind)
	q.SortByCreatedAtDesc = true

	docs, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](docs)
}

// update applies a partial patch. An empty expectedRev keeps last-writer-wins
// semantics; a non-empty one makes the write a check-and-set.
func (s *crudService[T]) update(ctx context.Context, id string, patch docstore.Document, expectedRev string) (*T, error) {
	existing, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", s.kind, id))
	}

	updated, err := s.store.Update(ctx, id, patch, expectedRev)
	if err != nil {
		return nil, err
	}
	return decode[T](updated)
}

// delete removes the entity, failing with a not-found error when absent.
func (s *crudService[T]) delete(ctx context.Context, id string) error {
	existing, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", s.kind, id))
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", s.kind, id))
	}
	return nil
}

// window applies skip/limit to a query.
func window(q docstore.Query, skip, limit int) docstore.Query {
	q.Skip = skip
	q.Limit = limit
	return q
}
