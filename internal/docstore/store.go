// Package docstore provides keyed persistence for kind-tagged JSON-like
// documents behind a small pluggable contract. The in-memory implementation is
// the development/test mock; the mongo and postgres implementations conform to
// the same contract and are selected by configuration.
package docstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is a JSON-like record stored by a Store. Field values are the
// types encoding/json produces: string, float64, bool, nil, []interface{}
// and map[string]interface{}.
type Document map[string]interface{}

// Reserved envelope fields assigned by the store.
const (
	FieldID        = "id"
	FieldKind      = "kind"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldRevision  = "revision"
)

// Query describes a predicate over documents of one kind. All clauses are
// AND-combined; Or holds alternative branches of which at least one must
// match. Field names may use dotted paths into embedded objects
// (e.g. "author.id").
type Query struct {
	// Kind restricts the scan to one entity kind. Required.
	Kind string

	// Equals matches exact field values.
	Equals map[string]interface{}

	// ArrayContains matches documents whose named array field contains the
	// given element.
	ArrayContains map[string]string

	// Regex matches documents whose named field (or any element of an array
	// field) matches the pattern, compiled case-insensitively. Callers quote
	// user input to get plain substring semantics.
	Regex map[string]string

	// Or holds alternative predicate branches (field clauses only; Kind,
	// sorting and paging of nested queries are ignored).
	Or []Query

	// SortByCreatedAtDesc orders results newest-first.
	SortByCreatedAtDesc bool

	// Skip and Limit window the result. Limit <= 0 means no limit.
	Skip  int
	Limit int
}

// Store is the persistence contract consumed by the entity services.
type Store interface {
	// Create assigns a fresh id and revision, stamps timestamps, stores a
	// copy of doc and returns the stored record.
	Create(ctx context.Context, doc Document) (Document, error)

	// Read returns the document with the given id, or (nil, nil) when absent.
	Read(ctx context.Context, id string) (Document, error)

	// Update merges patch over the existing document, refreshes revision and
	// updatedAt and returns the merged record. It fails with ErrNotFound when
	// the id is absent. A non-empty expectedRev enables check-and-set: a
	// stale value fails with ErrConflict. An empty expectedRev keeps
	// last-writer-wins semantics.
	Update(ctx context.Context, id string, patch Document, expectedRev string) (Document, error)

	// Delete removes the document and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Find runs a linear scan returning the documents matching q.
	Find(ctx context.Context, q Query) ([]Document, error)
}

// timestampFormat is RFC 3339 with fixed-width nanoseconds so that stored
// timestamps sort correctly as plain strings.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Now returns the current UTC time formatted as a store timestamp.
func Now() string {
	return time.Now().UTC().Format(timestampFormat)
}

// ParseTimestamp parses a store timestamp, accepting any RFC 3339 variant.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

// NextRevision derives the successor of a revision marker. Markers have the
// shape "<generation>-<token>"; the generation increments on every write.
func NextRevision(current string) string {
	generation := 0
	if idx := strings.IndexByte(current, '-'); idx > 0 {
		if n, err := strconv.Atoi(current[:idx]); err == nil {
			generation = n
		}
	}
	return fmt.Sprintf("%d-%s", generation+1, uuid.NewString())
}

// CopyDocument returns a deep copy of doc so callers cannot alias stored state.
func CopyDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	return copyValue(doc).(Document)
}

func copyValue(v interface{}) interface{} {
	switch value := v.(type) {
	case Document:
		out := make(Document, len(value))
		for k, elem := range value {
			out[k] = copyValue(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, elem := range value {
			out[k] = copyValue(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, elem := range value {
			out[i] = copyValue(elem)
		}
		return out
	case []string:
		out := make([]interface{}, len(value))
		for i, elem := range value {
			out[i] = elem
		}
		return out
	default:
		return value
	}
}

// mergePatch merges patch fields over existing, skipping envelope fields the
// store owns. The merge is shallow, matching partial-field update semantics.
func mergePatch(existing, patch Document) Document {
	merged := CopyDocument(existing)
	for k, v := range patch {
		switch k {
		case FieldID, FieldKind, FieldCreatedAt, FieldRevision:
			continue
		}
		merged[k] = copyValue(v)
	}
	return merged
}
