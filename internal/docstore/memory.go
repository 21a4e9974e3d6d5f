package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// MemoryStore is the in-memory Store implementation. It is non-durable by
// design: state lives for the process lifetime only. All operations are safe
// for concurrent use; the RWMutex serializes writers so that at most one
// logical operation mutates a document at a time.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string]*memoryEntry
	lastID uint64
	seq    uint64
	logger zerolog.Logger
}

// memoryEntry tracks insertion order alongside the document so that listings
// stay deterministic when createdAt timestamps collide.
type memoryEntry struct {
	doc Document
	seq uint64
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore(logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		docs:   make(map[string]*memoryEntry),
		logger: logger,
	}
}

// Create assigns a monotonic id and an initial revision, stamps timestamps
// and stores a defensive copy of doc.
func (s *MemoryStore) Create(ctx context.Context, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	s.seq++

	stored := CopyDocument(doc)
	now := Now()
	stored[FieldID] = fmt.Sprintf("doc_%d", s.lastID)
	stored[FieldRevision] = "1-" + uuid.NewString()
	stored[FieldCreatedAt] = now
	stored[FieldUpdatedAt] = now

	s.docs[stored[FieldID].(string)] = &memoryEntry{doc: stored, seq: s.seq}

	s.logger.Debug().
		Str("id", stored[FieldID].(string)).
		Str("kind", kindOf(stored)).
		Msg("Document created")

	return CopyDocument(stored), nil
}

// Read returns the document with the given id, or (nil, nil) when absent.
func (s *MemoryStore) Read(ctx context.Context, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return CopyDocument(entry.doc), nil
}

// Update merges patch over the stored document, bumping revision and
// updatedAt. A non-empty stale expectedRev fails with ErrConflict.
func (s *MemoryStore) Update(ctx context.Context, id string, patch Document, expectedRev string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.docs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", id))
	}

	currentRev, _ := entry.doc[FieldRevision].(string)
	if expectedRev != "" && expectedRev != currentRev {
		return nil, apperrors.NewConflictError(fmt.Sprintf("document %s: revision %s is stale", id, expectedRev))
	}

	merged := mergePatch(entry.doc, patch)
	merged[FieldRevision] = NextRevision(currentRev)
	merged[FieldUpdatedAt] = Now()

	entry.doc = merged

	s.logger.Debug().
		Str("id", id).
		Str("kind", kindOf(merged)).
		Msg("Document updated")

	return CopyDocument(merged), nil
}

// Delete removes the document and reports whether it existed. Deleting a
// missing id is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return false, nil
	}
	delete(s.docs, id)

	s.logger.Debug().Str("id", id).Msg("Document deleted")
	return true, nil
}

// Find scans all documents and returns those matching q, sorted and windowed
// per the query. Cost is O(n) in the total document count.
func (s *MemoryStore) Find(ctx context.Context, q Query) ([]Document, error) {
	// The lock is held through sorting and copying: Update swaps entry.doc
	// under the write lock, so reading it after RUnlock would race.
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*memoryEntry, 0)
	for _, entry := range s.docs {
		if q.Matches(entry.doc) {
			matched = append(matched, entry)
		}
	}

	if q.SortByCreatedAtDesc {
		sort.Slice(matched, func(i, j int) bool {
			ci, _ := matched[i].doc[FieldCreatedAt].(string)
			cj, _ := matched[j].doc[FieldCreatedAt].(string)
			if ci != cj {
				return ci > cj
			}
			return matched[i].seq > matched[j].seq
		})
	} else {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].seq < matched[j].seq
		})
	}

	matched = window(matched, q.Skip, q.Limit)

	results := make([]Document, 0, len(matched))
	for _, entry := range matched {
		results = append(results, CopyDocument(entry.doc))
	}
	return results, nil
}

// Len returns the number of stored documents
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func window(entries []*memoryEntry, skip, limit int) []*memoryEntry {
	if skip > 0 {
		if skip >= len(entries) {
			return nil
		}
		entries = entries[skip:]
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

func kindOf(doc Document) string {
	kind, _ := doc[FieldKind].(string)
	return kind
}
