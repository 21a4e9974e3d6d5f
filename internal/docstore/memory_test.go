package docstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/backend/internal/pkg/apperrors"
)

func newTestStore() *MemoryStore {
	return NewMemoryStore(zerolog.Nop())
}

func TestCreateAssignsEnvelope(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	doc, err := store.Create(ctx, Document{FieldKind: "post", "title": "hello"})
	require.NoError(t, err)

	assert.Equal(t, "doc_1", doc[FieldID])
	assert.Equal(t, "post", doc[FieldKind])
	assert.Contains(t, doc[FieldRevision], "1-")
	assert.NotEmpty(t, doc[FieldCreatedAt])
	assert.Equal(t, doc[FieldCreatedAt], doc[FieldUpdatedAt])

	next, err := store.Create(ctx, Document{FieldKind: "post"})
	require.NoError(t, err)
	assert.Equal(t, "doc_2", next[FieldID])
}

func TestReadMissingIsNilNil(t *testing.T) {
	store := newTestStore()
	doc, err := store.Read(context.Background(), "doc_42")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestCreateReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, Document{
		FieldKind: "classroom",
		"name":    "Algorithms",
		"topics":  []interface{}{"sorting", "graphs"},
		"nested":  map[string]interface{}{"a": 1.0},
	})
	require.NoError(t, err)

	read, err := store.Read(ctx, created[FieldID].(string))
	require.NoError(t, err)
	assert.Equal(t, created, read)

	// stored state is isolated from caller mutations
	read["name"] = "mutated"
	again, err := store.Read(ctx, created[FieldID].(string))
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", again["name"])
}

func TestUpdateMergesAndBumpsRevision(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, Document{FieldKind: "post", "title": "a", "likes": 0})
	require.NoError(t, err)
	id := created[FieldID].(string)

	updated, err := store.Update(ctx, id, Document{"likes": 3}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, updated["likes"])
	assert.Equal(t, "a", updated["title"])
	assert.Equal(t, created[FieldCreatedAt], updated[FieldCreatedAt])
	assert.NotEqual(t, created[FieldRevision], updated[FieldRevision])
	assert.Contains(t, updated[FieldRevision], "2-")

	// the envelope cannot be overwritten through a patch
	again, err := store.Update(ctx, id, Document{FieldID: "doc_evil", FieldCreatedAt: "1999"}, "")
	require.NoError(t, err)
	assert.Equal(t, id, again[FieldID])
	assert.Equal(t, created[FieldCreatedAt], again[FieldCreatedAt])
}

func TestUpdateMissingAndConflict(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	_, err := store.Update(ctx, "doc_404", Document{"x": 1}, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	created, err := store.Create(ctx, Document{FieldKind: "post"})
	require.NoError(t, err)
	id := created[FieldID].(string)
	rev := created[FieldRevision].(string)

	// matching revision succeeds
	updated, err := store.Update(ctx, id, Document{"x": 1}, rev)
	require.NoError(t, err)

	// stale revision conflicts
	_, err = store.Update(ctx, id, Document{"x": 2}, rev)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// empty revision is last-writer-wins
	_, err = store.Update(ctx, id, Document{"x": 3}, "")
	require.NoError(t, err)
	_ = updated
}

func TestDeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, Document{FieldKind: "post"})
	require.NoError(t, err)
	id := created[FieldID].(string)

	deleted, err := store.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFindSortAndWindow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, Document{FieldKind: "post", "n": i})
		require.NoError(t, err)
	}
	_, err := store.Create(ctx, Document{FieldKind: "classroom"})
	require.NoError(t, err)

	all, err := store.Find(ctx, Query{Kind: "post", SortByCreatedAtDesc: true})
	require.NoError(t, err)
	require.Len(t, all, 5)
	// newest first, deterministic even when timestamps collide
	assert.Equal(t, 4, all[0]["n"])
	assert.Equal(t, 0, all[4]["n"])

	page, err := store.Find(ctx, Query{Kind: "post", SortByCreatedAtDesc: true, Skip: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0]["n"])
	assert.Equal(t, 1, page[1]["n"])

	empty, err := store.Find(ctx, Query{Kind: "post", Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConcurrentWritersDoNotRace(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.Create(ctx, Document{FieldKind: "post", "likes": 0})
	require.NoError(t, err)
	id := created[FieldID].(string)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Update(ctx, id, Document{"likes": n}, "")
			assert.NoError(t, err)
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Read(ctx, id)
			assert.NoError(t, err)
		}()
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Create(ctx, Document{FieldKind: "post", "n": fmt.Sprint(n)})
			assert.NoError(t, err)
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs, err := store.Find(ctx, Query{Kind: "post", SortByCreatedAtDesc: true})
			assert.NoError(t, err)
			for _, doc := range docs {
				_, hasRev := doc[FieldRevision].(string)
				assert.True(t, hasRev)
			}
		}()
	}
	wg.Wait()

	final, err := store.Read(ctx, id)
	require.NoError(t, err)
	// 20 updates over the initial revision
	assert.Contains(t, final[FieldRevision], "21-")
	assert.Equal(t, 21, store.Len())
}
