package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

func TestCreateCommunityDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewCommunityService(testStore(), zerolog.Nop())

	created, err := svc.CreateCommunity(ctx, &dto.CreateCommunityRequest{
		Name:        "Go Enthusiasts",
		Description: "All things Go",
		Topics:      []string{"go", "go", "concurrency"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Members, "creator counts as the first member")
	assert.Equal(t, []string{"go", "concurrency"}, created.Topics)
}

func TestCreateCommunityValidation(t *testing.T) {
	svc := NewCommunityService(testStore(), zerolog.Nop())
	_, err := svc.CreateCommunity(context.Background(), &dto.CreateCommunityRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAddTopicSetSemantics(t *testing.T) {
	ctx := context.Background()
	svc := NewCommunityService(testStore(), zerolog.Nop())

	created, err := svc.CreateCommunity(ctx, &dto.CreateCommunityRequest{
		Name: "Robotics", Description: "d", Topics: []string{"ros"},
	})
	require.NoError(t, err)

	withNew, err := svc.AddTopic(ctx, created.ID, "vision")
	require.NoError(t, err)
	assert.Equal(t, []string{"ros", "vision"}, withNew.Topics)

	// adding an existing topic changes nothing, not even the revision
	same, err := svc.AddTopic(ctx, created.ID, "vision")
	require.NoError(t, err)
	assert.Equal(t, []string{"ros", "vision"}, same.Topics)
	assert.Equal(t, withNew.Revision, same.Revision)

	removed, err := svc.RemoveTopic(ctx, created.ID, "ros")
	require.NoError(t, err)
	assert.Equal(t, []string{"vision"}, removed.Topics)

	// removing an absent topic is a no-op
	unchanged, err := svc.RemoveTopic(ctx, created.ID, "ros")
	require.NoError(t, err)
	assert.Equal(t, removed.Revision, unchanged.Revision)
}

func TestAddTopicMissingCommunity(t *testing.T) {
	svc := NewCommunityService(testStore(), zerolog.Nop())
	_, err := svc.AddTopic(context.Background(), "doc_404", "go")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateMembers(t *testing.T) {
	ctx := context.Background()
	svc := NewCommunityService(testStore(), zerolog.Nop())

	created, err := svc.CreateCommunity(ctx, &dto.CreateCommunityRequest{Name: "Chess", Description: "d"})
	require.NoError(t, err)

	updated, err := svc.UpdateMembers(ctx, created.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Members)

	_, err = svc.UpdateMembers(ctx, created.ID, -1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSearchByNameAndTopic(t *testing.T) {
	ctx := context.Background()
	svc := NewCommunityService(testStore(), zerolog.Nop())

	_, err := svc.CreateCommunity(ctx, &dto.CreateCommunityRequest{
		Name: "Machine Learning Club", Description: "d", Topics: []string{"ml"},
	})
	require.NoError(t, err)
	_, err = svc.CreateCommunity(ctx, &dto.CreateCommunityRequest{
		Name: "Film Society", Description: "d", Topics: []string{"cinema"},
	})
	require.NoError(t, err)

	hits, err := svc.SearchByName(ctx, "learning", 0, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Machine Learning Club", hits[0].Name)

	byTopic, err := svc.GetCommunitiesByTopic(ctx, "cinema", 0, 0)
	require.NoError(t, err)
	require.Len(t, byTopic, 1)
	assert.Equal(t, "Film Society", byTopic[0].Name)
}
