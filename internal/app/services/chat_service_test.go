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

func TestSendMessageScoping(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(testStore(), zerolog.Nop())
	sender := testAuthor()

	_, err := svc.SendMessage(ctx, nil, &dto.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)

	_, err = svc.SendMessage(ctx, sender, &dto.SendMessageRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.SendMessage(ctx, sender, &dto.SendMessageRequest{
		Content: "hi", CommunityID: "doc_1", ClassroomID: "doc_2",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	msg, err := svc.SendMessage(ctx, sender, &dto.SendMessageRequest{
		Content: "hello room", CommunityID: "doc_1",
	})
	require.NoError(t, err)
	assert.Equal(t, sender.ID, msg.Sender.ID)
	assert.Equal(t, "doc_1", msg.CommunityID)
}

func TestRoomMessageListing(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(testStore(), zerolog.Nop())
	sender := testAuthor()

	for _, req := range []*dto.SendMessageRequest{
		{Content: "one", CommunityID: "doc_1"},
		{Content: "two", ClassroomID: "doc_2"},
		{Content: "three", CommunityID: "doc_1"},
	} {
		_, err := svc.SendMessage(ctx, sender, req)
		require.NoError(t, err)
	}

	community, err := svc.GetCommunityMessages(ctx, "doc_1", 0, 0)
	require.NoError(t, err)
	require.Len(t, community, 2)
	assert.Equal(t, "three", community[0].Content)

	classroom, err := svc.GetClassroomMessages(ctx, "doc_2", 0, 0)
	require.NoError(t, err)
	require.Len(t, classroom, 1)
	assert.Equal(t, "two", classroom[0].Content)
}
