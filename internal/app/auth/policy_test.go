package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

func user(id string, role models.Role) *models.User {
	u := &models.User{Username: "u-" + id, Role: role}
	u.ID = id
	u.Kind = models.KindUser
	return u
}

func TestRequireAuthenticated(t *testing.T) {
	assert.ErrorIs(t, RequireAuthenticated(nil), apperrors.ErrAuthenticationRequired)
	assert.NoError(t, RequireAuthenticated(user("doc_1", models.RoleStudent)))
}

func TestCanCreateClassroom(t *testing.T) {
	assert.ErrorIs(t, CanCreateClassroom(nil), apperrors.ErrAuthenticationRequired)
	assert.ErrorIs(t, CanCreateClassroom(user("doc_1", models.RoleStudent)), apperrors.ErrPermissionDenied)
	assert.NoError(t, CanCreateClassroom(user("doc_2", models.RoleInstructor)))
	assert.NoError(t, CanCreateClassroom(user("doc_3", models.RoleAdmin)))
}

func TestCanModifyClassroom(t *testing.T) {
	owner := user("doc_10", models.RoleInstructor)
	other := user("doc_11", models.RoleInstructor)
	admin := user("doc_12", models.RoleAdmin)

	classroom := &models.Classroom{Name: "Algorithms", Instructor: *owner}
	classroom.ID = "doc_20"
	classroom.Kind = models.KindClassroom

	assert.ErrorIs(t, CanModifyClassroom(nil, classroom), apperrors.ErrAuthenticationRequired)
	assert.NoError(t, CanModifyClassroom(owner, classroom))
	assert.ErrorIs(t, CanModifyClassroom(other, classroom), apperrors.ErrPermissionDenied)
	assert.NoError(t, CanModifyClassroom(admin, classroom))
}

func TestCanModifyCommunity(t *testing.T) {
	assert.ErrorIs(t, CanModifyCommunity(user("doc_1", models.RoleStudent)), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, CanModifyCommunity(user("doc_2", models.RoleInstructor)), apperrors.ErrPermissionDenied)
	assert.NoError(t, CanModifyCommunity(user("doc_3", models.RoleAdmin)))
}

func TestCanModifyPost(t *testing.T) {
	author := user("doc_30", models.RoleStudent)
	other := user("doc_31", models.RoleStudent)
	admin := user("doc_32", models.RoleAdmin)

	post := &models.Post{Title: "Hello", Author: *author}
	post.ID = "doc_40"
	post.Kind = models.KindPost

	assert.NoError(t, CanModifyPost(author, post))
	assert.ErrorIs(t, CanModifyPost(other, post), apperrors.ErrPermissionDenied)
	assert.NoError(t, CanModifyPost(admin, post))
}
