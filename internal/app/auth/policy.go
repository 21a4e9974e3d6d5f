// Package auth holds the authorization policy for entity mutations. The
// policy is pure: it inspects the principal and the target record and either
// returns nil or a permission error. It never touches storage, so the same
// rules apply identically on every API surface.
package auth

import (
	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// RequireAuthenticated rejects requests that carry no principal.
func RequireAuthenticated(principal *models.User) error {
	if principal == nil {
		return apperrors.ErrAuthenticationRequired
	}
	return nil
}

// CanCreateClassroom allows instructors and admins to create classrooms.
func CanCreateClassroom(principal *models.User) error {
	if err := RequireAuthenticated(principal); err != nil {
		return err
	}
	if principal.IsInstructor() || principal.IsAdmin() {
		return nil
	}
	return apperrors.NewForbiddenError("only instructors can create classrooms")
}

// CanModifyClassroom allows the owning instructor and admins to update or
// delete a classroom.
func CanModifyClassroom(principal *models.User, classroom *models.Classroom) error {
	if err := RequireAuthenticated(principal); err != nil {
		return err
	}
	if principal.IsAdmin() {
		return nil
	}
	if classroom != nil && classroom.Instructor.ID == principal.ID {
		return nil
	}
	return apperrors.NewForbiddenError("only the classroom instructor can modify this classroom")
}

// CanCreateCommunity allows any authenticated user to create a community.
func CanCreateCommunity(principal *models.User) error {
	return RequireAuthenticated(principal)
}

// CanModifyCommunity restricts community updates and deletion to admins.
func CanModifyCommunity(principal *models.User) error {
	if err := RequireAuthenticated(principal); err != nil {
		return err
	}
	if principal.IsAdmin() {
		return nil
	}
	return apperrors.NewForbiddenError("only administrators can modify communities")
}

// CanCreatePost allows any authenticated user to create a post.
func CanCreatePost(principal *models.User) error {
	return RequireAuthenticated(principal)
}

// CanModifyPost allows the author and admins to update or delete a post.
func CanModifyPost(principal *models.User, post *models.Post) error {
	if err := RequireAuthenticated(principal); err != nil {
		return err
	}
	if principal.IsAdmin() {
		return nil
	}
	if post != nil && post.Author.ID == principal.ID {
		return nil
	}
	return apperrors.NewForbiddenError("only the author can modify this post")
}
