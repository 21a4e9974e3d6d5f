// Package seed populates the store with demo data for development mode.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/app/services"
)

// CreateDefaultData inserts a handful of demo users, classrooms, communities
// and posts. Seeding is additive and idempotence is approximated by skipping
// when the demo instructor already exists.
func CreateDefaultData(ctx context.Context, svcs *services.Services, lgr zerolog.Logger) error {
	existing, err := svcs.Users.GetUserByUsername(ctx, "ada")
	if err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if existing != nil {
		lgr.Info().Msg("Seed data already present, skipping")
		return nil
	}

	instructor, err := svcs.Users.CreateUser(ctx, &models.User{
		Username: "ada",
		Email:    "ada@edusphere.local",
		Role:     models.RoleInstructor,
	})
	if err != nil {
		return fmt.Errorf("seed instructor: %w", err)
	}

	student, err := svcs.Users.CreateUser(ctx, &models.User{
		Username: "linus",
		Email:    "linus@edusphere.local",
		Role:     models.RoleStudent,
	})
	if err != nil {
		return fmt.Errorf("seed student: %w", err)
	}

	if _, err := svcs.Users.CreateUser(ctx, &models.User{
		Username: "grace",
		Email:    "grace@edusphere.local",
		Role:     models.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	classrooms := []*dto.CreateClassroomRequest{
		{
			Name:        "Introduction to Algorithms",
			Description: "Sorting, graphs and dynamic programming",
			Topics:      []string{"algorithms", "complexity"},
			NextClass:   "Monday 10:00",
		},
		{
			Name:        "Distributed Systems",
			Description: "Consensus, replication and failure models",
			Topics:      []string{"raft", "replication"},
		},
	}
	for _, req := range classrooms {
		if _, err := svcs.Classrooms.CreateClassroom(ctx, instructor, req); err != nil {
			return fmt.Errorf("seed classroom %q: %w", req.Name, err)
		}
	}

	communities := []*dto.CreateCommunityRequest{
		{Name: "Go Study Group", Description: "Weekly Go sessions", Topics: []string{"go", "backend"}},
		{Name: "Robotics Club", Description: "Build and race robots", Topics: []string{"robotics"}},
	}
	for _, req := range communities {
		if _, err := svcs.Communities.CreateCommunity(ctx, req); err != nil {
			return fmt.Errorf("seed community %q: %w", req.Name, err)
		}
	}

	posts := []*dto.CreatePostRequest{
		{Title: "Welcome to the platform", Content: "Say hello in the comments", Tags: []string{"announcement"}},
		{Title: "Study tips for finals", Content: "Space out your revision sessions", Tags: []string{"study", "tips"}},
	}
	for _, req := range posts {
		if _, err := svcs.Posts.CreatePost(ctx, student, req); err != nil {
			return fmt.Errorf("seed post %q: %w", req.Title, err)
		}
	}

	lgr.Info().Msg("Seed data created")
	return nil
}
