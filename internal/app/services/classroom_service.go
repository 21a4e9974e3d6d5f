package services

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/docstore"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// ClassroomService defines the interface for classroom operations
type ClassroomService interface {
	CreateClassroom(ctx context.Context, instructor *models.User, req *dto.CreateClassroomRequest) (*models.Classroom, error)
	GetClassroomByID(ctx context.Context, id string) (*models.Classroom, error)
	GetAllClassrooms(ctx context.Context, skip, limit int) ([]*models.Classroom, error)
	GetClassroomsByInstructor(ctx context.Context, instructorID string, skip, limit int) ([]*models.Classroom, error)
	GetClassroomsByTopic(ctx context.Context, topic string, skip, limit int) ([]*models.Classroom, error)
	UpdateClassroom(ctx context.Context, id string, req *dto.UpdateClassroomRequest) (*models.Classroom, error)
	UpdateProgress(ctx context.Context, id string, progress float64) (*models.Classroom, error)
	UpdateAssignments(ctx context.Context, id string, assignments int) (*models.Classroom, error)
	UpdateNextClass(ctx context.Context, id string, nextClass string) (*models.Classroom, error)
	DeleteClassroom(ctx context.Context, id string) error
	SearchClassrooms(ctx context.Context, term string, skip, limit int) ([]*models.Classroom, error)
}

// classroomServiceImpl implements ClassroomService
type classroomServiceImpl struct {
	crudService[models.Classroom]
}

// NewClassroomService creates a new ClassroomService
func NewClassroomService(store docstore.Store, logger zerolog.Logger) ClassroomService {
	return &classroomServiceImpl{
		crudService: newCrudService[models.Classroom](store, models.KindClassroom, logger),
	}
}

// CreateClassroom creates a classroom owned by the given instructor. Counters
// start at zero.
func (s *classroomServiceImpl) CreateClassroom(ctx context.Context, instructor *models.User, req *dto.CreateClassroomRequest) (*models.Classroom, error) {
	if instructor == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}
	if req.Name == "" || req.Description == "" {
		return nil, apperrors.NewValidationError("classroom name and description are required")
	}

	classroom := &models.Classroom{
		Name:        req.Name,
		Instructor:  *instructor,
		Description: req.Description,
		Students:    0,
		Progress:    0,
		NextClass:   req.NextClass,
		Assignments: 0,
		Topics:      normalizeTopics(req.Topics),
	}

	created, err := s.create(ctx, classroom)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("classroomId", created.ID).Str("instructorId", instructor.ID).Msg("Classroom created")
	return created, nil
}

// GetClassroomByID returns the classroom, or (nil, nil) when it does not exist.
func (s *classroomServiceImpl) GetClassroomByID(ctx context.Context, id string) (*models.Classroom, error) {
	return s.getByID(ctx, id)
}

// GetAllClassrooms lists classrooms newest first.
func (s *classroomServiceImpl) GetAllClassrooms(ctx context.Context, skip, limit int) ([]*models.Classroom, error) {
	return s.list(ctx, window(docstore.Query{}, skip, limit))
}

// GetClassroomsByInstructor lists the classrooms owned by one instructor.
func (s *classroomServiceImpl) GetClassroomsByInstructor(ctx context.Context, instructorID string, skip, limit int) ([]*models.Classroom, error) {
	q := docstore.Query{
		Equals: map[string]interface{}{"instructor.id": instructorID},
	}
	return s.list(ctx, window(q, skip, limit))
}

// GetClassroomsByTopic lists classrooms covering the exact topic.
func (s *classroomServiceImpl) GetClassroomsByTopic(ctx context.Context, topic string, skip, limit int) ([]*models.Classroom, error) {
	q := docstore.Query{
		ArrayContains: map[string]string{"topics": topic},
	}
	return s.list(ctx, window(q, skip, limit))
}

// UpdateClassroom applies a partial update. Nil request fields are left
// unchanged; a non-empty req.Revision makes the write a check-and-set.
func (s *classroomServiceImpl) UpdateClassroom(ctx context.Context, id string, req *dto.UpdateClassroomRequest) (*models.Classroom, error) {
	patch := docstore.Document{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Topics != nil {
		patch["topics"] = normalizeTopics(*req.Topics)
	}
	if req.Progress != nil {
		patch["progress"] = *req.Progress
	}
	if req.NextClass != nil {
		patch["nextClass"] = *req.NextClass
	}
	if req.Assignments != nil {
		patch["assignments"] = *req.Assignments
	}
	if req.Students != nil {
		patch["students"] = *req.Students
	}

	return s.update(ctx, id, patch, req.Revision)
}

// UpdateProgress sets the progress percentage. The value is stored as given,
// without clamping.
func (s *classroomServiceImpl) UpdateProgress(ctx context.Context, id string, progress float64) (*models.Classroom, error) {
	return s.update(ctx, id, docstore.Document{"progress": progress}, "")
}

// UpdateAssignments sets the assignment count.
func (s *classroomServiceImpl) UpdateAssignments(ctx context.Context, id string, assignments int) (*models.Classroom, error) {
	if assignments < 0 {
		return nil, apperrors.NewValidationError("assignment count cannot be negative")
	}
	return s.update(ctx, id, docstore.Document{"assignments": assignments}, "")
}

// UpdateNextClass sets the next scheduled class label.
func (s *classroomServiceImpl) UpdateNextClass(ctx context.Context, id string, nextClass string) (*models.Classroom, error) {
	return s.update(ctx, id, docstore.Document{"nextClass": nextClass}, "")
}

// DeleteClassroom removes the classroom.
func (s *classroomServiceImpl) DeleteClassroom(ctx context.Context, id string) error {
	if err := s.delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("classroomId", id).Msg("Classroom deleted")
	return nil
}

// SearchClassrooms matches the term as a case-insensitive substring of the
// classroom name or description.
func (s *classroomServiceImpl) SearchClassrooms(ctx context.Context, term string, skip, limit int) ([]*models.Classroom, error) {
	if term == "" {
		return s.GetAllClassrooms(ctx, skip, limit)
	}
	pattern := regexp.QuoteMeta(term)
	q := docstore.Query{
		Or: []docstore.Query{
			{Regex: map[string]string{"name": pattern}},
			{Regex: map[string]string{"description": pattern}},
		},
	}
	return s.list(ctx, window(q, skip, limit))
}

// normalizeTopics dedupes topics preserving first-seen order. A nil input
// becomes an empty slice so stored documents always carry the array.
func normalizeTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	seen := make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		out = append(out, topic)
	}
	return out
}
