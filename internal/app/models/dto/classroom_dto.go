package dto

// CreateClassroomRequest is the payload for creating a classroom. The
// instructor snapshot is taken from the authenticated principal, never from
// the request body.
type CreateClassroomRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Topics      []string `json:"topics"`
	NextClass   string   `json:"nextClass"`
}

// UpdateClassroomRequest is a partial patch; nil fields are left unchanged.
// Revision, when set, enables the optimistic check-and-set on the update.
type UpdateClassroomRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Topics      *[]string `json:"topics"`
	Progress    *float64  `json:"progress"`
	NextClass   *string   `json:"nextClass"`
	Assignments *int      `json:"assignments"`
	Students    *int      `json:"students"`
	Revision    string    `json:"revision"`
}

// UpdateProgressRequest updates only the progress percentage
type UpdateProgressRequest struct {
	Progress *float64 `json:"progress" binding:"required"`
}

// UpdateAssignmentsRequest updates only the assignment count
type UpdateAssignmentsRequest struct {
	Assignments *int `json:"assignments" binding:"required"`
}

// UpdateNextClassRequest updates only the next scheduled class label
type UpdateNextClassRequest struct {
	NextClass string `json:"nextClass" binding:"required"`
}
