package models

// User represents a platform user. Users referenced from other entities
// (Classroom.Instructor, Post.Author) are embedded snapshots taken at
// creation time and are not kept in sync with later user edits.
type User struct {
	Document
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsInstructor reports whether the user holds the instructor role
func (u *User) IsInstructor() bool {
	return u != nil && u.Role == RoleInstructor
}
