package models

import "time"

// Kind discriminates the logical collection a document belongs to within the
// shared document store.
type Kind string

const (
	KindUser        Kind = "user"
	KindClassroom   Kind = "classroom"
	KindCommunity   Kind = "community"
	KindPost        Kind = "post"
	KindChatMessage Kind = "chatmessage"
)

// Role is the role attached to a user principal
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// Document is the base shape shared by every stored entity. ID and the
// timestamps are assigned by the store; Revision is the optimistic
// concurrency marker refreshed on every write.
type Document struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Revision  string    `json:"revision,omitempty"`
}
