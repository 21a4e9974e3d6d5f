package models

// Community represents an interest group. Members starts at 1 on creation
// (the creator counts as the first member); no membership list is modeled.
type Community struct {
	Document
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     int      `json:"members"`
	Topics      []string `json:"topics"`
}
