package dto

// CreateCommunityRequest is the payload for creating a community.
type CreateCommunityRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Topics      []string `json:"topics"`
}

// UpdateCommunityRequest is a partial patch; nil fields are left unchanged.
type UpdateCommunityRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Topics      *[]string `json:"topics"`
	Members     *int      `json:"members"`
	Revision    string    `json:"revision"`
}

// TopicRequest adds a single topic to a community's topic set.
type TopicRequest struct {
	Topic string `json:"topic" binding:"required"`
}
