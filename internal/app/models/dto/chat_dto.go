package dto

// SendMessageRequest is the payload for posting a chat message to a room
// over the REST surface. Exactly one of CommunityID or ClassroomID should be
// set; the service validates this.
type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	CommunityID string `json:"communityId"`
	ClassroomID string `json:"classroomId"`
}
