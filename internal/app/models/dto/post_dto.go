package dto

// CreatePostRequest is the payload for creating a post. The author snapshot
// comes from the authenticated principal.
type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// UpdatePostRequest is a partial patch; nil fields are left unchanged.
type UpdatePostRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Revision string    `json:"revision"`
}
