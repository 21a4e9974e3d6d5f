package models

// Post represents a feed post. Likes never goes below zero regardless of
// unlike ordering; Comments is a count only, comment entities are not modeled.
type Post struct {
	Document
	Author   User     `json:"author"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Likes    int      `json:"likes"`
	Comments int      `json:"comments"`
}
