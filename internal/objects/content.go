package objects

import "time"

type PostInfo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userID"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentInfo struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postID"`
	UserID    string    `json:"userID"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReactionInfo struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postID"`
	UserID    string    `json:"userID"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}
