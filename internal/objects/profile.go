package objects

import "time"

type ProfileInfo struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RedemptionResult struct {
	Redeemed bool `json:"redeemed"`
}
