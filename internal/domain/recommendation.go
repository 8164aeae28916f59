package domain

import "time"

// Recommendation is a plain scored record pointing a user at a destination.
// Creating one emits a notification; there is no scoring computation here.
type Recommendation struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	DestinationID int64     `json:"destination_id"`
	Score         float64   `json:"score"`
	ActivityIDs   []int64   `json:"activity_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RecommendationCreate struct {
	UserID        int64   `json:"user_id"`
	DestinationID int64   `json:"destination_id"`
	Score         float64 `json:"score"`
	ActivityIDs   []int64 `json:"activity_ids,omitempty"`
}
