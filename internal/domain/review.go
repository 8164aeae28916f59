package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	DestinationID int64     `json:"destination_id"`
	Rating        int       `json:"rating"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"` // immutable after first write
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReviewCreate struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (r *ReviewCreate) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

type ReviewPatch struct {
	Rating  *int    `json:"rating,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (p *ReviewPatch) Validate() error {
	if p.Rating != nil && (*p.Rating < MinRating || *p.Rating > MaxRating) {
		return ErrInvalidRating
	}
	return nil
}
