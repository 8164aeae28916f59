package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Activity struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	CategoryID  int64           `json:"category_id"`
	Description string          `json:"description"`
	Rating      decimal.Decimal `json:"rating"`
}

type Destination struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"price"`
	PartnerID   int64           `json:"partner_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

type DestinationImage struct {
	ID            int64     `json:"id"`
	DestinationID int64     `json:"destination_id"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
}

// DestinationDetail is the read model for a single destination page:
// the destination plus its images and review aggregate.
type DestinationDetail struct {
	Destination
	Images        []DestinationImage `json:"images"`
	Categories    []Category         `json:"categories"`
	AverageRating decimal.Decimal    `json:"average_rating"`
	ReviewCount   int                `json:"review_count"`
}

type DestinationCreate struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"price"`
	CategoryIDs []int64         `json:"category_ids,omitempty"`
}

func (d *DestinationCreate) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(d.Location) == "" {
		return errors.New("location is required")
	}
	if d.Price.IsNegative() {
		return errors.New("price must be non-negative")
	}
	return nil
}

type DestinationPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

func (p *DestinationPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return errors.New("price must be non-negative")
	}
	return nil
}
