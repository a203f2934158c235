package models

import (
	"fmt"
	"time"
)

// Review is customer feedback awaiting or past moderation.
type Review struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName  string    `json:"customer_name" gorm:"type:varchar(100);not null"`
	CustomerEmail *string   `json:"customer_email,omitempty" gorm:"type:varchar(255)"`
	Rating        int       `json:"rating" gorm:"not null"`
	ReviewText    string    `json:"review_text" gorm:"type:text;not null"`
	PhotoURL      *string   `json:"photo_url,omitempty" gorm:"type:text"`
	IsApproved    bool      `json:"is_approved" gorm:"index"`
	ProductID     *string   `json:"product_id,omitempty" gorm:"type:varchar(36)"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

// ReviewFilter selects reviews for the moderation views.
type ReviewFilter string

const (
	ReviewFilterAll      ReviewFilter = "all"
	ReviewFilterPending  ReviewFilter = "pending"
	ReviewFilterApproved ReviewFilter = "approved"
)

// ParseReviewFilter converts s into a ReviewFilter. An empty string selects pending,
// which is what the moderation queue opens on.
func ParseReviewFilter(s string) (ReviewFilter, error) {
	switch ReviewFilter(s) {
	case "":
		return ReviewFilterPending, nil
	case ReviewFilterAll, ReviewFilterPending, ReviewFilterApproved:
		return ReviewFilter(s), nil
	}
	return "", fmt.Errorf("invalid review filter: %q", s)
}

// Match reports whether r belongs in the view selected by f.
func (f ReviewFilter) Match(r Review) bool {
	switch f {
	case ReviewFilterPending:
		return !r.IsApproved
	case ReviewFilterApproved:
		return r.IsApproved
	}
	return true
}

// ApprovalFlag returns the is_approved value f restricts to, or nil for all.
func (f ReviewFilter) ApprovalFlag() *bool {
	var v bool
	switch f {
	case ReviewFilterPending:
		v = false
	case ReviewFilterApproved:
		v = true
	default:
		return nil
	}
	return &v
}
