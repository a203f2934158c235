package models

import "time"

// Category is the fixed set of catalog sections.
type Category string

const (
	CategoryAccessories Category = "accessories"
	CategoryWearables   Category = "wearables"
	CategoryCustom      Category = "custom"
)

// Product represents a handmade item in the catalog.
// Deletion is permanent, so there is no soft-delete column.
type Product struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name             string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Description      string    `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Price            int64     `json:"price" gorm:"not null" validate:"required,gt=0,lte=100000000"`
	OriginalPrice    *int64    `json:"original_price,omitempty" validate:"omitempty,gt=0,lte=100000000"`
	Category         Category  `json:"category" gorm:"type:varchar(20);index" validate:"required,oneof=accessories wearables custom"`
	Images           []string  `json:"images" gorm:"type:text;serializer:json"`
	Colors           []string  `json:"colors,omitempty" gorm:"type:text;serializer:json"`
	Sizes            []string  `json:"sizes,omitempty" gorm:"type:text;serializer:json"`
	Stock            int       `json:"stock" validate:"gte=0"`
	CareInstructions []string  `json:"care_instructions,omitempty" gorm:"type:text;serializer:json"`
	DeliveryDays     int       `json:"delivery_days" validate:"gte=0"`
	IsActive         bool      `json:"is_active"`
	IsNew            bool      `json:"is_new"`
	IsLimited        bool      `json:"is_limited"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OffersColor reports whether color is selectable for the product.
// Products without a color axis accept any value.
func (p Product) OffersColor(color string) bool {
	return offers(p.Colors, color)
}

// OffersSize reports whether size is selectable for the product.
func (p Product) OffersSize(size string) bool {
	return offers(p.Sizes, size)
}

func offers(options []string, choice string) bool {
	if choice == "" || len(options) == 0 {
		return true
	}
	for _, o := range options {
		if o == choice {
			return true
		}
	}
	return false
}
