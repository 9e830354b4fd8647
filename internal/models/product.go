package models

// Product represents a single item in the catalog. JSON field names match
// the shape the storefront consumes, including the snake_case created_at
// date string.
type Product struct {
	ID         string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string   `json:"name" validate:"required,max=200"`
	Details    string   `json:"details" validate:"omitempty,max=1000"`
	Brand      string   `json:"brand" validate:"omitempty,max=100"`
	BrandImage string   `json:"brandImage,omitempty"`
	Price      float64  `json:"price" validate:"gte=0"`
	Currency   string   `json:"currency" validate:"omitempty,max=8"`
	Image      string   `json:"image"`
	HoverImage string   `json:"hoverImage,omitempty"`
	Category   string   `json:"category" validate:"omitempty,max=100"`
	MlOptions  []string `json:"mlOptions,omitempty" gorm:"serializer:json"`
	BestSeller bool     `json:"bestSeller,omitempty"`
	CreatedAt  string   `json:"created_at"`
	Stock      int      `json:"stock" validate:"gte=0"`
}
