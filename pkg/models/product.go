package models

const (
	ProductStatusPublished = "Published"
	ProductStatusDraft     = "Draft"
)

// Product is an item sold by a brand
type Product struct {
	ID          string  `json:"_id" yaml:"id"`
	BrandID     string  `json:"brandId" yaml:"brandId"`
	ProductName string  `json:"productname" yaml:"productname"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
}

func (p Product) GetID() string { return p.ID }

// InStock reports whether any units are available
func (p Product) InStock() bool {
	return p.Quantity > 0
}

// DisplayStatus returns the status, treating an unset one as Draft
func (p Product) DisplayStatus() string {
	if p.Status == "" {
		return ProductStatusDraft
	}
	return p.Status
}

// ProductInput is the body of a product create or update
type ProductInput struct {
	BrandID     string  `json:"brandId" validate:"required"`
	ProductName string  `json:"productname" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category,omitempty"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=Published Draft"`
}
