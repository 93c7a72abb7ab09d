package models

import "time"

type Product struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug"`
	Author       string         `json:"author,omitempty"`
	Description  string         `json:"description,omitempty"`
	Image        string         `json:"image"`
	Images       []string       `json:"images,omitempty"`
	Price        float64        `json:"price"` // current sale price
	RegularPrice float64        `json:"regularPrice,omitempty"`
	Stock        int            `json:"stock"`
	Colors       []ProductColor `json:"colors,omitempty"` // cover/edition variants
	Category     *Category      `json:"category,omitempty"`
	CreatedAt    time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    time.Time      `json:"updatedAt,omitempty"`
}

// ProductColor is a purchasable variant of a product (e.g. cover colour).
// Stock is tracked per variant when the backend provides it.
type ProductColor struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Stock int    `json:"stock,omitempty"`
}

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"isActive"`
}

// VariantStock returns the stock available for a given colour variant,
// falling back to the product-level stock when the variant is unknown
// or unnamed. Callers use it for pre-checks only; the backend stays the
// authority on over-quantity adds.
func (p Product) VariantStock(colorName string) int {
	if colorName == "" {
		return p.Stock
	}
	for _, c := range p.Colors {
		if c.Name == colorName {
			if c.Stock > 0 {
				return c.Stock
			}
			return p.Stock
		}
	}
	return p.Stock
}
