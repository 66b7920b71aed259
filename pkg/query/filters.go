package query

import (
	"strings"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/collably/pkg/models"
)

// Stock filter values
const (
	StockAll = ""
	StockIn  = "in"
	StockOut = "out"
)

// ProductFilter narrows the products list. Empty fields match everything.
type ProductFilter struct {
	BrandID  string
	Category string
	// Stock is StockIn, StockOut or empty
	Stock  string
	Status string
	// Product matches an exact product name
	Product string
	// Search matches name, description or category
	Search string
}

// Apply returns the products matching every set field
func (f ProductFilter) Apply(products []models.Product) []models.Product {
	return ectolinq.Filter(products, func(p models.Product) bool {
		if f.BrandID != "" && p.BrandID != f.BrandID {
			return false
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			return false
		}
		switch strings.ToLower(f.Stock) {
		case StockIn:
			if !p.InStock() {
				return false
			}
		case StockOut:
			if p.InStock() {
				return false
			}
		}
		if f.Status != "" && !strings.EqualFold(p.DisplayStatus(), f.Status) {
			return false
		}
		if f.Product != "" && !strings.EqualFold(p.ProductName, f.Product) {
			return false
		}
		return matches(f.Search, p.ProductName, p.Description, p.Category)
	})
}

// BrandFilter narrows the brands list by name or category
type BrandFilter struct {
	Search string
}

// Apply returns the brands matching the filter
func (f BrandFilter) Apply(brands []models.Brand) []models.Brand {
	return ectolinq.Filter(brands, func(b models.Brand) bool {
		return matches(f.Search, b.BrandName, b.BrandCategory)
	})
}

// UserFilter narrows the users list by full name, email or username
type UserFilter struct {
	Search string
}

// Apply returns the users matching the filter
func (f UserFilter) Apply(users []models.User) []models.User {
	return ectolinq.Filter(users, func(u models.User) bool {
		return matches(f.Search, u.Fullname, u.Email, u.Username)
	})
}

// BlogFilter narrows the blogs list by category and title or content
type BlogFilter struct {
	Category string
	Search   string
}

// Apply returns the blogs matching the filter
func (f BlogFilter) Apply(blogs []models.Blog) []models.Blog {
	return ectolinq.Filter(blogs, func(b models.Blog) bool {
		if f.Category != "" && !strings.EqualFold(b.Category, f.Category) {
			return false
		}
		return matches(f.Search, b.Title, b.Content)
	})
}

// Categories returns the distinct non-empty product categories in first-seen order
func Categories(products []models.Product) []string {
	seen := map[string]bool{}
	var categories []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

func matches(search string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
