package query

import (
	"strings"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/collably/pkg/models"
)

// UnknownBrand is shown for a brand id missing from the brands list
const UnknownBrand = "Unknown Brand"

// BrandNameByID returns the display name of the brand with the given id
func BrandNameByID(brands []models.Brand, id string) string {
	brand := ectolinq.Find(brands, func(b models.Brand) bool { return b.ID == id })
	if brand.ID == "" {
		return UnknownBrand
	}
	return brand.BrandName
}

// BrandIDByName returns the id of the brand whose name matches, ignoring case
func BrandIDByName(brands []models.Brand, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	brand := ectolinq.Find(brands, func(b models.Brand) bool { return strings.EqualFold(b.BrandName, name) })
	if brand.ID == "" {
		return "", false
	}
	return brand.ID, true
}
