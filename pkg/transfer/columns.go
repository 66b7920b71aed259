// Package transfer maps brands and products to spreadsheet tables and imports tables
// back through the dashboard's create actions.
package transfer

import (
	"strings"
	"unicode"
)

// Brand export columns
var BrandColumns = []string{
	"brandName",
	"brandDescription",
	"brandCategory",
	"contactEmail",
	"brandWebsite",
	"brandPhoneNumber",
	"gstNumber",
}

// Product export and template columns
var ProductColumns = []string{
	"Product Name",
	"Brand Name",
	"Description",
	"Price",
	"Quantity",
	"Category",
	"Status",
}

// brandAliases maps normalized header labels onto brand fields
var brandAliases = map[string]string{
	"brandname":        "brandName",
	"name":             "brandName",
	"branddescription": "brandDescription",
	"description":      "brandDescription",
	"brandcategory":    "brandCategory",
	"category":         "brandCategory",
	"contactemail":     "contactEmail",
	"email":            "contactEmail",
	"brandwebsite":     "brandWebsite",
	"website":          "brandWebsite",
	"brandphonenumber": "brandPhoneNumber",
	"phonenumber":      "brandPhoneNumber",
	"phone":            "brandPhoneNumber",
	"gstnumber":        "gstNumber",
	"gst":              "gstNumber",
	"password":         "password",
}

// productAliases maps normalized header labels onto product fields
var productAliases = map[string]string{
	"productname": "productname",
	"name":        "productname",
	"product":     "productname",
	"brandname":   "brandName",
	"brand":       "brandName",
	"brandid":     "brandId",
	"description": "description",
	"price":       "price",
	"quantity":    "quantity",
	"stock":       "quantity",
	"category":    "category",
	"status":      "status",
}

// normalizeHeader folds "Brand Name", "brand_name" and "brandName" to "brandname"
func normalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// canonical rekeys a header-keyed record by field name. Unknown headers are dropped and
// the first column mapping to a field wins.
func canonical(record map[string]string, headers []string, aliases map[string]string) map[string]string {
	result := make(map[string]string, len(aliases))
	for _, header := range headers {
		field, ok := aliases[normalizeHeader(header)]
		if !ok {
			continue
		}
		if _, seen := result[field]; seen {
			continue
		}
		result[field] = record[header]
	}
	return result
}
