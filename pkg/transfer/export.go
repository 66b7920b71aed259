package transfer

import (
	"strconv"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
	"github.com/Ramsey-B/collably/pkg/spreadsheet"
)

// ExportBrands builds the brands sheet
func ExportBrands(brands []models.Brand) spreadsheet.Table {
	return spreadsheet.Table{
		Sheet:   "Brands",
		Headers: BrandColumns,
		Rows: ectolinq.Map(brands, func(b models.Brand) []string {
			return []string{
				b.BrandName,
				b.BrandDescription,
				b.BrandCategory,
				b.ContactEmail,
				b.BrandWebsite,
				b.BrandPhoneNumber,
				b.GSTNumber,
			}
		}),
	}
}

// ExportProducts builds the products sheet, showing brand names instead of ids
func ExportProducts(products []models.Product, brands []models.Brand) spreadsheet.Table {
	return spreadsheet.Table{
		Sheet:   "Products",
		Headers: ProductColumns,
		Rows: ectolinq.Map(products, func(p models.Product) []string {
			return []string{
				p.ProductName,
				query.BrandNameByID(brands, p.BrandID),
				p.Description,
				strconv.FormatFloat(p.Price, 'f', -1, 64),
				strconv.Itoa(p.Quantity),
				p.Category,
				p.DisplayStatus(),
			}
		}),
	}
}

// ProductTemplate is the blank import sheet with one example row
func ProductTemplate() spreadsheet.Table {
	return spreadsheet.Table{
		Sheet:   "Products",
		Headers: ProductColumns,
		Rows: [][]string{
			{"Sample Product", "Your Brand Name", "Short description", "499", "10", "Apparel", models.ProductStatusDraft},
		},
	}
}
