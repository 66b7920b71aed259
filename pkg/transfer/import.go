package transfer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/collably/pkg/metrics"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
	"github.com/Ramsey-B/collably/pkg/spreadsheet"
)

// Import row outcomes
const (
	OutcomeSkipped   = "skipped"
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// RowError explains why one row was not imported. Row is the 1-based sheet row.
type RowError struct {
	Row     int    `json:"row" yaml:"row"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Message string `json:"message" yaml:"message"`
}

// Report summarizes an import
type Report struct {
	Resource  string     `json:"resource" yaml:"resource"`
	Total     int        `json:"total" yaml:"total"`
	Skipped   int        `json:"skipped" yaml:"skipped"`
	Succeeded int        `json:"succeeded" yaml:"succeeded"`
	Failed    int        `json:"failed" yaml:"failed"`
	Errors    []RowError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// BrandCreator is the part of the dashboard a brand import needs
type BrandCreator interface {
	CreateBrand(ctx context.Context, input models.BrandInput) (models.Brand, error)
	FetchAllBrands(ctx context.Context) ([]models.Brand, error)
}

// ProductCreator is the part of the dashboard a product import needs
type ProductCreator interface {
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
	FetchAllProducts(ctx context.Context) ([]models.Product, error)
}

// Row is an input that survived validation together with its sheet row
type Row[T any] struct {
	Number int
	Input  T
}

// Importer feeds spreadsheet rows through the create actions one at a time
type Importer struct {
	logger ectologger.Logger
}

// NewImporter creates an importer
func NewImporter(logger ectologger.Logger) *Importer {
	return &Importer{logger: logger}
}

// BrandRows maps the table to brand inputs. Rows failing validation are returned as
// skipped errors. Rows without a password get defaultPassword.
func BrandRows(table spreadsheet.Table, defaultPassword string) ([]Row[models.BrandInput], []RowError) {
	var (
		rows    []Row[models.BrandInput]
		skipped []RowError
	)
	for i, record := range table.Records() {
		number := i + 2
		fields := canonical(record, table.Headers, brandAliases)
		input := models.BrandInput{
			BrandName:        fields["brandName"],
			BrandDescription: fields["brandDescription"],
			BrandCategory:    fields["brandCategory"],
			ContactEmail:     fields["contactEmail"],
			BrandWebsite:     fields["brandWebsite"],
			BrandPhoneNumber: fields["brandPhoneNumber"],
			GSTNumber:        fields["gstNumber"],
			Password:         fields["password"],
		}
		if input.Password == "" {
			input.Password = defaultPassword
		}

		if err := models.Validate(input); err != nil {
			skipped = append(skipped, RowError{Row: number, Outcome: OutcomeSkipped, Message: err.Error()})
			continue
		}
		rows = append(rows, Row[models.BrandInput]{Number: number, Input: input})
	}
	return rows, skipped
}

// ProductRows maps the table to product inputs. The brand is resolved by name, then by an
// explicit id column, then falls back to fallbackBrandID. Unparseable prices and quantities
// become 0 and a missing status becomes Draft.
func ProductRows(table spreadsheet.Table, brands []models.Brand, fallbackBrandID string) ([]Row[models.ProductInput], []RowError) {
	var (
		rows    []Row[models.ProductInput]
		skipped []RowError
	)
	for i, record := range table.Records() {
		number := i + 2
		fields := canonical(record, table.Headers, productAliases)

		brandID, ok := query.BrandIDByName(brands, fields["brandName"])
		if !ok {
			brandID = fields["brandId"]
		}
		if brandID == "" {
			brandID = fallbackBrandID
		}

		input := models.ProductInput{
			BrandID:     brandID,
			ProductName: fields["productname"],
			Description: fields["description"],
			Price:       parseFloat(fields["price"]),
			Quantity:    parseInt(fields["quantity"]),
			Category:    fields["category"],
			Status:      normalizeStatus(fields["status"]),
		}

		if err := models.Validate(input); err != nil {
			skipped = append(skipped, RowError{Row: number, Outcome: OutcomeSkipped, Message: err.Error()})
			continue
		}
		rows = append(rows, Row[models.ProductInput]{Number: number, Input: input})
	}
	return rows, skipped
}

// ImportBrands creates every valid brand row in order, then refreshes the brands list
func (i *Importer) ImportBrands(ctx context.Context, target BrandCreator, table spreadsheet.Table, defaultPassword string) Report {
	rows, skipped := BrandRows(table, defaultPassword)
	report := run(ctx, i.logger, "brands", len(table.Rows), rows, skipped, func(input models.BrandInput) error {
		_, err := target.CreateBrand(ctx, input)
		return err
	})

	if _, err := target.FetchAllBrands(ctx); err != nil {
		i.logger.WithContext(ctx).WithError(err).Warn("failed to refresh brands after import")
	}
	return report
}

// ImportProducts creates every valid product row in order, then refreshes the products list
func (i *Importer) ImportProducts(ctx context.Context, target ProductCreator, table spreadsheet.Table, brands []models.Brand, fallbackBrandID string) Report {
	rows, skipped := ProductRows(table, brands, fallbackBrandID)
	report := run(ctx, i.logger, "products", len(table.Rows), rows, skipped, func(input models.ProductInput) error {
		_, err := target.CreateProduct(ctx, input)
		return err
	})

	if _, err := target.FetchAllProducts(ctx); err != nil {
		i.logger.WithContext(ctx).WithError(err).Warn("failed to refresh products after import")
	}
	return report
}

func run[T any](ctx context.Context, logger ectologger.Logger, resource string, total int, rows []Row[T], skipped []RowError, create func(T) error) Report {
	report := Report{
		Resource: resource,
		Total:    total,
		Skipped:  len(skipped),
		Errors:   append([]RowError(nil), skipped...),
	}
	for range skipped {
		metrics.RecordImportRow(resource, OutcomeSkipped)
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: row.Number, Outcome: OutcomeFailed, Message: err.Error()})
			metrics.RecordImportRow(resource, OutcomeFailed)
			continue
		}

		if err := create(row.Input); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: row.Number, Outcome: OutcomeFailed, Message: err.Error()})
			metrics.RecordImportRow(resource, OutcomeFailed)
			continue
		}
		report.Succeeded++
		metrics.RecordImportRow(resource, OutcomeSucceeded)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"resource":  resource,
		"total":     report.Total,
		"skipped":   report.Skipped,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	}).Info("Import finished")

	return report
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func parseInt(value string) int {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}

func normalizeStatus(value string) string {
	switch {
	case strings.EqualFold(strings.TrimSpace(value), models.ProductStatusPublished):
		return models.ProductStatusPublished
	case strings.TrimSpace(value) == "", strings.EqualFold(strings.TrimSpace(value), models.ProductStatusDraft):
		return models.ProductStatusDraft
	default:
		return strings.TrimSpace(value)
	}
}

// Summary renders the report as one line
func (r Report) Summary() string {
	return fmt.Sprintf("%s import: %d rows, %d imported, %d failed, %d skipped",
		r.Resource, r.Total, r.Succeeded, r.Failed, r.Skipped)
}
