package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
)

func newProductsCommand(opts *rootOptions) *cobra.Command {
	products := &cobra.Command{
		Use:   "products",
		Short: "Manage products",
	}
	products.AddCommand(
		newProductsListCommand(opts),
		newProductsGetCommand(opts),
		newProductsCreateCommand(opts),
		newProductsUpdateCommand(opts),
		newProductsDeleteCommand(opts),
	)
	return products
}

// brandNames returns the brand list used to show brand names. Brand sessions only see their own name.
func brandNames(ctx context.Context, a *app, brandSession bool) ([]models.Brand, error) {
	if !brandSession {
		return a.Dashboard.FetchAllBrands(ctx)
	}

	sess := a.Dashboard.Session()
	id, err := sess.BrandID(ctx)
	if err != nil {
		return nil, err
	}
	name, err := sess.UserName(ctx)
	if err != nil {
		return nil, err
	}
	return []models.Brand{{ID: id, BrandName: name}}, nil
}

func newProductsListCommand(opts *rootOptions) *cobra.Command {
	var (
		list   listFlags
		filter query.ProductFilter
		brand  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products; brand sessions see only their own",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			brandSession, err := isBrand(cmd, a)
			if err != nil {
				return err
			}

			var products []models.Product
			if brandSession {
				products, err = a.Dashboard.FetchBrandProducts(ctx, "")
			} else {
				products, err = a.Dashboard.FetchAllProducts(ctx)
			}
			if err != nil {
				return err
			}

			brands, err := brandNames(ctx, a, brandSession)
			if err != nil {
				return err
			}
			if brand != "" {
				id, ok := query.BrandIDByName(brands, brand)
				if !ok {
					return apierrors.NotFound("brand %q not found", brand)
				}
				filter.BrandID = id
			}
			filter.Search = list.search

			page := query.Paginate(filter.Apply(products), list.page, list.size(a))
			return printPage(newPrinter(cmd, opts), page, func(items []models.Product) table {
				return productTable(items, brands)
			})
		}),
	}

	list.bind(cmd)
	flags := cmd.Flags()
	flags.StringVar(&brand, "brand", "", "brand name")
	flags.StringVar(&filter.Category, "category", "", "product category")
	flags.StringVar(&filter.Stock, "stock", query.StockAll, "in or out")
	flags.StringVar(&filter.Status, "status", "", "Published or Draft")
	flags.StringVar(&filter.Product, "product", "", "exact product name")
	return cmd
}

func newProductsGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			product, err := a.Dashboard.FetchProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(product, func() table { return productDetail(product) })
		}),
	}
}

type productFlags struct {
	input models.ProductInput
	brand string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.input.BrandID, "brand-id", "", "owning brand id (defaults to the logged-in brand)")
	flags.StringVar(&f.brand, "brand", "", "owning brand name, resolved to an id")
	flags.StringVar(&f.input.ProductName, "name", "", "product name")
	flags.StringVar(&f.input.Description, "description", "", "description")
	flags.Float64Var(&f.input.Price, "price", 0, "price")
	flags.IntVar(&f.input.Quantity, "quantity", 0, "quantity in stock")
	flags.StringVar(&f.input.Category, "category", "", "category")
	flags.StringVar(&f.input.Status, "status", "", "Published or Draft")
}

// resolveBrand fills BrandID from --brand or the session
func (f *productFlags) resolveBrand(ctx context.Context, a *app, input *models.ProductInput) error {
	if f.brand != "" {
		brands, err := a.Dashboard.FetchAllBrands(ctx)
		if err != nil {
			return err
		}
		id, ok := query.BrandIDByName(brands, f.brand)
		if !ok {
			return apierrors.NotFound("brand %q not found", f.brand)
		}
		input.BrandID = id
	}
	if input.BrandID == "" {
		id, err := a.Dashboard.Session().BrandID(ctx)
		if err != nil {
			return err
		}
		input.BrandID = id
	}
	return nil
}

func (f *productFlags) merge(cmd *cobra.Command, product models.Product) models.ProductInput {
	input := models.ProductInput{
		BrandID:     product.BrandID,
		ProductName: product.ProductName,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
		Status:      product.Status,
	}

	set := map[string]func(){
		"brand-id":    func() { input.BrandID = f.input.BrandID },
		"name":        func() { input.ProductName = f.input.ProductName },
		"description": func() { input.Description = f.input.Description },
		"price":       func() { input.Price = f.input.Price },
		"quantity":    func() { input.Quantity = f.input.Quantity },
		"category":    func() { input.Category = f.input.Category },
		"status":      func() { input.Status = f.input.Status },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return input
}

func newProductsCreateCommand(opts *rootOptions) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			input := flags.input
			if err := flags.resolveBrand(cmd.Context(), a, &input); err != nil {
				return err
			}
			if input.Status == "" {
				input.Status = models.ProductStatusDraft
			}

			product, err := a.Dashboard.CreateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(product, func() table { return productDetail(product) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newProductsUpdateCommand(opts *rootOptions) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a product, keeping fields whose flags are not set",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			existing, err := a.Dashboard.FetchProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			input := flags.merge(cmd, existing)
			if flags.brand != "" {
				if err := flags.resolveBrand(cmd.Context(), a, &input); err != nil {
					return err
				}
			}

			product, err := a.Dashboard.UpdateProduct(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(product, func() table { return productDetail(product) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newProductsDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			ok, err := confirm(cmd, opts, fmt.Sprintf("Delete product %s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := a.Dashboard.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			return newPrinter(cmd, opts).message("Product deleted successfully")
		}),
	}
}

func productTable(products []models.Product, brands []models.Brand) table {
	t := table{headers: []string{"ID", "PRODUCT", "BRAND", "PRICE", "QTY", "CATEGORY", "STATUS"}}
	for _, p := range products {
		t.rows = append(t.rows, []string{
			p.ID,
			p.ProductName,
			query.BrandNameByID(brands, p.BrandID),
			formatPrice(p.Price),
			strconv.Itoa(p.Quantity),
			p.Category,
			p.DisplayStatus(),
		})
	}
	return t
}

func productDetail(p models.Product) table {
	stock := "out of stock"
	if p.InStock() {
		stock = "in stock"
	}
	return table{
		headers: []string{"FIELD", "VALUE"},
		rows: [][]string{
			{"id", p.ID},
			{"name", p.ProductName},
			{"brand id", p.BrandID},
			{"description", truncate(p.Description, 60)},
			{"price", formatPrice(p.Price)},
			{"quantity", fmt.Sprintf("%d (%s)", p.Quantity, stock)},
			{"category", p.Category},
			{"status", p.DisplayStatus()},
		},
	}
}
