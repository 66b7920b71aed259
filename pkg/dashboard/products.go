package dashboard

import (
	"context"
	"net/url"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

type productActions struct {
	fetchAll      *store.AsyncAction[struct{}, []models.Product]
	fetchForBrand *store.AsyncAction[string, []models.Product]
	fetchOne      *store.AsyncAction[string, models.Product]
	create        *store.AsyncAction[models.ProductInput, models.Product]
	update        *store.AsyncAction[models.Update[models.ProductInput], models.Product]
	remove        *store.AsyncAction[string, string]
}

func newProductActions(client Caller) productActions {
	return productActions{
		fetchAll: &store.AsyncAction[struct{}, []models.Product]{
			Type:  "products/fetchAllProducts",
			Slice: SliceProducts,
			Op:    store.OpFetchAll,
			Key:   noKey[struct{}],
			Run: func(ctx context.Context, _ struct{}) ([]models.Product, error) {
				return fetch[[]models.Product](ctx, client, api.ProductsList, api.Request{})
			},
		},
		fetchForBrand: &store.AsyncAction[string, []models.Product]{
			Type:  "products/fetchBrandProducts",
			Slice: SliceProducts,
			Op:    store.OpFetchAll,
			Key:   noKey[string],
			Scope: idKey,
			Run: func(ctx context.Context, brandID string) ([]models.Product, error) {
				if err := requireBrandID(brandID); err != nil {
					return nil, err
				}
				return fetch[[]models.Product](ctx, client, api.ProductsListByBrand, api.Request{
					Query: url.Values{"brandId": {brandID}},
				})
			},
		},
		fetchOne: &store.AsyncAction[string, models.Product]{
			Type:  "products/fetchProduct",
			Slice: SliceProducts,
			Op:    store.OpFetchOne,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (models.Product, error) {
				return fetch[models.Product](ctx, client, api.ProductsGet, byID(id))
			},
		},
		create: &store.AsyncAction[models.ProductInput, models.Product]{
			Type:  "products/createProduct",
			Slice: SliceProducts,
			Op:    store.OpCreate,
			Key:   func(input models.ProductInput) string { return input.BrandID + "/" + input.ProductName },
			Run: func(ctx context.Context, input models.ProductInput) (models.Product, error) {
				return fetch[models.Product](ctx, client, api.ProductsCreate, api.Request{JSON: input})
			},
		},
		update: &store.AsyncAction[models.Update[models.ProductInput], models.Product]{
			Type:  "products/updateProduct",
			Slice: SliceProducts,
			Op:    store.OpUpdate,
			Key:   func(u models.Update[models.ProductInput]) string { return u.ID },
			Run: func(ctx context.Context, u models.Update[models.ProductInput]) (models.Product, error) {
				return fetch[models.Product](ctx, client, api.ProductsUpdate, api.Request{
					Params: map[string]string{"id": u.ID},
					JSON:   u.Data,
				})
			},
		},
		remove: &store.AsyncAction[string, string]{
			Type:  "products/deleteProduct",
			Slice: SliceProducts,
			Op:    store.OpDelete,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (string, error) {
				return remove(ctx, client, api.ProductsDelete, id)
			},
		},
	}
}

// FetchAllProducts loads every product
func (d *Dashboard) FetchAllProducts(ctx context.Context) ([]models.Product, error) {
	return d.products.fetchAll.Dispatch(ctx, d.dispatcher, struct{}{})
}

// FetchBrandProducts loads the products of brandID, or of the logged-in brand when empty
func (d *Dashboard) FetchBrandProducts(ctx context.Context, brandID string) ([]models.Product, error) {
	return d.products.fetchForBrand.Dispatch(ctx, d.dispatcher, d.brandID(ctx, brandID))
}

// FetchProduct loads one product as the slice's current record
func (d *Dashboard) FetchProduct(ctx context.Context, id string) (models.Product, error) {
	return d.products.fetchOne.Dispatch(ctx, d.dispatcher, id)
}

// CreateProduct validates input and creates the product
func (d *Dashboard) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	if err := models.Validate(input); err != nil {
		return models.Product{}, err
	}
	return d.products.create.Dispatch(ctx, d.dispatcher, input)
}

// UpdateProduct validates input and replaces the product with the given id
func (d *Dashboard) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	if err := models.Validate(input); err != nil {
		return models.Product{}, err
	}
	return d.products.update.Dispatch(ctx, d.dispatcher, models.Update[models.ProductInput]{ID: id, Data: input})
}

// DeleteProduct removes the product with the given id
func (d *Dashboard) DeleteProduct(ctx context.Context, id string) error {
	_, err := d.products.remove.Dispatch(ctx, d.dispatcher, id)
	return err
}
