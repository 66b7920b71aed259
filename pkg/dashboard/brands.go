package dashboard

import (
	"context"
	"strings"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

type brandActions struct {
	fetchAll *store.AsyncAction[struct{}, []models.Brand]
	fetchOne *store.AsyncAction[string, models.Brand]
	create   *store.AsyncAction[models.BrandInput, models.Brand]
	update   *store.AsyncAction[models.Update[models.BrandInput], models.Brand]
	remove   *store.AsyncAction[string, string]
}

func newBrandActions(client Caller) brandActions {
	return brandActions{
		fetchAll: &store.AsyncAction[struct{}, []models.Brand]{
			Type:  "brands/fetchAllBrands",
			Slice: SliceBrands,
			Op:    store.OpFetchAll,
			Key:   noKey[struct{}],
			Run: func(ctx context.Context, _ struct{}) ([]models.Brand, error) {
				return fetch[[]models.Brand](ctx, client, api.BrandsList, api.Request{})
			},
		},
		fetchOne: &store.AsyncAction[string, models.Brand]{
			Type:  "brands/fetchBrand",
			Slice: SliceBrands,
			Op:    store.OpFetchOne,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (models.Brand, error) {
				return fetch[models.Brand](ctx, client, api.BrandsGet, byID(id))
			},
		},
		create: &store.AsyncAction[models.BrandInput, models.Brand]{
			Type:  "brands/createBrand",
			Slice: SliceBrands,
			Op:    store.OpCreate,
			Key:   func(input models.BrandInput) string { return strings.ToLower(input.ContactEmail) },
			Run: func(ctx context.Context, input models.BrandInput) (models.Brand, error) {
				req, err := withBody(input, input.Logo, nil)
				if err != nil {
					return models.Brand{}, err
				}
				return fetch[models.Brand](ctx, client, api.BrandsCreate, req)
			},
		},
		update: &store.AsyncAction[models.Update[models.BrandInput], models.Brand]{
			Type:  "brands/updateBrand",
			Slice: SliceBrands,
			Op:    store.OpUpdate,
			Key:   func(u models.Update[models.BrandInput]) string { return u.ID },
			Run: func(ctx context.Context, u models.Update[models.BrandInput]) (models.Brand, error) {
				req, err := withBody(u.Data, u.Data.Logo, map[string]string{"id": u.ID})
				if err != nil {
					return models.Brand{}, err
				}
				return fetch[models.Brand](ctx, client, api.BrandsUpdate, req)
			},
		},
		remove: &store.AsyncAction[string, string]{
			Type:  "brands/deleteBrand",
			Slice: SliceBrands,
			Op:    store.OpDelete,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (string, error) {
				return remove(ctx, client, api.BrandsDelete, id)
			},
		},
	}
}

// FetchAllBrands loads every brand into the brands slice
func (d *Dashboard) FetchAllBrands(ctx context.Context) ([]models.Brand, error) {
	return d.brands.fetchAll.Dispatch(ctx, d.dispatcher, struct{}{})
}

// FetchBrand loads one brand as the slice's current record
func (d *Dashboard) FetchBrand(ctx context.Context, id string) (models.Brand, error) {
	return d.brands.fetchOne.Dispatch(ctx, d.dispatcher, id)
}

// CreateBrand validates input and creates the brand
func (d *Dashboard) CreateBrand(ctx context.Context, input models.BrandInput) (models.Brand, error) {
	if err := models.Validate(input); err != nil {
		return models.Brand{}, err
	}
	return d.brands.create.Dispatch(ctx, d.dispatcher, input)
}

// UpdateBrand validates input and replaces the brand with the given id
func (d *Dashboard) UpdateBrand(ctx context.Context, id string, input models.BrandInput) (models.Brand, error) {
	if err := models.Validate(input); err != nil {
		return models.Brand{}, err
	}
	return d.brands.update.Dispatch(ctx, d.dispatcher, models.Update[models.BrandInput]{ID: id, Data: input})
}

// DeleteBrand removes the brand with the given id
func (d *Dashboard) DeleteBrand(ctx context.Context, id string) error {
	_, err := d.brands.remove.Dispatch(ctx, d.dispatcher, id)
	return err
}
