package dashboard

import (
	"context"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

type orderActions struct {
	fetchAll      *store.AsyncAction[struct{}, []models.Order]
	fetchForBrand *store.AsyncAction[string, []models.Order]
	fetchOne      *store.AsyncAction[string, models.Order]
}

func newOrderActions(client Caller) orderActions {
	return orderActions{
		fetchAll: &store.AsyncAction[struct{}, []models.Order]{
			Type:  "orders/fetchAllOrders",
			Slice: SliceOrders,
			Op:    store.OpFetchAll,
			Key:   noKey[struct{}],
			Run: func(ctx context.Context, _ struct{}) ([]models.Order, error) {
				return fetch[[]models.Order](ctx, client, api.OrdersList, api.Request{})
			},
		},
		fetchForBrand: &store.AsyncAction[string, []models.Order]{
			Type:  "orders/fetchBrandOrders",
			Slice: SliceOrders,
			Op:    store.OpFetchAll,
			Key:   noKey[string],
			Scope: idKey,
			Run: func(ctx context.Context, brandID string) ([]models.Order, error) {
				if err := requireBrandID(brandID); err != nil {
					return nil, err
				}
				return fetch[[]models.Order](ctx, client, api.OrdersListByBrand, api.Request{
					Params: map[string]string{"brandId": brandID},
				})
			},
		},
		fetchOne: &store.AsyncAction[string, models.Order]{
			Type:  "orders/fetchOrder",
			Slice: SliceOrders,
			Op:    store.OpFetchOne,
			Key:   idKey,
			Run: func(ctx context.Context, id string) (models.Order, error) {
				return fetch[models.Order](ctx, client, api.OrdersGet, byID(id))
			},
		},
	}
}

// FetchAllOrders loads every order
func (d *Dashboard) FetchAllOrders(ctx context.Context) ([]models.Order, error) {
	return d.orders.fetchAll.Dispatch(ctx, d.dispatcher, struct{}{})
}

// FetchBrandOrders loads the orders of brandID, or of the logged-in brand when empty
func (d *Dashboard) FetchBrandOrders(ctx context.Context, brandID string) ([]models.Order, error) {
	return d.orders.fetchForBrand.Dispatch(ctx, d.dispatcher, d.brandID(ctx, brandID))
}

// FetchOrder loads one order as the slice's current record
func (d *Dashboard) FetchOrder(ctx context.Context, id string) (models.Order, error) {
	return d.orders.fetchOne.Dispatch(ctx, d.dispatcher, id)
}
