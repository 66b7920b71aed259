// Package dashboard composes the Collably resource slices into a single store and exposes
// one method per async action the admin dashboard dispatches.
package dashboard

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/session"
	"github.com/Ramsey-B/collably/pkg/store"
)

// Store keys of the composed slices
const (
	SliceBrands             = "brands"
	SliceProducts           = "products"
	SliceUsers              = "users"
	SliceUserSearch         = "userSearch"
	SliceOrders             = "orders"
	SliceBlogs              = "blogs"
	SliceBrandReferrals     = "brandReferrals"
	SliceBrandUsers         = "brandUsers"
	SliceUserBrandReferrals = "userBrandReferrals"
)

// ErrBrandIDNotFound is the rejection of brand-scoped actions run without a brand id
const ErrBrandIDNotFound = "Brand ID not found"

// Caller performs one call of the route table. It is implemented by *api.Client.
type Caller interface {
	Call(ctx context.Context, key api.RouteKey, req api.Request, out any) error
}

// Dashboard is the dashboard's store plus the async actions that settle it
type Dashboard struct {
	store      *store.Store
	dispatcher store.Dispatcher
	client     Caller
	session    *session.Session
	logger     ectologger.Logger

	Brands             *store.Slice[models.Brand]
	Products           *store.Slice[models.Product]
	Users              *store.Slice[models.User]
	UserSearch         *store.Slice[models.User]
	Orders             *store.Slice[models.Order]
	Blogs              *store.Slice[models.Blog]
	BrandReferrals     *store.Slice[models.Referral]
	BrandUsers         *store.Slice[models.BrandUser]
	UserBrandReferrals *store.Slice[models.Referral]

	brands    brandActions
	products  productActions
	users     userActions
	orders    orderActions
	blogs     blogActions
	referrals referralActions
}

// New builds the store with every slice registered
func New(client Caller, sess *session.Session, logger ectologger.Logger) *Dashboard {
	d := &Dashboard{
		client:  client,
		session: sess,
		logger:  logger,

		Brands:             store.NewSlice[models.Brand](SliceBrands),
		Products:           store.NewSlice[models.Product](SliceProducts),
		Users:              store.NewSlice[models.User](SliceUsers),
		UserSearch:         store.NewSlice[models.User](SliceUserSearch),
		Orders:             store.NewSlice[models.Order](SliceOrders),
		Blogs:              store.NewSlice[models.Blog](SliceBlogs),
		BrandReferrals:     store.NewSlice[models.Referral](SliceBrandReferrals),
		BrandUsers:         store.NewSlice[models.BrandUser](SliceBrandUsers),
		UserBrandReferrals: store.NewSlice[models.Referral](SliceUserBrandReferrals),
	}

	d.store = store.NewStore(logger,
		d.Brands,
		d.Products,
		d.Users,
		d.UserSearch,
		d.Orders,
		d.Blogs,
		d.BrandReferrals,
		d.BrandUsers,
		d.UserBrandReferrals,
	)
	d.dispatcher = d.store

	d.brands = newBrandActions(client)
	d.products = newProductActions(client)
	d.users = newUserActions(client)
	d.orders = newOrderActions(client)
	d.blogs = newBlogActions(client)
	d.referrals = newReferralActions(client)

	return d
}

// Store returns the composed store for snapshots and subscriptions
func (d *Dashboard) Store() *store.Store {
	return d.store
}

// Session returns the session the dashboard reads the brand id and token from
func (d *Dashboard) Session() *session.Session {
	return d.session
}

// Scoped returns a dashboard whose actions dispatch through a fresh scope. Calling the
// returned func closes the scope; settlements still in flight are then ignored.
func (d *Dashboard) Scoped() (*Dashboard, func()) {
	scope := d.store.NewScope()
	scoped := *d
	scoped.dispatcher = scope
	return &scoped, scope.Close
}

// brandID resolves an explicit brand id, falling back to the logged-in brand
func (d *Dashboard) brandID(ctx context.Context, explicit string) string {
	if explicit != "" || d.session == nil {
		return explicit
	}
	id, err := d.session.BrandID(ctx)
	if err != nil {
		d.logger.WithContext(ctx).WithError(err).Warn("failed to read brand id from session")
		return ""
	}
	return id
}

func requireBrandID(brandID string) error {
	if brandID == "" {
		return apierrors.Validation(ErrBrandIDNotFound)
	}
	return nil
}

func noKey[I any](I) string { return "" }

func idKey(id string) string { return id }

func fetch[O any](ctx context.Context, client Caller, key api.RouteKey, req api.Request) (O, error) {
	var out O
	err := client.Call(ctx, key, req, &out)
	return out, err
}

func byID(id string) api.Request {
	return api.Request{Params: map[string]string{"id": id}}
}

func remove(ctx context.Context, client Caller, key api.RouteKey, id string) (string, error) {
	if err := client.Call(ctx, key, byID(id), nil); err != nil {
		return "", err
	}
	return id, nil
}

// withBody builds a request for input, switching to multipart when a file is attached
func withBody(input any, attachment *models.Attachment, params map[string]string) (api.Request, error) {
	req, err := api.Body(input, attachment)
	if err != nil {
		return api.Request{}, err
	}
	req.Params = params
	return req, nil
}
