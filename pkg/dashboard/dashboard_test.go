package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/httpclient"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/session"
	"github.com/Ramsey-B/collably/pkg/store"
	"github.com/Ramsey-B/collably/pkg/twin"
)

type fixture struct {
	dashboard *Dashboard
	server    *twin.Server
	session   *session.Session
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

	server := twin.New(logger)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	sess := session.New(session.NewMemoryStore(), logger)
	client, err := api.NewClient(ts.URL, httpclient.NewClient(httpclient.DefaultConfig(), logger), sess, logger)
	require.NoError(t, err)

	return fixture{
		dashboard: New(client, sess, logger),
		server:    server,
		session:   sess,
	}
}

func TestDashboard_RegistersEverySlice(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{
		SliceBlogs,
		SliceBrandReferrals,
		SliceBrandUsers,
		SliceBrands,
		SliceOrders,
		SliceProducts,
		SliceUserBrandReferrals,
		SliceUserSearch,
		SliceUsers,
	}, f.dashboard.Store().Keys())
}

func TestDashboard_FetchAllProducts(t *testing.T) {
	f := newFixture(t)
	shoe := f.server.Data().SeedProduct(models.Product{ID: "p1", ProductName: "Shoe", Price: 10, Quantity: 0})

	products, err := f.dashboard.FetchAllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Product{shoe}, products)

	state := f.dashboard.Products.State()
	assert.Equal(t, store.StatusSucceeded, state.Status)
	if diff := cmp.Diff([]models.Product{shoe}, state.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	again, err := f.dashboard.FetchAllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, again, "repeated fetch-all is idempotent")
}

func TestDashboard_DeleteProduct(t *testing.T) {
	f := newFixture(t)
	f.server.Data().SeedProduct(models.Product{ID: "p1", ProductName: "Shoe", Price: 10})

	_, err := f.dashboard.FetchAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, f.dashboard.Products.State().Items, 1)

	require.NoError(t, f.dashboard.DeleteProduct(context.Background(), "p1"))
	assert.Empty(t, f.dashboard.Products.State().Items)
	assert.Equal(t, store.StatusSucceeded, f.dashboard.Products.State().Status)
}

func TestDashboard_CreateBrandServerError(t *testing.T) {
	f := newFixture(t)
	f.server.Data().SeedBrand(models.Brand{ID: "b1", BrandName: "Existing", ContactEmail: "e@x.io"})
	_, err := f.dashboard.FetchAllBrands(context.Background())
	require.NoError(t, err)
	before := f.dashboard.Brands.State().Items

	f.server.Data().FailNext(api.BrandsCreate, http.StatusInternalServerError, "duplicate email")
	_, err = f.dashboard.CreateBrand(context.Background(), models.BrandInput{
		BrandName:     "Acme",
		BrandCategory: "Apparel",
		ContactEmail:  "a@acme.io",
	})
	require.Error(t, err)

	state := f.dashboard.Brands.State()
	assert.Equal(t, store.StatusFailed, state.Status)
	assert.Equal(t, "duplicate email", state.Error)
	assert.Equal(t, apierrors.KindServer, state.ErrorKind)
	assert.Equal(t, before, state.Items)
}

func TestDashboard_CreateBrandValidatesBeforeDispatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.dashboard.CreateBrand(context.Background(), models.BrandInput{BrandName: "Acme", BrandCategory: "Apparel"})
	assert.True(t, apierrors.IsValidation(err))
	assert.Equal(t, 0, f.server.Data().Calls(api.BrandsCreate))
	assert.Equal(t, store.StatusIdle, f.dashboard.Brands.State().Status)
}

func TestDashboard_CreateAndUpdateBrand(t *testing.T) {
	f := newFixture(t)
	f.server.Data().SeedBrand(models.Brand{ID: "b0", BrandName: "Other", ContactEmail: "o@x.io"})
	_, err := f.dashboard.FetchAllBrands(context.Background())
	require.NoError(t, err)

	input := models.BrandInput{BrandName: "Acme", BrandCategory: "Apparel", ContactEmail: "a@acme.io"}
	created, err := f.dashboard.CreateBrand(context.Background(), input)
	require.NoError(t, err)

	items := f.dashboard.Brands.State().Items
	require.Len(t, items, 2)
	assert.Equal(t, created, items[1])

	input.BrandName = "Acme Co"
	updated, err := f.dashboard.UpdateBrand(context.Background(), created.ID, input)
	require.NoError(t, err)

	state := f.dashboard.Brands.State()
	assert.Equal(t, "Other", state.Items[0].BrandName, "other items are untouched")
	assert.Equal(t, updated, state.Items[1])
	require.NotNil(t, state.Current)
	assert.Equal(t, updated, *state.Current)
}

func TestDashboard_BrandScopedActionsNeedBrandID(t *testing.T) {
	f := newFixture(t)

	_, err := f.dashboard.FetchBrandProducts(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, ErrBrandIDNotFound, err.Error())

	state := f.dashboard.Products.State()
	assert.Equal(t, store.StatusFailed, state.Status)
	assert.Equal(t, ErrBrandIDNotFound, state.Error)
	assert.Equal(t, apierrors.KindValidation, state.ErrorKind)
}

func TestDashboard_BrandLoginScopesFetches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.server.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "a@acme.io", Password: "secret"})
	other := f.server.Data().SeedBrand(models.Brand{BrandName: "Other", ContactEmail: "o@x.io"})
	f.server.Data().SeedProduct(models.Product{BrandID: acme.ID, ProductName: "Tee"})
	f.server.Data().SeedProduct(models.Product{BrandID: other.ID, ProductName: "Mug"})
	f.server.Data().SeedReferral(acme.ID, models.Referral{UserID: models.ReferralUser{ID: "u1"}, ReferralLink: "https://collably.in/r/1"})

	_, err := f.dashboard.BrandLogin(ctx, models.Credentials{Identifier: "a@acme.io", Password: "secret"})
	require.NoError(t, err)

	info, err := f.session.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Info{LoggedIn: true, Role: models.RoleBrand, BrandID: acme.ID, UserName: "Acme", HasToken: true}, info)

	products, err := f.dashboard.FetchBrandProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tee", products[0].ProductName)
	assert.Equal(t, acme.ID, f.dashboard.Products.State().Scope)

	referrals, err := f.dashboard.FetchUserBrandReferrals(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, referrals, 1)
	assert.Equal(t, "u1", f.dashboard.UserBrandReferrals.State().Scope)
}

func TestDashboard_AdminLoginFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dashboard.AdminLogin(ctx, models.Credentials{Identifier: twin.AdminEmail, Password: "wrong"})
	assert.True(t, apierrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid email or password", err.Error())

	loggedIn, err := f.session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestDashboard_LogoutResetsEverySlice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.server.Data().SeedProduct(models.Product{ProductName: "Tee"})
	f.server.Data().SeedBlog(models.Blog{Title: "Hello", Content: "World", Category: "News"})

	_, err := f.dashboard.AdminLogin(ctx, models.Credentials{Identifier: twin.AdminEmail, Password: twin.AdminPassword})
	require.NoError(t, err)
	_, err = f.dashboard.FetchAllProducts(ctx)
	require.NoError(t, err)
	_, err = f.dashboard.FetchAllBlogs(ctx)
	require.NoError(t, err)

	require.NoError(t, f.dashboard.Logout(ctx))

	assert.Empty(t, f.dashboard.Products.State().Items)
	assert.Equal(t, store.StatusIdle, f.dashboard.Products.State().Status)
	assert.Empty(t, f.dashboard.Blogs.State().Items)
	token, err := f.session.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestDashboard_ClearBlogs(t *testing.T) {
	f := newFixture(t)
	f.server.Data().SeedBlog(models.Blog{Title: "Hello", Content: "World", Category: "News"})
	_, err := f.dashboard.FetchAllBlogs(context.Background())
	require.NoError(t, err)

	f.dashboard.ClearBlogs()
	assert.Equal(t, store.State[models.Blog]{Items: []models.Blog{}, Status: store.StatusIdle},
		f.dashboard.Blogs.State())
}

func TestDashboard_FollowReplacesWithoutTouchingCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.server.Data().SeedUser(models.User{Fullname: "Alice", Username: "alice", Email: "alice@x.io"})
	bob := f.server.Data().SeedUser(models.User{Fullname: "Bob", Username: "bob", Email: "bob@x.io"})
	token := f.server.Data().IssueToken("user", alice.ID, "", "Alice")
	require.NoError(t, f.session.SaveAdmin(ctx, token, "Alice"))

	_, err := f.dashboard.FetchAllUsers(ctx)
	require.NoError(t, err)
	_, err = f.dashboard.FetchUser(ctx, alice.ID)
	require.NoError(t, err)

	followed, err := f.dashboard.FollowUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, followed.Followers)

	state := f.dashboard.Users.State()
	got, ok := state.Find(bob.ID)
	require.True(t, ok)
	assert.Equal(t, followed, got)
	require.NotNil(t, state.Current)
	assert.Equal(t, alice.ID, state.Current.ID, "current is only re-synced when the ids match")
}

func TestDashboard_SearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.server.Data().SeedUser(models.User{Fullname: "Alice", Username: "alice", Email: "alice@x.io"})
	f.server.Data().SeedUser(models.User{Fullname: "Bob", Username: "bob", Email: "bob@x.io"})
	_, err := f.dashboard.AdminLogin(ctx, models.Credentials{Identifier: twin.AdminEmail, Password: twin.AdminPassword})
	require.NoError(t, err)

	users, err := f.dashboard.SearchUsers(ctx, "bo")
	require.NoError(t, err)
	require.Len(t, users, 1)

	state := f.dashboard.UserSearch.State()
	assert.Equal(t, "bo", state.Scope)
	assert.Empty(t, f.dashboard.Users.State().Items, "search results live in their own slice")
}

func TestDashboard_FetchAllUsersEmpty(t *testing.T) {
	f := newFixture(t)

	users, err := f.dashboard.FetchAllUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, store.StatusSucceeded, f.dashboard.Users.State().Status)
}

func TestDashboard_ClosedScopeCancelsActions(t *testing.T) {
	f := newFixture(t)
	scoped, closeScope := f.dashboard.Scoped()
	closeScope()

	f.server.Data().SeedProduct(models.Product{ProductName: "Tee"})
	_, err := scoped.FetchAllProducts(context.Background())
	assert.True(t, apierrors.IsCanceled(err))
	assert.Empty(t, f.dashboard.Products.State().Items)
	assert.Equal(t, store.StatusIdle, f.dashboard.Products.State().Status)
}

// gatedCaller holds the first call to key until release is closed
type gatedCaller struct {
	Caller
	key     api.RouteKey
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (g *gatedCaller) Call(ctx context.Context, key api.RouteKey, req api.Request, out any) error {
	if key == g.key {
		held := false
		g.once.Do(func() { held = true })
		if held {
			close(g.started)
			<-g.release
		}
	}
	return g.Caller.Call(ctx, key, req, out)
}

func TestDashboard_ConcurrentDistinctUpdatesBothReachTheAPI(t *testing.T) {
	f := newFixture(t)
	brand := f.server.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "acme@example.com"})
	product := f.server.Data().SeedProduct(models.Product{BrandID: brand.ID, ProductName: "Tee", Price: 5})

	gate := &gatedCaller{
		Caller:  f.dashboard.client,
		key:     api.ProductsUpdate,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	d := New(gate, f.session, f.dashboard.logger)

	input := models.ProductInput{BrandID: brand.ID, ProductName: "Tee", Price: 10}
	first := make(chan models.Product, 1)
	go func() {
		out, err := d.UpdateProduct(context.Background(), product.ID, input)
		assert.NoError(t, err)
		first <- out
	}()
	<-gate.started

	input.Price = 99
	second, err := d.UpdateProduct(context.Background(), product.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 99.0, second.Price)
	close(gate.release)

	assert.Equal(t, 10.0, (<-first).Price)
	assert.Equal(t, 2, f.server.Data().Calls(api.ProductsUpdate))
}

func TestDashboard_Orders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.server.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "a@acme.io"})
	tee := f.server.Data().SeedProduct(models.Product{BrandID: acme.ID, ProductName: "Tee"})
	order := f.server.Data().SeedOrder(models.Order{
		User:        models.OrderUser{ID: "u1", Fullname: "Alice"},
		Items:       []models.OrderItem{{Product: tee.ID, Quantity: 2, Price: 10}},
		TotalAmount: 20,
	})
	_, err := f.dashboard.AdminLogin(ctx, models.Credentials{Identifier: twin.AdminEmail, Password: twin.AdminPassword})
	require.NoError(t, err)

	orders, err := f.dashboard.FetchBrandOrders(ctx, acme.ID)
	require.NoError(t, err)
	if diff := cmp.Diff([]models.Order{order}, orders, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}

	got, err := f.dashboard.FetchOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, got.TotalAmount)
}
