package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/apierrors"
	ctxkeys "github.com/Ramsey-B/collably/pkg/context"
	"github.com/Ramsey-B/collably/pkg/httpclient"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/twin"
)

type staticToken string

func (s staticToken) Token(_ context.Context) (string, error) { return string(s), nil }

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newTestClient(t *testing.T, tokens api.TokenSource) (*api.Client, *twin.Server) {
	t.Helper()
	server := twin.New(testLogger())
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, httpclient.NewClient(httpclient.DefaultConfig(), testLogger()), tokens, testLogger())
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	_, err := api.NewClient("collably.in/api", httpclient.NewClient(httpclient.DefaultConfig(), testLogger()), nil, testLogger())
	assert.Error(t, err)
}

func TestCall_UnwrapsEnvelope(t *testing.T) {
	client, server := newTestClient(t, nil)
	acme := server.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "a@acme.io"})
	server.Data().SeedProduct(models.Product{BrandID: acme.ID, ProductName: "Tee", Price: 10})

	var product models.Product
	err := client.Call(context.Background(), api.ProductsCreate, api.Request{
		JSON: models.ProductInput{BrandID: acme.ID, ProductName: "Mug", Price: 5},
	}, &product)
	require.NoError(t, err)
	assert.Equal(t, "Mug", product.ProductName)
	assert.NotEmpty(t, product.ID)

	var products []models.Product
	require.NoError(t, client.Call(context.Background(), api.ProductsList, api.Request{}, &products))
	assert.Len(t, products, 2)
}

func TestCall_BareFallback(t *testing.T) {
	client, server := newTestClient(t, nil)
	acme := server.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "a@acme.io"})

	var brand models.Brand
	err := client.Call(context.Background(), api.BrandsGet, api.Request{Params: map[string]string{"id": acme.ID}}, &brand)
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.BrandName)
}

func TestCall_EmptyUserListIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, nil)

	var users []models.User
	require.NoError(t, client.Call(context.Background(), api.UsersList, api.Request{}, &users))
	assert.Empty(t, users)
}

func TestCall_ServerMessageBecomesError(t *testing.T) {
	client, server := newTestClient(t, nil)
	server.Data().FailNext(api.BrandsCreate, http.StatusInternalServerError, "duplicate email")

	err := client.Call(context.Background(), api.BrandsCreate, api.Request{
		JSON: models.BrandInput{BrandName: "Acme", BrandCategory: "Apparel", ContactEmail: "a@acme.io"},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "duplicate email", err.Error())
	assert.Equal(t, apierrors.KindServer, apierrors.KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, apierrors.StatusCode(err))
}

func TestCall_StatusKinds(t *testing.T) {
	client, _ := newTestClient(t, nil)

	err := client.Call(context.Background(), api.BrandsGet, api.Request{Params: map[string]string{"id": "missing"}}, nil)
	assert.True(t, apierrors.IsNotFound(err))
	assert.Equal(t, "Brand not found", err.Error())

	err = client.Call(context.Background(), api.ReferralsList, api.Request{}, nil)
	assert.True(t, apierrors.IsUnauthorized(err))
}

func TestCall_SendsToken(t *testing.T) {
	server := twin.New(testLogger())
	token := server.Data().IssueToken(models.RoleAdmin, "admin-1", "", "Admin")
	server.Data().SeedReferral("b1", models.Referral{ReferralLink: "https://collably.in/r/1"})
	ts := httptest.NewServer(server)
	defer ts.Close()

	client, err := api.NewClient(ts.URL, httpclient.NewClient(httpclient.DefaultConfig(), testLogger()), staticToken(token), testLogger())
	require.NoError(t, err)

	var referrals []models.Referral
	require.NoError(t, client.Call(context.Background(), api.ReferralsList, api.Request{}, &referrals))
	assert.Len(t, referrals, 1)
}

func TestCall_MissingPathParameter(t *testing.T) {
	client, server := newTestClient(t, nil)

	err := client.Call(context.Background(), api.BrandsGet, api.Request{}, nil)
	assert.True(t, apierrors.IsValidation(err))
	assert.Equal(t, 0, server.Data().Calls(api.BrandsGet))
}

func TestCall_QueryParameters(t *testing.T) {
	server := twin.New(testLogger())
	server.Data().SeedUser(models.User{Fullname: "Alice", Username: "alice", Email: "alice@x.io"})
	token := server.Data().IssueToken(models.RoleAdmin, "admin-1", "", "Admin")

	client, err := api.NewClient(clientURL(t, server), httpclient.NewClient(httpclient.DefaultConfig(), testLogger()), staticToken(token), testLogger())
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, client.Call(context.Background(), api.UsersSearch, api.Request{Query: url.Values{"username": {"ali"}}}, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestCall_SendsDispatchingAction(t *testing.T) {
	headers := make(chan http.Header, 2)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"brands":[]}`))
	}))
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, httpclient.NewClient(httpclient.DefaultConfig(), testLogger()), nil, testLogger())
	require.NoError(t, err)

	ctx := ctxkeys.SetActionToken(ctxkeys.SetAction(context.Background(), "brands/fetchAllBrands"), "token-1")
	require.NoError(t, client.Call(ctx, api.BrandsList, api.Request{}, nil))
	header := <-headers
	assert.Equal(t, "brands/fetchAllBrands", header.Get(string(ctxkeys.ActionKey)))
	assert.Equal(t, "token-1", header.Get(string(ctxkeys.ActionTokenKey)))

	require.NoError(t, client.Call(context.Background(), api.BrandsList, api.Request{}, nil))
	assert.Empty(t, (<-headers).Get(string(ctxkeys.ActionKey)))
}

func TestCall_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	baseURL := ts.URL
	ts.Close()

	client, err := api.NewClient(baseURL, httpclient.NewClient(httpclient.DefaultConfig(), testLogger()), nil, testLogger())
	require.NoError(t, err)

	err = client.Call(context.Background(), api.BrandsList, api.Request{}, nil)
	require.Error(t, err)
	assert.True(t, apierrors.IsNetworkError(err))
	assert.Contains(t, err.Error(), "Failed to fetch brands")
}

func TestCall_Canceled(t *testing.T) {
	blocked := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-blocked:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(blocked)

	client, err := api.NewClient(ts.URL, httpclient.NewClient(httpclient.DefaultConfig(), testLogger()), nil, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err = client.Call(ctx, api.BrandsList, api.Request{}, nil)
	assert.True(t, apierrors.IsCanceled(err))
}

func TestCall_MultipartUpload(t *testing.T) {
	client, server := newTestClient(t, nil)

	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("png"), 0o600))

	input := models.BrandInput{
		BrandName:        "Acme",
		BrandCategory:    "Apparel",
		ContactEmail:     "a@acme.io",
		SocialMediaLinks: models.SocialMediaLinks{Instagram: "@acme"},
	}
	req, err := api.Body(input, &models.Attachment{Field: "brandLogo", Path: logo})
	require.NoError(t, err)
	require.NotNil(t, req.Form)

	var brand models.Brand
	require.NoError(t, client.Call(context.Background(), api.BrandsCreate, req, &brand))
	assert.Equal(t, "/uploads/logo.png", brand.BrandLogo)
	assert.Equal(t, "@acme", brand.SocialMediaLinks.Instagram)
	assert.Len(t, server.Data().Brands(), 1)
}

func TestRoutes_Complete(t *testing.T) {
	routes := api.Routes()
	assert.Len(t, routes, 32)
	for _, route := range routes {
		assert.NotEmpty(t, route.Method, route.Key)
		assert.NotEmpty(t, route.Op, route.Key)
	}

	route, ok := api.Lookup(api.BrandsUpdate)
	require.True(t, ok)
	assert.Equal(t, "/brandupdate/{id}", route.Path)
}

func clientURL(t *testing.T, server *twin.Server) string {
	t.Helper()
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts.URL
}
