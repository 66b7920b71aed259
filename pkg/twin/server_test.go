package twin

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
}

func do(t *testing.T, s *Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var decoded map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec.Code, decoded
}

func TestServer_BrandLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodPost, "/createbrand", "", map[string]any{
		"brandName":    "Acme",
		"contactEmail": "hello@acme.io",
		"password":     "secret",
	})
	require.Equal(t, http.StatusCreated, code)
	brand := body["brand"].(map[string]any)
	id := brand["_id"].(string)
	assert.NotEmpty(t, id)
	assert.NotContains(t, brand, "password")

	code, body = do(t, s, http.MethodPost, "/createbrand", "", map[string]any{
		"brandName":    "Acme Again",
		"contactEmail": "HELLO@acme.io",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Brand with this email already exists", body["message"])

	code, body = do(t, s, http.MethodPut, "/brandupdate/"+id, "", map[string]any{"brandName": "Acme Co"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Acme Co", body["brand"].(map[string]any)["brandName"])
	assert.Equal(t, "hello@acme.io", body["brand"].(map[string]any)["contactEmail"])

	code, body = do(t, s, http.MethodPost, "/brandlogin", "", map[string]any{"contactEmail": "hello@acme.io", "password": "secret"})
	require.Equal(t, http.StatusOK, code, "password survives an update without one")
	assert.NotEmpty(t, body["token"])

	code, _ = do(t, s, http.MethodDelete, "/brand/"+id, "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = do(t, s, http.MethodGet, "/brand/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Brand not found", body["message"])
}

func TestServer_ListBrandsIsBareArray(t *testing.T) {
	s := newTestServer(t)
	s.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "a@acme.io"})

	req := httptest.NewRequest(http.MethodGet, "/brands", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var brands []models.Brand
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brands))
	require.Len(t, brands, 1)
	assert.Equal(t, "Acme", brands[0].BrandName)
}

func TestServer_AdminLogin(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodPost, "/admin_login", "", map[string]any{"email": AdminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["message"])

	code, body = do(t, s, http.MethodPost, "/admin_login", "", map[string]any{"email": AdminEmail, "password": AdminPassword})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, AdminEmail, body["admin"].(map[string]any)["email"])
}

func TestServer_AuthRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodGet, "/referrals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", body["message"])

	token := s.Data().IssueToken(models.RoleAdmin, "admin-1", "", "Admin")
	code, _ = do(t, s, http.MethodGet, "/referrals", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, s.Data().Calls(api.ReferralsList))
}

func TestServer_FailNext(t *testing.T) {
	s := newTestServer(t)
	s.Data().FailNext(api.BrandsCreate, http.StatusInternalServerError, "duplicate email")

	code, body := do(t, s, http.MethodPost, "/createbrand", "", map[string]any{"brandName": "Acme", "contactEmail": "a@acme.io"})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "duplicate email", body["message"])

	code, _ = do(t, s, http.MethodPost, "/createbrand", "", map[string]any{"brandName": "Acme", "contactEmail": "a@acme.io"})
	assert.Equal(t, http.StatusCreated, code, "faults apply to a single call")
}

func TestServer_BrandProductsUseCallerBrand(t *testing.T) {
	s := newTestServer(t)
	acme := s.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "a@acme.io"})
	other := s.Data().SeedBrand(models.Brand{BrandName: "Other", ContactEmail: "o@other.io"})
	s.Data().SeedProduct(models.Product{BrandID: acme.ID, ProductName: "Tee"})
	s.Data().SeedProduct(models.Product{BrandID: other.ID, ProductName: "Mug"})

	token := s.Data().IssueToken(models.RoleBrand, acme.ID, acme.ID, acme.BrandName)
	code, body := do(t, s, http.MethodGet, "/brand/products", token, nil)
	require.Equal(t, http.StatusOK, code)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Tee", products[0].(map[string]any)["productname"])
	assert.Equal(t, models.ProductStatusDraft, products[0].(map[string]any)["status"])
}

func TestServer_FollowAndUnfollow(t *testing.T) {
	s := newTestServer(t)
	alice := s.Data().SeedUser(models.User{Fullname: "Alice", Username: "alice", Email: "alice@x.io"})
	bob := s.Data().SeedUser(models.User{Fullname: "Bob", Username: "bob", Email: "bob@x.io"})
	token := s.Data().IssueToken("user", alice.ID, "", alice.Fullname)

	code, body := do(t, s, http.MethodPatch, "/user/"+bob.ID+"/follow", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{alice.ID}, body["user"].(map[string]any)["followers"])

	updated, _ := s.data.users.get(alice.ID)
	assert.Equal(t, []string{bob.ID}, updated.Following)

	code, _ = do(t, s, http.MethodPatch, "/user/"+bob.ID+"/follow", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = do(t, s, http.MethodPatch, "/user/"+bob.ID+"/unfollow", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["user"].(map[string]any)["followers"])
}

func TestServer_SearchUsers(t *testing.T) {
	s := newTestServer(t)
	s.Data().SeedUser(models.User{Fullname: "Alice", Username: "alice", Email: "alice@x.io"})
	s.Data().SeedUser(models.User{Fullname: "Bob", Username: "bob", Email: "bob@x.io"})
	token := s.Data().IssueToken(models.RoleAdmin, "admin-1", "", "Admin")

	code, body := do(t, s, http.MethodGet, "/search?username=AL", token, nil)
	require.Equal(t, http.StatusOK, code)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].(map[string]any)["username"])
}

func TestServer_BrandOrders(t *testing.T) {
	s := newTestServer(t)
	acme := s.Data().SeedBrand(models.Brand{BrandName: "Acme", ContactEmail: "a@acme.io"})
	tee := s.Data().SeedProduct(models.Product{BrandID: acme.ID, ProductName: "Tee"})
	s.Data().SeedOrder(models.Order{Items: []models.OrderItem{{Product: tee.ID, Quantity: 1}}})
	s.Data().SeedOrder(models.Order{Items: []models.OrderItem{{Product: "elsewhere", Quantity: 1}}})
	token := s.Data().IssueToken(models.RoleBrand, acme.ID, acme.ID, acme.BrandName)

	code, body := do(t, s, http.MethodGet, "/brand/"+acme.ID+"/orders", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["orders"].([]any), 1)

	code, body = do(t, s, http.MethodGet, "/getall/orders", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["orders"].([]any), 2)
}

func TestServer_Referrals(t *testing.T) {
	s := newTestServer(t)
	s.Data().SeedReferral("b1", models.Referral{UserID: models.ReferralUser{ID: "u1"}, ReferralLink: "https://collably.in/r/1", Clicks: 4})
	s.Data().SeedReferral("b2", models.Referral{UserID: models.ReferralUser{ID: "u1"}, ReferralLink: "https://collably.in/r/2"})
	s.Data().SeedBrandUser("b1", models.BrandUser{ID: "u1", Fullname: "Alice"})
	token := s.Data().IssueToken(models.RoleAdmin, "admin-1", "", "Admin")

	get := func(path string) []map[string]any {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", token)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
		var items []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		return items
	}

	assert.Len(t, get("/referrals"), 2)
	assert.Len(t, get("/referral/brand/b1"), 1)
	assert.Len(t, get("/referrals/u1/b2"), 1)
	users := get("/referrals/users/brand/b1")
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0]["fullname"])
}

func TestServer_MultipartBrandCreate(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("brandName", "Acme"))
	require.NoError(t, writer.WriteField("contactEmail", "a@acme.io"))
	require.NoError(t, writer.WriteField("socialMediaLinks", `{"instagram":"@acme"}`))
	part, err := writer.CreateFormFile("brandLogo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/createbrand", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	brands := s.Data().Brands()
	require.Len(t, brands, 1)
	assert.Equal(t, "/uploads/logo.png", brands[0].BrandLogo)
	assert.Equal(t, "@acme", brands[0].SocialMediaLinks.Instagram)
}

func TestServer_BlogLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.Data().IssueToken(models.RoleAdmin, "admin-1", "", "Admin")

	code, body := do(t, s, http.MethodPost, "/upload", token, map[string]any{"title": "Hello"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = do(t, s, http.MethodPost, "/upload", token, map[string]any{"title": "Hello", "content": "World", "category": "News"})
	require.Equal(t, http.StatusCreated, code)
	blog := body["blog"].(map[string]any)
	assert.Equal(t, "Admin", blog["author"])
	id := blog["_id"].(string)

	code, body = do(t, s, http.MethodGet, "/view_blogs/"+id, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello", body["blog"].(map[string]any)["title"])

	code, _ = do(t, s, http.MethodDelete, "/delete_blogs/"+id, token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, s.Data().Blogs())
}

func TestEchoPath(t *testing.T) {
	assert.Equal(t, "/referrals/:userId/:brandId", echoPath("/referrals/{userId}/{brandId}"))
	assert.Equal(t, "/brands", echoPath("/brands"))
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	code, body := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}
