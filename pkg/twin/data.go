package twin

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/models"
)

// Default admin credentials seeded into every server
const (
	AdminEmail    = "admin@collably.in"
	AdminPassword = "admin123"
)

type principal struct {
	Role    string
	ID      string
	BrandID string
	Name    string
}

type fault struct {
	status  int
	message string
}

// Data is the in-memory state behind the fake API
type Data struct {
	brands     *table[models.Brand]
	products   *table[models.Product]
	users      *table[models.User]
	orders     *table[models.Order]
	blogs      *table[models.Blog]
	referrals  *table[brandReferral]
	brandUsers *table[brandUser]

	mu     sync.Mutex
	admins map[string]models.Admin
	// passwords are keyed by admin email or brand id
	passwords map[string]string
	tokens    map[string]principal
	faults    map[api.RouteKey][]fault
	calls     map[api.RouteKey]int
}

// brandReferral is a referral scoped to a brand
type brandReferral struct {
	models.Referral
	BrandID string
}

func (r brandReferral) GetID() string { return r.ID }

// brandUser is a user attached to a brand through a referral
type brandUser struct {
	models.BrandUser
	BrandID string
	key     string
}

func (u brandUser) GetID() string { return u.key }

func newData() *Data {
	d := &Data{
		brands:     newTable[models.Brand](),
		products:   newTable[models.Product](),
		users:      newTable[models.User](),
		orders:     newTable[models.Order](),
		blogs:      newTable[models.Blog](),
		referrals:  newTable[brandReferral](),
		brandUsers: newTable[brandUser](),
	}
	d.Reset()
	return d
}

// Reset drops every record, token and fault, then re-seeds the admin account
func (d *Data) Reset() {
	d.brands.reset()
	d.products.reset()
	d.users.reset()
	d.orders.reset()
	d.blogs.reset()
	d.referrals.reset()
	d.brandUsers.reset()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.admins = map[string]models.Admin{
		AdminEmail: {ID: newID(), Email: AdminEmail, Name: "Admin"},
	}
	d.passwords = map[string]string{AdminEmail: AdminPassword}
	d.tokens = make(map[string]principal)
	d.faults = make(map[api.RouteKey][]fault)
	d.calls = make(map[api.RouteKey]int)
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SeedBrand stores a brand, assigning an id when empty. The password, if any,
// is kept for brand login and never returned.
func (d *Data) SeedBrand(brand models.Brand) models.Brand {
	if brand.ID == "" {
		brand.ID = newID()
	}
	d.mu.Lock()
	d.passwords[brand.ID] = brand.Password
	d.mu.Unlock()

	brand = publicBrand(brand)
	d.brands.put(brand)
	return brand
}

// SeedProduct stores a product, assigning an id when empty
func (d *Data) SeedProduct(product models.Product) models.Product {
	if product.ID == "" {
		product.ID = newID()
	}
	if product.Status == "" {
		product.Status = models.ProductStatusDraft
	}
	d.products.put(product)
	return product
}

// SeedUser stores a user, assigning an id when empty
func (d *Data) SeedUser(user models.User) models.User {
	if user.ID == "" {
		user.ID = newID()
	}
	user = normalizeUser(user)
	d.users.put(user)
	return user
}

// SeedOrder stores an order, assigning an id when empty
func (d *Data) SeedOrder(order models.Order) models.Order {
	if order.ID == "" {
		order.ID = newID()
	}
	d.orders.put(order)
	return order
}

// SeedBlog stores a blog, assigning an id when empty
func (d *Data) SeedBlog(blog models.Blog) models.Blog {
	if blog.ID == "" {
		blog.ID = newID()
	}
	d.blogs.put(blog)
	return blog
}

// SeedReferral stores a referral for a brand
func (d *Data) SeedReferral(brandID string, referral models.Referral) models.Referral {
	if referral.ID == "" {
		referral.ID = newID()
	}
	d.referrals.put(brandReferral{Referral: referral, BrandID: brandID})
	return referral
}

// SeedBrandUser attaches a user to a brand
func (d *Data) SeedBrandUser(brandID string, user models.BrandUser) models.BrandUser {
	if user.ID == "" {
		user.ID = newID()
	}
	d.brandUsers.put(brandUser{BrandUser: user, BrandID: brandID, key: brandID + "/" + user.ID})
	return user
}

// IssueToken creates a session token for a brand, as a successful brand login would
func (d *Data) IssueToken(role, id, brandID, name string) string {
	token := "tok_" + newID()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tokens[token] = principal{Role: role, ID: id, BrandID: brandID, Name: name}
	return token
}

// FailNext makes the next call to the route fail with status and message
func (d *Data) FailNext(key api.RouteKey, status int, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults[key] = append(d.faults[key], fault{status: status, message: message})
}

// Calls returns how many requests reached the route
func (d *Data) Calls(key api.RouteKey) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[key]
}

// Brands returns the stored brands
func (d *Data) Brands() []models.Brand { return d.brands.list() }

// Products returns the stored products
func (d *Data) Products() []models.Product { return d.products.list() }

// Users returns the stored users
func (d *Data) Users() []models.User { return d.users.list() }

// Blogs returns the stored blogs
func (d *Data) Blogs() []models.Blog { return d.blogs.list() }

func (d *Data) record(key api.RouteKey) (fault, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls[key]++
	queued := d.faults[key]
	if len(queued) == 0 {
		return fault{}, false
	}
	d.faults[key] = queued[1:]
	return queued[0], true
}

func (d *Data) password(key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.passwords[key]
}

func (d *Data) principalFor(token string) (principal, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.tokens[token]
	return p, ok
}

func (d *Data) adminLogin(email, password string) (models.Admin, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	admin, ok := d.admins[strings.ToLower(email)]
	if !ok || d.passwords[strings.ToLower(email)] != password {
		return models.Admin{}, false
	}
	return admin, true
}

func (d *Data) brandLogin(contactEmail, password string) (models.Brand, bool) {
	brand, ok := d.brands.find(func(b models.Brand) bool {
		return strings.EqualFold(b.ContactEmail, contactEmail)
	})
	if !ok {
		return models.Brand{}, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if stored := d.passwords[brand.ID]; stored == "" || stored != password {
		return models.Brand{}, false
	}
	return brand, true
}

func publicBrand(brand models.Brand) models.Brand {
	brand.Password = ""
	return brand
}

func normalizeUser(user models.User) models.User {
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	if user.Role == "" {
		user.Role = "user"
	}
	return user
}
