package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/collably/pkg/models"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name    string
		page    int
		perPage int
		want    Page[int]
	}{
		{
			name: "first page", page: 1, perPage: 3,
			want: Page[int]{Items: []int{1, 2, 3}, Page: 1, PerPage: 3, Total: 7, TotalPages: 3, From: 1, To: 3},
		},
		{
			name: "last partial page", page: 3, perPage: 3,
			want: Page[int]{Items: []int{7}, Page: 3, PerPage: 3, Total: 7, TotalPages: 3, From: 7, To: 7},
		},
		{
			name: "page past the end is clamped", page: 9, perPage: 3,
			want: Page[int]{Items: []int{7}, Page: 3, PerPage: 3, Total: 7, TotalPages: 3, From: 7, To: 7},
		},
		{
			name: "page below one is clamped", page: 0, perPage: 5,
			want: Page[int]{Items: []int{1, 2, 3, 4, 5}, Page: 1, PerPage: 5, Total: 7, TotalPages: 2, From: 1, To: 5},
		},
		{
			name: "no page size shows everything", page: 1, perPage: 0,
			want: Page[int]{Items: items, Page: 1, PerPage: 7, Total: 7, TotalPages: 1, From: 1, To: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(items, tt.page, tt.perPage))
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]string{}, 2, 10)
	assert.Equal(t, Page[string]{Items: []string{}, Page: 1, PerPage: 10, TotalPages: 1}, page)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrev())
}

func TestProductFilter(t *testing.T) {
	products := []models.Product{
		{ID: "p1", BrandID: "b1", ProductName: "Shoe", Category: "Footwear", Quantity: 0, Status: models.ProductStatusPublished},
		{ID: "p2", BrandID: "b1", ProductName: "Tee", Category: "Apparel", Quantity: 4},
		{ID: "p3", BrandID: "b2", ProductName: "Sock", Category: "Footwear", Quantity: 9, Description: "wool"},
	}

	ids := func(ps []models.Product) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(ProductFilter{}.Apply(products)))
	assert.Equal(t, []string{"p1", "p2"}, ids(ProductFilter{BrandID: "b1"}.Apply(products)))
	assert.Equal(t, []string{"p1", "p3"}, ids(ProductFilter{Category: "footwear"}.Apply(products)))
	assert.Equal(t, []string{"p2", "p3"}, ids(ProductFilter{Stock: StockIn}.Apply(products)))
	assert.Equal(t, []string{"p1"}, ids(ProductFilter{Stock: StockOut}.Apply(products)))
	assert.Equal(t, []string{"p2", "p3"}, ids(ProductFilter{Status: models.ProductStatusDraft}.Apply(products)))
	assert.Equal(t, []string{"p2"}, ids(ProductFilter{Product: "tee"}.Apply(products)))
	assert.Equal(t, []string{"p3"}, ids(ProductFilter{Search: "WOOL"}.Apply(products)))
}

func TestTextFilters(t *testing.T) {
	brands := []models.Brand{{ID: "b1", BrandName: "Acme", BrandCategory: "Apparel"}, {ID: "b2", BrandName: "Zeta", BrandCategory: "Food"}}
	assert.Len(t, BrandFilter{Search: "appa"}.Apply(brands), 1)
	assert.Len(t, BrandFilter{}.Apply(brands), 2)

	users := []models.User{{Fullname: "Alice A", Email: "alice@x.io", Username: "ally"}, {Fullname: "Bob", Email: "bob@x.io", Username: "bobby"}}
	assert.Len(t, UserFilter{Search: "x.io"}.Apply(users), 2)
	assert.Len(t, UserFilter{Search: "ALLY"}.Apply(users), 1)

	blogs := []models.Blog{{Title: "Launch", Content: "Big news", Category: "News"}, {Title: "Tips", Content: "Style", Category: "Guides"}}
	assert.Len(t, BlogFilter{Category: "news"}.Apply(blogs), 1)
	assert.Len(t, BlogFilter{Search: "style"}.Apply(blogs), 1)
	assert.Empty(t, BlogFilter{Category: "News", Search: "style"}.Apply(blogs))
}

func TestCategories(t *testing.T) {
	products := []models.Product{{Category: "Footwear"}, {Category: ""}, {Category: "Apparel"}, {Category: "Footwear"}}
	assert.Equal(t, []string{"Footwear", "Apparel"}, Categories(products))
}

func TestBrandLookups(t *testing.T) {
	brands := []models.Brand{{ID: "b1", BrandName: "Acme"}, {ID: "b2", BrandName: "Zeta"}}

	assert.Equal(t, "Zeta", BrandNameByID(brands, "b2"))
	assert.Equal(t, UnknownBrand, BrandNameByID(brands, "missing"))

	id, ok := BrandIDByName(brands, " acme ")
	assert.True(t, ok)
	assert.Equal(t, "b1", id)

	_, ok = BrandIDByName(brands, "nope")
	assert.False(t, ok)
}
