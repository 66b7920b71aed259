package api

import (
	"net/http"
	"sort"
)

// RouteKey names one entry of the route table
type RouteKey string

const (
	BrandsCreate RouteKey = "brands.create"
	BrandsList   RouteKey = "brands.list"
	BrandsGet    RouteKey = "brands.get"
	BrandsUpdate RouteKey = "brands.update"
	BrandsDelete RouteKey = "brands.delete"

	ProductsCreate      RouteKey = "products.create"
	ProductsList        RouteKey = "products.list"
	ProductsListByBrand RouteKey = "products.listByBrand"
	ProductsGet         RouteKey = "products.get"
	ProductsUpdate      RouteKey = "products.update"
	ProductsDelete      RouteKey = "products.delete"

	UsersCreate   RouteKey = "users.create"
	UsersList     RouteKey = "users.list"
	UsersGet      RouteKey = "users.get"
	UsersUpdate   RouteKey = "users.update"
	UsersFollow   RouteKey = "users.follow"
	UsersUnfollow RouteKey = "users.unfollow"
	UsersSearch   RouteKey = "users.search"

	OrdersList        RouteKey = "orders.list"
	OrdersListByBrand RouteKey = "orders.listByBrand"
	OrdersGet         RouteKey = "orders.get"

	AuthAdminLogin RouteKey = "auth.adminLogin"
	AuthBrandLogin RouteKey = "auth.brandLogin"

	ReferralsList         RouteKey = "referrals.list"
	ReferralsByBrand      RouteKey = "referrals.byBrand"
	ReferralsUsersByBrand RouteKey = "referrals.usersByBrand"
	ReferralsUserBrand    RouteKey = "referrals.userBrand"

	BlogsCreate RouteKey = "blogs.create"
	BlogsList   RouteKey = "blogs.list"
	BlogsGet    RouteKey = "blogs.get"
	BlogsUpdate RouteKey = "blogs.update"
	BlogsDelete RouteKey = "blogs.delete"
)

// Route is one fixed endpoint of the Collably API
type Route struct {
	Key    RouteKey
	Method string
	// Path may contain {id}, {userId} and {brandId} placeholders
	Path string
	// Envelope is a JMESPath expression selecting the payload from the response body
	Envelope string
	// AllowBare accepts the whole body as payload when Envelope matches nothing
	AllowBare bool
	// Auth marks routes that require the session token
	Auth bool
	// Op and Resource build the fallback "Failed to <op> <resource>" message
	Op       string
	Resource string
}

var routes = map[RouteKey]Route{
	BrandsCreate: {Method: http.MethodPost, Path: "/createbrand", Envelope: "brand", AllowBare: true, Op: "create", Resource: "brand"},
	BrandsList:   {Method: http.MethodGet, Path: "/brands", Envelope: "brands", AllowBare: true, Op: "fetch", Resource: "brands"},
	BrandsGet:    {Method: http.MethodGet, Path: "/brand/{id}", Envelope: "brand", AllowBare: true, Op: "fetch", Resource: "brand"},
	BrandsUpdate: {Method: http.MethodPut, Path: "/brandupdate/{id}", Envelope: "brand", AllowBare: true, Op: "update", Resource: "brand"},
	BrandsDelete: {Method: http.MethodDelete, Path: "/brand/{id}", Op: "delete", Resource: "brand"},

	ProductsCreate:      {Method: http.MethodPost, Path: "/create/product", Envelope: "product", AllowBare: true, Op: "create", Resource: "product"},
	ProductsList:        {Method: http.MethodGet, Path: "/getallproducts", Envelope: "products", AllowBare: true, Op: "fetch", Resource: "products"},
	ProductsListByBrand: {Method: http.MethodGet, Path: "/brand/products", Envelope: "products", AllowBare: true, Auth: true, Op: "fetch", Resource: "brand products"},
	ProductsGet:         {Method: http.MethodGet, Path: "/product/{id}", Envelope: "product", AllowBare: true, Op: "fetch", Resource: "product"},
	ProductsUpdate:      {Method: http.MethodPut, Path: "/updateproduct/{id}", Envelope: "product", AllowBare: true, Op: "update", Resource: "product"},
	ProductsDelete:      {Method: http.MethodDelete, Path: "/deleteproduct/{id}", Op: "delete", Resource: "product"},

	UsersCreate:   {Method: http.MethodPost, Path: "/register", Envelope: "user", AllowBare: true, Op: "create", Resource: "user"},
	UsersList:     {Method: http.MethodGet, Path: "/user", Envelope: "users || `[]`", Op: "fetch", Resource: "users"},
	UsersGet:      {Method: http.MethodGet, Path: "/user/{id}", Envelope: "user", AllowBare: true, Op: "fetch", Resource: "user"},
	UsersUpdate:   {Method: http.MethodPatch, Path: "/user", Envelope: "user", AllowBare: true, Auth: true, Op: "update", Resource: "user"},
	UsersFollow:   {Method: http.MethodPatch, Path: "/user/{id}/follow", Envelope: "user", AllowBare: true, Auth: true, Op: "follow", Resource: "user"},
	UsersUnfollow: {Method: http.MethodPatch, Path: "/user/{id}/unfollow", Envelope: "user", AllowBare: true, Auth: true, Op: "unfollow", Resource: "user"},
	UsersSearch:   {Method: http.MethodGet, Path: "/search", Envelope: "users", AllowBare: true, Auth: true, Op: "search", Resource: "users"},

	OrdersList:        {Method: http.MethodGet, Path: "/getall/orders", Envelope: "orders", AllowBare: true, Op: "fetch", Resource: "orders"},
	OrdersListByBrand: {Method: http.MethodGet, Path: "/brand/{brandId}/orders", Envelope: "orders", AllowBare: true, Auth: true, Op: "fetch", Resource: "brand orders"},
	OrdersGet:         {Method: http.MethodGet, Path: "/order/{id}", Envelope: "order", AllowBare: true, Op: "fetch", Resource: "order"},

	AuthAdminLogin: {Method: http.MethodPost, Path: "/admin_login", Op: "log in", Resource: "admin"},
	AuthBrandLogin: {Method: http.MethodPost, Path: "/brandlogin", Op: "log in", Resource: "brand"},

	ReferralsList:         {Method: http.MethodGet, Path: "/referrals", Auth: true, Op: "fetch", Resource: "all brand referrals"},
	ReferralsByBrand:      {Method: http.MethodGet, Path: "/referral/brand/{brandId}", Auth: true, Op: "fetch", Resource: "brand referrals"},
	ReferralsUsersByBrand: {Method: http.MethodGet, Path: "/referrals/users/brand/{brandId}", Auth: true, Op: "fetch", Resource: "brand users"},
	ReferralsUserBrand:    {Method: http.MethodGet, Path: "/referrals/{userId}/{brandId}", Auth: true, Op: "fetch", Resource: "user brand referrals"},

	BlogsCreate: {Method: http.MethodPost, Path: "/upload", Envelope: "blog", Auth: true, Op: "create", Resource: "blog"},
	BlogsList:   {Method: http.MethodGet, Path: "/view_blogs", Envelope: "blogs", Op: "fetch", Resource: "blogs"},
	BlogsGet:    {Method: http.MethodGet, Path: "/view_blogs/{id}", Envelope: "blog", Op: "fetch", Resource: "blog"},
	BlogsUpdate: {Method: http.MethodPut, Path: "/update_blog/{id}", Envelope: "blog", Auth: true, Op: "update", Resource: "blog"},
	BlogsDelete: {Method: http.MethodDelete, Path: "/delete_blogs/{id}", Auth: true, Op: "delete", Resource: "blog"},
}

// Lookup returns the route registered under key
func Lookup(key RouteKey) (Route, bool) {
	route, ok := routes[key]
	if !ok {
		return Route{}, false
	}
	route.Key = key
	return route, true
}

// Routes returns the full route table ordered by key
func Routes() []Route {
	result := make([]Route, 0, len(routes))
	for key := range routes {
		route, _ := Lookup(key)
		result = append(result, route)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}
