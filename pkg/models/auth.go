package models

const (
	RoleAdmin = "admin"
	RoleBrand = "brand"
)

// Credentials are the login form values. Identifier is the admin email or the
// brand contact email.
type Credentials struct {
	Identifier string `json:"-" validate:"required"`
	Password   string `json:"-" validate:"required"`
}

// AdminLoginBody is the body of POST /admin_login
type AdminLoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BrandLoginBody is the body of POST /brandlogin
type BrandLoginBody struct {
	ContactEmail string `json:"contactEmail"`
	Password     string `json:"password"`
}

// Admin is the admin account returned by a successful admin login
type Admin struct {
	ID    string `json:"_id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// LoginResponse is returned by both login routes
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
	Brand   *Brand `json:"brand,omitempty"`
	Admin   *Admin `json:"admin,omitempty"`
}
