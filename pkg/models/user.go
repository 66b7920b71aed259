package models

// User is a creator account on the platform
type User struct {
	ID           string   `json:"_id" yaml:"id"`
	Fullname     string   `json:"fullname" yaml:"fullname"`
	Username     string   `json:"username" yaml:"username"`
	Email        string   `json:"email" yaml:"email"`
	Avatar       string   `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Role         string   `json:"role,omitempty" yaml:"role,omitempty"`
	Gender       string   `json:"gender,omitempty" yaml:"gender,omitempty"`
	Mobile       string   `json:"mobile,omitempty" yaml:"mobile,omitempty"`
	Address      string   `json:"address,omitempty" yaml:"address,omitempty"`
	Story        string   `json:"story,omitempty" yaml:"story,omitempty"`
	Website      string   `json:"website,omitempty" yaml:"website,omitempty"`
	Followers    []string `json:"followers" yaml:"followers"`
	Following    []string `json:"following" yaml:"following"`
	ReferralCode string   `json:"referralCode,omitempty" yaml:"referralCode,omitempty"`
	ReferredBy   *string  `json:"referredBy" yaml:"referredBy"`
}

func (u User) GetID() string { return u.ID }

// UserInput is the body of a user registration or profile update
type UserInput struct {
	// ID selects the profile on PATCH /user; empty on registration
	ID       string `json:"_id,omitempty"`
	Fullname string `json:"fullname" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Address  string `json:"address,omitempty"`
	Story    string `json:"story,omitempty"`
	Website  string `json:"website,omitempty"`

	Avatar *Attachment `json:"-"`
}

// BrandUser is a user who signed up through a brand's referral
type BrandUser struct {
	ID       string `json:"_id" yaml:"id"`
	Fullname string `json:"fullname" yaml:"fullname"`
	Email    string `json:"email" yaml:"email"`
	Username string `json:"username" yaml:"username"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty"`
}

func (u BrandUser) GetID() string { return u.ID }
