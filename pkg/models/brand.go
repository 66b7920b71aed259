package models

// SocialMediaLinks holds a brand's social profiles
type SocialMediaLinks struct {
	Facebook  string `json:"facebook,omitempty" yaml:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
}

// Brand is a company account that owns products
type Brand struct {
	ID               string           `json:"_id" yaml:"id"`
	BrandName        string           `json:"brandName" yaml:"brandName"`
	BrandLogo        string           `json:"brandLogo,omitempty" yaml:"brandLogo,omitempty"`
	BrandDescription string           `json:"brandDescription,omitempty" yaml:"brandDescription,omitempty"`
	BrandCategory    string           `json:"brandCategory,omitempty" yaml:"brandCategory,omitempty"`
	ContactEmail     string           `json:"contactEmail" yaml:"contactEmail"`
	BrandWebsite     string           `json:"brandWebsite,omitempty" yaml:"brandWebsite,omitempty"`
	BrandPhoneNumber string           `json:"brandPhoneNumber,omitempty" yaml:"brandPhoneNumber,omitempty"`
	SocialMediaLinks SocialMediaLinks `json:"socialMediaLinks" yaml:"socialMediaLinks"`
	GSTNumber        string           `json:"gstNumber,omitempty" yaml:"gstNumber,omitempty"`
	Password         string           `json:"password,omitempty" yaml:"-"`
}

func (b Brand) GetID() string { return b.ID }

// BrandInput is the body of a brand create or update
type BrandInput struct {
	BrandName        string           `json:"brandName" validate:"required"`
	BrandDescription string           `json:"brandDescription,omitempty"`
	BrandCategory    string           `json:"brandCategory" validate:"required"`
	ContactEmail     string           `json:"contactEmail" validate:"required,email"`
	BrandWebsite     string           `json:"brandWebsite,omitempty"`
	BrandPhoneNumber string           `json:"brandPhoneNumber,omitempty"`
	SocialMediaLinks SocialMediaLinks `json:"socialMediaLinks"`
	GSTNumber        string           `json:"gstNumber,omitempty"`
	Password         string           `json:"password,omitempty"`

	Logo *Attachment `json:"-"`
}
