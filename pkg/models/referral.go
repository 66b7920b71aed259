package models

// ReferralUser is the referring user summary embedded in a referral
type ReferralUser struct {
	ID       string `json:"_id" yaml:"id"`
	Fullname string `json:"fullname" yaml:"fullname"`
	Username string `json:"username" yaml:"username"`
}

// Referral is a tracked referral link of a user for a brand
type Referral struct {
	ID           string       `json:"_id" yaml:"id"`
	UserID       ReferralUser `json:"userId" yaml:"userId"`
	ReferralLink string       `json:"referralLink" yaml:"referralLink"`
	Clicks       int          `json:"clicks" yaml:"clicks"`
	CreatedAt    string       `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

func (r Referral) GetID() string { return r.ID }
