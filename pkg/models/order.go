package models

// OrderUser is the buyer summary embedded in an order
type OrderUser struct {
	ID       string `json:"_id" yaml:"id"`
	Fullname string `json:"fullname" yaml:"fullname"`
	Username string `json:"username" yaml:"username"`
}

// OrderItem is one line of an order
type OrderItem struct {
	Product  string  `json:"product" yaml:"product"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price" yaml:"price"`
}

// Order is a purchase placed by a user. Orders are read-only from the dashboard.
type Order struct {
	ID              string      `json:"_id" yaml:"id"`
	User            OrderUser   `json:"user" yaml:"user"`
	Items           []OrderItem `json:"items" yaml:"items"`
	TotalAmount     float64     `json:"totalAmount" yaml:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress,omitempty" yaml:"shippingAddress,omitempty"`
	PaymentStatus   string      `json:"paymentStatus,omitempty" yaml:"paymentStatus,omitempty"`
	OrderStatus     string      `json:"orderStatus,omitempty" yaml:"orderStatus,omitempty"`
	CreatedAt       string      `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt       string      `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (o Order) GetID() string { return o.ID }
