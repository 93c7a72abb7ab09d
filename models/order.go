package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses as the backend reports them
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment methods the checkout knows about.
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

// Order is the store's own order record as seen by the storefront. The
// backend-issued OrderID and FinalAmount are the sole source of truth for
// everything that follows order creation (gateway order, verification,
// navigation).
type Order struct {
	OrderID         string          `json:"orderId"`
	FinalAmount     float64         `json:"finalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          OrderStatus     `json:"status,omitempty"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Products        []OrderProduct  `json:"products"`
	CreatedAt       time.Time       `json:"createdAt,omitempty"`
}

type OrderProduct struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ShippingAddress is built from the checkout form at submission time and
// never persisted beyond the order-creation payload.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// MissingFields lists the required shipping fields that are empty.
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
