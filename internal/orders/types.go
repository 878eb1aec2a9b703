package orders

import "time"

// Collection is the document collection holding placed orders.
const Collection = "licenseorder"

// Order statuses. Orders are created pending; later transitions are made
// outside this service.
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusApproved  = "approved"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
)

// Item is an order line, priced from the catalog at order time.
type Item struct {
	SKU       string  `dynamodbav:"sku" json:"sku" validate:"required"`
	Name      string  `dynamodbav:"name" json:"name" validate:"required"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity" validate:"min=1"`
	UnitPrice float64 `dynamodbav:"unit_price" json:"unit_price" validate:"gte=0"`
	Subtotal  float64 `dynamodbav:"subtotal" json:"subtotal" validate:"gte=0"`
}

// Order is the document stored in the licenseorder collection.
type Order struct {
	ID           string    `dynamodbav:"id,omitempty" json:"id" validate:"-"`
	Company      string    `dynamodbav:"company,omitempty" json:"company,omitempty"`
	ContactName  string    `dynamodbav:"contact_name" json:"contact_name" validate:"required"`
	ContactEmail string    `dynamodbav:"contact_email" json:"contact_email" validate:"required,email"`
	ContactPhone string    `dynamodbav:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Items        []Item    `dynamodbav:"items" json:"items" validate:"required,min=1,dive"`
	TotalAmount  float64   `dynamodbav:"total_amount" json:"total_amount" validate:"gte=0"`
	Vendor       string    `dynamodbav:"vendor" json:"vendor" validate:"required"`
	Status       string    `dynamodbav:"status" json:"status" validate:"oneof=pending reviewing approved fulfilled cancelled"`
	Notes        string    `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt    time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// LineRequest is one requested SKU and quantity.
type LineRequest struct {
	SKU      string
	Quantity int
}

// PlaceOrderInput carries the client-controlled part of an order.
type PlaceOrderInput struct {
	Company      string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Notes        string
	Items        []LineRequest
}

// Placement is the result of a successful PlaceOrder.
type Placement struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
	Status  string  `json:"status"`
}
