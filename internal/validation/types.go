package validation

import (
	"github.com/nwtech/license-orderflow/internal/catalog"
	"github.com/nwtech/license-orderflow/internal/orders"
)

const defaultDurationMonths = 12

// CreateProductRequest is the payload for POST /api/licenses.
type CreateProductRequest struct {
	Name           string   `json:"name" validate:"required"`
	SKU            string   `json:"sku" validate:"required"`
	Vendor         string   `json:"vendor"`
	Description    string   `json:"description"`
	Price          *float64 `json:"price" validate:"required,gte=0"`
	DurationMonths *int     `json:"duration_months" validate:"omitempty,min=1,max=60"`
	Tier           string   `json:"tier"`
	Features       []string `json:"features"`
	TermsURL       string   `json:"terms_url"`
}

// Product applies defaults and returns the catalog entry to store.
func (r CreateProductRequest) Product() catalog.Product {
	p := catalog.Product{
		Name:           r.Name,
		SKU:            r.SKU,
		Vendor:         r.Vendor,
		Description:    r.Description,
		DurationMonths: defaultDurationMonths,
		Tier:           r.Tier,
		Features:       r.Features,
		TermsURL:       r.TermsURL,
	}
	if p.Vendor == "" {
		p.Vendor = catalog.DefaultVendor
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.DurationMonths != nil {
		p.DurationMonths = *r.DurationMonths
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

// OrderItemRequest is one requested line. Any name or unit_price sent by the
// client is not decoded.
type OrderItemRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	Company      string             `json:"company"`
	ContactName  string             `json:"contact_name" validate:"required"`
	ContactEmail string             `json:"contact_email" validate:"required,email"`
	ContactPhone string             `json:"contact_phone"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes        string             `json:"notes"`
}

func (r CreateOrderRequest) Input() orders.PlaceOrderInput {
	lines := make([]orders.LineRequest, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, orders.LineRequest{SKU: it.SKU, Quantity: it.Quantity})
	}
	return orders.PlaceOrderInput{
		Company:      r.Company,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Notes:        r.Notes,
		Items:        lines,
	}
}
