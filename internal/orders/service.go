package orders

import (
	"context"
	"fmt"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/nwtech/license-orderflow/internal/apperr"
	"github.com/nwtech/license-orderflow/internal/catalog"
	"github.com/nwtech/license-orderflow/internal/docstore"
)

// Service prices orders against the catalog and persists them.
type Service struct {
	store    docstore.Store
	validate *validatorv10.Validate
	nowFunc  func() time.Time
}

// NewService returns an order Service. A nil store makes every call fail
// with a service-unavailable error.
func NewService(store docstore.Store, v *validatorv10.Validate) *Service {
	if v == nil {
		v = validatorv10.New()
	}
	return &Service{
		store:    store,
		validate: v,
		nowFunc:  time.Now,
	}
}

// PlaceOrder re-prices every requested line from the catalog and inserts a
// single pending order. Lines are resolved in request order and the first
// unknown SKU aborts the call before anything is written.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (Placement, error) {
	if s.store == nil {
		return Placement{}, apperr.Unavailable()
	}

	items := make([]Item, 0, len(in.Items))
	total := decimal.Zero
	for _, line := range in.Items {
		var product catalog.Product
		found, err := s.store.FindOne(ctx, catalog.Collection, docstore.Filter{"sku": line.SKU}, &product)
		if err != nil {
			return Placement{}, apperr.Wrap(apperr.CodeInternal, err, "Database error")
		}
		if !found {
			return Placement{}, apperr.New(apperr.CodeNotFound, fmt.Sprintf("SKU not found: %s", line.SKU)).
				WithDetails(map[string]any{"sku": line.SKU})
		}
		item, subtotal := priceLine(product, line.Quantity)
		items = append(items, item)
		total = total.Add(subtotal)
	}

	now := s.nowFunc().UTC()
	order := Order{
		Company:      in.Company,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Items:        items,
		TotalAmount:  roundTotal(total),
		Vendor:       catalog.DefaultVendor,
		Status:       StatusPending,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.validate.Struct(order); err != nil {
		return Placement{}, apperr.Wrap(apperr.CodeValidation, err, "Invalid order")
	}

	id, err := s.store.Insert(ctx, Collection, order)
	if err != nil {
		return Placement{}, apperr.Wrap(apperr.CodeInternal, err, "Database error")
	}
	return Placement{OrderID: id, Total: order.TotalAmount, Status: order.Status}, nil
}

// ListOrders returns every order tagged with the default vendor, optionally
// narrowed to one contact email.
func (s *Service) ListOrders(ctx context.Context, email string) ([]Order, error) {
	if s.store == nil {
		return nil, apperr.Unavailable()
	}

	filter := docstore.Filter{"vendor": catalog.DefaultVendor}
	if email != "" {
		filter["contact_email"] = email
	}
	var out []Order
	if err := s.store.FindMany(ctx, Collection, filter, &out); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "Database error")
	}
	if out == nil {
		out = []Order{}
	}
	return out, nil
}
