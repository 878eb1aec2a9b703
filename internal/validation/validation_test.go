package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwtech/license-orderflow/internal/apperr"
	"github.com/nwtech/license-orderflow/internal/catalog"
)

func TestCreateOrderRequest_Valid(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		ContactName:  "Jane",
		ContactEmail: "jane@example.com",
		Items: []OrderItemRequest{
			{SKU: "SAAD-PRO-1Y", Quantity: 2},
			{SKU: "SAAD-BASIC-1Y", Quantity: 1},
		},
	}
	require.NoError(t, v.Struct(req))

	in := req.Input()
	require.Len(t, in.Items, 2)
	assert.Equal(t, "SAAD-PRO-1Y", in.Items[0].SKU)
	assert.Equal(t, 2, in.Items[0].Quantity)
}

func TestCreateOrderRequest_FieldErrors(t *testing.T) {
	v := New()

	err := v.Struct(CreateOrderRequest{
		ContactEmail: "nope",
		Items:        []OrderItemRequest{{SKU: "X", Quantity: 0}},
	})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "field required", fields["contact_name"])
	assert.Equal(t, "value is not a valid email address", fields["contact_email"])
	assert.Contains(t, fields, "items[0].quantity")
}

func TestCreateOrderRequest_EmptyItems(t *testing.T) {
	v := New()

	err := v.Struct(CreateOrderRequest{ContactName: "Jane", ContactEmail: "jane@example.com", Items: []OrderItemRequest{}})
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "items")
}

func TestCreateProductRequest_Defaults(t *testing.T) {
	v := New()
	price := 10.0

	req := CreateProductRequest{Name: "Widget", SKU: "W-1", Price: &price}
	require.NoError(t, v.Struct(req))

	p := req.Product()
	assert.Equal(t, catalog.DefaultVendor, p.Vendor)
	assert.Equal(t, 12, p.DurationMonths)
	assert.Equal(t, []string{}, p.Features)
	assert.Equal(t, 10.0, p.Price)
}

func TestCreateProductRequest_Ranges(t *testing.T) {
	v := New()
	negative := -1.0
	zero := 0.0
	tooLong := 61

	err := v.Struct(CreateProductRequest{Name: "W", SKU: "W", Price: &negative})
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "price")

	err = v.Struct(CreateProductRequest{Name: "W", SKU: "W", Price: &zero, DurationMonths: &tooLong})
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "duration_months")

	err = v.Struct(CreateProductRequest{Name: "W", SKU: "W"})
	require.Error(t, err)
	assert.Equal(t, "field required", FieldErrors(err)["price"])
}

func TestBindAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := New()

	bind := func(body string) error {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req CreateOrderRequest
		return BindAndValidate(c, &req, v)
	}

	require.NoError(t, bind(`{"contact_name":"Jane","contact_email":"jane@example.com","items":[{"sku":"A","quantity":1,"unit_price":0.01}]}`))

	err := bind(`{"contact_name":`)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	err = bind(`{"contact_name":"Jane","contact_email":"jane@example.com","items":[]}`)
	require.True(t, apperr.Is(err, apperr.CodeValidation))
	fields, ok := apperr.As(err).Details()["fields"].(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "items")
}
