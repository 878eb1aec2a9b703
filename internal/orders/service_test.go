package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwtech/license-orderflow/internal/apperr"
	"github.com/nwtech/license-orderflow/internal/catalog"
	"github.com/nwtech/license-orderflow/internal/docstore"
)

// recordingStore counts writes per collection on top of the in-memory store.
type recordingStore struct {
	*docstore.Memory
	inserts map[string]int
	findErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Memory: docstore.NewMemory(), inserts: map[string]int{}}
}

func (r *recordingStore) FindOne(ctx context.Context, collection string, filter docstore.Filter, out any) (bool, error) {
	if r.findErr != nil {
		return false, r.findErr
	}
	return r.Memory.FindOne(ctx, collection, filter, out)
}

func (r *recordingStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	r.inserts[collection]++
	return r.Memory.Insert(ctx, collection, doc)
}

func seededService(t *testing.T) (*Service, *recordingStore) {
	t.Helper()
	store := newRecordingStore()
	_, err := catalog.NewService(store.Memory).Seed(context.Background())
	require.NoError(t, err)

	svc := NewService(store, nil)
	svc.nowFunc = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func validInput(items ...LineRequest) PlaceOrderInput {
	return PlaceOrderInput{
		Company:      "Acme",
		ContactName:  "Jane Doe",
		ContactEmail: "jane@acme.test",
		Items:        items,
	}
}

func TestPlaceOrder_PricesFromCatalog(t *testing.T) {
	svc, store := seededService(t)
	ctx := context.Background()

	got, err := svc.PlaceOrder(ctx, validInput(LineRequest{SKU: "SAAD-PRO-1Y", Quantity: 2}))
	require.NoError(t, err)
	assert.NotEmpty(t, got.OrderID)
	assert.Equal(t, 498.0, got.Total)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, 1, store.inserts[Collection])

	var persisted Order
	found, err := store.FindOne(ctx, Collection, docstore.Filter{docstore.IDField: got.OrderID}, &persisted)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, "Saad Pro", persisted.Items[0].Name)
	assert.Equal(t, 249.0, persisted.Items[0].UnitPrice)
	assert.Equal(t, 498.0, persisted.Items[0].Subtotal)
	assert.Equal(t, catalog.DefaultVendor, persisted.Vendor)
	assert.Equal(t, StatusPending, persisted.Status)
}

func TestPlaceOrder_MultipleLines(t *testing.T) {
	svc, _ := seededService(t)

	got, err := svc.PlaceOrder(context.Background(), validInput(
		LineRequest{SKU: "SAAD-BASIC-1Y", Quantity: 3},
		LineRequest{SKU: "SAAD-ENT-1Y", Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, 896.0, got.Total)
}

func TestPlaceOrder_UnknownSKUWritesNothing(t *testing.T) {
	svc, store := seededService(t)

	_, err := svc.PlaceOrder(context.Background(), validInput(
		LineRequest{SKU: "SAAD-PRO-1Y", Quantity: 1},
		LineRequest{SKU: "NOPE", Quantity: 1},
		LineRequest{SKU: "ALSO-MISSING", Quantity: 1},
	))
	require.Error(t, err)
	typed := apperr.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperr.CodeNotFound, typed.Code())
	assert.Contains(t, typed.Message(), "NOPE")
	assert.Equal(t, "NOPE", typed.Details()["sku"])
	assert.Zero(t, store.inserts[Collection])
}

func TestPlaceOrder_RoundsTotal(t *testing.T) {
	store := newRecordingStore()
	ctx := context.Background()
	for _, p := range []catalog.Product{
		{Name: "Thirds", SKU: "T", Vendor: "Saad", Price: 0.333, DurationMonths: 1},
		{Name: "Cents", SKU: "C", Vendor: "Saad", Price: 10.005, DurationMonths: 1},
	} {
		_, err := catalog.NewService(store).Create(ctx, p)
		require.NoError(t, err)
	}
	svc := NewService(store, nil)

	got, err := svc.PlaceOrder(ctx, validInput(
		LineRequest{SKU: "T", Quantity: 3},
		LineRequest{SKU: "C", Quantity: 1},
	))
	require.NoError(t, err)
	// 0.999 + 10.005 = 11.004
	assert.Equal(t, 11.0, got.Total)

	var persisted Order
	found, err := store.FindOne(ctx, Collection, docstore.Filter{docstore.IDField: got.OrderID}, &persisted)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, got.Total, persisted.TotalAmount)
}

func TestPlaceOrder_InvalidAssembledOrder(t *testing.T) {
	svc, store := seededService(t)

	in := validInput(LineRequest{SKU: "SAAD-PRO-1Y", Quantity: 1})
	in.ContactEmail = "not-an-email"
	_, err := svc.PlaceOrder(context.Background(), in)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	assert.Zero(t, store.inserts[Collection])
}

func TestPlaceOrder_StoreErrors(t *testing.T) {
	svc, store := seededService(t)
	store.findErr = errors.New("throttled")

	_, err := svc.PlaceOrder(context.Background(), validInput(LineRequest{SKU: "SAAD-PRO-1Y", Quantity: 1}))
	assert.True(t, apperr.Is(err, apperr.CodeInternal))
	assert.Zero(t, store.inserts[Collection])
}

func TestListOrders(t *testing.T) {
	svc, store := seededService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, validInput(LineRequest{SKU: "SAAD-PRO-1Y", Quantity: 1}))
	require.NoError(t, err)
	other := validInput(LineRequest{SKU: "SAAD-BASIC-1Y", Quantity: 1})
	other.ContactEmail = "bob@example.test"
	_, err = svc.PlaceOrder(ctx, other)
	require.NoError(t, err)
	_, err = store.Insert(ctx, Collection, Order{ContactEmail: "jane@acme.test", Vendor: "Acme", Status: StatusPending})
	require.NoError(t, err)

	all, err := svc.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, o := range all {
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, catalog.DefaultVendor, o.Vendor)
	}

	bob, err := svc.ListOrders(ctx, "bob@example.test")
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, "SAAD-BASIC-1Y", bob[0].Items[0].SKU)

	none, err := svc.ListOrders(ctx, "nobody@example.test")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUnconfiguredStore(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.PlaceOrder(context.Background(), validInput(LineRequest{SKU: "X", Quantity: 1}))
	assert.True(t, apperr.Is(err, apperr.CodeUnavailable))

	_, err = svc.ListOrders(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.CodeUnavailable))
}

func TestPlaceOrder_HalfCentTotalRoundsToEven(t *testing.T) {
	store := newRecordingStore()
	ctx := context.Background()
	_, err := catalog.NewService(store).Create(ctx, catalog.Product{Name: "Eighth", SKU: "E", Vendor: "Saad", Price: 0.125, DurationMonths: 1})
	require.NoError(t, err)

	got, err := NewService(store, nil).PlaceOrder(ctx, validInput(LineRequest{SKU: "E", Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, 0.12, got.Total)
}
