package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricing() Pricing {
	return Pricing{DeliveryCharge: 25, FreeDeliveryMin: 500}
}

func newTestService() *Service {
	return NewService(NewInMemoryRepository(), testPricing(), "3-5 business days")
}

func validAddress() DeliveryAddress {
	return DeliveryAddress{Name: "Mina", Phone: "0812345678", Address: "1 Main Rd", City: "Bangkok", Pincode: "10110"}
}

func TestQuote(t *testing.T) {
	p := testPricing()

	charge, total := p.Quote(250)
	assert.Equal(t, 25.0, charge)
	assert.Equal(t, 275.0, total)

	charge, total = p.Quote(500)
	assert.Equal(t, 0.0, charge)
	assert.Equal(t, 500.0, total)

	charge, total = p.Quote(499.99)
	assert.Equal(t, 25.0, charge)
	assert.Equal(t, 524.99, total)
}

func TestCreate_RecomputesTotals(t *testing.T) {
	s := newTestService()

	// cart = [{price: 100, qty: 2}, {price: 50, qty: 1}]
	created, err := s.Create(
		Order{CustomerKey: "u-1", PaymentMethod: "cod", DeliveryAddress: validAddress()},
		[]Item{
			{ProductID: 1, Quantity: 2, UnitPrice: 100},
			{ProductID: 2, Quantity: 1, UnitPrice: 50},
		})
	require.NoError(t, err)
	assert.Equal(t, 250.0, created.Subtotal)
	assert.Equal(t, 25.0, created.DeliveryCharge)
	assert.Equal(t, 275.0, created.Total)
	assert.NotEmpty(t, created.OrderNumber)
	assert.Equal(t, "pending", created.Status)
}

func TestCreate_RejectsMismatchedTotals(t *testing.T) {
	s := newTestService()

	_, err := s.Create(
		Order{CustomerKey: "u-1", PaymentMethod: "cod", DeliveryAddress: validAddress(),
			Subtotal: 250, DeliveryCharge: 0, Total: 250},
		[]Item{{ProductID: 1, Quantity: 2, UnitPrice: 100}, {ProductID: 2, Quantity: 1, UnitPrice: 50}})
	require.ErrorIs(t, err, ErrTotalsMismatch)

	// matching totals pass
	_, err = s.Create(
		Order{CustomerKey: "u-1", PaymentMethod: "cod", DeliveryAddress: validAddress(),
			Subtotal: 250, DeliveryCharge: 25, Total: 275},
		[]Item{{ProductID: 1, Quantity: 2, UnitPrice: 100}, {ProductID: 2, Quantity: 1, UnitPrice: 50}})
	require.NoError(t, err)
}

func TestCreate_PersistsAllItemsWithSnapshotPrices(t *testing.T) {
	repo := NewInMemoryRepository()
	s := NewService(repo, testPricing(), "")

	created, err := s.Create(
		Order{CustomerKey: "u-9", PaymentMethod: "card", DeliveryAddress: validAddress()},
		[]Item{
			{ProductID: 1, SellerID: 4, Quantity: 2, UnitPrice: 100},
			{ProductID: 2, Quantity: 1, UnitPrice: 50},
			{ProductID: 3, Quantity: 3, UnitPrice: 10},
		})
	require.NoError(t, err)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 3)
	for _, it := range stored.Items {
		assert.Equal(t, created.ID, it.OrderID)
	}
	assert.Equal(t, 100.0, stored.Items[0].UnitPrice)
	assert.Equal(t, 200.0, stored.Items[0].TotalPrice)
	assert.Equal(t, 4, stored.Items[0].SellerID)
}

func TestCreate_Validation(t *testing.T) {
	s := newTestService()

	_, err := s.Create(Order{CustomerKey: "u-1", PaymentMethod: "cod", DeliveryAddress: validAddress()}, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = s.Create(Order{CustomerKey: "u-1", PaymentMethod: "cod", DeliveryAddress: validAddress()},
		[]Item{{ProductID: 1, Quantity: 0, UnitPrice: 10}})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = s.Create(Order{PaymentMethod: "cod", DeliveryAddress: validAddress()},
		[]Item{{ProductID: 1, Quantity: 1, UnitPrice: 10}})
	assert.ErrorIs(t, err, ErrMissingCustomer)

	addr := validAddress()
	addr.Pincode = ""
	_, err = s.Create(Order{CustomerKey: "u-1", PaymentMethod: "cod", DeliveryAddress: addr},
		[]Item{{ProductID: 1, Quantity: 1, UnitPrice: 10}})
	require.ErrorIs(t, err, ErrIncompleteAddress)
	assert.Contains(t, err.Error(), "pincode")
}

func TestCreate_DuplicateOrderNumber(t *testing.T) {
	s := newTestService()

	items := []Item{{ProductID: 1, Quantity: 1, UnitPrice: 10}}
	_, err := s.Create(Order{OrderNumber: "ORD-1", CustomerKey: "u-1", PaymentMethod: "cod", DeliveryAddress: validAddress()}, items)
	require.NoError(t, err)

	_, err = s.Create(Order{OrderNumber: "ORD-1", CustomerKey: "u-2", PaymentMethod: "cod", DeliveryAddress: validAddress()}, items)
	assert.ErrorIs(t, err, ErrDuplicateOrderNumber)
}

func TestMissingFields(t *testing.T) {
	missing := DeliveryAddress{City: "Bangkok"}.MissingFields()
	assert.ElementsMatch(t, []string{"name", "phone", "address", "pincode"}, missing)
	assert.Empty(t, validAddress().MissingFields())
}
