package cart

import (
	"testing"

	"github.com/wirote65/storefront-backend/internal/product"
)

func seedProducts() *product.InMemoryRepository {
	return product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Collar", Price: 100, Active: true},
		{ID: 2, Name: "Bed", Price: 50, Active: true},
	})
}

func seedRepo() *InMemoryRepository {
	return NewInMemoryRepository(seedProducts())
}

func TestAdd_SameProductMergesIntoOneRow(t *testing.T) {
	s := NewService(seedRepo())
	owner := Owner{SessionID: "sess-1"}

	if _, err := s.Add(owner, 1, 2); err != nil {
		t.Fatal(err)
	}
	item, err := s.Add(owner, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", item.Quantity)
	}

	lines, err := s.List(owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single row after duplicate add, got %d", len(lines))
	}
}

func TestAdd_QuantityDefaultsToOne(t *testing.T) {
	s := NewService(seedRepo())

	item, err := s.Add(Owner{UserID: 7}, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", item.Quantity)
	}
}

func TestUpdateQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	s := NewService(seedRepo())
	owner := Owner{UserID: 7}

	item, err := s.Add(owner, 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.UpdateQuantity(item.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil item after removal, got %+v", got)
	}

	lines, err := s.List(owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after removal, got %+v", lines)
	}

	if _, err := s.UpdateQuantity(item.ID, 3); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound for removed item, got %v", err)
	}
}

func TestList_DropsDanglingProductRows(t *testing.T) {
	products := seedProducts()
	s := NewService(NewInMemoryRepository(products))
	owner := Owner{SessionID: "sess-2"}

	if _, err := s.Add(owner, 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(owner, 2, 1); err != nil {
		t.Fatal(err)
	}

	products.Remove(2)

	lines, err := s.List(owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].Item.ProductID != 1 {
		t.Fatalf("expected dangling row to be dropped, got %+v", lines)
	}
}

func TestClear_ScopedToOwner(t *testing.T) {
	s := NewService(seedRepo())
	a := Owner{SessionID: "sess-a"}
	b := Owner{SessionID: "sess-b"}

	if _, err := s.Add(a, 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(b, 1, 1); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(a); err != nil {
		t.Fatal(err)
	}

	linesA, _ := s.List(a)
	linesB, _ := s.List(b)
	if len(linesA) != 0 {
		t.Fatalf("expected cart a cleared, got %+v", linesA)
	}
	if len(linesB) != 1 {
		t.Fatalf("expected cart b untouched, got %+v", linesB)
	}
}

func TestResolveOwner(t *testing.T) {
	if _, err := ResolveOwner(0, ""); err != ErrNoOwner {
		t.Fatalf("expected ErrNoOwner, got %v", err)
	}
	o, err := ResolveOwner(3, "sess")
	if err != nil {
		t.Fatal(err)
	}
	if o.UserID != 3 || o.SessionID != "" {
		t.Fatalf("expected userId to win over sessionId, got %+v", o)
	}
}
