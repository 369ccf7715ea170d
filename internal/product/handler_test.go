package product

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func makeApp() *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seedProducts())), zap.NewNop())
	h.RegisterPublicRoutes(app)
	return app
}

func TestGetProducts_QueryFilters(t *testing.T) {
	app := makeApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/products?categoryId=2&search=collar", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var got []Product
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	// product 4 matches category+search but is inactive; listing is active-only
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only product 1, got %+v", got)
	}
}

func TestGetProducts_Featured(t *testing.T) {
	app := makeApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/products?featured=true", nil))
	if err != nil {
		t.Fatal(err)
	}
	var got []Product
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected featured product 2, got %+v", got)
	}
}

func TestGetProducts_ByIDs(t *testing.T) {
	app := makeApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/products?ids=1,3", nil))
	if err != nil {
		t.Fatal(err)
	}
	var got []Product
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected products 1 and 3, got %+v", got)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/products?ids=1,x", nil))
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad ids, got %d", res2.StatusCode)
	}
}

func TestGetProducts_BadQuery(t *testing.T) {
	app := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/api/products?categoryId=abc", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad categoryId, got %d", res.StatusCode)
	}
	res2, _ := app.Test(httptest.NewRequest("GET", "/api/products?priceRange=cheap", nil))
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad priceRange, got %d", res2.StatusCode)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	app := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/api/products/99", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}
