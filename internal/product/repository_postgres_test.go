package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "localized_name", "description", "price", "original_price",
		"image", "image_second", "brand", "stock", "category_id", "rating",
		"review_count", "featured", "active",
	})
}

func TestList_SearchQueryShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(1, "Cat Collar", nil, "soft collar", 120.0, nil, nil, nil, nil, 10, 2, 4.5, 3, false, true)
	mock.ExpectQuery("SELECT .* FROM products WHERE active AND category_id = \\$1 AND \\(name ILIKE \\$2 OR localized_name ILIKE \\$2 OR description ILIKE \\$2\\)").
		WithArgs(2, "%collar%").
		WillReturnRows(rows)

	cat := 2
	got, err := repo.List(Filter{CategoryID: &cat, Search: "collar", ActiveOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Cat Collar" {
		t.Fatalf("unexpected result %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestList_ByIDsUsesArrayParam(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(1, "Cat Collar", nil, "soft collar", 120.0, nil, nil, nil, nil, 10, 2, 4.5, 3, false, true).
		AddRow(3, "Aquarium", nil, "glass tank", 2400.0, nil, nil, nil, nil, 2, 3, 0.0, 0, false, true)
	mock.ExpectQuery("SELECT .* FROM products WHERE active AND id = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]int{1, 3})).
		WillReturnRows(rows)

	got, err := repo.List(Filter{IDs: []int{1, 3}, ActiveOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT .* FROM products WHERE id = \\$1").
		WithArgs(99).
		WillReturnRows(productRows())

	if _, err := repo.GetByID(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_ScansNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(7, "Dog Bed", "เตียงหมา", "large bed", 750.0, 990.0, "/img/bed.jpg", nil, "Comfy", 4, 1, 4.0, 12, true, true)
	mock.ExpectQuery("SELECT .* FROM products WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(rows)

	p, err := repo.GetByID(7)
	if err != nil {
		t.Fatal(err)
	}
	if p.OriginalPrice == nil || *p.OriginalPrice != 990 {
		t.Fatalf("expected originalPrice 990, got %+v", p.OriginalPrice)
	}
	if p.Brand == nil || *p.Brand != "Comfy" {
		t.Fatalf("expected brand Comfy, got %+v", p.Brand)
	}
	if p.ImageSecond != nil {
		t.Fatalf("expected nil imageSecond, got %v", *p.ImageSecond)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
