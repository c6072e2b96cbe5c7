package cart

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestGetCart_EnrichesWithProducts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT cart FROM users").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"cart"}).AddRow(`{"5":2}`))

	rows := sqlmock.NewRows([]string{"product_id", "name", "price", "description", "image", "stock", "category", "created_at", "updated_at"}).
		AddRow(5, "Cat toy", 50.0, "d", "img", 3, "cat", "t", "u")
	mock.ExpectQuery("FROM product").WithArgs(pq.Array([]int{5})).WillReturnRows(rows)

	items, err := repo.GetCart(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != 5 || items[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetCart_EmptyCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT cart FROM users").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"cart"}).AddRow(`{}`))

	items, err := repo.GetCart(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}
