package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var productRows = []string{"product_id", "name", "price", "description", "image", "stock", "category", "created_at", "updated_at"}

func TestDecrementStock_UsesClampingUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE product SET stock = GREATEST\(stock - \$1, 0\)`).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DecrementStock(7, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDecrementStock_UnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE product SET stock").
		WithArgs(1, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DecrementStock(99, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByIDs_PreservesOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productRows).
		AddRow(5, "Cat toy", 50.0, "d", "img", 3, "cat", "t", "u").
		AddRow(2, "Dog food", 100.0, "d", "img", 8, "dog", "t", "u")
	mock.ExpectQuery("FROM product").WithArgs(pq.Array([]int{5, 2})).WillReturnRows(rows)

	products, err := repo.ListByIDs([]int{5, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 || products[0].ID != 5 || products[1].ID != 2 {
		t.Fatalf("unexpected result %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDs_EmptySliceSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	products, err := repo.ListByIDs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty result, got %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInMemoryDecrementStock_ClampsAtZero(t *testing.T) {
	repo := NewInMemoryRepository([]Product{{ID: 1, Name: "Leash", Stock: 2}})

	if err := repo.DecrementStock(1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, _ := repo.GetByID(1)
	if p.Stock != 0 {
		t.Fatalf("expected stock clamped at 0, got %d", p.Stock)
	}
}
