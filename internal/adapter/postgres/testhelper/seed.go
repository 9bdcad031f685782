package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBook inserts a visible book with a unique ISBN straight into the books
// table and returns it with its generated id.
func SeedBook(t *testing.T, pool *pgxpool.Pool) domain.Book {
	t.Helper()

	suffix := uniqueSuffix()
	visible := true
	isbn := "isbn-" + suffix
	b := domain.Book{
		Title:   "Test Book " + suffix,
		Author:  "Test Author",
		ISBN:    &isbn,
		Visible: &visible,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO books (title, author, isbn, visible) VALUES ($1, $2, $3, $4) RETURNING id`,
		b.Title, b.Author, b.ISBN, b.Visible,
	).Scan(&b.ID)
	if err != nil {
		t.Fatalf("testhelper: seed book: %v", err)
	}
	return b
}

// SeedPayment inserts a PENDING payment for bookID straight into the
// payments table and returns it with its generated id.
func SeedPayment(t *testing.T, pool *pgxpool.Pool, bookID int64) domain.Payment {
	t.Helper()

	p := domain.Payment{
		BookID:      bookID,
		Amount:      decimal.RequireFromString("9.99"),
		Status:      domain.PaymentStatusPending,
		PaymentDate: time.Now().UTC().Truncate(time.Microsecond),
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO payments (book_id, amount, status, payment_date) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.BookID, p.Amount, string(p.Status), p.PaymentDate,
	).Scan(&p.ID)
	if err != nil {
		t.Fatalf("testhelper: seed payment: %v", err)
	}
	return p
}
