package book

import (
	"context"
	"log/slog"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

type bookRepo interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	Update(ctx context.Context, b domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Book, error)
	ListVisible(ctx context.Context) ([]domain.Book, error)
	Search(ctx context.Context, f domain.BookFilter) ([]domain.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides catalogue operations.
type Service struct {
	books bookRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new Book service.
func NewService(log *slog.Logger, books bookRepo, tx txManager) *Service {
	return &Service{
		books: books,
		tx:    tx,
		log:   log.With("service", "book"),
	}
}
