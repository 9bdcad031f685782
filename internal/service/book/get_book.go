package book

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// FindByID returns the book with the given id regardless of its visibility.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// FindAllVisible returns the books whose visible flag is true.
func (s *Service) FindAllVisible(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("list visible books: %w", err)
	}
	return books, nil
}

// Search returns the books matching every criterion set in f.
// An empty filter returns every book, hidden ones included.
func (s *Service) Search(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	books, err := s.books.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	s.log.DebugContext(ctx, "books searched",
		slog.Bool("unfiltered", f.IsEmpty()),
		slog.Int("count", len(books)),
	)

	return books, nil
}
